package domain

import "fmt"

// Palette is the accent colour set applied as a presentation theme.
type Palette string

const (
	PaletteNature    Palette = "nature"
	PaletteSunset    Palette = "sunset"
	PaletteBotanic   Palette = "botanic"
	PaletteCelestial Palette = "celestial"
	PaletteVolcano   Palette = "volcano"
	PaletteEarth     Palette = "earth"
)

// Palettes lists every valid palette in display order.
var Palettes = []Palette{
	PaletteNature,
	PaletteSunset,
	PaletteBotanic,
	PaletteCelestial,
	PaletteVolcano,
	PaletteEarth,
}

// ParsePalette rejects identifiers outside the fixed set.
func ParsePalette(s string) (Palette, error) {
	for _, p := range Palettes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown palette %q", s)
}

// Preferences is the process-wide presentation state.
type Preferences struct {
	DarkMode bool    `json:"darkMode"`
	Palette  Palette `json:"palette"`
}

// DefaultPreferences is light mode with the nature palette.
func DefaultPreferences() Preferences {
	return Preferences{DarkMode: false, Palette: PaletteNature}
}
