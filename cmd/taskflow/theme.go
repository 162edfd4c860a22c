package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/taskflow/internal/domain"
	"github.com/Tomlord1122/taskflow/internal/service"
)

func printPreferences(cmd *cobra.Command, p domain.Preferences) {
	mode := "light"
	if p.DarkMode {
		mode = "dark"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Mode: %s\nPalette: %s\n", mode, p.Palette)
}

func newThemeCmd(env *cliEnv) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the presentation preferences",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current mode and palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printPreferences(cmd, env.app.Preferences(cmd.Context()))
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := env.app.ToggleDarkMode(cmd.Context())
			if err != nil {
				return err
			}
			printPreferences(cmd, p)
			return nil
		},
	}

	paletteCmd := &cobra.Command{
		Use:       "palette [name]",
		Short:     "Select the accent palette",
		Args:      cobra.ExactArgs(1),
		ValidArgs: paletteNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := env.app.SetPalette(cmd.Context(), service.SetPaletteRequest{Palette: args[0]})
			if err != nil {
				return err
			}
			printPreferences(cmd, p)
			return nil
		},
	}

	themeCmd.AddCommand(showCmd, toggleCmd, paletteCmd)
	return themeCmd
}

func paletteNames() []string {
	names := make([]string, 0, len(domain.Palettes))
	for _, p := range domain.Palettes {
		names = append(names, string(p))
	}
	return names
}
