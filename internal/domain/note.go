package domain

// Note is a notebook entry. Deleted notes stay in the collection with
// IsDeleted set until they are purged.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
	IsDeleted bool   `json:"isDeleted,omitempty"`
}

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "Untitled Note"

// NewNote builds an active note stamped with now.
func NewNote(id, title, content string, now int64) Note {
	return Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// touch refreshes UpdatedAt without ever moving it backwards.
func (n *Note) touch(now int64) {
	if now > n.UpdatedAt {
		n.UpdatedAt = now
	}
}

// PrependNote returns a new collection with n at the head.
func PrependNote(notes []Note, n Note) []Note {
	out := make([]Note, 0, len(notes)+1)
	out = append(out, n)
	return append(out, notes...)
}

// FindNote returns the note with the given id.
func FindNote(notes []Note, id string) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// UpdateNote sets the non-nil fields on the matching note and refreshes its
// UpdatedAt. The bool reports whether a note matched.
func UpdateNote(notes []Note, id string, title, content *string, now int64) ([]Note, bool) {
	return mapNote(notes, id, func(n *Note) {
		if title != nil {
			n.Title = *title
		}
		if content != nil {
			n.Content = *content
		}
		n.touch(now)
	})
}

// SoftDeleteNote flags the note as deleted and keeps it in the collection.
func SoftDeleteNote(notes []Note, id string, now int64) ([]Note, bool) {
	return mapNote(notes, id, func(n *Note) {
		n.IsDeleted = true
		n.touch(now)
	})
}

// RestoreNote clears the deleted flag.
func RestoreNote(notes []Note, id string) ([]Note, bool) {
	return mapNote(notes, id, func(n *Note) {
		n.IsDeleted = false
	})
}

// PurgeNote strikes the note from the collection. Purging an unknown id
// returns an equal collection.
func PurgeNote(notes []Note, id string) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// ActiveNotes is the subset shown in the notes view.
func ActiveNotes(notes []Note) []Note {
	return filterNotes(notes, false)
}

// DeletedNotes is the subset shown in the trash view.
func DeletedNotes(notes []Note) []Note {
	return filterNotes(notes, true)
}

func filterNotes(notes []Note, deleted bool) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.IsDeleted == deleted {
			out = append(out, n)
		}
	}
	return out
}

func mapNote(notes []Note, id string, fn func(*Note)) ([]Note, bool) {
	out := make([]Note, len(notes))
	copy(out, notes)
	found := false
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			found = true
		}
	}
	return out, found
}
