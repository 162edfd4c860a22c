package domain

// Seed identifiers of the first-run dataset.
const (
	WelcomeNoteID     = "welcome-note"
	DefaultCategoryID = "default-cat"
)

// DefaultNotes is the notebook shown before anything was ever saved.
func DefaultNotes(now int64) []Note {
	return []Note{
		NewNote(WelcomeNoteID, "Welcome to Notes", "This is your new notebook. You can write anything here.", now),
	}
}

// DefaultCategories is the task list shown before anything was ever saved.
func DefaultCategories(now int64) []Category {
	return []Category{{
		ID:        DefaultCategoryID,
		Name:      "My Tasks",
		CreatedAt: now,
		Todos: []TodoItem{
			{ID: "t1", Text: "Explore the new theme", Completed: false, CreatedAt: now},
			{ID: "t2", Text: "Try Dark Mode", Completed: true, CreatedAt: now},
		},
	}}
}
