package domain

import "testing"

func TestPrependTodosKeepsBatchOrder(t *testing.T) {
	cats := []Category{NewCategory("a", "A", 1)}
	cats, _ = PrependTodos(cats, "a", NewTodo("old", "old", 1))
	cats, ok := PrependTodos(cats, "a", NewTodo("s1", "one", 2), NewTodo("s2", "two", 2))
	if !ok {
		t.Fatalf("expected category match")
	}
	var ids []string
	for _, td := range cats[0].Todos {
		ids = append(ids, td.ID)
	}
	if len(ids) != 3 || ids[0] != "s1" || ids[1] != "s2" || ids[2] != "old" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestTodoMutations(t *testing.T) {
	cats := []Category{{ID: "a", Todos: []TodoItem{{ID: "x", Text: "before"}}}}

	cats, _ = ToggleTodo(cats, "a", "x")
	if !cats[0].Todos[0].Completed {
		t.Fatalf("toggle did not complete")
	}
	cats, _ = EditTodoText(cats, "a", "x", "after")
	cats, _ = SetReminder(cats, "a", "x", 99)
	got := cats[0].Todos[0]
	if got.Text != "after" || got.Reminder == nil || *got.Reminder != 99 {
		t.Fatalf("unexpected todo: %+v", got)
	}
	cats, _ = ClearReminder(cats, "a", "x")
	if cats[0].Todos[0].Reminder != nil {
		t.Fatalf("reminder not cleared")
	}

	if _, ok := ToggleTodo(cats, "a", "missing"); ok {
		t.Fatalf("toggle on unknown todo must report no match")
	}
	if _, ok := ToggleTodo(cats, "missing", "x"); ok {
		t.Fatalf("toggle on unknown category must report no match")
	}
}

func TestCategoryMutationsDoNotAliasInput(t *testing.T) {
	orig := []Category{{ID: "a", Todos: []TodoItem{{ID: "x"}}}}
	_, _ = ToggleTodo(orig, "a", "x")
	_, _, _ = RemoveTodo(orig, "a", "x")
	if orig[0].Todos[0].Completed || len(orig[0].Todos) != 1 {
		t.Fatalf("input collection mutated: %+v", orig)
	}
}

func TestRemoveCategoryDiscardsTodos(t *testing.T) {
	cats := []Category{{ID: "a", Todos: []TodoItem{{ID: "x"}}}, {ID: "b"}}
	cats = RemoveCategory(cats, "a")
	if len(cats) != 1 || cats[0].ID != "b" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if _, ok := FindTodo(cats, "a", "x"); ok {
		t.Fatalf("todo should vanish with its category")
	}
}

func TestCountsAndOverdue(t *testing.T) {
	past := int64(10)
	c := Category{Todos: []TodoItem{
		{ID: "1", Completed: true, Reminder: &past},
		{ID: "2", Reminder: &past},
		{ID: "3"},
	}}
	if c.OpenCount() != 2 || c.DoneCount() != 1 {
		t.Fatalf("open=%d done=%d", c.OpenCount(), c.DoneCount())
	}
	if c.Todos[0].Overdue(20) {
		t.Fatalf("completed todo is never overdue")
	}
	if !c.Todos[1].Overdue(20) || c.Todos[1].Overdue(5) {
		t.Fatalf("overdue check wrong")
	}
	if c.Todos[2].Overdue(20) {
		t.Fatalf("todo without reminder is never overdue")
	}
}

func TestDefaults(t *testing.T) {
	notes := DefaultNotes(7)
	if len(notes) != 1 || notes[0].ID != WelcomeNoteID || notes[0].IsDeleted {
		t.Fatalf("unexpected default notes: %+v", notes)
	}
	cats := DefaultCategories(7)
	if len(cats) != 1 || len(cats[0].Todos) != 2 {
		t.Fatalf("unexpected default categories: %+v", cats)
	}
	if cats[0].Todos[0].Completed || !cats[0].Todos[1].Completed {
		t.Fatalf("seeded completion flags wrong: %+v", cats[0].Todos)
	}
}

func TestParsePalette(t *testing.T) {
	for _, p := range Palettes {
		if got, err := ParsePalette(string(p)); err != nil || got != p {
			t.Fatalf("ParsePalette(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePalette("neon"); err == nil {
		t.Fatalf("expected error for unknown palette")
	}
	if DefaultPreferences().Palette != PaletteNature || DefaultPreferences().DarkMode {
		t.Fatalf("unexpected defaults")
	}
}
