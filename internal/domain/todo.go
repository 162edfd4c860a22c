package domain

// TodoItem is a task inside a Category. Reminder is epoch millis and may lie
// in the past.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
	Reminder  *int64 `json:"reminder,omitempty"`
}

// Overdue reports whether an open task has a reminder before now.
func (t TodoItem) Overdue(now int64) bool {
	return !t.Completed && t.Reminder != nil && *t.Reminder < now
}

// Category owns an ordered list of todos, newest first.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Todos     []TodoItem `json:"todos"`
	CreatedAt int64      `json:"createdAt"`
}

// OpenCount is the number of todos not yet completed.
func (c Category) OpenCount() int {
	n := 0
	for _, t := range c.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// DoneCount is the number of completed todos.
func (c Category) DoneCount() int {
	return len(c.Todos) - c.OpenCount()
}

// NewCategory builds an empty category.
func NewCategory(id, name string, now int64) Category {
	return Category{ID: id, Name: name, Todos: []TodoItem{}, CreatedAt: now}
}

// NewTodo builds an open todo.
func NewTodo(id, text string, now int64) TodoItem {
	return TodoItem{ID: id, Text: text, CreatedAt: now}
}

// AppendCategory adds c after the existing categories.
func AppendCategory(cats []Category, c Category) []Category {
	out := make([]Category, 0, len(cats)+1)
	out = append(out, cats...)
	return append(out, c)
}

// RemoveCategory drops the category and every todo it contains. Todos are
// not moved to the trash.
func RemoveCategory(cats []Category, id string) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// FindCategory returns the category with the given id.
func FindCategory(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindTodo returns a todo from the given category.
func FindTodo(cats []Category, categoryID, todoID string) (TodoItem, bool) {
	c, ok := FindCategory(cats, categoryID)
	if !ok {
		return TodoItem{}, false
	}
	for _, t := range c.Todos {
		if t.ID == todoID {
			return t, true
		}
	}
	return TodoItem{}, false
}

// PrependTodos puts todos at the head of the category's list, keeping their
// relative order.
func PrependTodos(cats []Category, categoryID string, todos ...TodoItem) ([]Category, bool) {
	return mapCategory(cats, categoryID, func(c *Category) bool {
		list := make([]TodoItem, 0, len(todos)+len(c.Todos))
		list = append(list, todos...)
		c.Todos = append(list, c.Todos...)
		return true
	})
}

// ToggleTodo flips the completed flag.
func ToggleTodo(cats []Category, categoryID, todoID string) ([]Category, bool) {
	return mapTodo(cats, categoryID, todoID, func(t *TodoItem) {
		t.Completed = !t.Completed
	})
}

// SetCompleted sets the completed flag.
func SetCompleted(cats []Category, categoryID, todoID string, completed bool) ([]Category, bool) {
	return mapTodo(cats, categoryID, todoID, func(t *TodoItem) {
		t.Completed = completed
	})
}

// EditTodoText replaces the todo's text.
func EditTodoText(cats []Category, categoryID, todoID, text string) ([]Category, bool) {
	return mapTodo(cats, categoryID, todoID, func(t *TodoItem) {
		t.Text = text
	})
}

// SetReminder schedules a reminder at the given epoch millis.
func SetReminder(cats []Category, categoryID, todoID string, at int64) ([]Category, bool) {
	return mapTodo(cats, categoryID, todoID, func(t *TodoItem) {
		t.Reminder = &at
	})
}

// ClearReminder removes the todo's reminder.
func ClearReminder(cats []Category, categoryID, todoID string) ([]Category, bool) {
	return mapTodo(cats, categoryID, todoID, func(t *TodoItem) {
		t.Reminder = nil
	})
}

// RemoveTodo takes the todo out of its category and returns it.
func RemoveTodo(cats []Category, categoryID, todoID string) ([]Category, TodoItem, bool) {
	var removed TodoItem
	out, ok := mapCategory(cats, categoryID, func(c *Category) bool {
		list := make([]TodoItem, 0, len(c.Todos))
		found := false
		for _, t := range c.Todos {
			if t.ID == todoID && !found {
				removed = t
				found = true
				continue
			}
			list = append(list, t)
		}
		c.Todos = list
		return found
	})
	if !ok {
		return cats, TodoItem{}, false
	}
	return out, removed, true
}

// mapCategory copies cats and applies fn to the matching category. fn reports
// whether it changed anything; when it did not, cats is returned untouched.
func mapCategory(cats []Category, id string, fn func(*Category) bool) ([]Category, bool) {
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		out := make([]Category, len(cats))
		copy(out, cats)
		if !fn(&out[i]) {
			return cats, false
		}
		return out, true
	}
	return cats, false
}

func mapTodo(cats []Category, categoryID, todoID string, fn func(*TodoItem)) ([]Category, bool) {
	return mapCategory(cats, categoryID, func(c *Category) bool {
		for i := range c.Todos {
			if c.Todos[i].ID != todoID {
				continue
			}
			list := make([]TodoItem, len(c.Todos))
			copy(list, c.Todos)
			fn(&list[i])
			c.Todos = list
			return true
		}
		return false
	})
}
