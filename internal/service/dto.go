package service

import "github.com/Tomlord1122/taskflow/internal/domain"

// CreateNoteRequest holds the optional initial fields of a note. Omitted
// fields take the defaults ("Untitled Note", empty content).
type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// UpdateNoteRequest carries the fields to overwrite; nil means unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreateCategoryRequest holds the name of a new category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateTodoRequest holds the data needed to add a todo to a category.
type CreateTodoRequest struct {
	Text     string `json:"text"`
	Reminder *int64 `json:"reminder"`
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Pointers distinguish an omitted field from its zero value.
type UpdateTodoRequest struct {
	Text          *string `json:"text"`
	Completed     *bool   `json:"completed"`
	Reminder      *int64  `json:"reminder"`
	ClearReminder bool    `json:"clearReminder"`
}

// SetPaletteRequest selects a palette by identifier.
type SetPaletteRequest struct {
	Palette string `json:"palette"`
}

// TodoResponse is a todo annotated for display.
type TodoResponse struct {
	domain.TodoItem
	Overdue bool `json:"overdue"`
}

// CategoryResponse is a category with its display counters.
type CategoryResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt int64          `json:"createdAt"`
	Todos     []TodoResponse `json:"todos"`
	Open      int            `json:"open"`
	Done      int            `json:"done"`
}

// TrashResponse is the content of the recycle bin.
type TrashResponse struct {
	Notes []domain.Note            `json:"notes"`
	Tasks []domain.DeletedTodoItem `json:"tasks"`
}

// Count is the number of items awaiting restore or purge.
func (t TrashResponse) Count() int {
	return len(t.Notes) + len(t.Tasks)
}

func toCategoryResponse(c domain.Category, now int64) CategoryResponse {
	todos := make([]TodoResponse, 0, len(c.Todos))
	for _, t := range c.Todos {
		todos = append(todos, TodoResponse{TodoItem: t, Overdue: t.Overdue(now)})
	}
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Todos:     todos,
		Open:      c.OpenCount(),
		Done:      c.DoneCount(),
	}
}
