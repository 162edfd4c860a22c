package domain

import "fmt"

// DeletedTodoItem is a todo relocated to the trash. OriginalCategoryID is a
// weak reference: the category may be gone by the time the item is restored.
type DeletedTodoItem struct {
	ID                 string `json:"id"`
	Text               string `json:"text"`
	Completed          bool   `json:"completed"`
	CreatedAt          int64  `json:"createdAt"`
	Reminder           *int64 `json:"reminder,omitempty"`
	OriginalCategoryID string `json:"originalCategoryId"`
	DeletedAt          int64  `json:"deletedAt"`
}

// TodoItem copies the todo fields and drops the trash bookkeeping.
func (d DeletedTodoItem) TodoItem() TodoItem {
	return TodoItem{
		ID:        d.ID,
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt,
		Reminder:  d.Reminder,
	}
}

// Trashed wraps t with its provenance.
func Trashed(t TodoItem, categoryID string, now int64) DeletedTodoItem {
	return DeletedTodoItem{
		ID:                 t.ID,
		Text:               t.Text,
		Completed:          t.Completed,
		CreatedAt:          t.CreatedAt,
		Reminder:           t.Reminder,
		OriginalCategoryID: categoryID,
		DeletedAt:          now,
	}
}

// RestoredCategoryName names the category synthesized for orphaned restores.
const RestoredCategoryName = "Restored Tasks"

// RestorePolicy decides where a todo goes when its original category no
// longer exists.
type RestorePolicy string

const (
	// RestoreToFirst prepends into the first category, or creates a
	// "Restored Tasks" category when none exist.
	RestoreToFirst RestorePolicy = "first"
	// RestoreToRestored always collects orphans in a "Restored Tasks"
	// category, reusing one if present.
	RestoreToRestored RestorePolicy = "restored"
)

// ParseRestorePolicy accepts "first", "restored" or an empty string (first).
func ParseRestorePolicy(s string) (RestorePolicy, error) {
	switch RestorePolicy(s) {
	case "", RestoreToFirst:
		return RestoreToFirst, nil
	case RestoreToRestored:
		return RestoreToRestored, nil
	}
	return "", fmt.Errorf("unknown restore policy %q", s)
}

// MoveToTrash prepends the trashed form of t. The caller removes t from its
// category in the same state transition.
func MoveToTrash(trash []DeletedTodoItem, t TodoItem, categoryID string, now int64) []DeletedTodoItem {
	out := make([]DeletedTodoItem, 0, len(trash)+1)
	out = append(out, Trashed(t, categoryID, now))
	return append(out, trash...)
}

// FindTrashed returns the trashed todo with the given id.
func FindTrashed(trash []DeletedTodoItem, id string) (DeletedTodoItem, bool) {
	for _, d := range trash {
		if d.ID == id {
			return d, true
		}
	}
	return DeletedTodoItem{}, false
}

// PurgeTodo strikes the item from the trash. Unknown ids are a no-op.
func PurgeTodo(trash []DeletedTodoItem, id string) []DeletedTodoItem {
	out := make([]DeletedTodoItem, 0, len(trash))
	for _, d := range trash {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// Restore takes the item out of the trash and prepends it to a category
// chosen by policy. newID is only called when a category has to be created.
// Unknown ids leave both collections unchanged.
func Restore(cats []Category, trash []DeletedTodoItem, id string, policy RestorePolicy, newID func() string, now int64) ([]Category, []DeletedTodoItem, bool) {
	item, ok := FindTrashed(trash, id)
	if !ok {
		return cats, trash, false
	}
	trash = PurgeTodo(trash, id)
	todo := item.TodoItem()

	if out, ok := PrependTodos(cats, item.OriginalCategoryID, todo); ok {
		return out, trash, true
	}

	if policy == RestoreToRestored {
		for _, c := range cats {
			if c.Name == RestoredCategoryName {
				out, _ := PrependTodos(cats, c.ID, todo)
				return out, trash, true
			}
		}
		return AppendCategory(cats, restoredCategory(newID(), todo, now)), trash, true
	}

	if len(cats) > 0 {
		out, _ := PrependTodos(cats, cats[0].ID, todo)
		return out, trash, true
	}
	return []Category{restoredCategory(newID(), todo, now)}, trash, true
}

func restoredCategory(id string, todo TodoItem, now int64) Category {
	return Category{
		ID:        id,
		Name:      RestoredCategoryName,
		Todos:     []TodoItem{todo},
		CreatedAt: now,
	}
}
