package store

import "time"

// Storage slot names. Each slot is a file in the data directory holding one
// JSON array.
const (
	TasksKey   = "todoTasks"
	FoldersKey = "todoFolders"
)

// The default folder is seeded on first load and represents the unfiltered
// view. It is never offered for deletion in the UI; see ValidateFolderDelete.
const (
	DefaultFolderID   = "default"
	DefaultFolderName = "All Tasks"
	DefaultColor      = "#6366f1"
)

// Task is a single todo item. Order is a dense 0-based rank over the whole
// collection, renumbered after every structural change.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	FolderID    string    `json:"folderId,omitempty"` // empty = unfiled; dangling ids are tolerated
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Order       int       `json:"order"`
}

// Folder is a named, colored grouping of tasks. Names are unique
// case-insensitively; that invariant is enforced by ValidateFolderName before
// dispatch, not by the store.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Tags        *[]string
	FolderID    *string
}

// FolderPatch is a partial folder update. Nil fields are left untouched.
type FolderPatch struct {
	Name  *string
	Color *string
}

func defaultFolders() []Folder {
	return []Folder{{ID: DefaultFolderID, Name: DefaultFolderName, Color: DefaultColor}}
}
