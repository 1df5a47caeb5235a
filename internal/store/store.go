// Package store holds the in-memory task, folder, and UI state, the
// invariants over them, and the persistence bridge that writes them through
// to the data directory. Presentation layers dispatch intents into it and
// render its read projections; they never hold a second copy of its data.
package store

// Store is the explicitly constructed state container. There is no ambient
// global: main builds one and passes it by reference to every consumer.
type Store struct {
	Tasks   *TaskStore
	Folders *FolderStore
	UI      *UIState

	storage *Storage
}

// New loads both collections from st. An empty or unreadable tasks slot
// yields an empty collection; an empty or unreadable folders slot yields the
// seeded default folder.
func New(st *Storage) *Store {
	return &Store{
		Tasks:   newTaskStore(st),
		Folders: newFolderStore(st),
		UI:      newUIState(),
		storage: st,
	}
}

// Storage exposes the persistence bridge, primarily for the watch listener's
// ingress adapters.
func (s *Store) Storage() *Storage {
	return s.storage
}
