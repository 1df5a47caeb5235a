package store

import "sync"

// UIState is the ephemeral interaction state: which form is open, which task
// is being edited or confirmed for deletion, sidebar visibility. It is never
// persisted and resets on process start. Every transition is total.
type UIState struct {
	mu             sync.RWMutex
	taskFormOpen   bool
	editingTask    *Task
	deleteTarget   *Task
	folderFormOpen bool
	sidebarOpen    bool
}

func newUIState() *UIState {
	return &UIState{sidebarOpen: true}
}

// OpenTaskForm opens the task form for creation, clearing any edit target.
func (u *UIState) OpenTaskForm() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.taskFormOpen = true
	u.editingTask = nil
}

// CloseTaskForm closes the form and clears the edit target.
func (u *UIState) CloseTaskForm() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.taskFormOpen = false
	u.editingTask = nil
}

// EditTask stores a snapshot of t and opens the form in edit mode.
func (u *UIState) EditTask(t Task) {
	u.mu.Lock()
	defer u.mu.Unlock()
	snap := t
	u.editingTask = &snap
	u.taskFormOpen = true
}

// OpenDeleteConfirm stores a snapshot of the task awaiting confirmation.
func (u *UIState) OpenDeleteConfirm(t Task) {
	u.mu.Lock()
	defer u.mu.Unlock()
	snap := t
	u.deleteTarget = &snap
}

// CloseDeleteConfirm clears the pending deletion.
func (u *UIState) CloseDeleteConfirm() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleteTarget = nil
}

// ToggleFolderForm flips the folder form.
func (u *UIState) ToggleFolderForm() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.folderFormOpen = !u.folderFormOpen
}

// ToggleSidebar flips sidebar visibility.
func (u *UIState) ToggleSidebar() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sidebarOpen = !u.sidebarOpen
}

func (u *UIState) TaskFormOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.taskFormOpen
}

// EditingTask returns the snapshot being edited, if the form is in edit mode.
func (u *UIState) EditingTask() (Task, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.editingTask == nil {
		return Task{}, false
	}
	return *u.editingTask, true
}

// DeleteTarget returns the task awaiting delete confirmation, if any.
func (u *UIState) DeleteTarget() (Task, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.deleteTarget == nil {
		return Task{}, false
	}
	return *u.deleteTarget, true
}

func (u *UIState) FolderFormOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.folderFormOpen
}

func (u *UIState) SidebarOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.sidebarOpen
}
