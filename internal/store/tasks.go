package store

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStore owns the task collection and the filter criteria. Every mutator
// except Sync writes the full collection through the persistence bridge
// before returning. Preconditions (non-empty title, in-range indices) belong
// to the caller; see validate.go.
type TaskStore struct {
	mu      sync.RWMutex
	storage *Storage

	tasks          []Task // kept in display order; Order mirrors the index
	searchTerm     string
	selectedTags   []string
	selectedFolder string // empty = no folder filter
}

func newTaskStore(st *Storage) *TaskStore {
	ts := &TaskStore{storage: st, tasks: st.LoadTasks()}
	sort.SliceStable(ts.tasks, func(i, j int) bool {
		return ts.tasks[i].Order < ts.tasks[j].Order
	})
	return ts
}

// Add appends a task at the end of the display order and persists. The title
// is assumed to have passed ValidateTitle already.
func (ts *TaskStore) Add(title, description string, tags []string, folderID string) Task {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now().UTC()
	t := Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Tags:        slices.Clone(tags),
		FolderID:    folderID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Order:       len(ts.tasks),
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	ts.tasks = append(ts.tasks, t)
	ts.persistLocked()
	return t
}

// Update shallow-merges patch into the task with the given id and restamps
// UpdatedAt. An unknown id is a silent no-op.
func (ts *TaskStore) Update(id string, patch TaskPatch) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for i := range ts.tasks {
		if ts.tasks[i].ID != id {
			continue
		}
		t := &ts.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Tags != nil {
			t.Tags = slices.Clone(*patch.Tags)
		}
		if patch.FolderID != nil {
			t.FolderID = *patch.FolderID
		}
		t.UpdatedAt = time.Now().UTC()
		ts.persistLocked()
		return
	}
}

// Delete removes the task with the given id, if present, and renumbers the
// remainder to the dense range [0, n). An unknown id is a silent no-op.
func (ts *TaskStore) Delete(id string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for i := range ts.tasks {
		if ts.tasks[i].ID != id {
			continue
		}
		ts.tasks = slices.Delete(ts.tasks, i, i+1)
		ts.renumberLocked()
		ts.persistLocked()
		return
	}
}

// Reorder moves the task at dragIndex so it ends up at hoverIndex (list
// splice semantics) and renumbers everything. Both indices must be valid
// positions in the current display order; that is the drag controller's
// contract, not checked here.
func (ts *TaskStore) Reorder(dragIndex, hoverIndex int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	moved := ts.tasks[dragIndex]
	ts.tasks = slices.Delete(ts.tasks, dragIndex, dragIndex+1)
	ts.tasks = slices.Insert(ts.tasks, hoverIndex, moved)
	ts.renumberLocked()
	ts.persistLocked()
}

// Sync replaces the whole collection with an external snapshot. It never
// persists or notifies: the snapshot is already the durable truth, and
// writing it back would bounce change notifications between processes
// forever. Whichever snapshot arrives last wins; there is no merge.
func (ts *TaskStore) Sync(tasks []Task) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tasks = slices.Clone(tasks)
	sort.SliceStable(ts.tasks, func(i, j int) bool {
		return ts.tasks[i].Order < ts.tasks[j].Order
	})
}

// SetSearchTerm replaces the search criterion. No persistence.
func (ts *TaskStore) SetSearchTerm(term string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.searchTerm = term
}

// SetSelectedTags replaces the tag criterion. No persistence.
func (ts *TaskStore) SetSelectedTags(tags []string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.selectedTags = slices.Clone(tags)
}

// SetSelectedFolder replaces the folder criterion; empty clears it.
func (ts *TaskStore) SetSelectedFolder(id string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.selectedFolder = id
}

func (ts *TaskStore) SearchTerm() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.searchTerm
}

func (ts *TaskStore) SelectedTags() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return slices.Clone(ts.selectedTags)
}

func (ts *TaskStore) SelectedFolder() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.selectedFolder
}

// All returns the full collection in display order.
func (ts *TaskStore) All() []Task {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return slices.Clone(ts.tasks)
}

// Visible applies the current filter criteria; see Filter.
func (ts *TaskStore) Visible() []Task {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return Filter(ts.tasks, ts.searchTerm, ts.selectedTags, ts.selectedFolder)
}

// Get returns a copy of the task with the given id.
func (ts *TaskStore) Get(id string) (Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	for _, t := range ts.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Len reports the number of tasks.
func (ts *TaskStore) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tasks)
}

func (ts *TaskStore) renumberLocked() {
	for i := range ts.tasks {
		ts.tasks[i].Order = i
	}
}

func (ts *TaskStore) persistLocked() {
	ts.storage.SaveTasks(slices.Clone(ts.tasks))
}
