package store

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FolderStore owns the folder collection. Name uniqueness is the validation
// layer's job (ValidateFolderName); the store trusts its caller. Deleting a
// folder never touches the tasks referencing it — they keep a dangling
// folderId and simply render without a badge.
type FolderStore struct {
	mu      sync.RWMutex
	storage *Storage
	folders []Folder
}

func newFolderStore(st *Storage) *FolderStore {
	return &FolderStore{storage: st, folders: st.LoadFolders()}
}

// Add appends a folder and persists. An empty color falls back to the
// default palette color.
func (fs *FolderStore) Add(name, color string) Folder {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if color == "" {
		color = DefaultColor
	}
	f := Folder{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	fs.folders = append(fs.folders, f)
	fs.persistLocked()
	return f
}

// Update merges patch into the folder with the given id and persists. An
// unknown id is a silent no-op.
func (fs *FolderStore) Update(id string, patch FolderPatch) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.folders {
		if fs.folders[i].ID != id {
			continue
		}
		if patch.Name != nil {
			fs.folders[i].Name = *patch.Name
		}
		if patch.Color != nil {
			fs.folders[i].Color = *patch.Color
		}
		fs.persistLocked()
		return
	}
}

// Delete removes the folder with the given id, if present, and persists.
// Tasks referencing it are not cascaded.
func (fs *FolderStore) Delete(id string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i := range fs.folders {
		if fs.folders[i].ID != id {
			continue
		}
		fs.folders = slices.Delete(fs.folders, i, i+1)
		fs.persistLocked()
		return
	}
}

// All returns the folder collection in insertion order.
func (fs *FolderStore) All() []Folder {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return slices.Clone(fs.folders)
}

// Get returns a copy of the folder with the given id.
func (fs *FolderStore) Get(id string) (Folder, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	for _, f := range fs.folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

func (fs *FolderStore) persistLocked() {
	fs.storage.SaveFolders(slices.Clone(fs.folders))
}
