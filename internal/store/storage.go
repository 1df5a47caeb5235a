package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/edvall/taskdeck/internal/logs"
)

// Storage is the persistence bridge: two named JSON slots in a data
// directory, each overwritten wholesale on every save. Load and save
// failures are absorbed and logged; the in-memory collections stay
// authoritative for the session even when a write never lands.
type Storage struct {
	dir        string
	updates    chan []Task
	subscribed atomic.Bool
}

// Open binds a Storage to dir, creating the directory if needed.
func Open(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Storage{dir: dir, updates: make(chan []Task, 16)}, nil
}

// DefaultDir returns ~/.config/taskdeck (or the platform equivalent).
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "taskdeck"), nil
}

// TasksPath is the tasks slot file. The watch listener observes it for
// writes from other processes.
func (s *Storage) TasksPath() string {
	return filepath.Join(s.dir, TasksKey+".json")
}

func (s *Storage) foldersPath() string {
	return filepath.Join(s.dir, FoldersKey+".json")
}

// Updates is the same-process echo: after each successful task save the new
// collection is published here, so in-process consumers see this process's
// own writes the same way they see other processes' writes. Folders have no
// equivalent channel. Saves before the first call here skip the echo, so a
// process running without a listener does not fill the buffer.
func (s *Storage) Updates() <-chan []Task {
	s.subscribed.Store(true)
	return s.updates
}

// ReadTasks parses the tasks slot. Unlike LoadTasks it reports failures, for
// callers that must keep their previous state when the payload is malformed.
func (s *Storage) ReadTasks() ([]Task, error) {
	data, err := os.ReadFile(s.TasksPath())
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", TasksKey, err)
	}
	return tasks, nil
}

// LoadTasks returns the persisted tasks, or an empty collection if the slot
// is missing or unreadable.
func (s *Storage) LoadTasks() []Task {
	tasks, err := s.ReadTasks()
	if err != nil {
		if !os.IsNotExist(err) {
			logs.Logger.Printf("load tasks: %v", err)
		}
		return nil
	}
	return tasks
}

// SaveTasks overwrites the tasks slot and publishes the echo. Failures are
// absorbed and logged.
func (s *Storage) SaveTasks(tasks []Task) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		logs.Logger.Printf("marshal tasks: %v", err)
		return
	}
	if err := os.WriteFile(s.TasksPath(), data, 0o644); err != nil {
		logs.Logger.Printf("save tasks: %v", err)
		return
	}
	if !s.subscribed.Load() {
		return
	}
	select {
	case s.updates <- tasks:
	default:
		logs.Logger.Printf("task update echo dropped: consumer not keeping up")
	}
}

// LoadFolders returns the persisted folders, or the seeded default list if
// the slot is missing or unreadable.
func (s *Storage) LoadFolders() []Folder {
	data, err := os.ReadFile(s.foldersPath())
	if err != nil {
		if !os.IsNotExist(err) {
			logs.Logger.Printf("load folders: %v", err)
		}
		return defaultFolders()
	}
	var folders []Folder
	if err := json.Unmarshal(data, &folders); err != nil {
		logs.Logger.Printf("parse %s: %v", FoldersKey, err)
		return defaultFolders()
	}
	return folders
}

// SaveFolders overwrites the folders slot. Failures are absorbed and logged.
func (s *Storage) SaveFolders(folders []Folder) {
	if folders == nil {
		folders = []Folder{}
	}
	data, err := json.MarshalIndent(folders, "", "  ")
	if err != nil {
		logs.Logger.Printf("marshal folders: %v", err)
		return
	}
	if err := os.WriteFile(s.foldersPath(), data, 0o644); err != nil {
		logs.Logger.Printf("save folders: %v", err)
	}
}
