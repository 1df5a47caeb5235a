package tui

import (
	"github.com/edvall/taskdeck/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewStats
)

var viewNames = []string{"Tasks", "Stats"}

// --- Messages ---

// tasksSyncedMsg carries a replacement snapshot from the watch listener.
type tasksSyncedMsg struct {
	tasks []store.Task
}

type statusMsg struct {
	text    string
	isError bool
}

// --- Helpers ---

func truncate(s string, w int) string {
	if w <= 0 || len(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}

// folderIndex builds the id lookup the read side uses for badges and export.
func folderIndex(folders []store.Folder) map[string]store.Folder {
	idx := make(map[string]store.Folder, len(folders))
	for _, f := range folders {
		idx[f.ID] = f
	}
	return idx
}
