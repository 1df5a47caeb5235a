package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/edvall/taskdeck/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Folder      string   `json:"folder,omitempty"`
	FolderID    string   `json:"folder_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	Order       int      `json:"order"`
}

// ToJSON writes tasks to path as a pretty-printed document with folder names
// resolved. Dangling folder references keep their id but export no name.
func ToJSON(tasks []store.Task, folders map[string]store.Folder, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		folderName := ""
		if fld, ok := folders[t.FolderID]; ok {
			folderName = fld.Name
		}
		doc.Tasks = append(doc.Tasks, jsonTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Tags:        t.Tags,
			Folder:      folderName,
			FolderID:    t.FolderID,
			CreatedAt:   t.CreatedAt.Local().Format(time.RFC3339),
			UpdatedAt:   t.UpdatedAt.Local().Format(time.RFC3339),
			Order:       t.Order,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
