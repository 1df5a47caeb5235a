package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edvall/taskdeck/internal/store"
)

// ToCSV writes tasks to path. folders resolves folderId to a display name; a
// dangling or empty folderId exports as an empty Folder column.
func ToCSV(tasks []store.Task, folders map[string]store.Folder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Description", "Tags", "Folder", "Created", "Updated", "Order"}); err != nil {
		return err
	}

	for _, t := range tasks {
		folderName := ""
		if fld, ok := folders[t.FolderID]; ok {
			folderName = fld.Name
		}
		row := []string{
			t.ID,
			t.Title,
			t.Description,
			strings.Join(t.Tags, ", "),
			folderName,
			t.CreatedAt.Local().Format(time.RFC3339),
			t.UpdatedAt.Local().Format(time.RFC3339),
			strconv.Itoa(t.Order),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
