package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/edvall/taskdeck/internal/store"
)

var folderColors = []string{
	"#6366F1", "#2EC4B6", "#FF6B6B", "#F39C12",
	"#2ECC71", "#E74C3C", "#9B59B6", "#3498DB",
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// splitTags turns the comma-separated form field into a tag slice. Empty
// segments are dropped here; duplicates are left for validation to reject.
func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func (m tasksModel) showTaskForm(edit *store.Task) (tasksModel, tea.Cmd) {
	if edit == nil {
		m.store.UI.OpenTaskForm()
		*m.formTitle = ""
		*m.formDescription = ""
		*m.formTags = ""
		*m.formFolder = ""
	} else {
		m.store.UI.EditTask(*edit)
		*m.formTitle = edit.Title
		*m.formDescription = edit.Description
		*m.formTags = strings.Join(edit.Tags, ", ")
		*m.formFolder = edit.FolderID
	}

	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, f := range m.store.Folders.All() {
		if f.ID == store.DefaultFolderID {
			continue
		}
		opts = append(opts, huh.NewOption(f.Name, f.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs doing?").
				Value(m.formTitle),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(m.formDescription),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma, separated").
				Value(m.formTags),
			huh.NewSelect[string]().
				Title("Folder").
				Options(opts...).
				Value(m.formFolder),
		),
	).WithShowHelp(true)
	m.formKind = "task"
	return m, m.form.Init()
}

func (m *tasksModel) submitTaskForm() tea.Cmd {
	title, err := store.ValidateTitle(*m.formTitle)
	if err != nil {
		m.store.UI.CloseTaskForm()
		return status(err.Error(), true)
	}
	tags, err := store.ValidateTags(splitTags(*m.formTags))
	if err != nil {
		m.store.UI.CloseTaskForm()
		return status(err.Error(), true)
	}

	if editing, ok := m.store.UI.EditingTask(); ok {
		m.store.Tasks.Update(editing.ID, store.TaskPatch{
			Title:       &title,
			Description: m.formDescription,
			Tags:        &tags,
			FolderID:    m.formFolder,
		})
		m.store.UI.CloseTaskForm()
		return status(fmt.Sprintf("updated %q", title), false)
	}

	m.store.Tasks.Add(title, *m.formDescription, tags, *m.formFolder)
	m.store.UI.CloseTaskForm()
	return status(fmt.Sprintf("added %q", title), false)
}

func (m tasksModel) showFolderForm(edit *store.Folder) (tasksModel, tea.Cmd) {
	if !m.store.UI.FolderFormOpen() {
		m.store.UI.ToggleFolderForm()
	}
	if edit == nil {
		m.editingFolderID = ""
		*m.formName = ""
		*m.formColor = folderColors[0]
	} else {
		if edit.ID == store.DefaultFolderID {
			if m.store.UI.FolderFormOpen() {
				m.store.UI.ToggleFolderForm()
			}
			return m, status("the default folder cannot be edited", true)
		}
		m.editingFolderID = edit.ID
		*m.formName = edit.Name
		*m.formColor = edit.Color
	}

	var colorOpts []huh.Option[string]
	for _, c := range folderColors {
		colorOpts = append(colorOpts, huh.NewOption(c, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Folder name").
				Value(m.formName),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOpts...).
				Value(m.formColor),
		),
	).WithShowHelp(true)
	m.formKind = "folder"
	return m, m.form.Init()
}

func (m *tasksModel) submitFolderForm() tea.Cmd {
	name, err := store.ValidateFolderName(*m.formName, m.store.Folders.All(), m.editingFolderID)
	if err != nil {
		return status(err.Error(), true)
	}

	if m.editingFolderID != "" {
		m.store.Folders.Update(m.editingFolderID, store.FolderPatch{
			Name:  &name,
			Color: m.formColor,
		})
		return status(fmt.Sprintf("folder %q updated", name), false)
	}
	m.store.Folders.Add(name, *m.formColor)
	return status(fmt.Sprintf("folder %q created", name), false)
}

func (m tasksModel) showTagFilterForm() (tasksModel, tea.Cmd) {
	seen := map[string]bool{}
	var all []string
	for _, t := range m.store.Tasks.All() {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				all = append(all, tag)
			}
		}
	}
	if len(all) == 0 {
		return m, status("no tags to filter by yet", true)
	}
	sort.Strings(all)

	var opts []huh.Option[string]
	for _, tag := range all {
		opts = append(opts, huh.NewOption(tag, tag))
	}
	*m.formTagFilter = m.store.Tasks.SelectedTags()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Filter by tags").
				Options(opts...).
				Value(m.formTagFilter),
		),
	).WithShowHelp(true)
	m.formKind = "tags"
	return m, m.form.Init()
}

func (m tasksModel) showConfirmForm(t store.Task) (tasksModel, tea.Cmd) {
	m.store.UI.OpenDeleteConfirm(t)
	*m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", t.Title)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.formConfirm),
		),
	)
	m.formKind = "confirm"
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.cancelForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		kind := m.formKind
		m.form = nil
		m.formKind = ""
		switch kind {
		case "task":
			return m, m.submitTaskForm()
		case "folder":
			if m.store.UI.FolderFormOpen() {
				m.store.UI.ToggleFolderForm()
			}
			return m, m.submitFolderForm()
		case "tags":
			m.store.Tasks.SetSelectedTags(*m.formTagFilter)
			m.cursor = 0
			return m, nil
		case "confirm":
			target, ok := m.store.UI.DeleteTarget()
			m.store.UI.CloseDeleteConfirm()
			if ok && *m.formConfirm {
				m.store.Tasks.Delete(target.ID)
				m.clampCursors()
				return m, status(fmt.Sprintf("deleted %q", target.Title), false)
			}
			return m, nil
		}
	}
	if m.form.State == huh.StateAborted {
		m.cancelForm()
		return m, nil
	}
	return m, cmd
}

func (m *tasksModel) cancelForm() {
	switch m.formKind {
	case "task":
		m.store.UI.CloseTaskForm()
	case "folder":
		if m.store.UI.FolderFormOpen() {
			m.store.UI.ToggleFolderForm()
		}
	case "confirm":
		m.store.UI.CloseDeleteConfirm()
	}
	m.form = nil
	m.formKind = ""
}

func (m tasksModel) renderForm() string {
	if m.form == nil {
		return ""
	}
	header := map[string]string{
		"task":    "Task",
		"folder":  "Folder",
		"tags":    "Tag filter",
		"confirm": "Confirm",
	}[m.formKind]
	return activePanelStyle.Width(m.width - 4).Render(
		titleStyle.Render(header) + "\n\n" + m.form.View(),
	)
}
