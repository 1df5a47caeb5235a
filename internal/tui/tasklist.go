package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/edvall/taskdeck/internal/store"
)

const sidebarWidth = 26

// tasksModel is the main view: the filtered task list plus the folder
// sidebar. It owns no task data — every render pulls fresh projections from
// the store, and every key dispatches an intent.
type tasksModel struct {
	store  *store.Store
	width  int
	height int

	cursor       int
	sidebarFocus bool
	folderCursor int

	searching   bool
	searchInput textinput.Model

	form     *huh.Form
	formKind string // "task", "folder", "tags", "confirm"

	editingFolderID string

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
	formTags        *string
	formFolder      *string
	formName        *string
	formColor       *string
	formTagFilter   *[]string
	formConfirm     *bool
}

func newTasksModel(s *store.Store) tasksModel {
	ti := textinput.New()
	ti.Placeholder = "search title, description, tags"
	ti.CharLimit = 120
	ti.Width = 40

	title, desc, tags, folder := "", "", "", ""
	name, color := "", folderColors[0]
	var tagSel []string
	confirm := false

	return tasksModel{
		store:           s,
		searchInput:     ti,
		formTitle:       &title,
		formDescription: &desc,
		formTags:        &tags,
		formFolder:      &folder,
		formName:        &name,
		formColor:       &color,
		formTagFilter:   &tagSel,
		formConfirm:     &confirm,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// capturing reports whether this view is consuming raw key input.
func (m tasksModel) capturing() bool {
	return m.form != nil || m.searching
}

func (m tasksModel) visible() []store.Task {
	return m.store.Tasks.Visible()
}

func (m tasksModel) filterActive() bool {
	return m.store.Tasks.SearchTerm() != "" ||
		len(m.store.Tasks.SelectedTags()) > 0 ||
		m.store.Tasks.SelectedFolder() != ""
}

func (m *tasksModel) clampCursors() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	if n := len(m.store.Folders.All()); m.folderCursor >= n {
		m.folderCursor = max(0, n-1)
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.sidebarFocus {
			return m.updateSidebar(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	tasks := m.visible()

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.MoveUp):
		cmd := m.moveTask(-1)
		return m, cmd
	case key.Matches(msg, keys.MoveDown):
		cmd := m.moveTask(1)
		return m, cmd
	case key.Matches(msg, keys.New):
		return m.showTaskForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(tasks) > 0 {
			t := tasks[m.cursor]
			return m.showTaskForm(&t)
		}
	case key.Matches(msg, keys.Delete):
		if len(tasks) > 0 {
			return m.showConfirmForm(tasks[m.cursor])
		}
	case key.Matches(msg, keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.store.Tasks.SearchTerm())
		cmd := m.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, keys.TagFilter):
		return m.showTagFilterForm()
	case key.Matches(msg, keys.Sidebar):
		m.store.UI.ToggleSidebar()
		if !m.store.UI.SidebarOpen() {
			m.sidebarFocus = false
		}
	case key.Matches(msg, keys.Focus):
		if m.store.UI.SidebarOpen() {
			m.sidebarFocus = true
		}
	case key.Matches(msg, keys.Back):
		if m.filterActive() {
			m.store.Tasks.SetSearchTerm("")
			m.store.Tasks.SetSelectedTags(nil)
			m.store.Tasks.SetSelectedFolder("")
			m.searchInput.SetValue("")
			return m, status("filters cleared", false)
		}
	}
	return m, nil
}

// moveTask dispatches a reorder for the selected row. Reordering is only
// offered on the unfiltered list, where visual positions and collection
// indices coincide — that keeps the index precondition of Reorder honest.
func (m *tasksModel) moveTask(delta int) tea.Cmd {
	if m.filterActive() {
		return status("clear filters before reordering", true)
	}
	tasks := m.store.Tasks.All()
	target := m.cursor + delta
	if m.cursor < 0 || m.cursor >= len(tasks) || target < 0 || target >= len(tasks) {
		return nil
	}
	m.store.Tasks.Reorder(m.cursor, target)
	m.cursor = target
	return nil
}

func (m tasksModel) updateSidebar(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	folders := m.store.Folders.All()

	switch {
	case key.Matches(msg, keys.Up):
		if m.folderCursor > 0 {
			m.folderCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.folderCursor < len(folders)-1 {
			m.folderCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(folders) > 0 {
			f := folders[m.folderCursor]
			if f.ID == store.DefaultFolderID {
				m.store.Tasks.SetSelectedFolder("")
			} else {
				m.store.Tasks.SetSelectedFolder(f.ID)
			}
			m.cursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showFolderForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(folders) > 0 {
			f := folders[m.folderCursor]
			return m.showFolderForm(&f)
		}
	case key.Matches(msg, keys.Delete):
		if len(folders) > 0 {
			cmd := m.deleteFolder(folders[m.folderCursor])
			return m, cmd
		}
	case key.Matches(msg, keys.Focus), key.Matches(msg, keys.Back):
		m.sidebarFocus = false
	}
	return m, nil
}

func (m *tasksModel) deleteFolder(f store.Folder) tea.Cmd {
	if err := store.ValidateFolderDelete(f.ID); err != nil {
		return status(err.Error(), true)
	}
	m.store.Folders.Delete(f.ID)
	// Tasks keep their dangling folderId; only the active filter is reset.
	if m.store.Tasks.SelectedFolder() == f.ID {
		m.store.Tasks.SetSelectedFolder("")
	}
	m.clampCursors()
	return status(fmt.Sprintf("folder %q deleted", f.Name), false)
}

func (m tasksModel) updateSearch(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.store.Tasks.SetSearchTerm(strings.TrimSpace(m.searchInput.Value()))
			m.searching = false
			m.searchInput.Blur()
			m.cursor = 0
			return m, nil
		case "esc":
			m.searchInput.SetValue("")
			m.store.Tasks.SetSearchTerm("")
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// --- Rendering ---

func (m tasksModel) view() string {
	if m.form != nil {
		return m.renderForm()
	}

	list := m.renderList()
	if !m.store.UI.SidebarOpen() {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), list)
}

func (m tasksModel) renderList() string {
	w := m.width - 4
	if m.store.UI.SidebarOpen() {
		w -= sidebarWidth
	}

	style := panelStyle
	if !m.sidebarFocus {
		style = activePanelStyle
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))

	if chips := m.renderFilterChips(); chips != "" {
		rows = append(rows, chips)
	}
	if m.searching {
		rows = append(rows, "/"+m.searchInput.View())
	}
	rows = append(rows, "")

	tasks := m.visible()
	if len(tasks) == 0 {
		if m.filterActive() {
			rows = append(rows, mutedStyle.Render("No tasks match the current filters."))
		} else {
			rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add one."))
		}
		return style.Width(w).Render(strings.Join(rows, "\n"))
	}

	folders := folderIndex(m.store.Folders.All())
	for i, t := range tasks {
		cursor := "  "
		rowStyle := normalItemStyle
		if i == m.cursor && !m.sidebarFocus {
			cursor = "> "
			rowStyle = selectedItemStyle
		}

		line := cursor + rowStyle.Render(truncate(t.Title, w-30))
		// A dangling folderId renders no badge at all.
		if f, ok := folders[t.FolderID]; ok && t.FolderID != "" {
			line += " " + folderDot(f.Color) + mutedStyle.Render(" "+f.Name)
		}
		if len(t.Tags) > 0 {
			line += " " + tagStyle.Render("["+strings.Join(t.Tags, " ")+"]")
		}
		rows = append(rows, line)

		if i == m.cursor && !m.sidebarFocus && t.Description != "" {
			rows = append(rows, "    "+mutedStyle.Render(truncate(t.Description, w-8)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  K/J: move  /: search  t: tags  tab: folders"))

	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderFilterChips() string {
	var chips []string
	if term := m.store.Tasks.SearchTerm(); term != "" {
		chips = append(chips, fmt.Sprintf("search:%q", term))
	}
	if tags := m.store.Tasks.SelectedTags(); len(tags) > 0 {
		chips = append(chips, "tags:"+strings.Join(tags, ","))
	}
	if id := m.store.Tasks.SelectedFolder(); id != "" {
		name := id
		if f, ok := m.store.Folders.Get(id); ok {
			name = f.Name
		}
		chips = append(chips, "folder:"+name)
	}
	if len(chips) == 0 {
		return ""
	}
	return highlightStyle.Render(strings.Join(chips, "  ")) + mutedStyle.Render("  (esc clears)")
}

func (m tasksModel) renderSidebar() string {
	style := panelStyle
	if m.sidebarFocus {
		style = activePanelStyle
	}

	all := m.store.Tasks.All()
	selected := m.store.Tasks.SelectedFolder()

	var rows []string
	rows = append(rows, titleStyle.Render("Folders"))
	rows = append(rows, "")

	for i, f := range m.store.Folders.All() {
		count := 0
		if f.ID == store.DefaultFolderID {
			count = len(all)
		} else {
			for _, t := range all {
				if t.FolderID == f.ID {
					count++
				}
			}
		}

		cursor := "  "
		rowStyle := normalItemStyle
		if i == m.folderCursor && m.sidebarFocus {
			cursor = "> "
			rowStyle = selectedItemStyle
		}
		marker := " "
		if f.ID == selected || (f.ID == store.DefaultFolderID && selected == "") {
			marker = "•"
		}
		name := truncate(f.Name, sidebarWidth-12)
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s",
			cursor, marker, folderDot(f.Color), rowStyle.Render(name), mutedStyle.Render(fmt.Sprintf("(%d)", count))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  e: edit"))
	rows = append(rows, mutedStyle.Render("d: delete  enter: filter"))

	return style.Width(sidebarWidth - 2).Render(strings.Join(rows, "\n"))
}
