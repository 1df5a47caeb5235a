package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/edvall/taskdeck/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	return store.New(st)
}

// ============================================================
// Tasks model
// ============================================================

func TestMoveTaskReorders(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("A", "", nil, "")
	s.Tasks.Add("B", "", nil, "")
	s.Tasks.Add("C", "", nil, "")

	m := newTasksModel(s)
	m.cursor = 0

	if cmd := m.moveTask(1); cmd != nil {
		t.Fatal("unfiltered move should not emit a status")
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the task, got %d", m.cursor)
	}

	got := s.Tasks.All()
	if got[0].Title != "B" || got[1].Title != "A" || got[2].Title != "C" {
		t.Fatalf("unexpected order: %q %q %q", got[0].Title, got[1].Title, got[2].Title)
	}
	for i, task := range got {
		if task.Order != i {
			t.Fatalf("order field not dense at %d", i)
		}
	}
}

func TestMoveTaskRefusedWhileFiltered(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("A", "", nil, "")
	s.Tasks.Add("B", "", nil, "")
	s.Tasks.SetSearchTerm("a")

	m := newTasksModel(s)
	m.cursor = 0

	cmd := m.moveTask(1)
	if cmd == nil {
		t.Fatal("filtered move should emit a status")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
	if got := s.Tasks.All(); got[0].Title != "A" {
		t.Fatal("filtered move should not reorder")
	}
}

func TestMoveTaskOutOfRangeIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("A", "", nil, "")

	m := newTasksModel(s)
	m.cursor = 0

	if cmd := m.moveTask(1); cmd != nil {
		t.Fatal("move past the end should be silent")
	}
	if m.cursor != 0 {
		t.Fatal("cursor should not move")
	}
}

func TestFilterActive(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	if m.filterActive() {
		t.Fatal("no criteria set")
	}
	s.Tasks.SetSearchTerm("x")
	if !m.filterActive() {
		t.Fatal("search term should activate the filter")
	}
	s.Tasks.SetSearchTerm("")
	s.Tasks.SetSelectedTags([]string{"urgent"})
	if !m.filterActive() {
		t.Fatal("tag selection should activate the filter")
	}
	s.Tasks.SetSelectedTags(nil)
	s.Tasks.SetSelectedFolder("f1")
	if !m.filterActive() {
		t.Fatal("folder selection should activate the filter")
	}
}

func TestClampCursors(t *testing.T) {
	s := newTestStore(t)
	a := s.Tasks.Add("A", "", nil, "")
	s.Tasks.Add("B", "", nil, "")

	m := newTasksModel(s)
	m.cursor = 1

	s.Tasks.Delete(a.ID)
	s.Tasks.Delete(s.Tasks.All()[0].ID)
	m.clampCursors()
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestDeleteFolderGuardsDefault(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	def, _ := s.Folders.Get(store.DefaultFolderID)
	cmd := m.deleteFolder(def)
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatal("deleting the default folder should be rejected")
	}
	if _, ok := s.Folders.Get(store.DefaultFolderID); !ok {
		t.Fatal("default folder should survive")
	}
}

func TestDeleteFolderClearsActiveFilter(t *testing.T) {
	s := newTestStore(t)
	f := s.Folders.Add("Work", "#123456")
	s.Tasks.Add("A", "", nil, f.ID)
	s.Tasks.SetSelectedFolder(f.ID)

	m := newTasksModel(s)
	m.deleteFolder(f)

	if s.Tasks.SelectedFolder() != "" {
		t.Fatal("filter on the deleted folder should reset")
	}
	// The task keeps its now-dangling folderId.
	if got := s.Tasks.All(); len(got) != 1 || got[0].FolderID != f.ID {
		t.Fatal("tasks should keep their folderId after folder deletion")
	}
}

// ============================================================
// Forms
// ============================================================

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b", []string{"a", "b"}},
		{" a ,, b, ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitTags(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("splitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestShowTaskFormOpensUIState(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)

	m, _ = m.showTaskForm(nil)
	if m.form == nil || m.formKind != "task" {
		t.Fatal("task form should be active")
	}
	if !s.UI.TaskFormOpen() {
		t.Fatal("intent state should record the open form")
	}
	if _, editing := s.UI.EditingTask(); editing {
		t.Fatal("a fresh form should not be in edit mode")
	}

	m.cancelForm()
	if m.form != nil || s.UI.TaskFormOpen() {
		t.Fatal("cancel should close form and intent state")
	}
}

func TestShowTaskFormPrefillsForEdit(t *testing.T) {
	s := newTestStore(t)
	task := s.Tasks.Add("Write docs", "for the readme", []string{"docs", "low"}, "")

	m := newTasksModel(s)
	m, _ = m.showTaskForm(&task)

	if *m.formTitle != "Write docs" {
		t.Fatalf("title not prefilled: %q", *m.formTitle)
	}
	if *m.formTags != "docs, low" {
		t.Fatalf("tags not prefilled: %q", *m.formTags)
	}
	editing, ok := s.UI.EditingTask()
	if !ok || editing.ID != task.ID {
		t.Fatal("intent state should carry the task being edited")
	}
}

func TestSubmitTaskFormAdds(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m, _ = m.showTaskForm(nil)

	*m.formTitle = "  New task  "
	*m.formTags = "a, b"
	*m.formFolder = ""
	m.form = nil
	m.formKind = ""

	cmd := m.submitTaskForm()
	if msg := cmd().(statusMsg); msg.isError {
		t.Fatalf("unexpected rejection: %s", msg.text)
	}

	got := s.Tasks.All()
	if len(got) != 1 || got[0].Title != "New task" {
		t.Fatalf("task not added: %#v", got)
	}
	if s.UI.TaskFormOpen() {
		t.Fatal("submit should close the form intent")
	}
}

func TestSubmitTaskFormRejectsBlankTitle(t *testing.T) {
	s := newTestStore(t)
	m := newTasksModel(s)
	m, _ = m.showTaskForm(nil)

	*m.formTitle = "   "
	cmd := m.submitTaskForm()
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("blank title should be rejected")
	}
	if s.Tasks.Len() != 0 {
		t.Fatal("nothing should be added")
	}
}

func TestSubmitTaskFormEdits(t *testing.T) {
	s := newTestStore(t)
	task := s.Tasks.Add("Old", "", nil, "")

	m := newTasksModel(s)
	m, _ = m.showTaskForm(&task)
	*m.formTitle = "Renamed"

	cmd := m.submitTaskForm()
	if msg := cmd().(statusMsg); msg.isError {
		t.Fatalf("unexpected rejection: %s", msg.text)
	}

	got, _ := s.Tasks.Get(task.ID)
	if got.Title != "Renamed" {
		t.Fatalf("title not updated: %q", got.Title)
	}
	if got.Order != task.Order {
		t.Fatal("edit should not change position")
	}
}

func TestSubmitFolderFormRejectsDuplicate(t *testing.T) {
	s := newTestStore(t)
	s.Folders.Add("Work", "#123456")

	m := newTasksModel(s)
	m, _ = m.showFolderForm(nil)
	*m.formName = "work"

	cmd := m.submitFolderForm()
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("case-insensitive duplicate should be rejected")
	}
}

func TestShowFolderFormRefusesDefault(t *testing.T) {
	s := newTestStore(t)
	def, _ := s.Folders.Get(store.DefaultFolderID)

	m := newTasksModel(s)
	m, cmd := m.showFolderForm(&def)
	if m.form != nil {
		t.Fatal("no form should open for the default folder")
	}
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("expected error status")
	}
	if s.UI.FolderFormOpen() {
		t.Fatal("intent state should be rolled back")
	}
}

func TestShowConfirmFormSetsDeleteTarget(t *testing.T) {
	s := newTestStore(t)
	task := s.Tasks.Add("Doomed", "", nil, "")

	m := newTasksModel(s)
	m, _ = m.showConfirmForm(task)

	target, ok := s.UI.DeleteTarget()
	if !ok || target.ID != task.ID {
		t.Fatal("delete target not recorded")
	}

	m.cancelForm()
	if _, ok := s.UI.DeleteTarget(); ok {
		t.Fatal("cancel should clear the delete target")
	}
	if s.Tasks.Len() != 1 {
		t.Fatal("cancel should not delete")
	}
}

func TestShowTagFilterFormWithoutTags(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("A", "", nil, "")

	m := newTasksModel(s)
	m, cmd := m.showTagFilterForm()
	if m.form != nil {
		t.Fatal("no form without tags")
	}
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("expected error status")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 2 {
		t.Fatalf("expected 2 view names, got %d", len(viewNames))
	}
	expected := []string{"Tasks", "Stats"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewTasks != 0 || viewStats != 1 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, nil, "")

	if app.activeView != viewTasks {
		t.Fatal("default view should be tasks")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, nil, "")
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("A", "", []string{"x"}, "")
	app := NewApp(s, nil, "")
	app.width = 120
	app.height = 40
	app.tasks.setSize(120, 36)
	app.stats.setSize(120, 36)
	app.stats.refresh()

	for _, v := range []viewState{viewTasks, viewStats} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, nil, "")
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, nil, "")
	app.width = 120
	app.height = 40
	app.status = "test status"

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain the status message")
	}
}

func TestAppSyncMessageReplacesWithoutPersisting(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("Local", "", nil, "")

	app := NewApp(s, nil, "")
	snapshot := []store.Task{
		{ID: "x", Title: "External", Order: 0, Tags: []string{}},
	}
	model, _ := app.Update(tasksSyncedMsg{tasks: snapshot})
	app = model.(App)

	got := s.Tasks.All()
	if len(got) != 1 || got[0].Title != "External" {
		t.Fatalf("snapshot not applied: %#v", got)
	}

	// The on-disk slot still holds the pre-sync write.
	onDisk, err := s.Storage().ReadTasks()
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if len(onDisk) != 1 || onDisk[0].Title != "Local" {
		t.Fatal("applying a snapshot must not write it back")
	}
}

func TestWaitForSyncNilListener(t *testing.T) {
	if waitForSync(nil) != nil {
		t.Fatal("nil listener should produce no command")
	}
}

func TestAppExportPickerCancel(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, nil, "")
	app.exportPicking = true

	model, _ := app.updateExportPicker(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"overflowing", 6, "overf…"},
		{"x", 0, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestFolderIndex(t *testing.T) {
	folders := []store.Folder{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}
	idx := folderIndex(folders)
	if len(idx) != 2 || idx["a"].Name != "Alpha" || idx["b"].Name != "Beta" {
		t.Fatalf("unexpected index: %#v", idx)
	}
}

func TestStatusCmd(t *testing.T) {
	msg, ok := status("hello", true)().(statusMsg)
	if !ok || msg.text != "hello" || !msg.isError {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
