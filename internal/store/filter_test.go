package store

import "testing"

func filterFixture() []Task {
	return []Task{
		{ID: "1", Title: "Ship report", Description: "quarterly numbers", Tags: []string{"work", "urgent"}, FolderID: "F1", Order: 0},
		{ID: "2", Title: "Buy groceries", Description: "", Tags: []string{"home"}, FolderID: "F2", Order: 1},
		{ID: "3", Title: "Call dentist", Description: "reschedule", Tags: []string{}, FolderID: "", Order: 2},
		{ID: "4", Title: "Review PR", Description: "the big one", Tags: []string{"work"}, FolderID: "F1", Order: 3},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterNoCriteriaReturnsAllInOrder(t *testing.T) {
	got := Filter(filterFixture(), "", nil, "")
	if !equalSeq(ids(got), []string{"1", "2", "3", "4"}) {
		t.Fatalf("ids = %v", ids(got))
	}
}

func TestFilterSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	tasks := filterFixture()

	byTitle := Filter(tasks, "SHIP", nil, "")
	if !equalSeq(ids(byTitle), []string{"1"}) {
		t.Fatalf("title match: %v", ids(byTitle))
	}
	byDesc := Filter(tasks, "Reschedule", nil, "")
	if !equalSeq(ids(byDesc), []string{"3"}) {
		t.Fatalf("description match: %v", ids(byDesc))
	}
	byTag := Filter(tasks, "urg", nil, "")
	if !equalSeq(ids(byTag), []string{"1"}) {
		t.Fatalf("tag match: %v", ids(byTag))
	}
}

func TestFilterTagCriterionIsOr(t *testing.T) {
	// A task matches when it carries at least one selected tag.
	got := Filter(filterFixture(), "", []string{"urgent", "home"}, "")
	if !equalSeq(ids(got), []string{"1", "2"}) {
		t.Fatalf("ids = %v", ids(got))
	}
}

func TestFilterCriteriaAreAnded(t *testing.T) {
	tasks := filterFixture()

	// Tag OR matched and folder matched: included.
	got := Filter(tasks, "", []string{"urgent", "home"}, "F1")
	if !equalSeq(ids(got), []string{"1"}) {
		t.Fatalf("ids = %v", ids(got))
	}

	// Same tags but wrong folder: excluded regardless of tags.
	got = Filter(tasks, "", []string{"urgent", "home"}, "F2")
	if !equalSeq(ids(got), []string{"2"}) {
		t.Fatalf("ids = %v", ids(got))
	}
}

func TestFilterFolderMatchIsExact(t *testing.T) {
	got := Filter(filterFixture(), "", nil, "F1")
	if !equalSeq(ids(got), []string{"1", "4"}) {
		t.Fatalf("ids = %v", ids(got))
	}
}

func TestFilterSortsByOrderNotInsertion(t *testing.T) {
	tasks := []Task{
		{ID: "late", Title: "Z", Order: 2},
		{ID: "first", Title: "A", Order: 0},
		{ID: "mid", Title: "M", Order: 1},
	}
	got := Filter(tasks, "", nil, "")
	if !equalSeq(ids(got), []string{"first", "mid", "late"}) {
		t.Fatalf("ids = %v", ids(got))
	}
}

func TestVisibleUsesStoreCriteria(t *testing.T) {
	s := newTestStore(t)
	s.Tasks.Add("alpha", "", []string{"work"}, "")
	s.Tasks.Add("beta", "", []string{"home"}, "")

	s.Tasks.SetSelectedTags([]string{"home"})
	got := s.Tasks.Visible()
	if len(got) != 1 || got[0].Title != "beta" {
		t.Fatalf("visible = %v", titles(got))
	}

	s.Tasks.SetSelectedTags(nil)
	s.Tasks.SetSearchTerm("alp")
	got = s.Tasks.Visible()
	if len(got) != 1 || got[0].Title != "alpha" {
		t.Fatalf("visible = %v", titles(got))
	}
}
