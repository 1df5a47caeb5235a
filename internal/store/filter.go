package store

import (
	"sort"
	"strings"
)

// Filter is the pure read-side projection: the subsequence of tasks matching
// all three criteria, ascending by Order.
//
//   - searchTerm, if non-empty: case-insensitive substring match against
//     title, description, or any tag.
//   - selectedTags, if non-empty: the task carries at least one of them (OR,
//     not AND).
//   - selectedFolder, if non-empty: the task's folderId equals it exactly.
func Filter(tasks []Task, searchTerm string, selectedTags []string, selectedFolder string) []Task {
	term := strings.ToLower(searchTerm)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if searchTerm != "" && !matchesSearch(t, term) {
			continue
		}
		if len(selectedTags) > 0 && !hasAnyTag(t, selectedTags) {
			continue
		}
		if selectedFolder != "" && t.FolderID != selectedFolder {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func matchesSearch(t Task, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), lowerTerm) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

func hasAnyTag(t Task, selected []string) bool {
	for _, tag := range t.Tags {
		for _, s := range selected {
			if tag == s {
				return true
			}
		}
	}
	return false
}
