package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// The stores assume valid input; these checks run in the collaborator layer
// before an intent is dispatched.
var (
	ErrEmptyTitle          = errors.New("task title is empty")
	ErrEmptyTag            = errors.New("tag is empty")
	ErrDuplicateTag        = errors.New("duplicate tag")
	ErrEmptyFolderName     = errors.New("folder name is empty")
	ErrDuplicateFolderName = errors.New("folder name already in use")
	ErrDefaultFolder       = errors.New("the default folder cannot be deleted")
)

// ValidateTitle returns the trimmed title, rejecting blank input.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

// ValidateTags trims each tag and rejects empty or duplicate entries. Tags
// are set-like within one task; duplicates compare exactly.
func ValidateTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			return nil, ErrEmptyTag
		}
		if slices.Contains(out, tag) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
		}
		out = append(out, tag)
	}
	return out, nil
}

// ValidateFolderName returns the trimmed name, enforcing case-insensitive
// uniqueness against existing. Pass the folder's own id in selfID when
// renaming so it doesn't collide with itself.
func ValidateFolderName(name string, existing []Folder, selfID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyFolderName
	}
	for _, f := range existing {
		if f.ID == selfID {
			continue
		}
		if strings.EqualFold(f.Name, trimmed) {
			return "", fmt.Errorf("%w: %q", ErrDuplicateFolderName, f.Name)
		}
	}
	return trimmed, nil
}

// ValidateFolderDelete rejects deleting the default folder. The store itself
// does not special-case it; the guard lives here with the other
// preconditions.
func ValidateFolderDelete(id string) error {
	if id == DefaultFolderID {
		return ErrDefaultFolder
	}
	return nil
}
