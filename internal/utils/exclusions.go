package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ExclusionList is the set of award category fragments whose nominations never enter the store.
// A category is excluded when any fragment appears in its label, ignoring case and spacing.
type ExclusionList struct {
	fragments []string
}

// NewExclusionList builds an exclusion list from in-memory category fragments
func NewExclusionList(fragments ...string) *ExclusionList {
	list := &ExclusionList{}
	for _, fragment := range fragments {
		list.add(fragment)
	}
	return list
}

// LoadExclusionList reads category fragments from path, one per line.
// Lines starting with # are comments. A missing file excludes no categories.
func LoadExclusionList(path string) (*ExclusionList, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewExclusionList(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open excluded categories file: %w", err)
	}
	defer file.Close()

	list := NewExclusionList()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		list.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read excluded categories file %s: %w", path, err)
	}

	return list, nil
}

func (e *ExclusionList) add(fragment string) {
	if fragment = foldCategory(fragment); fragment != "" {
		e.fragments = append(e.fragments, fragment)
	}
}

// IsExcluded reports whether the category label matches a fragment, and which one
func (e *ExclusionList) IsExcluded(category string) (bool, string) {
	if e == nil {
		return false, ""
	}
	label := foldCategory(category)
	if label == "" {
		return false, ""
	}
	for _, fragment := range e.fragments {
		if strings.Contains(label, fragment) {
			return true, fragment
		}
	}
	return false, ""
}

// Len returns the number of category fragments
func (e *ExclusionList) Len() int {
	if e == nil {
		return 0
	}
	return len(e.fragments)
}

// foldCategory lowercases a category label and collapses runs of whitespace,
// so "Honorary  Award" and "honorary award" compare equal
func foldCategory(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
