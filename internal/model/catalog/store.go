package catalog

import "sort"

// Store exposes catalog lookups for the recommendation tool.
type Store interface {
	Categories() []string
	Find(category string) ([]Course, bool)
}

// MemoryStore implements Store with an in-memory map, suitable for the
// mocked provider data.
type MemoryStore struct {
	courses map[string][]Course
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied catalog.
func NewMemoryStore(courses map[string][]Course) *MemoryStore {
	copied := make(map[string][]Course, len(courses))
	for category, items := range courses {
		copied[category] = append([]Course(nil), items...)
	}
	return &MemoryStore{courses: copied}
}

// Categories returns the known category keys in stable order.
func (s *MemoryStore) Categories() []string {
	keys := make([]string, 0, len(s.courses))
	for category := range s.courses {
		keys = append(keys, category)
	}
	sort.Strings(keys)
	return keys
}

// Find looks up the courses for a category.
func (s *MemoryStore) Find(category string) ([]Course, bool) {
	items, ok := s.courses[category]
	if !ok {
		return nil, false
	}
	return append([]Course(nil), items...), true
}
