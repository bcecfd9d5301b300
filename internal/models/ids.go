package models

import "github.com/google/uuid"

// NewID returns a fresh identifier for documents and embedded entries.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an identifier issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// removeByID drops the first element whose id matches, preserving the order of the rest.
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i, item := range items {
		if idOf(item) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}
