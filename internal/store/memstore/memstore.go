// Package memstore holds all items in process memory. Contents are
// discarded when the process exits.
package memstore

import (
	"strings"
	"sync"

	"todopix/internal/models"
	"todopix/internal/store"
)

// MemStore is an insertion-ordered, append-only item store. A single mutex
// guards the slice and the id counter so concurrent request goroutines
// cannot interleave appends or hand out duplicate ids.
type MemStore struct {
	mu     sync.Mutex
	items  []models.Item
	nextID int
}

// New returns an empty store. Ids start at 1.
func New() *MemStore {
	return &MemStore{nextID: 1}
}

func (s *MemStore) List() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *MemStore) Append(text string, image *string) (models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Item{}, store.ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.Item{
		ID:    s.nextID,
		Text:  text,
		Image: image,
	}
	s.nextID++
	s.items = append(s.items, item)
	return item, nil
}
