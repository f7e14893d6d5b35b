package store

import (
	"errors"

	"todopix/internal/models"
)

// ErrEmptyText is returned when an item's text is blank after trimming.
var ErrEmptyText = errors.New("text required")

// Store defines the interface for item storage. Items are append-only and
// live for the lifetime of the store: there is no update or delete.
type Store interface {
	// List returns all items in insertion order. It never returns nil;
	// an empty store yields an empty slice.
	List() []models.Item

	// Append trims text, assigns the next id and adds the item to the end
	// of the sequence. It returns ErrEmptyText (and changes nothing) when
	// the trimmed text is empty.
	Append(text string, image *string) (models.Item, error)
}
