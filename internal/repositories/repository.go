package repositories

import (
	"context"
	"errors"

	"katalog/internal/models"
)

// ErrItemNotFound is returned by lookups and deletes for ids that are
// not in the store.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository is the keyed persistence abstraction for items. It only
// covers storage and point lookups; filtering, ordering and pagination
// belong to the service layer, so All returns items in whatever order
// the backend keeps them.
type ItemRepository interface {
	// Put inserts or overwrites the item under its ID.
	Put(ctx context.Context, item *models.Item) error

	// Get returns the item stored under id, or ErrItemNotFound.
	Get(ctx context.Context, id string) (*models.Item, error)

	// Delete removes the item stored under id. It checks existence
	// first and returns ErrItemNotFound when the id is absent, so
	// callers can tell a removal from a no-op.
	Delete(ctx context.Context, id string) error

	// All returns every stored item.
	All(ctx context.Context) ([]*models.Item, error)
}
