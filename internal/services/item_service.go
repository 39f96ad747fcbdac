package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// NotFoundError is returned by every by-id operation whose target id is
// absent from the store. It carries the id so callers can report which
// resource was missing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item with id %q not found", e.ID)
}

// EventPublisher notifies interested parties about item lifecycle
// changes. Publishing is fire-and-forget on the write path; failures
// are logged and never fail the request.
type EventPublisher interface {
	PublishItemEvent(event string, payload map[string]interface{}) error
}

// ItemService applies the business rules on top of an ItemRepository:
// creation, partial-update merging, and read-side filtering, ordering,
// pagination and counting.
//
// Update and Delete read the current record before writing. There is no
// version check, so a delete racing the read-then-write window of an
// update can be undone by the update's final Put. That weaker model is
// intentional; callers needing stronger guarantees must serialize their
// own writes.
type ItemService struct {
	repo   repositories.ItemRepository
	events EventPublisher
}

// NewItemService wires the service to its repository. events may be nil
// when lifecycle events are disabled.
func NewItemService(repo repositories.ItemRepository, events EventPublisher) *ItemService {
	return &ItemService{repo: repo, events: events}
}

// Create validates the payload, assigns a fresh id and timestamps, and
// persists the item.
func (s *ItemService) Create(ctx context.Context, payload models.ItemCreate) (*models.Item, error) {
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	available := true
	if payload.IsAvailable != nil {
		available = *payload.IsAvailable
	}

	now := time.Now().UTC()
	item := &models.Item{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		IsAvailable: available,
		Metadata:    payload.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("item created: id=%s name=%q", item.ID, item.Name)
	s.publish("item.created", item)
	return item, nil
}

// Get returns the item stored under id.
func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if errors.Is(err, repositories.ErrItemNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns items sorted newest-first, optionally restricted to
// available ones, with skip/limit pagination applied afterwards. A skip
// past the end of the result yields an empty slice. Range checks on
// skip and limit belong to the API boundary.
func (s *ItemService) List(ctx context.Context, skip, limit int, availableOnly bool) ([]*models.Item, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	if availableOnly {
		filtered := items[:0]
		for _, item := range items {
			if item.IsAvailable {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	// Stable sort keyed on CreatedAt alone keeps equal-timestamp
	// neighbours in a deterministic relative order within one call.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if skip >= len(items) {
		return []*models.Item{}, nil
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// Update fetches the item, applies only the fields carried by the
// payload, bumps updated_at and persists the result.
func (s *ItemService) Update(ctx context.Context, id string, payload models.ItemUpdate) (*models.Item, error) {
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Set {
		item.Name = payload.Name.Value
	}
	if payload.Description.Set {
		if payload.Description.Valid {
			d := payload.Description.Value
			item.Description = &d
		} else {
			item.Description = nil
		}
	}
	if payload.Price.Set {
		item.Price = payload.Price.Value
	}
	if payload.IsAvailable.Set {
		item.IsAvailable = payload.IsAvailable.Value
	}
	if payload.Metadata.Set {
		if payload.Metadata.Valid {
			item.Metadata = payload.Metadata.Value
		} else {
			item.Metadata = models.Metadata{}
		}
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}

	log.Printf("item updated: id=%s", item.ID)
	s.publish("item.updated", item)
	return item, nil
}

// Delete removes the item stored under id. The item is fetched first so
// absent ids produce a NotFoundError naming the id.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return &NotFoundError{ID: id}
		}
		return err
	}

	log.Printf("item deleted: id=%s", item.ID)
	s.publish("item.deleted", item)
	return nil
}

// Count returns the number of stored items, optionally restricted to
// available ones. It iterates the full collection rather than reusing a
// capped List page.
func (s *ItemService) Count(ctx context.Context, availableOnly bool) (int, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	if !availableOnly {
		return len(items), nil
	}
	count := 0
	for _, item := range items {
		if item.IsAvailable {
			count++
		}
	}
	return count, nil
}

func (s *ItemService) publish(event string, item *models.Item) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":           item.ID,
		"name":         item.Name,
		"price":        item.Price,
		"is_available": item.IsAvailable,
	}
	if err := s.events.PublishItemEvent(event, payload); err != nil {
		log.Printf("failed to publish %s event for item %s: %v", event, item.ID, err)
	}
}
