package entity

import (
	"context"

	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
)

// ListPage is one page of resolved entities
type ListPage[T State] struct {
	Items []T    `json:"items"`
	Next  string `json:"next,omitempty"`
}

// CollectionStore combines a Record per entity with a primary IndexSet to
// give list/create/delete semantics for one entity kind
type CollectionStore[T State] struct {
	backend kv.Backend
	kind    string
	initial T
	seed    []T
	logger  *observability.Logger
}

// NewCollectionStore creates a collection store for the given entity kind.
// seed entities are inserted by EnsureSeed when the collection is first
// observed empty; logger may be nil.
func NewCollectionStore[T State](backend kv.Backend, kind string, initial T, seed []T, logger *observability.Logger) *CollectionStore[T] {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &CollectionStore[T]{
		backend: backend,
		kind:    kind,
		initial: initial,
		seed:    seed,
		logger:  logger,
	}
}

// Record returns the record handle for one entity of this kind
func (c *CollectionStore[T]) Record(id string) *Record[T] {
	return NewRecord(c.backend, c.kind, id, c.initial)
}

// Index returns the collection's primary index
func (c *CollectionStore[T]) Index() *IndexSet {
	return NewIndexSet(c.backend, IndexKey(c.kind))
}

// Get resolves one entity by id, or ErrNotFound if no id-bearing state exists
func (c *CollectionStore[T]) Get(ctx context.Context, id string) (T, error) {
	state, err := c.Record(id).Read(ctx)
	if err != nil {
		return c.initial, err
	}
	if state.EntityID() == "" {
		return c.initial, ErrNotFound
	}
	return state, nil
}

// List pages the primary index and resolves each id. Ids whose record is
// empty (race with a concurrent delete) are filtered out, not surfaced as
// errors.
func (c *CollectionStore[T]) List(ctx context.Context, cursor string, limit int) (ListPage[T], error) {
	page, err := c.Index().Page(ctx, cursor, limit)
	if err != nil {
		return ListPage[T]{}, err
	}

	items := make([]T, 0, len(page.Items))
	for _, id := range page.Items {
		state, err := c.Record(id).Read(ctx)
		if err != nil {
			return ListPage[T]{}, err
		}
		if state.EntityID() == "" {
			continue
		}
		items = append(items, state)
	}
	return ListPage[T]{Items: items, Next: page.Next}, nil
}

// Validator lets an entity type declare its own required fields. Checked by
// Create before any write.
type Validator interface {
	Validate() error
}

// Create writes the record, then adds its id to the primary index. The index
// add is the publish step: a reader that sees the id is guaranteed to find a
// resolvable record.
func (c *CollectionStore[T]) Create(ctx context.Context, state T) error {
	id := state.EntityID()
	if id == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if v, ok := any(state).(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := c.Record(id).Write(ctx, state); err != nil {
		return err
	}
	return c.Index().Add(ctx, id)
}

// Delete removes the id from the primary index before erasing the record, so
// an index entry never outlives its record. Reports whether the record
// existed.
func (c *CollectionStore[T]) Delete(ctx context.Context, id string) (bool, error) {
	if err := c.Index().Remove(ctx, id); err != nil {
		return false, err
	}
	return c.Record(id).Erase(ctx)
}

// EnsureSeed creates the seed entities if the primary index has never been
// populated. Not safe against concurrent first-run races on a backend without
// compare-and-set; acceptable for an admin tool.
func (c *CollectionStore[T]) EnsureSeed(ctx context.Context) error {
	ids, err := c.Index().List(ctx)
	if err != nil {
		return err
	}
	if len(ids) > 0 || len(c.seed) == 0 {
		return nil
	}

	for _, state := range c.seed {
		if err := c.Create(ctx, state); err != nil {
			return err
		}
	}
	c.logger.WithField("kind", c.kind).Infof("seeded %d %s entities", len(c.seed), c.kind)
	return nil
}
