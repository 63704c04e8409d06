package cms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stratumcms/stratum/pkg/entity"
	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
	"github.com/stratumcms/stratum/pkg/search"
)

var itemTracer = otel.Tracer("stratum/cms/items")

// TypeItemsKey returns the per-type index key for a content type id
func TypeItemsKey(typeID string) string {
	return "type-items:" + typeID
}

// ContentItemStore keeps a content item's record, its global and per-type
// index membership, and its derived search projection mutually consistent.
type ContentItemStore struct {
	backend kv.Backend
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewContentItemStore creates the content item store. logger and metrics may
// be nil.
func NewContentItemStore(backend kv.Backend, logger *observability.Logger, metrics *observability.Metrics) *ContentItemStore {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &ContentItemStore{backend: backend, logger: logger, metrics: metrics}
}

// Record returns the record handle for one content item
func (s *ContentItemStore) Record(id string) *entity.Record[ContentItem] {
	return entity.NewRecord(s.backend, KindContentItem, id, ContentItem{})
}

// Index returns the global content item index
func (s *ContentItemStore) Index() *entity.IndexSet {
	return entity.NewIndexSet(s.backend, entity.IndexKey(KindContentItem))
}

// TypeIndex returns the per-type item index for a content type id
func (s *ContentItemStore) TypeIndex(typeID string) *entity.IndexSet {
	return entity.NewIndexSet(s.backend, TypeItemsKey(typeID))
}

// Get resolves one content item, or entity.ErrNotFound
func (s *ContentItemStore) Get(ctx context.Context, id string) (ContentItem, error) {
	item, err := s.Record(id).Read(ctx)
	if err != nil {
		return ContentItem{}, err
	}
	if item.ID == "" {
		return ContentItem{}, entity.ErrNotFound
	}
	return item, nil
}

// Upsert creates or replaces a content item. A missing id means create and
// gets a fresh uuid; a missing status defaults to draft. The item record is
// written first so any index-visible id resolves; the two index adds and the
// search projection are secondary effects, and if any of them fails the item
// is still returned together with a *PartialIndexError.
func (s *ContentItemStore) Upsert(ctx context.Context, item ContentItem) (ContentItem, error) {
	ctx, span := itemTracer.Start(ctx, "ContentItemStore.Upsert",
		trace.WithAttributes(attribute.String("item.type_id", item.TypeID)))
	defer span.End()

	if item.TypeID == "" {
		return ContentItem{}, &entity.ValidationError{Field: "typeId", Reason: "must not be empty"}
	}

	now := time.Now().UnixMilli()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = StatusDraft
	}
	if item.Data == nil {
		item.Data = map[string]interface{}{}
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	span.SetAttributes(attribute.String("item.id", item.ID))

	if err := s.Record(item.ID).Write(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "record write failed")
		return ContentItem{}, err
	}

	var failed []string
	var firstErr error
	secondary := func(artifact string, err error) {
		if err != nil {
			failed = append(failed, artifact)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	secondary("item-index", s.Index().Add(ctx, item.ID))
	secondary("type-index", s.TypeIndex(item.TypeID).Add(ctx, item.ID))

	projection := search.Record{
		ID:      item.ID,
		TypeID:  item.TypeID,
		Title:   search.Title(item.Data),
		Content: search.Flatten(item.Data),
	}
	secondary("search-record", search.RecordFor(s.backend, item.ID).Write(ctx, projection))
	secondary("search-index", search.Index(s.backend).Add(ctx, item.ID))

	if s.metrics != nil {
		s.metrics.ContentItemsWritten.Inc()
	}

	if firstErr != nil {
		if s.metrics != nil {
			s.metrics.PartialIndexFailures.Inc()
		}
		s.logger.WithError(firstErr).WithFields(map[string]interface{}{
			"item_id":   item.ID,
			"artifacts": failed,
		}).Warn("content item written with partial index failure")
		span.RecordError(firstErr)
		span.SetStatus(codes.Error, "secondary writes failed")
		return item, &PartialIndexError{ItemID: item.ID, Artifacts: failed, Err: firstErr}
	}
	return item, nil
}

// ListByType pages the per-type index and resolves each item. Ids whose
// record is empty (race with a concurrent delete) are filtered out.
func (s *ContentItemStore) ListByType(ctx context.Context, typeID, cursor string, limit int) (entity.ListPage[ContentItem], error) {
	page, err := s.TypeIndex(typeID).Page(ctx, cursor, limit)
	if err != nil {
		return entity.ListPage[ContentItem]{}, err
	}

	items := make([]ContentItem, 0, len(page.Items))
	for _, id := range page.Items {
		item, err := s.Record(id).Read(ctx)
		if err != nil {
			return entity.ListPage[ContentItem]{}, err
		}
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}
	return entity.ListPage[ContentItem]{Items: items, Next: page.Next}, nil
}

// Delete removes the item and every dependent artifact. Index removals and
// the search record erase happen before the item record erase, so no index
// entry outlives its record. Reports whether the item existed.
func (s *ContentItemStore) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := itemTracer.Start(ctx, "ContentItemStore.Delete",
		trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	item, err := s.Record(id).Read(ctx)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	if item.ID == "" {
		return false, nil
	}

	if err := s.TypeIndex(item.TypeID).Remove(ctx, id); err != nil {
		span.RecordError(err)
		return false, err
	}
	if err := s.Index().Remove(ctx, id); err != nil {
		span.RecordError(err)
		return false, err
	}
	if err := search.Index(s.backend).Remove(ctx, id); err != nil {
		span.RecordError(err)
		return false, err
	}
	if _, err := search.RecordFor(s.backend, id).Erase(ctx); err != nil {
		span.RecordError(err)
		return false, err
	}
	if _, err := s.Record(id).Erase(ctx); err != nil {
		span.RecordError(err)
		return false, err
	}

	if s.metrics != nil {
		s.metrics.ContentItemsDeleted.Inc()
	}
	return true, nil
}
