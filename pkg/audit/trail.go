package audit

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stratumcms/stratum/pkg/entity"
	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
)

const (
	// Kind is the entity kind audit entries are stored under
	Kind = "audit"

	subjectKeyPrefix = "audit-subject:"
)

// SubjectIndexKey returns the per-subject index key for an item id
func SubjectIndexKey(itemID string) string {
	return subjectKeyPrefix + itemID
}

// Trail is the append-only audit log over the key-value backend
type Trail struct {
	backend kv.Backend
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewTrail creates an audit trail. logger and metrics may be nil.
func NewTrail(backend kv.Backend, logger *observability.Logger, metrics *observability.Metrics) *Trail {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Trail{backend: backend, logger: logger, metrics: metrics}
}

func (t *Trail) record(id string) *entity.Record[Entry] {
	return entity.NewRecord(t.backend, Kind, id, Entry{})
}

// Index returns the global audit index
func (t *Trail) Index() *entity.IndexSet {
	return entity.NewIndexSet(t.backend, entity.IndexKey(Kind))
}

// SubjectIndex returns the per-subject audit index for an item id
func (t *Trail) SubjectIndex(itemID string) *entity.IndexSet {
	return entity.NewIndexSet(t.backend, SubjectIndexKey(itemID))
}

// Append assigns the entry a new unique id, writes its record, and adds the
// id to the global and per-subject indexes. The caller's id, if any, is
// ignored. A zero timestamp is filled with the current time.
func (t *Trail) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ItemID == "" {
		return Entry{}, &entity.ValidationError{Field: "itemId", Reason: "must not be empty"}
	}

	e.ID = uuid.NewString()
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	if err := t.record(e.ID).Write(ctx, e); err != nil {
		return Entry{}, err
	}
	if err := t.Index().Add(ctx, e.ID); err != nil {
		return Entry{}, err
	}
	if err := t.SubjectIndex(e.ItemID).Add(ctx, e.ID); err != nil {
		return Entry{}, err
	}

	if t.metrics != nil {
		t.metrics.AuditEntriesTotal.Inc()
	}
	t.logger.WithFields(map[string]interface{}{
		"entry_id": e.ID,
		"item_id":  e.ItemID,
		"action":   string(e.Action),
	}).Debug("audit entry appended")
	return e, nil
}

// ListBySubject returns every entry for the item, ordered by descending
// timestamp. Equal timestamps keep id-generation order, so the result is
// deterministic.
func (t *Trail) ListBySubject(ctx context.Context, itemID string) ([]Entry, error) {
	ids, err := t.SubjectIndex(itemID).List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, err := t.record(id).Read(ctx)
		if err != nil {
			return nil, err
		}
		if e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}
