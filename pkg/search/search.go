package search

import (
	"context"
	"strings"

	"github.com/stratumcms/stratum/pkg/entity"
	"github.com/stratumcms/stratum/pkg/kv"
)

const (
	// Kind is the entity kind search records are stored under
	Kind = "cms-search"

	// IndexName is the storage key of the global search index
	IndexName = "search-index"

	// DefaultResultLimit caps search results when no limit is configured
	DefaultResultLimit = 10
)

// Record is the derived, flattened text projection of one content item
type Record struct {
	ID      string `json:"id"`
	TypeID  string `json:"typeId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EntityID implements entity.State
func (r Record) EntityID() string {
	return r.ID
}

// RecordFor returns the record handle for one search record
func RecordFor(backend kv.Backend, id string) *entity.Record[Record] {
	return entity.NewRecord(backend, Kind, id, Record{})
}

// Index returns the global search index
func Index(backend kv.Backend) *entity.IndexSet {
	return entity.NewIndexSet(backend, IndexName)
}

// Service answers substring queries over the search projection
type Service struct {
	backend kv.Backend
	limit   int
}

// NewService creates a search service. limit caps the number of results; a
// non-positive limit uses DefaultResultLimit.
func NewService(backend kv.Backend, limit int) *Service {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return &Service{backend: backend, limit: limit}
}

// Search returns the first matching records in index order. Matching is a
// case-insensitive substring test against title and content; an empty query
// matches nothing.
func (s *Service) Search(ctx context.Context, query string) ([]Record, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Record{}, nil
	}

	ids, err := Index(s.backend).List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Record, 0, s.limit)
	for _, id := range ids {
		record, err := RecordFor(s.backend, id).Read(ctx)
		if err != nil {
			return nil, err
		}
		if record.ID == "" {
			// Race with a concurrent delete; skip like any empty record.
			continue
		}
		if strings.Contains(strings.ToLower(record.Title), q) || strings.Contains(record.Content, q) {
			results = append(results, record)
		}
		if len(results) >= s.limit {
			break
		}
	}
	return results, nil
}
