package entity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stratumcms/stratum/pkg/kv"
)

// DefaultPageLimit is used when Page is called with a non-positive limit
const DefaultPageLimit = 20

// IndexKey returns the primary index key for an entity kind
func IndexKey(kind string) string {
	return kind + "-index"
}

// Page is one page of ids from an IndexSet. Next is the opaque cursor for
// the following page, empty when the end of the set was reached.
type Page struct {
	Items []string `json:"items"`
	Next  string   `json:"next,omitempty"`
}

// IndexSet is an ordered, de-duplicated set of ids persisted as a JSON array
// under one storage key. Order is insertion order.
type IndexSet struct {
	backend kv.Backend
	key     string
}

// NewIndexSet creates an index set handle for the given storage key
func NewIndexSet(backend kv.Backend, key string) *IndexSet {
	return &IndexSet{backend: backend, key: key}
}

// Key returns the storage key the index lives under
func (s *IndexSet) Key() string {
	return s.key
}

func (s *IndexSet) load(ctx context.Context) ([]string, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, storageErr("get", s.key, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, storageErr("decode", s.key, err)
	}
	return ids, nil
}

func (s *IndexSet) store(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return storageErr("encode", s.key, err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return storageErr("put", s.key, err)
	}
	return nil
}

// Add appends id to the set. Adding a present id is a no-op.
func (s *IndexSet) Add(ctx context.Context, id string) error {
	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.store(ctx, append(ids, id))
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *IndexSet) Remove(ctx context.Context, id string) error {
	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return s.store(ctx, kept)
}

// List returns every id in insertion order. Full materialization; bounded
// use only.
func (s *IndexSet) List(ctx context.Context) ([]string, error) {
	return s.load(ctx)
}

// Page returns up to limit ids starting after cursor. An empty cursor starts
// from the beginning. Cursors are positions, not snapshots: a remove during
// iteration may skip or re-show at most one neighboring element, and no
// cursor survives a full index rewrite.
func (s *IndexSet) Page(ctx context.Context, cursor string, limit int) (Page, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	ids, err := s.load(ctx)
	if err != nil {
		return Page{}, err
	}

	start := 0
	if cursor != "" {
		lastID, offset, err := decodeCursor(cursor)
		if err != nil {
			return Page{}, err
		}
		start = offset
		for i, id := range ids {
			if id == lastID {
				start = i + 1
				break
			}
		}
		if start > len(ids) {
			start = len(ids)
		}
	}

	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}

	page := Page{Items: ids[start:end]}
	if end < len(ids) && end > start {
		page.Next = encodeCursor(ids[end-1], end)
	}
	return page, nil
}

// The cursor carries the last id returned plus its ordinal successor; the id
// anchors resumption and the ordinal is the fallback when that id has been
// removed in the meantime.
func encodeCursor(lastID string, offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastID + "\n" + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (lastID string, offset int, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", 0, fmt.Errorf("invalid cursor: %w", err)
	}
	id, ord, ok := strings.Cut(string(raw), "\n")
	if !ok {
		return "", 0, fmt.Errorf("invalid cursor")
	}
	offset, err = strconv.Atoi(ord)
	if err != nil || offset < 0 {
		return "", 0, fmt.Errorf("invalid cursor")
	}
	return id, offset, nil
}
