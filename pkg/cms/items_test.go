package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratumcms/stratum/pkg/entity"
	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/search"
)

func newItemStore(backend kv.Backend) *ContentItemStore {
	return NewContentItemStore(backend, nil, nil)
}

func TestUpsert_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	store := newItemStore(kv.NewMemoryBackend())

	item, err := store.Upsert(ctx, ContentItem{
		TypeID: "blog-post",
		Data:   map[string]interface{}{"title": "Hi"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, StatusDraft, item.Status)
	assert.NotZero(t, item.CreatedAt)
	assert.NotZero(t, item.UpdatedAt)
}

func TestUpsert_MissingTypeID(t *testing.T) {
	store := newItemStore(kv.NewMemoryBackend())

	_, err := store.Upsert(context.Background(), ContentItem{Data: map[string]interface{}{}})
	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpsert_StatusStoredVerbatim(t *testing.T) {
	ctx := context.Background()
	store := newItemStore(kv.NewMemoryBackend())

	item, err := store.Upsert(ctx, ContentItem{
		ID:     "i1",
		TypeID: "blog-post",
		Status: StatusArchived,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, item.Status)

	got, err := store.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, got.Status)
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	store := newItemStore(backend)

	item := ContentItem{
		ID:     "i1",
		TypeID: "blog-post",
		Data:   map[string]interface{}{"title": "Hi"},
	}
	_, err := store.Upsert(ctx, item)
	require.NoError(t, err)
	_, err = store.Upsert(ctx, item)
	require.NoError(t, err)

	globalIDs, err := store.Index().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, globalIDs)

	typeIDs, err := store.TypeIndex("blog-post").List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, typeIDs)

	searchIDs, err := search.Index(backend).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"i1"}, searchIDs)
}

func TestUpsert_WritesSearchProjection(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	store := newItemStore(backend)

	_, err := store.Upsert(ctx, ContentItem{
		ID:     "i1",
		TypeID: "blog-post",
		Data:   map[string]interface{}{"title": "Hello World", "body": "Some Body"},
	})
	require.NoError(t, err)

	projection, err := search.RecordFor(backend, "i1").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "blog-post", projection.TypeID)
	assert.Equal(t, "Hello World", projection.Title)
	assert.Contains(t, projection.Content, "hello world")
	assert.Contains(t, projection.Content, "some body")
}

func TestListByType(t *testing.T) {
	ctx := context.Background()
	store := newItemStore(kv.NewMemoryBackend())

	_, err := store.Upsert(ctx, ContentItem{ID: "i1", TypeID: "blog-post"})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, ContentItem{ID: "i2", TypeID: "blog-post"})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, ContentItem{ID: "other", TypeID: "landing-page"})
	require.NoError(t, err)

	page, err := store.ListByType(ctx, "blog-post", "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "i1", page.Items[0].ID)
	assert.Equal(t, "i2", page.Items[1].ID)
}

func TestDelete_Completeness(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()
	store := newItemStore(backend)

	_, err := store.Upsert(ctx, ContentItem{ID: "i1", TypeID: "blog-post", Data: map[string]interface{}{"title": "Hi"}})
	require.NoError(t, err)

	existed, err := store.Delete(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, existed)

	globalIDs, err := store.Index().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, globalIDs)

	typeIDs, err := store.TypeIndex("blog-post").List(ctx)
	require.NoError(t, err)
	assert.Empty(t, typeIDs)

	searchIDs, err := search.Index(backend).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, searchIDs)

	exists, err := store.Record("i1").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	searchExists, err := search.RecordFor(backend, "i1").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, searchExists)
}

func TestDelete_NotFound(t *testing.T) {
	store := newItemStore(kv.NewMemoryBackend())

	existed, err := store.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestGet_NotFound(t *testing.T) {
	store := newItemStore(kv.NewMemoryBackend())

	_, err := store.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestContentTypeStore_RequiresNameAndSlug(t *testing.T) {
	ctx := context.Background()
	types := NewContentTypeStore(kv.NewMemoryBackend(), nil)

	err := types.Create(ctx, ContentType{ID: "t1", Slug: "t1"})
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	err = types.Create(ctx, ContentType{ID: "t1", Name: "T1"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "slug", validationErr.Field)

	require.NoError(t, types.Create(ctx, ContentType{ID: "t1", Name: "T1", Slug: "t1"}))
}

// End-to-end: create a type, create an item, find it through every listing,
// then delete and find it through none.
func TestContentLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryBackend()

	types := NewContentTypeStore(backend, nil)
	require.NoError(t, types.Create(ctx, ContentType{
		ID:   "blog-post",
		Name: "Blog Post",
		Slug: "blog-posts",
		Fields: []FieldDefinition{
			{ID: "f1", Type: FieldText, Label: "Title", Slug: "title", Required: true},
			{ID: "f2", Type: FieldRichText, Label: "Body", Slug: "body", Required: true},
		},
	}))

	items := newItemStore(backend)
	item, err := items.Upsert(ctx, ContentItem{
		TypeID: "blog-post",
		Data:   map[string]interface{}{"title": "Hi", "body": "World"},
	})
	require.NoError(t, err)

	page, err := items.ListByType(ctx, "blog-post", "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, item.ID, page.Items[0].ID)

	svc := search.NewService(backend, 10)
	results, err := svc.Search(ctx, "hi")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, item.ID, results[0].ID)

	existed, err := items.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	page, err = items.ListByType(ctx, "blog-post", "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	results, err = svc.Search(ctx, "hi")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// A failing secondary write must not hide the successful record write.
func TestUpsert_PartialIndexFailure(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Backend: kv.NewMemoryBackend(), failKey: entity.IndexKey(KindContentItem)}
	store := newItemStore(backend)

	item, err := store.Upsert(ctx, ContentItem{ID: "i1", TypeID: "blog-post"})
	var partialErr *PartialIndexError
	require.ErrorAs(t, err, &partialErr)
	assert.Equal(t, "i1", partialErr.ItemID)
	assert.Contains(t, partialErr.Artifacts, "item-index")
	assert.Equal(t, "i1", item.ID)

	// The primary record survived.
	exists, err := store.Record("i1").Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

// flakyBackend fails every write to one key
type flakyBackend struct {
	kv.Backend
	failKey string
}

func (f *flakyBackend) Put(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return assert.AnError
	}
	return f.Backend.Put(ctx, key, value)
}
