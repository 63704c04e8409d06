package cms

import (
	"time"

	"github.com/stratumcms/stratum/pkg/entity"
	"github.com/stratumcms/stratum/pkg/kv"
	"github.com/stratumcms/stratum/pkg/observability"
)

// Entity kinds; record keys are "{kind}:{id}", primary index keys
// "{kind}-index".
const (
	KindContentType = "cms-type"
	KindContentItem = "cms-item"
	KindMediaAsset  = "cms-media"
	KindUser        = "cms-user"
)

// NewContentTypeStore creates the content type collection, seeded with the
// default blog post schema
func NewContentTypeStore(backend kv.Backend, logger *observability.Logger) *entity.CollectionStore[ContentType] {
	return entity.NewCollectionStore(backend, KindContentType, ContentType{}, SeedContentTypes(), logger)
}

// NewMediaStore creates the media asset collection
func NewMediaStore(backend kv.Backend, logger *observability.Logger) *entity.CollectionStore[MediaAsset] {
	return entity.NewCollectionStore(backend, KindMediaAsset, MediaAsset{}, nil, logger)
}

// NewUserStore creates the user collection, seeded with the default accounts
func NewUserStore(backend kv.Backend, logger *observability.Logger) *entity.CollectionStore[User] {
	return entity.NewCollectionStore(backend, KindUser, User{}, SeedUsers(), logger)
}

// SeedContentTypes returns the content types inserted on first run
func SeedContentTypes() []ContentType {
	return []ContentType{
		{
			ID:          "blog-post",
			Name:        "Blog Post",
			Slug:        "blog-posts",
			Description: "A standard blog post structure",
			UpdatedAt:   time.Now().UnixMilli(),
			Fields: []FieldDefinition{
				{ID: "f1", Type: FieldText, Label: "Title", Slug: "title", Required: true},
				{ID: "f2", Type: FieldRichText, Label: "Body", Slug: "body", Required: true},
				{ID: "f3", Type: FieldMedia, Label: "Cover Image", Slug: "cover", Required: false},
			},
		},
	}
}

// SeedUsers returns the accounts inserted on first run
func SeedUsers() []User {
	return []User{
		{ID: "u1", Email: "user-a@stratum.io", Name: "User A", Role: RoleAdmin},
		{ID: "u2", Email: "user-b@stratum.io", Name: "User B", Role: RoleEditor},
	}
}
