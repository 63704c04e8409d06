package cms

import (
	"github.com/stratumcms/stratum/pkg/entity"
)

// FieldType enumerates the supported content field types
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldRichText  FieldType = "rich-text"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldDate      FieldType = "date"
	FieldMedia     FieldType = "media"
	FieldReference FieldType = "reference"
)

// FieldValidation holds optional constraints on a field's values
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// FieldDefinition describes one field of a content type. Field order within
// a type is meaningful (display and tab order) and preserved across reads.
type FieldDefinition struct {
	ID           string           `json:"id"`
	Type         FieldType        `json:"type"`
	Label        string           `json:"label"`
	Slug         string           `json:"slug"`
	Required     bool             `json:"required"`
	Localized    bool             `json:"localized,omitempty"`
	TargetTypeID string           `json:"targetTypeId,omitempty"` // required iff Type == FieldReference
	DefaultValue interface{}      `json:"defaultValue,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty"`
	Description  string           `json:"description,omitempty"`
	Validation   *FieldValidation `json:"validation,omitempty"`
}

// ContentType is the schema of one kind of content
type ContentType struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	UpdatedAt   int64             `json:"updatedAt"`
}

// EntityID implements entity.State
func (t ContentType) EntityID() string {
	return t.ID
}

// Validate implements entity.Validator
func (t ContentType) Validate() error {
	if t.Name == "" {
		return &entity.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if t.Slug == "" {
		return &entity.ValidationError{Field: "slug", Reason: "must not be empty"}
	}
	return nil
}

// ItemStatus is a content item's publication state
type ItemStatus string

const (
	StatusDraft     ItemStatus = "draft"
	StatusPublished ItemStatus = "published"
	StatusArchived  ItemStatus = "archived"
)

// ContentItem is one instance of a content type. Data maps field slugs to
// values; localized fields map locale codes to values.
type ContentItem struct {
	ID        string                 `json:"id"`
	TypeID    string                 `json:"typeId"`
	Data      map[string]interface{} `json:"data"`
	Status    ItemStatus             `json:"status"`
	CreatedAt int64                  `json:"createdAt"`
	UpdatedAt int64                  `json:"updatedAt"`
}

// EntityID implements entity.State
func (i ContentItem) EntityID() string {
	return i.ID
}

// MediaAsset is the metadata of one uploaded asset
type MediaAsset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"createdAt"`
}

// EntityID implements entity.State
func (a MediaAsset) EntityID() string {
	return a.ID
}

// UserRole enumerates admin tool roles
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

// User is an admin tool account
type User struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// EntityID implements entity.State
func (u User) EntityID() string {
	return u.ID
}
