package audit

// Action represents the kind of change an entry records
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
)

// Entry is one audit log record. Append-only; never mutated or deleted once
// written.
type Entry struct {
	ID         string `json:"id"`
	ItemID     string `json:"itemId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Action     Action `json:"action"`
	EntityType string `json:"entityType"`
	Timestamp  int64  `json:"timestamp"`
	Details    string `json:"details,omitempty"`
}

// EntityID implements entity.State
func (e Entry) EntityID() string {
	return e.ID
}
