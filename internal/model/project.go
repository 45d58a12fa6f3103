package model

// Project is a delivered engagement, optionally linked to a client and
// a service category.
type Project struct {
	Base
	ClientID    *int64 `db:"client_id" json:"clientId,omitempty"`
	ServiceID   *int64 `db:"service_id" json:"serviceId,omitempty"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	ImageKey    string `db:"image_key" json:"imageKey"`
	Status      string `db:"status" json:"status"`
}

// Project statuses.
const (
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)
