package model

import "time"

// Activity is a company event or update shown in the activity feed.
type Activity struct {
	Base
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	ImageKey    string     `db:"image_key" json:"imageKey"`
	HappenedAt  *time.Time `db:"happened_at" json:"happenedAt,omitempty"`
}
