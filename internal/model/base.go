package model

import "time"

// Base contains common fields for all persisted entities. Identifiers
// are bigserial values exposed as numbers on the wire.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Pagination represents common pagination parameters.
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}
