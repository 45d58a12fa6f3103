package model

// Service is a business offering category, e.g. "Website Development".
// Packages reference exactly one service.
type Service struct {
	Base
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}
