package model

import "time"

// Article is an editorial entry. Content is sanitized HTML.
type Article struct {
	Base
	AuthorID    int64      `db:"author_id" json:"authorId"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	CoverKey    string     `db:"cover_key" json:"coverKey"`
	Status      string     `db:"status" json:"status"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
}

// Article statuses.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)
