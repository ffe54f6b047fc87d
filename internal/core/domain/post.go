package domain

import "time"

// Post is a bilingual blog article.
//
// PublishedAt is only meaningful while IsPublished is true; the public
// listing never includes unpublished posts.
type Post struct {
	ID          int64
	Title       string
	TitleAr     string
	Slug        string
	Excerpt     string
	ExcerptAr   string
	Content     string
	ContentAr   string
	Category    string
	Author      string
	ImageURL    string
	PublishedAt *time.Time
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostPatch carries a partial update. Nil fields keep their stored value.
type PostPatch struct {
	Title       *string
	TitleAr     *string
	Slug        *string
	Excerpt     *string
	ExcerptAr   *string
	Content     *string
	ContentAr   *string
	Category    *string
	Author      *string
	ImageURL    *string
	PublishedAt *time.Time
	IsPublished *bool
}
