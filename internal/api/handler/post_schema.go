package handler

import "time"

type createPostRequest struct {
	Title       string `json:"title"       validate:"required,max=500"`
	TitleAr     string `json:"titleAr"     validate:"max=500"`
	Slug        string `json:"slug"        validate:"max=500"`
	Excerpt     string `json:"excerpt"`
	ExcerptAr   string `json:"excerptAr"`
	Content     string `json:"content"     validate:"required"`
	ContentAr   string `json:"contentAr"`
	Category    string `json:"category"    validate:"max=100"`
	Author      string `json:"author"      validate:"max=255"`
	ImageURL    string `json:"imageUrl"`
	PublishedAt string `json:"publishedAt"`
	IsPublished bool   `json:"isPublished"`
}

// updatePostRequest distinguishes absent fields (nil) from explicit values.
type updatePostRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=500"`
	TitleAr     *string `json:"titleAr"     validate:"omitnil,max=500"`
	Slug        *string `json:"slug"        validate:"omitnil,min=1,max=500"`
	Excerpt     *string `json:"excerpt"`
	ExcerptAr   *string `json:"excerptAr"`
	Content     *string `json:"content"     validate:"omitnil,min=1"`
	ContentAr   *string `json:"contentAr"`
	Category    *string `json:"category"    validate:"omitnil,max=100"`
	Author      *string `json:"author"      validate:"omitnil,max=255"`
	ImageURL    *string `json:"imageUrl"`
	PublishedAt *string `json:"publishedAt"`
	IsPublished *bool   `json:"isPublished"`
}

// postResponse is the public JSON shape of a post. The numeric ID is
// rendered as a string.
type postResponse struct {
	ID          int64      `json:"id,string"`
	Title       string     `json:"title"`
	TitleAr     string     `json:"titleAr"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	ExcerptAr   string     `json:"excerptAr"`
	Content     string     `json:"content"`
	ContentAr   string     `json:"contentAr"`
	Category    string     `json:"category"`
	Author      string     `json:"author"`
	ImageURL    string     `json:"imageUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
