package dto

import commonDto "clabs.com/website/pkg/dto"

type CreateTutorialRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Slug         string   `json:"slug" binding:"required,slug,max=200"`
	Summary      string   `json:"summary" binding:"max=2000"`
	Content      string   `json:"content" binding:"required"`
	Category     string   `json:"category" binding:"required,slug,max=100"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	ReadTime     int      `json:"read_time" binding:"omitempty,min=1,max=600"`
	Tags         []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	Author       string   `json:"author" binding:"max=100"`
	Status       string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	Featured     bool     `json:"featured"`
}

// UpdateTutorialRequest replaces every column; all fields must be sent.
type UpdateTutorialRequest struct {
	Title        *string   `json:"title" binding:"required,max=200"`
	Slug         *string   `json:"slug" binding:"required,slug,max=200"`
	Summary      *string   `json:"summary" binding:"required,max=2000"`
	Content      *string   `json:"content" binding:"required"`
	Category     *string   `json:"category" binding:"required,slug,max=100"`
	ThumbnailURL *string   `json:"thumbnail_url" binding:"required"`
	Difficulty   *string   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	ReadTime     *int      `json:"read_time" binding:"required,min=1,max=600"`
	Tags         *[]string `json:"tags" binding:"required,max=20,dive,max=50"`
	Author       *string   `json:"author" binding:"required,max=100"`
	Status       *string   `json:"status" binding:"required,oneof=draft published archived"`
	Featured     *bool     `json:"featured" binding:"required"`
}

type TutorialResponse struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary"`
	Content      string   `json:"content,omitempty"`
	Category     string   `json:"category"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Difficulty   string   `json:"difficulty"`
	ReadTime     int      `json:"read_time"`
	Views        int64    `json:"views"`
	Likes        int64    `json:"likes"`
	Tags         []string `json:"tags"`
	Author       string   `json:"author"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	PublishedAt  string   `json:"published_at,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// TutorialFilter is the admin list query. Empty or "all" disables a filter.
type TutorialFilter struct {
	commonDto.PageQuery
	Status   string `form:"status" binding:"omitempty,oneof=all draft published archived"`
	Category string `form:"category" binding:"omitempty,max=100"`
}

type SearchQuery struct {
	commonDto.PageQuery
	Q        string `form:"q" binding:"required,max=200"`
	Category string `form:"category" binding:"omitempty,max=100"`
}

type PaginatedTutorialResponse struct {
	Data []TutorialResponse        `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
