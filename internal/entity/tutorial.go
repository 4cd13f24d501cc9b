package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TutorialStatusDraft     = "draft"
	TutorialStatusPublished = "published"
	TutorialStatusArchived  = "archived"
)

type Tutorial struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Slug         string         `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Summary      string         `gorm:"type:text" json:"summary"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Category     string         `gorm:"size:100;not null;index" json:"category"`
	ThumbnailURL string         `gorm:"type:text" json:"thumbnail_url"`
	Difficulty   string         `gorm:"size:20;not null" json:"difficulty"`
	ReadTime     int            `gorm:"not null" json:"read_time"`
	Views        int64          `gorm:"not null" json:"views"`
	Likes        int64          `gorm:"not null" json:"likes"`
	Tags         datatypes.JSON `json:"tags"`
	Author       string         `gorm:"size:100" json:"author"`
	Status       string         `gorm:"size:20;not null;index" json:"status"`
	Featured     bool           `gorm:"not null" json:"featured"`
	PublishedAt  *time.Time     `json:"published_at"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Icon         string    `gorm:"size:50" json:"icon"`
	SortOrder    int       `gorm:"not null;index" json:"sort_order"`
	ArticleCount int64     `gorm:"not null" json:"article_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
