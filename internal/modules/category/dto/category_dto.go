package dto

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	SortOrder    int    `json:"sort_order"`
	ArticleCount int64  `json:"article_count"`
}
