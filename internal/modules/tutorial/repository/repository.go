package repository

import (
	"context"
	"strings"
	"time"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const listColumns = "id, title, slug, summary, category, thumbnail_url, difficulty, read_time, views, likes, tags, author, status, featured, published_at, created_at, updated_at"

type ListFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

type SearchFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

type TutorialRepository interface {
	Create(ctx context.Context, tutorial *entity.Tutorial) error
	FindByID(ctx context.Context, id uint) (*entity.Tutorial, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*entity.Tutorial, error)
	FindPublishedByID(ctx context.Context, id uint) (*entity.Tutorial, error)
	// FindByIDs returns published rows in the order of ids.
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Tutorial, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, tutorial *entity.Tutorial) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)

	List(ctx context.Context, filter ListFilter) ([]entity.Tutorial, int64, error)
	ListPublishedByCategory(ctx context.Context, category string, limit, offset int) ([]entity.Tutorial, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]entity.Tutorial, error)
	ListAllPublished(ctx context.Context) ([]entity.Tutorial, error)
	Search(ctx context.Context, filter SearchFilter) ([]entity.Tutorial, int64, error)
	CountPublished(ctx context.Context) (int64, error)

	AddViews(ctx context.Context, id uint, n int64) error
}

type tutorialRepository struct {
	db *gorm.DB
}

func NewTutorialRepository(db *gorm.DB) TutorialRepository {
	return &tutorialRepository{db: db}
}

func (r *tutorialRepository) Create(ctx context.Context, tutorial *entity.Tutorial) error {
	return r.db.WithContext(ctx).Create(tutorial).Error
}

func (r *tutorialRepository) FindByID(ctx context.Context, id uint) (*entity.Tutorial, error) {
	var tutorial entity.Tutorial
	if err := r.db.WithContext(ctx).First(&tutorial, id).Error; err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *tutorialRepository) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Tutorial, error) {
	var tutorial entity.Tutorial
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, entity.TutorialStatusPublished).
		First(&tutorial).Error
	if err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *tutorialRepository) FindPublishedByID(ctx context.Context, id uint) (*entity.Tutorial, error) {
	var tutorial entity.Tutorial
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entity.TutorialStatusPublished).
		First(&tutorial).Error
	if err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *tutorialRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Tutorial, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []entity.Tutorial
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Where("id IN ? AND status = ?", ids, entity.TutorialStatusPublished).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]entity.Tutorial, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	ordered := make([]entity.Tutorial, 0, len(rows))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

func (r *tutorialRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Tutorial{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tutorialRepository) Update(ctx context.Context, t *entity.Tutorial) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Tutorial{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":         t.Title,
		"slug":          t.Slug,
		"summary":       t.Summary,
		"content":       t.Content,
		"category":      t.Category,
		"thumbnail_url": t.ThumbnailURL,
		"difficulty":    t.Difficulty,
		"read_time":     t.ReadTime,
		"tags":          t.Tags,
		"author":        t.Author,
		"status":        t.Status,
		"featured":      t.Featured,
		"published_at":  t.PublishedAt,
		"updated_at":    time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *tutorialRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Tutorial{}, id)
	return res.RowsAffected, res.Error
}

func (r *tutorialRepository) List(ctx context.Context, filter ListFilter) ([]entity.Tutorial, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Tutorial{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tutorials []entity.Tutorial
	err := query.
		Select(listColumns).
		Order("updated_at DESC, created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tutorials).Error
	return tutorials, total, err
}

func (r *tutorialRepository) ListPublishedByCategory(ctx context.Context, category string, limit, offset int) ([]entity.Tutorial, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Tutorial{}).
		Where("category = ? AND status = ?", category, entity.TutorialStatusPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tutorials []entity.Tutorial
	err := query.
		Select(listColumns).
		Order("featured DESC, published_at DESC, created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tutorials).Error
	return tutorials, total, err
}

func (r *tutorialRepository) ListFeatured(ctx context.Context, limit int) ([]entity.Tutorial, error) {
	var tutorials []entity.Tutorial
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Where("status = ?", entity.TutorialStatusPublished).
		Order("featured DESC, views DESC, id DESC").
		Limit(limit).
		Find(&tutorials).Error
	return tutorials, err
}

func (r *tutorialRepository) ListAllPublished(ctx context.Context) ([]entity.Tutorial, error) {
	var tutorials []entity.Tutorial
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.TutorialStatusPublished).
		Order("id ASC").
		Find(&tutorials).Error
	return tutorials, err
}

// Search matches title, summary or content, ranking title hits above
// summary hits above content hits.
func (r *tutorialRepository) Search(ctx context.Context, filter SearchFilter) ([]entity.Tutorial, int64, error) {
	pattern := "%" + escapeLike(filter.Query) + "%"

	query := r.db.WithContext(ctx).
		Model(&entity.Tutorial{}).
		Where("status = ?", entity.TutorialStatusPublished).
		Where("(title LIKE ? ESCAPE '\\' OR summary LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\')", pattern, pattern, pattern)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tutorials []entity.Tutorial
	err := query.
		Select(listColumns).
		Clauses(rankClause(pattern)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tutorials).Error
	return tutorials, total, err
}

func (r *tutorialRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Tutorial{}).
		Where("status = ?", entity.TutorialStatusPublished).
		Count(&count).Error
	return count, err
}

func (r *tutorialRepository) AddViews(ctx context.Context, id uint, n int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Tutorial{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", n)).Error
}

func rankClause(pattern string) clause.OrderBy {
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                "CASE WHEN title LIKE ? ESCAPE '\\' THEN 1 WHEN summary LIKE ? ESCAPE '\\' THEN 2 ELSE 3 END, views DESC, published_at DESC, id DESC",
		Vars:               []any{pattern, pattern},
		WithoutParentheses: true,
	}}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
