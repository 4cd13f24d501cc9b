package category

import (
	"context"
	"errors"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/category/dto"
	"clabs.com/website/internal/modules/category/repository"
	"clabs.com/website/pkg/apperror"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = apperror.NotFound("category not found")

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	Exists(ctx context.Context, slug string) (bool, error)
	RefreshArticleCount(ctx context.Context, slugs ...string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toResponse(&categories[i]))
	}
	return responses, nil
}

func (s *categoryService) GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	res := toResponse(cat)
	return &res, nil
}

func (s *categoryService) Exists(ctx context.Context, slug string) (bool, error) {
	return s.repo.ExistsBySlug(ctx, slug)
}

// RefreshArticleCount recomputes the counters of each distinct slug.
func (s *categoryService) RefreshArticleCount(ctx context.Context, slugs ...string) error {
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		if err := s.repo.RefreshArticleCount(ctx, slug); err != nil {
			return err
		}
	}
	return nil
}

func toResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		Icon:         c.Icon,
		SortOrder:    c.SortOrder,
		ArticleCount: c.ArticleCount,
	}
}
