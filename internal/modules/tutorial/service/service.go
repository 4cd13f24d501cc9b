package tutorial

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clabs.com/website/internal/entity"
	category "clabs.com/website/internal/modules/category/service"
	search "clabs.com/website/internal/modules/search/service"
	"clabs.com/website/internal/modules/tutorial/dto"
	"clabs.com/website/internal/modules/tutorial/repository"
	view "clabs.com/website/internal/modules/view/service"
	"clabs.com/website/pkg/apperror"
	commonDto "clabs.com/website/pkg/dto"
	"clabs.com/website/pkg/jsonfield"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAdminLimit  = 20
	defaultPublicLimit = 10
	defaultDifficulty  = "beginner"
	defaultReadTime    = 10
	defaultAuthor      = "C Labs"
)

var (
	ErrTutorialNotFound = apperror.NotFound("tutorial not found")
	ErrSlugTaken        = apperror.BadRequest("slug already exists, choose another one")
	ErrUnknownCategory  = apperror.BadRequest("unknown tutorial category")
)

type TutorialService interface {
	CreateTutorial(ctx context.Context, req dto.CreateTutorialRequest) (uint, error)
	UpdateTutorial(ctx context.Context, id uint, req dto.UpdateTutorialRequest) error
	DeleteTutorial(ctx context.Context, id uint) error
	GetTutorial(ctx context.Context, id uint) (*dto.TutorialResponse, error)
	ListTutorials(ctx context.Context, filter dto.TutorialFilter) (*dto.PaginatedTutorialResponse, error)

	ListByCategory(ctx context.Context, category string, page commonDto.PageQuery) (*dto.PaginatedTutorialResponse, error)
	ListFeatured(ctx context.Context, limit int) ([]dto.TutorialResponse, error)
	// ReadArticle resolves a published tutorial by slug, then by numeric id,
	// and counts the view.
	ReadArticle(ctx context.Context, identifier, viewerKey string) (*dto.TutorialResponse, error)
	Search(ctx context.Context, q dto.SearchQuery) (*dto.PaginatedTutorialResponse, error)
	CountPublished(ctx context.Context) (int64, error)
}

type tutorialService struct {
	repo       repository.TutorialRepository
	categories category.CategoryService
	searcher   search.Searcher
	views      view.ViewService
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
	now        func() time.Time
}

func NewTutorialService(
	repo repository.TutorialRepository,
	categories category.CategoryService,
	searcher search.Searcher,
	views view.ViewService,
	logger *zap.Logger,
) TutorialService {
	return &tutorialService{
		repo:       repo,
		categories: categories,
		searcher:   searcher,
		views:      views,
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *tutorialService) checkCategory(ctx context.Context, slug string) error {
	ok, err := s.categories.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCategory
	}
	return nil
}

func (s *tutorialService) CreateTutorial(ctx context.Context, req dto.CreateTutorialRequest) (uint, error) {
	exists, err := s.repo.ExistsBySlug(ctx, req.Slug, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrSlugTaken
	}
	if err := s.checkCategory(ctx, req.Category); err != nil {
		return 0, err
	}

	t := &entity.Tutorial{
		Title:        strings.TrimSpace(req.Title),
		Slug:         req.Slug,
		Summary:      strings.TrimSpace(req.Summary),
		Content:      s.sanitizer.Sanitize(req.Content),
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
		Difficulty:   orDefault(req.Difficulty, defaultDifficulty),
		ReadTime:     req.ReadTime,
		Tags:         jsonfield.FromSlice(req.Tags),
		Author:       orDefault(strings.TrimSpace(req.Author), defaultAuthor),
		Status:       orDefault(req.Status, entity.TutorialStatusDraft),
		Featured:     req.Featured,
	}
	if t.ReadTime == 0 {
		t.ReadTime = defaultReadTime
	}
	if t.Status == entity.TutorialStatusPublished {
		now := s.now()
		t.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrSlugTaken
		}
		return 0, fmt.Errorf("create tutorial: %w", err)
	}

	s.afterWrite(ctx, t, t.Category)
	return t.ID, nil
}

func (s *tutorialService) UpdateTutorial(ctx context.Context, id uint, req dto.UpdateTutorialRequest) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTutorialNotFound
		}
		return err
	}

	taken, err := s.repo.ExistsBySlug(ctx, *req.Slug, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := s.checkCategory(ctx, *req.Category); err != nil {
		return err
	}

	t := &entity.Tutorial{
		ID:           id,
		Title:        strings.TrimSpace(*req.Title),
		Slug:         *req.Slug,
		Summary:      strings.TrimSpace(*req.Summary),
		Content:      s.sanitizer.Sanitize(*req.Content),
		Category:     *req.Category,
		ThumbnailURL: *req.ThumbnailURL,
		Difficulty:   *req.Difficulty,
		ReadTime:     *req.ReadTime,
		Tags:         jsonfield.FromSlice(*req.Tags),
		Author:       strings.TrimSpace(*req.Author),
		Status:       *req.Status,
		Featured:     *req.Featured,
		PublishedAt:  current.PublishedAt,
		Views:        current.Views,
		Likes:        current.Likes,
		CreatedAt:    current.CreatedAt,
	}
	// first publication stamps published_at; later edits keep it
	if t.Status == entity.TutorialStatusPublished && t.PublishedAt == nil {
		now := s.now()
		t.PublishedAt = &now
	}

	n, err := s.repo.Update(ctx, t)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update tutorial %d: %w", id, err)
	}
	if n == 0 {
		return ErrTutorialNotFound
	}

	s.afterWrite(ctx, t, current.Category, t.Category)
	return nil
}

func (s *tutorialService) DeleteTutorial(ctx context.Context, id uint) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTutorialNotFound
		}
		return err
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tutorial %d: %w", id, err)
	}
	if n == 0 {
		return ErrTutorialNotFound
	}

	if err := s.categories.RefreshArticleCount(ctx, current.Category); err != nil {
		s.logger.Error("failed to refresh category count", zap.String("category", current.Category), zap.Error(err))
	}
	if err := s.searcher.Remove(ctx, id); err != nil {
		s.logger.Warn("failed to remove tutorial from search index", zap.Uint("id", id), zap.Error(err))
	}
	s.logger.Info("tutorial deleted", zap.Uint("id", id))
	return nil
}

// afterWrite refreshes derived state. Failures are logged; the row is already saved.
func (s *tutorialService) afterWrite(ctx context.Context, t *entity.Tutorial, categories ...string) {
	if err := s.categories.RefreshArticleCount(ctx, categories...); err != nil {
		s.logger.Error("failed to refresh category count", zap.Strings("categories", categories), zap.Error(err))
	}
	if err := s.searcher.Index(ctx, t); err != nil {
		s.logger.Warn("failed to index tutorial", zap.Uint("id", t.ID), zap.Error(err))
	}
}

func (s *tutorialService) GetTutorial(ctx context.Context, id uint) (*dto.TutorialResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorialNotFound
		}
		return nil, err
	}
	res := ToTutorialResponse(t, true)
	return &res, nil
}

func (s *tutorialService) ListTutorials(ctx context.Context, filter dto.TutorialFilter) (*dto.PaginatedTutorialResponse, error) {
	offset := filter.Normalize(defaultAdminLimit)

	rows, total, err := s.repo.List(ctx, repository.ListFilter{
		Status:   allToEmpty(filter.Status),
		Category: allToEmpty(filter.Category),
		Limit:    filter.Limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	return paginate(rows, filter.Page, filter.Limit, total), nil
}

func (s *tutorialService) ListByCategory(ctx context.Context, categorySlug string, page commonDto.PageQuery) (*dto.PaginatedTutorialResponse, error) {
	offset := page.Normalize(defaultPublicLimit)

	rows, total, err := s.repo.ListPublishedByCategory(ctx, categorySlug, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	return paginate(rows, page.Page, page.Limit, total), nil
}

func (s *tutorialService) ListFeatured(ctx context.Context, limit int) ([]dto.TutorialResponse, error) {
	rows, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *tutorialService) ReadArticle(ctx context.Context, identifier, viewerKey string) (*dto.TutorialResponse, error) {
	t, err := s.repo.FindPublishedBySlug(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil && id > 0 {
			t, err = s.repo.FindPublishedByID(ctx, uint(id))
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorialNotFound
		}
		return nil, err
	}

	if err := s.views.IncrementView(ctx, t.ID, viewerKey); err != nil {
		s.logger.Warn("failed to count tutorial view", zap.Uint("id", t.ID), zap.Error(err))
	}

	res := ToTutorialResponse(t, true)
	return &res, nil
}

func (s *tutorialService) Search(ctx context.Context, q dto.SearchQuery) (*dto.PaginatedTutorialResponse, error) {
	text := strings.TrimSpace(q.Q)
	if text == "" {
		return nil, apperror.BadRequest("search query is required")
	}
	offset := q.Normalize(defaultPublicLimit)

	result, err := s.searcher.Search(ctx, search.Query{
		Text:     text,
		Category: allToEmpty(q.Category),
		Limit:    q.Limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByIDs(ctx, result.IDs)
	if err != nil {
		return nil, err
	}
	return paginate(rows, q.Page, q.Limit, result.Total), nil
}

func (s *tutorialService) CountPublished(ctx context.Context) (int64, error) {
	return s.repo.CountPublished(ctx)
}

func paginate(rows []entity.Tutorial, page, limit int, total int64) *dto.PaginatedTutorialResponse {
	return &dto.PaginatedTutorialResponse{
		Data: toResponses(rows),
		Meta: commonDto.NewPaginationMeta(page, limit, total),
	}
}

func toResponses(rows []entity.Tutorial) []dto.TutorialResponse {
	out := make([]dto.TutorialResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTutorialResponse(&rows[i], false))
	}
	return out
}

func ToTutorialResponse(t *entity.Tutorial, withContent bool) dto.TutorialResponse {
	res := dto.TutorialResponse{
		ID:           t.ID,
		Title:        t.Title,
		Slug:         t.Slug,
		Summary:      t.Summary,
		Category:     t.Category,
		ThumbnailURL: t.ThumbnailURL,
		Difficulty:   t.Difficulty,
		ReadTime:     t.ReadTime,
		Views:        t.Views,
		Likes:        t.Likes,
		Tags:         jsonfield.StringSlice(t.Tags),
		Author:       t.Author,
		Status:       t.Status,
		Featured:     t.Featured,
		CreatedAt:    formatTime(t.CreatedAt),
		UpdatedAt:    formatTime(t.UpdatedAt),
	}
	if withContent {
		res.Content = t.Content
	}
	if t.PublishedAt != nil {
		res.PublishedAt = formatTime(*t.PublishedAt)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func allToEmpty(v string) string {
	if v == "all" {
		return ""
	}
	return v
}
