package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/tutorial/repository"
	"clabs.com/website/pkg/jsonfield"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const IndexName = "tutorials"

type Query struct {
	Text     string
	Category string
	Limit    int
	Offset   int
}

// Result lists matching published tutorial ids in rank order.
type Result struct {
	IDs   []uint
	Total int64
}

type Searcher interface {
	// Index adds or replaces a tutorial. Unpublished tutorials are removed.
	Index(ctx context.Context, tutorial *entity.Tutorial) error
	Remove(ctx context.Context, id uint) error
	Search(ctx context.Context, q Query) (*Result, error)
	// Reindex rebuilds the index from every published tutorial.
	Reindex(ctx context.Context) error
}

type tutorialDoc struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	Views       int64    `json:"views"`
	PublishedAt int64    `json:"published_at"`
}

type meiliSearcher struct {
	client    meilisearch.ServiceManager
	repo      repository.TutorialRepository
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

func NewMeiliSearcher(client meilisearch.ServiceManager, repo repository.TutorialRepository, logger *zap.Logger) Searcher {
	s := &meiliSearcher{
		client:    client,
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
	s.initIndex()
	return s
}

func (s *meiliSearcher) initIndex() {
	filterable := []any{"category"}
	if _, err := s.client.Index(IndexName).UpdateFilterableAttributes(&filterable); err != nil {
		s.logger.Warn("failed to update tutorials filterable attributes", zap.Error(err))
	}

	sortable := []string{"views", "published_at"}
	if _, err := s.client.Index(IndexName).UpdateSortableAttributes(&sortable); err != nil {
		s.logger.Warn("failed to update tutorials sortable attributes", zap.Error(err))
	}

	searchable := []string{"title", "summary", "tags", "content"}
	if _, err := s.client.Index(IndexName).UpdateSearchableAttributes(&searchable); err != nil {
		s.logger.Warn("failed to update tutorials searchable attributes", zap.Error(err))
	}
}

func (s *meiliSearcher) Index(ctx context.Context, t *entity.Tutorial) error {
	if t.Status != entity.TutorialStatusPublished {
		return s.Remove(ctx, t.ID)
	}

	task, err := s.client.Index(IndexName).AddDocuments([]tutorialDoc{s.toDoc(t)}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index tutorial %d: %w", t.ID, err)
	}
	s.logger.Debug("tutorial indexed", zap.Uint("id", t.ID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *meiliSearcher) Remove(_ context.Context, id uint) error {
	if _, err := s.client.Index(IndexName).DeleteDocument(strconv.FormatUint(uint64(id), 10)); err != nil {
		return fmt.Errorf("remove tutorial %d from index: %w", id, err)
	}
	return nil
}

func (s *meiliSearcher) Reindex(ctx context.Context) error {
	tutorials, err := s.repo.ListAllPublished(ctx)
	if err != nil {
		return err
	}
	if len(tutorials) == 0 {
		return nil
	}

	docs := make([]tutorialDoc, 0, len(tutorials))
	for i := range tutorials {
		docs = append(docs, s.toDoc(&tutorials[i]))
	}
	if _, err := s.client.Index(IndexName).AddDocuments(docs, strPtr("id")); err != nil {
		return fmt.Errorf("reindex tutorials: %w", err)
	}
	s.logger.Info("tutorials reindexed", zap.Int("count", len(docs)))
	return nil
}

type rawSearchResponse struct {
	Hits []struct {
		ID uint `json:"id"`
	} `json:"hits"`
	EstimatedTotalHits int64 `json:"estimatedTotalHits"`
}

func (s *meiliSearcher) Search(_ context.Context, q Query) (*Result, error) {
	req := &meilisearch.SearchRequest{
		Limit:                int64(q.Limit),
		Offset:               int64(q.Offset),
		AttributesToRetrieve: []string{"id"},
	}
	if q.Category != "" {
		req.Filter = fmt.Sprintf("category = %s", strconv.Quote(q.Category))
	}

	raw, err := s.client.Index(IndexName).SearchRaw(q.Text, req)
	if err != nil {
		return nil, fmt.Errorf("meilisearch query: %w", err)
	}

	var resp rawSearchResponse
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("decode meilisearch response: %w", err)
	}

	result := &Result{IDs: make([]uint, 0, len(resp.Hits)), Total: resp.EstimatedTotalHits}
	for _, hit := range resp.Hits {
		result.IDs = append(result.IDs, hit.ID)
	}
	return result, nil
}

func (s *meiliSearcher) toDoc(t *entity.Tutorial) tutorialDoc {
	doc := tutorialDoc{
		ID:       t.ID,
		Title:    t.Title,
		Slug:     t.Slug,
		Summary:  t.Summary,
		Content:  s.cleanContentForIndex(t.Content),
		Category: t.Category,
		Tags:     jsonfield.StringSlice(t.Tags),
		Author:   t.Author,
		Views:    t.Views,
	}
	if t.PublishedAt != nil {
		doc.PublishedAt = t.PublishedAt.Unix()
	}
	return doc
}

func (s *meiliSearcher) cleanContentForIndex(content string) string {
	// keep words from adjacent blocks apart
	content = strings.NewReplacer("</p>", " ", "<br>", " ", "<br/>", " ", "</div>", " ", "</li>", " ", "</h2>", " ", "</h3>", " ").Replace(content)

	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleanText), " ")
}

func strPtr(s string) *string {
	return &s
}

type databaseSearcher struct {
	repo repository.TutorialRepository
}

// NewDatabaseSearcher searches with LIKE queries; Index and Remove are no-ops.
func NewDatabaseSearcher(repo repository.TutorialRepository) Searcher {
	return &databaseSearcher{repo: repo}
}

func (s *databaseSearcher) Index(context.Context, *entity.Tutorial) error { return nil }

func (s *databaseSearcher) Remove(context.Context, uint) error { return nil }

func (s *databaseSearcher) Reindex(context.Context) error { return nil }

func (s *databaseSearcher) Search(ctx context.Context, q Query) (*Result, error) {
	tutorials, total, err := s.repo.Search(ctx, repository.SearchFilter{
		Query:    q.Text,
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{IDs: make([]uint, 0, len(tutorials)), Total: total}
	for _, t := range tutorials {
		result.IDs = append(result.IDs, t.ID)
	}
	return result, nil
}
