package search

import (
	"context"
	"testing"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/tutorial/repository"
	"clabs.com/website/internal/testutil"
	"clabs.com/website/pkg/jsonfield"
	"github.com/microcosm-cc/bluemonday"
)

func TestCleanContentForIndex(t *testing.T) {
	s := &meiliSearcher{sanitizer: bluemonday.StrictPolicy()}

	tests := []struct {
		in   string
		want string
	}{
		{in: "<p>one</p><p>two</p>", want: "one two"},
		{in: "a<br>b", want: "a b"},
		{in: "<ul><li>x</li><li>y</li></ul>", want: "x y"},
		{in: "Fish &amp; chips", want: "Fish & chips"},
		{in: "<script>alert(1)</script>safe", want: "safe"},
	}

	for _, tt := range tests {
		if got := s.cleanContentForIndex(tt.in); got != tt.want {
			t.Errorf("cleanContentForIndex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDoc(t *testing.T) {
	s := &meiliSearcher{sanitizer: bluemonday.StrictPolicy()}
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	doc := s.toDoc(&entity.Tutorial{
		ID:          7,
		Title:       "DeFi",
		Content:     "<h2>Pools</h2>",
		Category:    "defi",
		Tags:        jsonfield.FromSlice([]string{"amm"}),
		PublishedAt: &published,
	})
	if doc.ID != 7 || doc.Content != "Pools" || doc.PublishedAt != published.Unix() || len(doc.Tags) != 1 {
		t.Errorf("toDoc() = %+v", doc)
	}
}

func TestDatabaseSearcher(t *testing.T) {
	db := testutil.NewDB(t)
	rows := []entity.Tutorial{
		{Title: "Gas fees", Slug: "gas", Content: "x", Category: "basics", Difficulty: "beginner", ReadTime: 5, Status: entity.TutorialStatusPublished},
		{Title: "Gas draft", Slug: "gas-draft", Content: "x", Category: "basics", Difficulty: "beginner", ReadTime: 5, Status: entity.TutorialStatusDraft},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed tutorials: %v", err)
	}

	s := NewDatabaseSearcher(repository.NewTutorialRepository(db))
	res, err := s.Search(context.Background(), Query{Text: "gas", Limit: 10})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Total != 1 || len(res.IDs) != 1 || res.IDs[0] != rows[0].ID {
		t.Errorf("result = %+v", res)
	}
}
