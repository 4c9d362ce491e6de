package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/validation"
)

func TestQueryPostPaging(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	published := seedPosts(t, db, 12, true, base)
	seedPosts(t, db, 3, false, base.Add(time.Hour))

	items, pagination, err := QueryPost(db, NewListQuery("", models.PostCategoryAI, "2", "5"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	for i, item := range items {
		if want := published[5+i].ID; item.ID != want {
			t.Errorf("items[%d].ID = %d, want %d", i, item.ID, want)
		}
	}
	want := Pagination{CurrentPage: 2, TotalPages: 3, TotalCount: 12, HasNext: true, HasPrev: true}
	if pagination != want {
		t.Errorf("pagination = %+v, want %+v", pagination, want)
	}

	_, last, err := QueryPost(db, NewListQuery("", "", "3", "5"))
	if err != nil {
		t.Fatalf("query last page: %v", err)
	}
	if last.HasNext || !last.HasPrev {
		t.Errorf("last page pagination = %+v", last)
	}
}

func TestQueryPostCoercesInvalidPaging(t *testing.T) {
	db := newTestDB(t)
	seedPosts(t, db, 12, true, time.Now())

	items, pagination, err := QueryPost(db, NewListQuery("", "", "abc", "-5"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != DefaultLimit || pagination.CurrentPage != DefaultPage || pagination.HasPrev {
		t.Errorf("got %d items with %+v, want the first default page", len(items), pagination)
	}

	items, pagination, err = QueryPost(db, NewListQuery("", "", "1", "200"))
	if err != nil {
		t.Fatalf("query large page: %v", err)
	}
	want := Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 12}
	if len(items) != 12 || pagination != want {
		t.Errorf("limit 200 returned %d items with %+v, want all 12 with %+v", len(items), pagination, want)
	}
}

func TestQueryPostOrdersTiesByInsertion(t *testing.T) {
	db := newTestDB(t)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uint
	for _, title := range []string{"Tie one", "Tie two", "Tie three"} {
		item := samplePost(title)
		item.PublishedDate = at
		ids = append(ids, mustNewPost(t, db, item).ID)
	}

	items, _, err := QueryPost(db, ListQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	for i, item := range items {
		if item.ID != ids[i] {
			t.Fatalf("items[%d].ID = %d, want %d", i, item.ID, ids[i])
		}
	}
}

func TestQueryPostSearch(t *testing.T) {
	db := newTestDB(t)

	rust := samplePost("Learning Rust")
	rust.Tags = []string{"Systems"}
	mustNewPost(t, db, rust)

	design := samplePost("Design Systems That Scale")
	design.Category = models.PostCategoryDesign
	design.Content = "Tokens and components."
	design.Tags = []string{"ui"}
	mustNewPost(t, db, design)

	research := samplePost("Research Notes")
	research.Tags = []string{"R&D", "ops"}
	mustNewPost(t, db, research)

	mustNewPost(t, db, samplePost("Über Design"))

	cases := []struct {
		search   string
		category string
		count    int
	}{
		{"systems", "", 2},
		{"SYSTEMS", models.PostCategoryDesign, 1},
		{"tokens", "", 1},
		{"100%", "", 0},
		{"_", "", 0},
		{"r&d", "", 1},
		{"OPS", "", 1},
		{"[", "", 0},
		{`","`, "", 0},
		{`d", "ops`, "", 0},
		{"ÜBER", "", 1},
		{"über", "", 1},
		{"nothing like this", "", 0},
	}
	for _, c := range cases {
		items, pagination, err := QueryPost(db, NewListQuery(c.search, c.category, "", ""))
		if err != nil {
			t.Fatalf("query %q: %v", c.search, err)
		}
		if len(items) != c.count || pagination.TotalCount != int64(c.count) {
			t.Errorf("search %q in %q matched %d, want %d", c.search, c.category, len(items), c.count)
		}
	}
}

func TestNewPostDerivedFields(t *testing.T) {
	db := newTestDB(t)

	item := samplePost("  Derived Fields  ")
	item.Author.Email = "  Sam@Example.COM "
	item.Tags = []string{" go ", "", "api"}
	item.Content = strings.Repeat("word ", 401)
	item = mustNewPost(t, db, item)

	if item.Title != "Derived Fields" || item.Slug != "derived-fields" {
		t.Errorf("title/slug = %q/%q", item.Title, item.Slug)
	}
	if item.Author.Email != "sam@example.com" {
		t.Errorf("author email = %q, want lower-cased", item.Author.Email)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "go" {
		t.Errorf("tags = %v", item.Tags)
	}
	if item.ReadTime != 3 {
		t.Errorf("readTime = %d, want 3", item.ReadTime)
	}
	if item.PublishedDate.IsZero() {
		t.Error("publishedDate should default to now")
	}
	if item.Likes != 0 || item.Views != 0 {
		t.Errorf("counters = %d/%d, want zero", item.Likes, item.Views)
	}
}

func TestNewPostValidation(t *testing.T) {
	db := newTestDB(t)

	item := samplePost("Bad category")
	item.Category = "Gossip"
	item.Author.Name = ""

	_, err := NewPost(db, item)
	var validationErr *validation.Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want a validation error", err)
	}
	if len(validationErr.Fields) != 2 {
		t.Errorf("fields = %v, want two messages", validationErr.Fields)
	}

	var count int64
	db.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("%d posts persisted, want none", count)
	}
}

func TestEstimateReadTime(t *testing.T) {
	cases := map[string]int{
		"":                          1,
		"one two three":             1,
		strings.Repeat("a ", 200):   1,
		strings.Repeat("a ", 201):   2,
		strings.Repeat("a\n", 1000): 5,
	}
	for content, want := range cases {
		if got := EstimateReadTime(content); got != want {
			t.Errorf("EstimateReadTime(%d words) = %d, want %d", len(strings.Fields(content)), got, want)
		}
	}
}

func TestEditPostSlugAndCounters(t *testing.T) {
	db := newTestDB(t)
	item := mustNewPost(t, db, samplePost("Original Title"))

	if _, err := GetPostBySlug(db, item.Slug); err != nil {
		t.Fatalf("view: %v", err)
	}
	if _, err := LikePost(db, item.ID, LikeActionLike); err != nil {
		t.Fatalf("like: %v", err)
	}

	item.Excerpt = "Changed excerpt."
	item.Views = 0
	item.Likes = 0
	edited, err := EditPost(db, item, "Original Title")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Slug != "original-title" || edited.Excerpt != "Changed excerpt." {
		t.Errorf("edited = %q/%q", edited.Slug, edited.Excerpt)
	}
	if edited.Views != 1 || edited.Likes != 1 {
		t.Errorf("counters = %d views, %d likes; edits must not touch them", edited.Views, edited.Likes)
	}

	mustNewPost(t, db, samplePost("Renamed"))
	edited.Title = "Renamed"
	renamed, err := EditPost(db, edited, "Original Title")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Slug != "renamed-1" {
		t.Errorf("slug = %q, want renamed-1", renamed.Slug)
	}

	if _, err := GetPostBySlug(db, "original-title"); !IsNotFound(err) {
		t.Errorf("old slug lookup error = %v, want not found", err)
	}

	missing := renamed
	missing.ID = 9999
	if _, err := EditPost(db, missing, missing.Title); !IsNotFound(err) {
		t.Errorf("edit missing error = %v, want not found", err)
	}
}

func TestGetPostBySlugCountsViews(t *testing.T) {
	db := newTestDB(t)
	item := mustNewPost(t, db, samplePost("Viewed"))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := GetPostBySlug(db, item.Slug)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("view: %v", err)
		}
	}

	stored, err := GetPost(db, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Views != 2 {
		t.Errorf("views = %d, want 2", stored.Views)
	}

	hidden := samplePost("Hidden")
	hidden.IsPublished = false
	hidden = mustNewPost(t, db, hidden)
	if _, err := GetPostBySlug(db, hidden.Slug); !IsNotFound(err) {
		t.Errorf("unpublished lookup error = %v, want not found", err)
	}
	if stored, _ := GetPost(db, hidden.ID); stored.Views != 0 {
		t.Errorf("unpublished views = %d, want 0", stored.Views)
	}
}

func TestLikePost(t *testing.T) {
	db := newTestDB(t)
	item := mustNewPost(t, db, samplePost("Liked"))

	steps := []struct {
		action string
		want   int
	}{
		{LikeActionLike, 1},
		{LikeActionUnlike, 0},
		{LikeActionUnlike, 0},
		{LikeActionLike, 1},
		{LikeActionLike, 2},
	}
	for i, step := range steps {
		likes, err := LikePost(db, item.ID, step.action)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if likes != step.want {
			t.Errorf("step %d: likes = %d, want %d", i, likes, step.want)
		}
	}

	if _, err := LikePost(db, item.ID, "love"); !errors.Is(err, ErrInvalidLikeAction) {
		t.Errorf("invalid action error = %v", err)
	}
	if _, err := LikePost(db, 9999, LikeActionLike); !IsNotFound(err) {
		t.Errorf("unknown id error = %v, want not found", err)
	}
}

func TestDeletePostReleasesSlug(t *testing.T) {
	db := newTestDB(t)
	item := mustNewPost(t, db, samplePost("Short Lived"))

	if err := DeletePost(db, item); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := DeletePost(db, item); !IsNotFound(err) {
		t.Errorf("second delete error = %v, want not found", err)
	}

	again := mustNewPost(t, db, samplePost("Short Lived"))
	if again.Slug != "short-lived" {
		t.Errorf("slug = %q, want the released short-lived", again.Slug)
	}
}

func TestPostImageRefs(t *testing.T) {
	item := samplePost("Refs")
	item.AdditionalImages = []string{"a.jpg", "", item.Image}

	refs := PostImageRefs(item)
	if len(refs) != 3 {
		t.Errorf("refs = %v, want cover, author image and a.jpg", refs)
	}
}
