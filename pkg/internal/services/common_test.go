package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/alpixn/site/pkg/internal/config"
	"github.com/alpixn/site/pkg/internal/database"
	"github.com/alpixn/site/pkg/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewGorm(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "site.db"),
	}, false)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.RunMigration(db); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func samplePost(title string) models.Post {
	return models.Post{
		Title:    title,
		Excerpt:  "A short excerpt.",
		Content:  "Artificial intelligence is changing how small teams build products every day.",
		Category: models.PostCategoryAI,
		Tags:     []string{"ai", "automation"},
		Image:    "https://images.example.com/cover.jpg",
		Author: models.PostAuthor{
			Name:  "Sam Doe",
			Role:  "Engineer",
			Image: "https://images.example.com/sam.jpg",
		},
		IsPublished: true,
	}
}

func sampleProject(name string) models.Project {
	return models.Project{
		Name:        name,
		Category:    "FinTech",
		Tags:        []string{"payments"},
		Image:       "https://images.example.com/project.jpg",
		Summary:     "A payments dashboard.",
		Content:     "We built a payments dashboard for a regional bank.",
		Year:        2023,
		IsPublished: true,
	}
}

func mustNewPost(t *testing.T, db *gorm.DB, item models.Post) models.Post {
	t.Helper()
	item, err := NewPost(db, item)
	if err != nil {
		t.Fatalf("create post %q: %v", item.Title, err)
	}
	return item
}

func mustNewProject(t *testing.T, db *gorm.DB, item models.Project) models.Project {
	t.Helper()
	item, err := NewProject(db, item)
	if err != nil {
		t.Fatalf("create project %q: %v", item.Name, err)
	}
	return item
}

func seedPosts(t *testing.T, db *gorm.DB, count int, published bool, base time.Time) []models.Post {
	t.Helper()
	var items []models.Post
	for i := 0; i < count; i++ {
		item := samplePost(fmt.Sprintf("Seeded post %d %v", i+1, published))
		item.IsPublished = published
		item.PublishedDate = base.Add(-time.Duration(i) * time.Hour)
		items = append(items, mustNewPost(t, db, item))
	}
	return items
}
