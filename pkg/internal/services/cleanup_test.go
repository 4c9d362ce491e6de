package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/samber/lo"
)

func TestDoAutoUploadCleanup(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	dir := t.TempDir()
	provider, err := storage.NewLocalProvider(dir, "http://localhost:5000/uploads")
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	old := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"profile-kept.jpg", "blog-kept.jpg", "orphan-old.jpg", "orphan-new.jpg"} {
		if err := provider.Save(ctx, name, []byte("x"), "image/jpeg"); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		if name != "orphan-new.jpg" {
			os.Chtimes(filepath.Join(dir, name), old, old)
		}
	}

	profile := sampleProfile("cleanup@example.com")
	profile.Image = lo.ToPtr("profile-kept.jpg")
	if _, err := NewProfile(db, profile); err != nil {
		t.Fatalf("profile: %v", err)
	}
	post := samplePost("Cleanup")
	post.AdditionalImages = []string{provider.URL("blog-kept.jpg")}
	mustNewPost(t, db, post)

	count, err := DoAutoUploadCleanup(ctx, db, provider, time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if count != 1 {
		t.Errorf("deleted %d files, want 1", count)
	}

	objects, _ := provider.List(ctx)
	names := lo.Map(objects, func(item storage.Object, _ int) string { return item.Name })
	for _, name := range []string{"profile-kept.jpg", "blog-kept.jpg", "orphan-new.jpg"} {
		if !lo.Contains(names, name) {
			t.Errorf("%s was removed", name)
		}
	}
	if lo.Contains(names, "orphan-old.jpg") {
		t.Error("orphan-old.jpg survived")
	}
}
