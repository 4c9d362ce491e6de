package services

import (
	"context"
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CollectImageRefs lists every image reference stored by profiles, posts and projects.
func CollectImageRefs(tx *gorm.DB) ([]string, error) {
	var refs []string

	var profiles []models.Profile
	if err := tx.Select("id", "image").Where("image IS NOT NULL").Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, item := range profiles {
		refs = append(refs, lo.FromPtr(item.Image))
	}

	var posts []models.Post
	if err := tx.Select("id", "image", "author_image", "additional_images").Find(&posts).Error; err != nil {
		return nil, err
	}
	for _, item := range posts {
		refs = append(refs, PostImageRefs(item)...)
	}

	var projects []models.Project
	if err := tx.Select("id", "image").Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, item := range projects {
		refs = append(refs, item.Image)
	}

	return lo.Uniq(lo.Compact(refs)), nil
}

// DoAutoUploadCleanup deletes uploaded objects older than grace that no record references.
func DoAutoUploadCleanup(ctx context.Context, tx *gorm.DB, provider storage.Provider, grace time.Duration) (int, error) {
	log.Debug().Msg("Now cleaning up unreferenced uploads...")

	refs, err := CollectImageRefs(tx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if name, ok := provider.Owns(ref); ok {
			referenced[name] = true
		}
	}

	objects, err := provider.List(ctx)
	if err != nil {
		return 0, err
	}

	deadline := time.Now().Add(-grace)
	var count int
	for _, object := range objects {
		if referenced[object.Name] || object.ModifiedAt.After(deadline) {
			continue
		}
		if err := provider.Delete(ctx, object.Name); err != nil {
			log.Warn().Err(err).Str("name", object.Name).Msg("Unable to delete unreferenced upload...")
			continue
		}
		count++
	}

	log.Info().Int("count", count).Msg("Cleaned up unreferenced uploads.")
	return count, nil
}
