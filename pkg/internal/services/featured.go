package services

import (
	"github.com/alpixn/site/pkg/internal/models"
	"gorm.io/gorm"
)

const DefaultFeaturedCount = 3

// ListFeaturedProject returns the most recently published featured projects.
func ListFeaturedProject(tx *gorm.DB, count int) ([]models.Project, error) {
	if count <= 0 {
		count = DefaultFeaturedCount
	}

	tx = FilterProjectPublished(tx).Where("featured = ?", true)
	return ListProject(tx, count, 0)
}
