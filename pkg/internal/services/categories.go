package services

import (
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"gorm.io/gorm"
)

// ListProjectCategory returns the distinct categories in use by published projects.
func ListProjectCategory(tx *gorm.DB) ([]string, error) {
	var categories []string
	err := FilterProjectPublished(tx.Model(&models.Project{})).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error

	return categories, err
}

type ProjectDigest struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	PublishedDate time.Time `json:"publishedDate"`
	Views         int64     `json:"views"`
}

type ProjectStats struct {
	TotalProjects   int64           `json:"totalProjects"`
	TotalViews      int64           `json:"totalViews"`
	TotalCategories int             `json:"totalCategories"`
	RecentProjects  []ProjectDigest `json:"recentProjects"`
}

const RecentProjectCount = 5

func GetProjectStats(tx *gorm.DB) (ProjectStats, error) {
	var stats ProjectStats

	published := FilterProjectPublished(tx.Model(&models.Project{})).Session(&gorm.Session{})

	if err := published.Count(&stats.TotalProjects).Error; err != nil {
		return stats, err
	}
	if err := published.Select("COALESCE(SUM(views), 0)").Scan(&stats.TotalViews).Error; err != nil {
		return stats, err
	}

	categories, err := ListProjectCategory(tx)
	if err != nil {
		return stats, err
	}
	stats.TotalCategories = len(categories)

	stats.RecentProjects = []ProjectDigest{}
	if err := published.
		Select("id", "name", "slug", "published_date", "views").
		Order("published_date DESC").Order("id ASC").
		Limit(RecentProjectCount).
		Scan(&stats.RecentProjects).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
