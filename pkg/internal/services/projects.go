package services

import (
	"strings"
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/validation"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const DefaultProjectRating = 5

var projectEditableColumns = []string{
	"name",
	"slug",
	"category",
	"tags",
	"image",
	"summary",
	"content",
	"year",
	"client",
	"rating",
	"live_url",
	"github_url",
	"technologies",
	"status",
	"published_date",
	"is_published",
	"featured",
}

func FilterProjectPublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_published = ?", true)
}

func FilterProjectWithCategory(tx *gorm.DB, category string) *gorm.DB {
	if len(category) == 0 {
		return tx
	}
	return tx.Where("category = ?", category)
}

func FilterProjectWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	return FilterWithFuzzySearch(tx, probe, []string{"name", "summary", "content"}, "tags")
}

func CountProject(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Project{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListProject(tx *gorm.DB, take int, offset int) ([]models.Project, error) {
	var items []models.Project
	if err := tx.
		Limit(take).Offset(offset).
		Order("published_date DESC").Order("id ASC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// QueryProject lists one page of published projects matching query.
func QueryProject(tx *gorm.DB, query ListQuery) ([]models.Project, Pagination, error) {
	query = query.normalized()

	tx = FilterProjectPublished(tx)
	tx = FilterProjectWithCategory(tx, query.Category)
	tx = FilterProjectWithFuzzySearch(tx, query.Search)
	tx = tx.Session(&gorm.Session{})

	count, err := CountProject(tx)
	if err != nil {
		return nil, Pagination{}, err
	}

	items, err := ListProject(tx, query.Limit, query.Offset())
	if err != nil {
		return nil, Pagination{}, err
	}

	return items, NewPagination(query, count, len(items)), nil
}

func GetProject(tx *gorm.DB, id uint) (models.Project, error) {
	var item models.Project
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

// GetProjectBySlug returns a published project and counts the read as a view.
func GetProjectBySlug(tx *gorm.DB, slug string) (models.Project, error) {
	var item models.Project
	if err := takeViewBySlug(tx, &models.Project{}, slug, &item); err != nil {
		return item, err
	}
	return item, nil
}

// NormalizeProjectTags lower-cases and trims tags, dropping blanks and duplicates.
func NormalizeProjectTags(tags []string) []string {
	return lo.Uniq(lo.Filter(lo.Map(tags, func(tag string, _ int) string {
		return strings.ToLower(strings.TrimSpace(tag))
	}), func(tag string, _ int) bool {
		return len(tag) > 0
	}))
}

func completeProject(item models.Project) models.Project {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Summary = strings.TrimSpace(item.Summary)
	item.Content = strings.TrimSpace(item.Content)
	item.Client = strings.TrimSpace(item.Client)
	item.LiveURL = strings.TrimSpace(item.LiveURL)
	item.GithubURL = strings.TrimSpace(item.GithubURL)
	item.Tags = NormalizeProjectTags(item.Tags)

	if item.Technologies == nil {
		item.Technologies = []models.ProjectTechnology{}
	}
	if item.Rating == 0 {
		item.Rating = DefaultProjectRating
	}
	if len(item.Status) == 0 {
		item.Status = models.ProjectStatusCompleted
	}
	return item
}

func validateProject(item models.Project) error {
	if err := validation.Struct(item); err != nil {
		return err
	}
	if len(Slugify(item.Name)) == 0 {
		return validation.NewError("name must contain at least one letter or digit")
	}
	return nil
}

func NewProject(tx *gorm.DB, item models.Project) (models.Project, error) {
	item = completeProject(item)
	if item.PublishedDate.IsZero() {
		item.PublishedDate = time.Now()
	}
	if err := validateProject(item); err != nil {
		return item, err
	}

	log.Debug().Str("name", item.Name).Msg("Saving project record into database...")
	err := saveWithSlug(tx, &models.Project{}, item.Name, 0, func(slug string) {
		item.Slug = slug
	}, func() error {
		return tx.Create(&item).Error
	})

	return item, err
}

// EditProject persists the editable fields of item. The slug is only assigned
// again when the name differs from previousName. Views are never written here.
func EditProject(tx *gorm.DB, item models.Project, previousName string) (models.Project, error) {
	item = completeProject(item)
	if err := validateProject(item); err != nil {
		return item, err
	}

	save := func() error {
		result := tx.Model(&models.Project{BaseModel: models.BaseModel{ID: item.ID}}).
			Select(projectEditableColumns).
			Updates(&item)
		if result.Error != nil {
			return result.Error
		} else if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	var err error
	if item.Name != strings.TrimSpace(previousName) {
		err = saveWithSlug(tx, &models.Project{}, item.Name, item.ID, func(slug string) {
			item.Slug = slug
		}, save)
	} else {
		err = save()
	}
	if err != nil {
		return item, err
	}

	return GetProject(tx, item.ID)
}

func DeleteProject(tx *gorm.DB, item models.Project) error {
	result := tx.Delete(&item)
	if result.Error != nil {
		return result.Error
	} else if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRelatedProject returns published projects sharing category, newest first.
func ListRelatedProject(tx *gorm.DB, category string, excludeID uint, take int) ([]models.Project, error) {
	if take <= 0 {
		take = 6
	}

	tx = FilterProjectPublished(tx).Where("category = ?", category)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}

	return ListProject(tx, take, 0)
}
