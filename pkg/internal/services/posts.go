package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/validation"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const WordsPerMinute = 200

var postEditableColumns = []string{
	"title",
	"slug",
	"excerpt",
	"content",
	"additional_content",
	"category",
	"tags",
	"image",
	"additional_images",
	"author_name",
	"author_role",
	"author_image",
	"author_email",
	"language",
	"read_time",
	"published_date",
	"is_published",
}

func FilterPostPublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_published = ?", true)
}

func FilterPostWithCategory(tx *gorm.DB, category string) *gorm.DB {
	if len(category) == 0 {
		return tx
	}
	return tx.Where("category = ?", category)
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	return FilterWithFuzzySearch(tx, probe, []string{"title", "excerpt", "content"}, "tags")
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int) ([]models.Post, error) {
	var items []models.Post
	if err := tx.
		Limit(take).Offset(offset).
		Order("published_date DESC").Order("id ASC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// QueryPost lists one page of published posts matching query.
func QueryPost(tx *gorm.DB, query ListQuery) ([]models.Post, Pagination, error) {
	query = query.normalized()

	tx = FilterPostPublished(tx)
	tx = FilterPostWithCategory(tx, query.Category)
	tx = FilterPostWithFuzzySearch(tx, query.Search)
	tx = tx.Session(&gorm.Session{})

	count, err := CountPost(tx)
	if err != nil {
		return nil, Pagination{}, err
	}

	items, err := ListPost(tx, query.Limit, query.Offset())
	if err != nil {
		return nil, Pagination{}, err
	}

	return items, NewPagination(query, count, len(items)), nil
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

// GetPostBySlug returns a published post and counts the read as a view.
func GetPostBySlug(tx *gorm.DB, slug string) (models.Post, error) {
	var item models.Post
	if err := takeViewBySlug(tx, &models.Post{}, slug, &item); err != nil {
		return item, err
	}
	return item, nil
}

// EstimateReadTime is the reading time of content in whole minutes, never below one.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	return max(1, int(math.Ceil(float64(words)/WordsPerMinute)))
}

func completePost(item models.Post) models.Post {
	item.Title = strings.TrimSpace(item.Title)
	item.Excerpt = strings.TrimSpace(item.Excerpt)
	item.Content = strings.TrimSpace(item.Content)
	item.AdditionalContent = strings.TrimSpace(item.AdditionalContent)
	item.Author.Name = strings.TrimSpace(item.Author.Name)
	item.Author.Role = strings.TrimSpace(item.Author.Role)
	item.Author.Email = strings.ToLower(strings.TrimSpace(item.Author.Email))

	item.Tags = lo.Filter(lo.Map(item.Tags, func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	}), func(tag string, _ int) bool {
		return len(tag) > 0
	})
	if item.AdditionalImages == nil {
		item.AdditionalImages = []string{}
	}

	item.ReadTime = EstimateReadTime(item.Content)
	item.Language = DetectLanguage(item.Content)
	return item
}

func validatePost(item models.Post) error {
	if err := validation.Struct(item); err != nil {
		return err
	}
	if len(Slugify(item.Title)) == 0 {
		return validation.NewError("title must contain at least one letter or digit")
	}
	return nil
}

func NewPost(tx *gorm.DB, item models.Post) (models.Post, error) {
	item = completePost(item)
	if item.PublishedDate.IsZero() {
		item.PublishedDate = time.Now()
	}
	if err := validatePost(item); err != nil {
		return item, err
	}

	log.Debug().Str("title", item.Title).Msg("Saving post record into database...")
	err := saveWithSlug(tx, &models.Post{}, item.Title, 0, func(slug string) {
		item.Slug = slug
	}, func() error {
		return tx.Create(&item).Error
	})

	return item, err
}

// EditPost persists the editable fields of item. The slug is only assigned again
// when the title differs from previousTitle. Counters are never written here.
func EditPost(tx *gorm.DB, item models.Post, previousTitle string) (models.Post, error) {
	item = completePost(item)
	if err := validatePost(item); err != nil {
		return item, err
	}

	save := func() error {
		result := tx.Model(&models.Post{BaseModel: models.BaseModel{ID: item.ID}}).
			Select(postEditableColumns).
			Updates(&item)
		if result.Error != nil {
			return result.Error
		} else if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	var err error
	if item.Title != strings.TrimSpace(previousTitle) {
		err = saveWithSlug(tx, &models.Post{}, item.Title, item.ID, func(slug string) {
			item.Slug = slug
		}, save)
	} else {
		err = save()
	}
	if err != nil {
		return item, err
	}

	return GetPost(tx, item.ID)
}

func DeletePost(tx *gorm.DB, item models.Post) error {
	result := tx.Delete(&item)
	if result.Error != nil {
		return result.Error
	} else if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PostImageRefs lists every image reference a post carries.
func PostImageRefs(item models.Post) []string {
	refs := append([]string{item.Image, item.Author.Image}, item.AdditionalImages...)
	return lo.Uniq(lo.Compact(refs))
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
