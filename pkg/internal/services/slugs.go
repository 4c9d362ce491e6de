package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	slugStripPattern = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpacePattern = regexp.MustCompile(`\s+`)
)

// Slugify lower-cases title, drops everything outside [a-z0-9] and whitespace,
// joins whitespace runs with a hyphen and trims hyphens at both ends.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func IsSlugTaken(tx *gorm.DB, model any, slug string, excludeID ...uint) (bool, error) {
	query := tx.Model(model).Where("slug = ?", slug)
	if len(excludeID) > 0 && excludeID[0] > 0 {
		query = query.Where("id <> ?", excludeID[0])
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AssignSlug derives a slug from title that no other record of model's kind uses.
// Collisions get -1, -2, ... appended to the base slug until a free one is found.
func AssignSlug(tx *gorm.DB, model any, title string, excludeID ...uint) (string, error) {
	base := Slugify(title)
	if len(base) == 0 {
		return "", ErrEmptySlug
	}

	slug := base
	for counter := 1; ; counter++ {
		taken, err := IsSlugTaken(tx, model, slug, excludeID...)
		if err != nil {
			return slug, fmt.Errorf("unable to check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

const slugAssignAttempts = 3

// saveWithSlug assigns a slug and runs save, assigning again when a concurrent
// writer took the same slug between the probe and the write.
func saveWithSlug(tx *gorm.DB, model any, title string, excludeID uint, apply func(slug string), save func() error) error {
	for attempt := 1; ; attempt++ {
		slug, err := AssignSlug(tx, model, title, excludeID)
		if err != nil {
			return err
		}
		apply(slug)

		err = save()
		if err == nil || !IsDuplicateKey(err) || attempt >= slugAssignAttempts {
			return err
		}
		log.Warn().Str("slug", slug).Int("attempt", attempt).Msg("Slug was taken by a concurrent write, assigning again...")
	}
}
