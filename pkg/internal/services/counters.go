package services

import (
	"github.com/alpixn/site/pkg/internal/models"
	"gorm.io/gorm"
)

const (
	LikeActionLike   = "like"
	LikeActionUnlike = "unlike"
)

// takeViewBySlug bumps the view counter of the published record behind slug and
// loads it into dest within one transaction. Concurrent readers never lose an increment.
func takeViewBySlug(tx *gorm.DB, model any, slug string, dest any) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).
			Where("slug = ? AND is_published = ?", slug, true).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if result.Error != nil {
			return result.Error
		} else if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("slug = ?", slug).First(dest).Error
	})
}

// LikePost moves the like counter of a post by one in the direction of action and
// returns the new count. The counter is clamped at zero by the update itself.
func LikePost(tx *gorm.DB, id uint, action string) (int, error) {
	var delta int
	switch action {
	case LikeActionLike:
		delta = 1
	case LikeActionUnlike:
		delta = -1
	default:
		return 0, ErrInvalidLikeAction
	}

	var item models.Post
	err := tx.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("CASE WHEN likes + ? < 0 THEN 0 ELSE likes + ? END", delta, delta))
		if result.Error != nil {
			return result.Error
		} else if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Select("id", "likes").Where("id = ?", id).First(&item).Error
	})

	return item.Likes, err
}
