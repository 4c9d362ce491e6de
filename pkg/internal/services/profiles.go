package services

import (
	"strings"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/alpixn/site/pkg/internal/validation"
	"gorm.io/gorm"
)

var profileEditableColumns = []string{"name", "email", "bio", "position", "image"}

func ListProfile(tx *gorm.DB) ([]models.Profile, error) {
	var items []models.Profile
	if err := tx.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

func GetProfile(tx *gorm.DB, id uint) (models.Profile, error) {
	var item models.Profile
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func completeProfile(item models.Profile) models.Profile {
	item.Name = strings.TrimSpace(item.Name)
	item.Email = strings.ToLower(strings.TrimSpace(item.Email))
	item.Bio = strings.TrimSpace(item.Bio)
	item.Position = strings.TrimSpace(item.Position)
	return item
}

func NewProfile(tx *gorm.DB, item models.Profile) (models.Profile, error) {
	item = completeProfile(item)
	if err := validation.Struct(item); err != nil {
		return item, err
	}

	if err := tx.Create(&item).Error; err != nil {
		if IsDuplicateKey(err) {
			return item, ErrEmailTaken
		}
		return item, err
	}
	return item, nil
}

func EditProfile(tx *gorm.DB, item models.Profile) (models.Profile, error) {
	item = completeProfile(item)
	if err := validation.Struct(item); err != nil {
		return item, err
	}

	result := tx.Model(&models.Profile{BaseModel: models.BaseModel{ID: item.ID}}).
		Select(profileEditableColumns).
		Updates(&item)
	if result.Error != nil {
		if IsDuplicateKey(result.Error) {
			return item, ErrEmailTaken
		}
		return item, result.Error
	} else if result.RowsAffected == 0 {
		return item, gorm.ErrRecordNotFound
	}

	return GetProfile(tx, item.ID)
}

func DeleteProfile(tx *gorm.DB, item models.Profile) error {
	result := tx.Delete(&item)
	if result.Error != nil {
		return result.Error
	} else if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
