package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrEmptySlug         = errors.New("slug source must contain at least one letter or digit")
	ErrInvalidLikeAction = errors.New(`invalid action, use "like" or "unlike"`)
	ErrEmailTaken        = errors.New("email already exists")
)

// IsDuplicateKey reports whether err comes from a unique index rejecting a write.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
