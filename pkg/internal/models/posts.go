package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Title             string                      `json:"title" gorm:"not null" validate:"required,max=1024"`
	Slug              string                      `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt           string                      `json:"excerpt" validate:"required"`
	Content           string                      `json:"content" validate:"required"`
	AdditionalContent string                      `json:"additionalContent"`
	Category          string                      `json:"category" gorm:"index" validate:"required,post_category"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	Image             string                      `json:"image" validate:"required"`
	AdditionalImages  datatypes.JSONSlice[string] `json:"additionalImages"`
	Author            PostAuthor                  `json:"author" gorm:"embedded;embeddedPrefix:author_"`
	Language          string                      `json:"language"`

	Likes    int   `json:"likes" gorm:"not null;default:0" validate:"min=0"`
	Views    int64 `json:"views" gorm:"not null;default:0" validate:"min=0"`
	ReadTime int   `json:"readTime" gorm:"not null;default:1"`

	PublishedDate time.Time `json:"publishedDate" gorm:"index"`
	IsPublished   bool      `json:"isPublished" gorm:"index"`
}

// PostAuthor only exists inside the post that embeds it.
type PostAuthor struct {
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"required"`
	Image string `json:"image" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}
