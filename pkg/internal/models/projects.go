package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	BaseModel

	Name         string                                 `json:"name" gorm:"not null" validate:"required,max=100"`
	Slug         string                                 `json:"slug" gorm:"uniqueIndex;not null"`
	Category     string                                 `json:"category" gorm:"index" validate:"required,project_category"`
	Tags         datatypes.JSONSlice[string]            `json:"tags" validate:"dive,max=30"`
	Image        string                                 `json:"image" validate:"required,image_ref"`
	Summary      string                                 `json:"summary" validate:"required,max=500"`
	Content      string                                 `json:"content" validate:"required,max=10000"`
	Year         int                                    `json:"year" gorm:"index" validate:"required,project_year"`
	Client       string                                 `json:"client" validate:"max=100"`
	Rating       int                                    `json:"rating" gorm:"not null;default:5" validate:"min=1,max=5"`
	Views        int64                                  `json:"views" gorm:"not null;default:0" validate:"min=0"`
	LiveURL      string                                 `json:"liveUrl" validate:"omitempty,http_url"`
	GithubURL    string                                 `json:"githubUrl" validate:"omitempty,github_url"`
	Technologies datatypes.JSONSlice[ProjectTechnology] `json:"technologies" validate:"dive"`
	Status       string                                 `json:"status" gorm:"not null;default:Completed" validate:"required,project_status"`

	PublishedDate time.Time `json:"publishedDate" gorm:"index"`
	IsPublished   bool      `json:"isPublished" gorm:"index"`
	Featured      bool      `json:"featured" gorm:"index"`

	FormattedDate string `json:"formattedDate" gorm:"-"`
	ReadingTime   string `json:"readingTime" gorm:"-"`
}

type ProjectTechnology struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"omitempty,technology_category"`
}

func (v *Project) AfterFind(tx *gorm.DB) error {
	v.Complete()
	return nil
}

func (v *Project) AfterSave(tx *gorm.DB) error {
	v.Complete()
	return nil
}

// Complete fills the presentation-only fields derived from stored ones.
func (v *Project) Complete() {
	v.FormattedDate = v.PublishedDate.Format("January 2, 2006")
	minutes := int(math.Ceil(float64(len(strings.Split(v.Content, " "))) / 200))
	v.ReadingTime = fmt.Sprintf("%d min read", minutes)
}
