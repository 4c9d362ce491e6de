package models

type Profile struct {
	BaseModel

	Name     string  `json:"name" gorm:"not null" validate:"required,max=100"`
	Email    string  `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Bio      string  `json:"bio" validate:"max=500"`
	Position string  `json:"position" gorm:"not null" validate:"required,max=100"`
	Image    *string `json:"image"`

	ImageURL *string `json:"imageUrl" gorm:"-"`
}
