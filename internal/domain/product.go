package domain

import "time"

// Product status values. The field is free-form: the API never rejects other
// values and any status can move to any other via update.
const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
	StatusSold     = "vendido"
)

type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Status      string  `json:"status" gorm:"not null;default:ativo"`
	ImageURL    *string `json:"imageUrl"`
	UserID      uint    `json:"userId" gorm:"not null;index"`
	CategoryID  uint    `json:"categoryId" gorm:"not null"`

	// CategoryName is populated by the list join, never written.
	CategoryName string `json:"categoryName,omitempty" gorm:"->;-:migration"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}
