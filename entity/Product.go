package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `json:"image"`
	Category    string  `gorm:"index" json:"category"` // cake / bakery / drink
	Stock       int     `gorm:"not null;default:0" json:"stock"`

	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	Favorites  []Favorite  `gorm:"foreignKey:ProductID" json:"-"`
}
