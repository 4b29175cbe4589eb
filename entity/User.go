package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // ปลอดภัย
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// Relations — preload เฉพาะตอนจำเป็น
	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-"`
	Cart      *Cart      `gorm:"foreignKey:UserID" json:"-"`
}
