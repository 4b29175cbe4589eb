package entity

import (
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex" json:"userId"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

type CartItem struct {
	gorm.Model
	Quantity int `json:"quantity"`
	// snapshot ราคา/ชื่อ ณ ตอนหยิบใส่ตะกร้า
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`

	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"`
}
