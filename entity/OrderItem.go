package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `json:"quantity"`
	// snapshot ณ ตอนสั่ง ไม่อิงราคา/ชื่อปัจจุบันของสินค้า
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"` // preload แค่ตอนต้องการ order detail

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"`
}
