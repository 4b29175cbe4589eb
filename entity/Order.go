package entity

import (
	"gorm.io/gorm"
)

// Order ไม่มีการลบ การยกเลิกคือสถานะปลายทาง ไม่ใช่ delete
type Order struct {
	gorm.Model
	Email    string  `json:"email"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"` // ต้องเท่ากับ subtotal + shipping เสมอ

	PaymentMethod string `json:"paymentMethod"` // qr_promptpay / card
	PaymentStatus string `gorm:"not null;default:pending" json:"paymentStatus"`
	OrderStatus   string `gorm:"not null;default:pending;index" json:"orderStatus"`

	ReceiverName    string `json:"receiverName"`
	ReceiverPhone   string `json:"receiverPhone"`
	ReceiverAddress string `json:"receiverAddress"`
	Note            string `json:"note,omitempty"`

	SlipImage  string `json:"slipImage,omitempty"`
	PaymentRef string `json:"paymentRef,omitempty"`
	CardLast4  string `json:"cardLast4,omitempty"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload เฉพาะตอนต้องการ user detail

	// preload แค่ตอน detail
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
}
