package entity

import (
	"gorm.io/gorm"
)

// SlipUpload เก็บเฉพาะสลิปที่ผ่าน slipcheck แล้วเท่านั้น
// ตอนสร้างออเดอร์ qr_promptpay จะเช็คว่า path มาจากตารางนี้จริง
type SlipUpload struct {
	gorm.Model
	Path      string `gorm:"uniqueIndex;not null" json:"path"`
	SizeBytes int64  `json:"sizeBytes"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	// ผูกกับออเดอร์เมื่อ checkout สำเร็จ กันสลิปใบเดียวใช้ซ้ำหลายออเดอร์
	OrderID *uint `gorm:"index" json:"orderId,omitempty"`
}
