package entity

import (
	"gorm.io/gorm"
)

type Favorite struct {
	gorm.Model
	UserID    uint    `gorm:"index:idx_fav_user_product,unique" json:"userId"`
	ProductID uint    `gorm:"index:idx_fav_user_product,unique" json:"productId"`
	Product   Product `json:"product"`
}
