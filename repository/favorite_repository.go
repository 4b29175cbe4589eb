package repository

import (
	"bakery/entity"
	"errors"

	"gorm.io/gorm"
)

type FavoriteRepository struct{ DB *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository { return &FavoriteRepository{DB: db} }

func (r *FavoriteRepository) ListForUser(userID uint) ([]entity.Favorite, error) {
	var favs []entity.Favorite
	err := r.DB.Where("user_id = ?", userID).
		Preload("Product").
		Find(&favs).Error
	return favs, err
}

func (r *FavoriteRepository) Add(userID, productID uint) error {
	var exist entity.Favorite
	err := r.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&exist).Error
	if err == nil {
		return nil // กดซ้ำ = เงียบ ๆ ไป
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(&entity.Favorite{UserID: userID, ProductID: productID}).Error
}

func (r *FavoriteRepository) Remove(userID, productID uint) error {
	return r.DB.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.Favorite{}).Error
}
