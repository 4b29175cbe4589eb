package repository

import (
	"bakery/entity"

	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

func (r *ProductRepository) List(category string) ([]entity.Product, error) {
	var products []entity.Product
	q := r.DB.Order("id")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) Get(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// เอาเฉพาะ field ที่ใช้คิดราคา/ตัด stock
func (r *ProductRepository) GetBasics(id uint) (entity.Product, error) {
	var p entity.Product
	err := r.DB.Select("id, name, price, stock").First(&p, id).Error
	return p, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Product{}, id).Error
}

// AdjustStock บวก/ลบ stock แบบ atomic ห้ามติดลบ
// คืน RowsAffected ให้ caller ตัดสินว่าของพอไหม
func (r *ProductRepository) AdjustStock(tx *gorm.DB, productID uint, delta int) (int64, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected, res.Error
}
