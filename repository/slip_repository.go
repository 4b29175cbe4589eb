package repository

import (
	"bakery/entity"

	"gorm.io/gorm"
)

type SlipRepository struct{ DB *gorm.DB }

func NewSlipRepository(db *gorm.DB) *SlipRepository { return &SlipRepository{DB: db} }

func (r *SlipRepository) Create(s *entity.SlipUpload) error {
	return r.DB.Create(s).Error
}

// หาสลิปที่ผ่านการตรวจแล้วและยังไม่ถูกใช้กับออเดอร์ไหน
func (r *SlipRepository) FindUnclaimed(path string, userID uint) (*entity.SlipUpload, error) {
	var s entity.SlipUpload
	err := r.DB.Where("path = ? AND user_id = ? AND order_id IS NULL", path, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ผูกสลิปกับออเดอร์ กันสลิปใบเดียวถูกเคลมซ้ำ
func (r *SlipRepository) Claim(tx *gorm.DB, slipID, orderID uint) (int64, error) {
	res := tx.Model(&entity.SlipUpload{}).
		Where("id = ? AND order_id IS NULL", slipID).
		Update("order_id", orderID)
	return res.RowsAffected, res.Error
}
