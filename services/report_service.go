package services

import (
	"fmt"

	"bakery/entity"

	"gorm.io/gorm"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type StatusCount struct {
	OrderStatus string  `json:"orderStatus"`
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
}

type DailySales struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type SalesSummary struct {
	TotalOrders  int64         `json:"totalOrders"`
	TotalRevenue float64       `json:"totalRevenue"` // เฉพาะออเดอร์ที่จ่ายแล้ว
	ByStatus     []StatusCount `json:"byStatus"`
	Daily        []DailySales  `json:"daily"`
}

// Summary ของจอ admin report (ตัวเลขอย่างเดียว ส่วน PDF เป็นเรื่องของ FE)
func (s *ReportService) Summary(days int) (*SalesSummary, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	out := &SalesSummary{}

	if err := s.DB.Model(&entity.Order{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, err
	}

	var paid struct{ Revenue float64 }
	if err := s.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("payment_status = ?", "paid").
		Scan(&paid).Error; err != nil {
		return nil, err
	}
	out.TotalRevenue = paid.Revenue

	if err := s.DB.Model(&entity.Order{}).
		Select("order_status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Group("order_status").
		Scan(&out.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&entity.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= DATE('now', ?)", fmt.Sprintf("-%d days", days)).
		Group("DATE(created_at)").
		Order("day DESC").
		Scan(&out.Daily).Error; err != nil {
		return nil, err
	}

	return out, nil
}
