package repository

import (
	"time"

	"bakery/entity"
	"bakery/pkg/orderflow"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders (CRUD หลัก) ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(db *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := db.Model(&entity.OrderItem{}).
		Select("id, quantity, product_name, price, product_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// GET /api/orders (ลูกค้า) → รายการ order ของ user
type OrderSummary struct {
	ID            uint      `json:"id"`
	Total         float64   `json:"total"`
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, total, order_status, payment_status, payment_method, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// GET /api/orders (admin) → ทุกออเดอร์ กรองตามสถานะได้
type AdminOrderSummary struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	ReceiverName  string    `json:"receiverName"`
	Total         float64   `json:"total"`
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	SlipImage     string    `json:"slipImage"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(status string, page, limit int) ([]AdminOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	count := r.DB.Model(&entity.Order{})
	if status != "" {
		count = count.Where("order_status = ?", status)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.DB.Model(&entity.Order{}).
		Select("id, email, receiver_name, total, order_status, payment_status, payment_method, slip_image, created_at")
	if status != "" {
		q = q.Where("order_status = ?", status)
	}
	var out []AdminOrderSummary
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// PUT /api/orders/:id/status → อัปเดตสถานะ (มี guard)
// compare-and-swap กับสถานะเดิม กันสอง request แข่งกัน
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to orderflow.Status, pay *orderflow.PaymentStatus) (int64, error) {
	updates := map[string]any{"order_status": string(to)}
	if pay != nil {
		updates["payment_status"] = string(*pay)
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status = ?", orderID, string(from)).
		Updates(updates)
	return res.RowsAffected, res.Error
}
