package services

import (
	"errors"
	"math"

	"bakery/entity"
	"bakery/pkg/orderflow"
	"bakery/repository"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid_or_conflict")
	ErrUseCancelPath     = errors.New("use the cancel endpoint to cancel an order")
	ErrSlipRequired      = errors.New("a validated slip is required for qr_promptpay orders")
	ErrOutOfStock        = errors.New("not enough stock")
)

// StatusNotifier แจ้งจอ admin ว่าสถานะออเดอร์เปลี่ยน (ws hub)
type StatusNotifier interface {
	NotifyStatus(orderID uint, status orderflow.Status, pay orderflow.PaymentStatus)
}

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	SlipRepo    *repository.SlipRepository
	Notifier    StatusNotifier // optional
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, pr *repository.ProductRepository, sr *repository.SlipRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, ProductRepo: pr, SlipRepo: sr}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	ProductID   uint    `json:"productId" binding:"required"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	Email         string        `json:"email"`
	Items         []OrderItemIn `json:"items" binding:"required,min=1"`
	Subtotal      float64       `json:"subtotal"`
	Shipping      float64       `json:"shipping"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"paymentMethod" binding:"required,oneof=qr_promptpay card"`
	PaymentStatus string        `json:"paymentStatus"`
	PaymentRef    string        `json:"paymentId"`
	SlipImage     string        `json:"slipImage"`
	CardLast4     string        `json:"cardLast4"`
	ShippingInfo  struct {
		Fullname string `json:"fullname" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address" binding:"required"`
		Note     string `json:"note"`
	} `json:"shippingInfo"`
}

// Create สร้างออเดอร์จาก checkout
// ราคา/ชื่อ snapshot มาจาก DB ไม่เชื่อตัวเลขที่ client ส่งมา แล้วค่อยเทียบ
// invariant: total == subtotal + shipping และ subtotal == Σ price*quantity
func (s *OrderService) Create(userID uint, email string, req *CreateOrderReq) (uint, error) {
	if len(req.Items) == 0 {
		return 0, errors.New("items is required")
	}

	pay := orderflow.PaymentPending
	var slip *entity.SlipUpload
	switch req.PaymentMethod {
	case "qr_promptpay":
		// สลิปต้องผ่าน slipcheck มาก่อน (path ออกจาก /api/slip/upload เท่านั้น)
		if req.SlipImage == "" {
			return 0, ErrSlipRequired
		}
		found, err := s.SlipRepo.FindUnclaimed(req.SlipImage, userID)
		if err != nil {
			return 0, ErrSlipRequired
		}
		slip = found
	case "card":
		if req.PaymentRef == "" {
			return 0, errors.New("card payment reference is required")
		}
		pay = orderflow.PaymentPaid
	}

	// คิดราคาจากของจริงใน DB
	type line struct {
		productID uint
		name      string
		price     float64
		qty       int
	}
	lines := make([]line, 0, len(req.Items))
	var subtotal float64
	for _, it := range req.Items {
		p, err := s.ProductRepo.GetBasics(it.ProductID)
		if err != nil {
			return 0, errors.New("product not found")
		}
		subtotal += p.Price * float64(it.Quantity)
		lines = append(lines, line{productID: p.ID, name: p.Name, price: p.Price, qty: it.Quantity})
	}
	total := subtotal + req.Shipping

	// client คิดเลขมาไม่ตรง = ข้อมูลเพี้ยน ไม่รับ
	if req.Total != 0 && math.Abs(req.Total-total) > 0.01 {
		return 0, errors.New("order total does not match items")
	}

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Email:           email,
			Subtotal:        subtotal,
			Shipping:        req.Shipping,
			Total:           total,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   string(pay),
			OrderStatus:     string(orderflow.StatusPending),
			ReceiverName:    req.ShippingInfo.Fullname,
			ReceiverPhone:   req.ShippingInfo.Phone,
			ReceiverAddress: req.ShippingInfo.Address,
			Note:            req.ShippingInfo.Note,
			SlipImage:       req.SlipImage,
			PaymentRef:      req.PaymentRef,
			CardLast4:       req.CardLast4,
			UserID:          userID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, l := range lines {
			// ตัด stock ตอนสร้าง ถ้าไม่พอให้ล้มทั้งออเดอร์
			affected, err := s.ProductRepo.AdjustStock(tx, l.productID, -l.qty)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrOutOfStock
			}
			oi := entity.OrderItem{
				OrderID:     order.ID,
				ProductID:   l.productID,
				ProductName: l.name,
				Price:       l.price,
				Quantity:    l.qty,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		if slip != nil {
			affected, err := s.SlipRepo.Claim(tx, slip.ID, order.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrSlipRequired // โดนเคลมไปแล้วระหว่างทาง
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// ----- List & Detail -----

type OrderDetail struct {
	Order *entity.Order      `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) Detail(orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	items, err := s.Repo.GetOrderItems(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	items, err := s.Repo.GetOrderItems(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

func (s *OrderService) ListAll(status string, page, limit int) ([]repository.AdminOrderSummary, int64, error) {
	return s.Repo.ListOrders(status, page, limit)
}
