// services/order_transitions.go
package services

import (
	"bakery/pkg/orderflow"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ----- Admin actions -----

// Actions คืนปุ่มที่กดได้จากสถานะปัจจุบันของออเดอร์
func (s *OrderService) Actions(orderID uint) ([]orderflow.Action, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return orderflow.ActionsFor(orderflow.Status(o.OrderStatus)), nil
}

// UpdateStatus เปลี่ยนสถานะตามตาราง transition
// guard สองชั้น: เช็คตารางก่อน แล้ว compare-and-swap กับสถานะเดิมใน DB
// ถ้า affected == 0 แปลว่ามีคนแย่งเปลี่ยนไปก่อน ถือว่า conflict ไม่แตะอะไรเพิ่ม
func (s *OrderService) UpdateStatus(orderID uint, to orderflow.Status, pay *orderflow.PaymentStatus) error {
	if to == orderflow.StatusCancelled {
		// ยกเลิกต้องไปทาง Cancel เพราะมีเรื่องคืน stock พ่วงอยู่
		return ErrUseCancelPath
	}
	if pay != nil && !orderflow.ValidPaymentStatus(*pay) {
		return ErrInvalidTransition
	}

	var from orderflow.Status
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return ErrOrderNotFound
		}
		from = orderflow.Status(o.OrderStatus)

		if !orderflow.CanTransition(from, to) {
			return ErrInvalidTransition
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to, pay)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(orderID, to, pay)
	return nil
}

// Cancel ยกเลิกออเดอร์ + คืน stock ใน transaction เดียว
// paymentStatus ไม่ถูกแตะ (refund/void เป็นเรื่องของช่องทางจ่ายเงิน)
func (s *OrderService) Cancel(orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return ErrOrderNotFound
		}
		from := orderflow.Status(o.OrderStatus)

		if !orderflow.CanCancel(from) {
			return ErrInvalidTransition
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, orderflow.StatusCancelled, nil)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}

		// คืน stock ทุกรายการของออเดอร์
		items, err := s.Repo.GetOrderItems(tx, o.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if _, err := s.ProductRepo.AdjustStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(orderID, orderflow.StatusCancelled, nil)
	return nil
}

// แจ้งหลัง commit เท่านั้น ออเดอร์ที่ rollback ไปห้ามหลุดขึ้นจอ
func (s *OrderService) notify(orderID uint, status orderflow.Status, pay *orderflow.PaymentStatus) {
	if s.Notifier == nil {
		return
	}
	p := orderflow.PaymentStatus("")
	if pay != nil {
		p = *pay
	}
	s.Notifier.NotifyStatus(orderID, status, p)
	log.Info().Uint("orderId", orderID).Str("status", string(status)).Msg("order status changed")
}
