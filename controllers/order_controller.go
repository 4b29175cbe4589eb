package controllers

import (
	"errors"
	"strconv"

	"bakery/pkg/orderflow"
	"bakery/pkg/resp"
	"bakery/services"
	"bakery/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /api/orders
func (ctl *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	email := req.Email
	if email == "" {
		email = utils.CurrentEmail(c)
	}

	orderID, err := ctl.Service.Create(utils.CurrentUserID(c), email, &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"orderId": orderID})
}

// GET /api/orders/:id → {success, order, items}
// admin ดูได้ทุกใบ ลูกค้าดูได้เฉพาะของตัวเอง
func (ctl *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var detail *services.OrderDetail
	var err error
	if utils.CurrentRole(c) == "admin" {
		detail, err = ctl.Service.Detail(uint(id))
	} else {
		detail, err = ctl.Service.DetailForUser(utils.CurrentUserID(c), uint(id))
	}
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}

	resp.OK(c, gin.H{
		"order":   detail.Order,
		"items":   detail.Items,
		"actions": orderflow.ActionsFor(orderflow.Status(detail.Order.OrderStatus)),
	})
}

// GET /api/orders — admin เห็นทุกใบ (?status=&page=&limit=) ลูกค้าเห็นของตัวเอง
func (ctl *OrderController) List(c *gin.Context) {
	if utils.CurrentRole(c) == "admin" {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		items, total, err := ctl.Service.ListAll(c.Query("status"), page, limit)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		resp.OK(c, gin.H{"orders": items, "total": total, "page": page, "limit": limit})
		return
	}

	items, err := ctl.Service.ListForUser(utils.CurrentUserID(c), 50)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": items})
}

type updateStatusReq struct {
	OrderStatus   string `json:"orderStatus" binding:"required"`
	PaymentStatus string `json:"paymentStatus"`
}

// PUT /api/orders/:id/status
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	to := orderflow.Status(req.OrderStatus)
	if !orderflow.ValidStatus(to) {
		resp.BadRequest(c, "unknown order status")
		return
	}

	var pay *orderflow.PaymentStatus
	if req.PaymentStatus != "" {
		p := orderflow.PaymentStatus(req.PaymentStatus)
		pay = &p
	}

	if err := ctl.Service.UpdateStatus(uint(id), to, pay); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrUseCancelPath):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, nil)
}

// PUT /api/orders/:id/cancel — ไม่มี body ฝั่งนี้จัดการคืน stock เอง
func (ctl *OrderController) Cancel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := ctl.Service.Cancel(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, nil)
}
