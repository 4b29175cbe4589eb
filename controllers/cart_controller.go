package controllers

import (
	"strconv"

	"bakery/pkg/resp"
	"bakery/services"
	"bakery/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Service     *services.CartService
	ShippingFee float64
}

func NewCartController(s *services.CartService, shippingFee float64) *CartController {
	return &CartController{Service: s, ShippingFee: shippingFee}
}

// GET /api/cart
func (ctl *CartController) Get(c *gin.Context) {
	out, err := ctl.Service.Get(utils.CurrentUserID(c), ctl.ShippingFee)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"items":    out.Items,
		"subtotal": out.Subtotal,
		"shipping": out.Shipping,
		"total":    out.Total,
	})
}

// POST /api/cart
func (ctl *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Service.Add(utils.CurrentUserID(c), &req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, nil)
}

type updateQtyReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// PUT /api/cart/items/:id
func (ctl *CartController) UpdateQty(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Service.UpdateQty(utils.CurrentUserID(c), uint(id), req.Quantity); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}

// DELETE /api/cart/items/:id
func (ctl *CartController) Remove(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Service.RemoveItem(utils.CurrentUserID(c), uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}

// DELETE /api/cart/clear
func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Service.Clear(utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, nil)
}
