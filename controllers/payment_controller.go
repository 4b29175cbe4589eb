package controllers

import (
	"bakery/pkg/resp"
	"bakery/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *services.PaymentService
}

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Service: s}
}

type promptPayReq struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// POST /api/payment/promptpay/generate
func (ctl *PaymentController) GeneratePromptPay(c *gin.Context) {
	var req promptPayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	b64, err := ctl.Service.GeneratePromptPayQR(req.Amount)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"qrCodeBase64": b64})
}

// POST /api/payment/card/charge
func (ctl *PaymentController) ChargeCard(c *gin.Context) {
	var req services.ChargeCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	res, err := ctl.Service.ChargeCard(&req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"paymentId": res.PaymentID, "cardLast4": res.CardLast4})
}
