package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCardReq() *ChargeCardReq {
	return &ChargeCardReq{
		Amount:     350,
		CardNumber: "4242 4242 4242 4242", // เลขทดสอบมาตรฐาน ผ่าน Luhn
		ExpMonth:   "12",
		ExpYear:    fmt.Sprintf("%d", time.Now().Year()+2),
		CVC:        "123",
		CardName:   "SOMYING JAIDEE",
	}
}

func TestChargeCard(t *testing.T) {
	svc := NewPaymentService("0931253748")

	res, err := svc.ChargeCard(validCardReq())
	require.NoError(t, err)
	assert.Equal(t, "4242", res.CardLast4)
	assert.True(t, strings.HasPrefix(res.PaymentID, "PAY-"))
}

func TestChargeCardRejectsBadNumber(t *testing.T) {
	svc := NewPaymentService("0931253748")

	req := validCardReq()
	req.CardNumber = "4242424242424241" // Luhn ไม่ผ่าน
	_, err := svc.ChargeCard(req)
	assert.EqualError(t, err, "invalid card number")

	req = validCardReq()
	req.CardNumber = "1234"
	_, err = svc.ChargeCard(req)
	assert.EqualError(t, err, "invalid card number")
}

func TestChargeCardRejectsExpired(t *testing.T) {
	svc := NewPaymentService("0931253748")

	req := validCardReq()
	req.ExpYear = fmt.Sprintf("%d", time.Now().Year()-1)
	_, err := svc.ChargeCard(req)
	assert.EqualError(t, err, "card expired")

	req = validCardReq()
	req.ExpMonth = "13"
	_, err = svc.ChargeCard(req)
	assert.EqualError(t, err, "invalid expiry")
}

func TestChargeCardRejectsBadCVC(t *testing.T) {
	svc := NewPaymentService("0931253748")

	req := validCardReq()
	req.CVC = "12"
	_, err := svc.ChargeCard(req)
	assert.EqualError(t, err, "invalid cvc")
}
