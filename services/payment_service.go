package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"bakery/pkg/promptpay"
)

// PaymentService จำลอง payment gateway ทั้งสองทาง:
// PromptPay QR (ของจริง สร้าง payload ตามสเปค) และบัตรเครดิต (mock charge)
type PaymentService struct {
	PromptPayID string
}

func NewPaymentService(promptPayID string) *PaymentService {
	return &PaymentService{PromptPayID: promptPayID}
}

func (s *PaymentService) GeneratePromptPayQR(amount float64) (string, error) {
	return promptpay.QRBase64(s.PromptPayID, amount)
}

// ----- Mock card gateway -----

type ChargeCardReq struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	CardNumber string  `json:"cardNumber" binding:"required"`
	ExpMonth   string  `json:"expMonth" binding:"required"`
	ExpYear    string  `json:"expYear" binding:"required"`
	CVC        string  `json:"cvc" binding:"required"`
	CardName   string  `json:"cardName" binding:"required"`
}

type ChargeCardRes struct {
	PaymentID string `json:"paymentId"`
	CardLast4 string `json:"cardLast4"`
}

// ChargeCard ตรวจบัตรแบบ heuristic (Luhn + วันหมดอายุ + CVC) แล้วออกเลขอ้างอิง
// ไม่มีเงินวิ่งจริง ใช้ demo flow เท่านั้น
func (s *PaymentService) ChargeCard(req *ChargeCardReq) (*ChargeCardRes, error) {
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(number) < 13 || len(number) > 19 || !luhnValid(number) {
		return nil, errors.New("invalid card number")
	}

	month, err := strconv.Atoi(req.ExpMonth)
	if err != nil || month < 1 || month > 12 {
		return nil, errors.New("invalid expiry")
	}
	year, err := strconv.Atoi(req.ExpYear)
	if err != nil {
		return nil, errors.New("invalid expiry")
	}
	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return nil, errors.New("card expired")
	}

	if len(req.CVC) < 3 || len(req.CVC) > 4 {
		return nil, errors.New("invalid cvc")
	}

	return &ChargeCardRes{
		PaymentID: fmt.Sprintf("PAY-%d-%04d", now.Unix(), rand.Intn(10000)),
		CardLast4: number[len(number)-4:],
	}, nil
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
