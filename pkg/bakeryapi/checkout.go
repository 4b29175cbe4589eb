package bakeryapi

import (
	"errors"
	"strings"

	"bakery/pkg/slipcheck"
)

// ErrSlipRejected หุ้มเหตุผลจาก slipcheck ตอน validate ฝั่ง client
type ErrSlipRejected struct {
	Reason string
}

func (e *ErrSlipRejected) Error() string { return e.Reason }

var errFileTooLarge = errors.New("file too large, max 5MB")

// SubmitQROrder คือ flow โอนผ่าน PromptPay ทั้งชุด:
// ตรวจสลิปในเครื่องก่อน แล้วค่อยอัปโหลด แล้วค่อยสร้าง order
// ถ้าสลิปไม่ผ่าน ห้ามมี request ออกไปแม้แต่ตัวเดียว
func (c *Client) SubmitQROrder(auth *slipcheck.Authenticator, contentType string, slipName string, slipData []byte, req *CreateOrderReq) (uint, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return 0, &ErrSlipRejected{Reason: slipcheck.ReasonNotImage}
	}
	if len(slipData) > slipcheck.MaxFileBytes {
		return 0, errFileTooLarge
	}

	if res := auth.Validate(slipData); !res.Valid {
		return 0, &ErrSlipRejected{Reason: res.Reason}
	}

	path, err := c.UploadSlip(slipName, slipData)
	if err != nil {
		return 0, err
	}

	req.PaymentMethod = "qr_promptpay"
	req.SlipImage = path
	return c.CreateOrder(req)
}
