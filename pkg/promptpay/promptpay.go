// pkg/promptpay — สร้าง payload EMVCo ของ PromptPay แล้ว encode เป็น QR PNG
// ให้หน้า checkout แสดงตอนเลือกจ่ายแบบโอน
package promptpay

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	idPayloadFormat   = "00"
	idPointOfInit     = "01"
	idMerchantAccount = "29"
	idCurrency        = "53"
	idAmount          = "54"
	idCountry         = "58"
	idCRC             = "63"

	promptPayAID = "A000000677010111"
	currencyTHB  = "764"
)

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// เบอร์มือถือไทย 10 หลัก → 0066XXXXXXXXX (ตัด 0 นำ เติม country code แล้ว pad เป็น 13 หลัก)
func normalizeTarget(target string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, target)
	if len(digits) == 10 && strings.HasPrefix(digits, "0") {
		digits = "66" + digits[1:]
	}
	for len(digits) < 13 {
		digits = "0" + digits
	}
	return digits
}

// Payload สร้าง dynamic QR (ล็อกจำนวนเงิน) สำหรับ target ที่เป็นเบอร์ PromptPay
func Payload(target string, amount float64) (string, error) {
	if target == "" {
		return "", errors.New("promptpay target is required")
	}
	if amount <= 0 {
		return "", errors.New("amount must be positive")
	}

	merchant := tlv("00", promptPayAID) + tlv("01", normalizeTarget(target))

	p := tlv(idPayloadFormat, "01") +
		tlv(idPointOfInit, "12") + // 12 = dynamic, ใช้ครั้งเดียวพร้อมจำนวนเงิน
		tlv(idMerchantAccount, merchant) +
		tlv(idCurrency, currencyTHB) +
		tlv(idAmount, fmt.Sprintf("%.2f", amount)) +
		tlv(idCountry, "TH")

	// CRC คิดคลุมถึง "6304" ที่นำหน้าค่า checksum ด้วย ตามสเปค EMVCo
	p += idCRC + "04"
	return p + fmt.Sprintf("%04X", crc16(p)), nil
}

// CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF)
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// QRBase64 คืน PNG ของ QR เป็น base64 ให้ frontend ใส่ data URI ได้เลย
func QRBase64(target string, amount float64) (string, error) {
	payload, err := Payload(target, amount)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, 512)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
