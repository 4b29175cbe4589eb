// pkg/slipcheck — ตรวจว่ารูปที่ลูกค้าอัปโหลดพอจะเป็นสลิปโอนเงินได้ไหม
// ก่อนยอมรับเข้าคิวตรวจสอบออเดอร์
package slipcheck

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"
)

// เหตุผลที่ปฏิเสธ ส่งกลับให้ผู้ใช้ตรง ๆ
const (
	ReasonNotImage       = "select an image file"
	ReasonFileTooSmall   = "file too small, upload a clear slip"
	ReasonUnreadable     = "cannot read image"
	ReasonImageTooSmall  = "image too small"
	ReasonNotPortrait    = "receipt should be portrait orientation"
	ReasonDarkBackground = "background doesn't look like a receipt"
	ReasonNoQR           = "no QR code found; bank slips must contain one"
)

const (
	// MaxFileBytes คือเพดานขนาดไฟล์ ผู้เรียกต้องเช็คก่อนส่งเข้ามา
	MaxFileBytes = 5 << 20

	minFileBytes    = 10_000
	minWidth        = 200
	minHeight       = 300
	minAspectRatio  = 0.8
	brightnessFloor = 150
	minBrightPoints = 2
	sampleInset     = 10
)

// Result คือคำตัดสินต่อรูปหนึ่งรูป ใช้ค่านี้เปิด/ปิดปุ่มยืนยันชำระเงิน
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// QrDecoder เป็น capability ที่ฉีดเข้ามา ถ้าโหลดไม่ได้ให้ส่ง nil
// แล้วขั้นตอนสแกน QR จะถือว่า "ไม่เจอ" แทนที่จะพัง
type QrDecoder interface {
	Decode(img image.Image) (string, bool)
}

type Authenticator struct {
	qr QrDecoder
}

func New(qr QrDecoder) *Authenticator { return &Authenticator{qr: qr} }

func reject(reason string) Result { return Result{Valid: false, Reason: reason} }

// Validate ไล่เช็คจากถูกสุด/ชัวร์สุดก่อน แล้วหยุดทันทีที่เจอข้อแรกที่ไม่ผ่าน
// ไม่มีทาง panic ออกไปหาคนเรียก อะไรที่อ่านไม่ได้ = invalid
func (a *Authenticator) Validate(data []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("slipcheck: recovered while validating")
			res = reject(ReasonUnreadable)
		}
	}()

	if len(data) < minFileBytes {
		return reject(ReasonFileTooSmall)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return reject(ReasonUnreadable)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < minWidth || h < minHeight {
		return reject(ReasonImageTooSmall)
	}

	// สลิปจากแอปธนาคารเป็นแนวตั้งเสมอ
	if float64(h)/float64(w) < minAspectRatio {
		return reject(ReasonNotPortrait)
	}

	if a.countBrightSamples(img) < minBrightPoints {
		return reject(ReasonDarkBackground)
	}

	if !a.scanForQR(img) {
		return reject(ReasonNoQR)
	}

	return Result{Valid: true}
}

// สุ่ม 5 จุด: สี่มุม (ร่นเข้ามา 10px) + กลางขอบบน
// สลิปมีพื้นหลังขาว/อ่อน อย่างน้อย 2 จุดต้องสว่าง
func (a *Authenticator) countBrightSamples(img image.Image) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	points := [][2]int{
		{sampleInset, sampleInset},
		{w - sampleInset, sampleInset},
		{w / 2, sampleInset},
		{sampleInset, h - sampleInset},
		{w - sampleInset, h - sampleInset},
	}

	bright := 0
	for _, p := range points {
		x := b.Min.X + clamp(p[0], 0, w-1)
		y := b.Min.Y + clamp(p[1], 0, h-1)
		r, g, bl, _ := img.At(x, y).RGBA()
		// RGBA คืนค่า 16-bit ย่อกลับเป็น 0-255 ก่อนเทียบ threshold
		brightness := (r/257 + g/257 + bl/257) / 3
		if brightness > brightnessFloor {
			bright++
		}
	}
	return bright
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
