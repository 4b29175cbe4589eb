package slipcheck

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ZxingDecoder อ่าน QR ด้วย gozxing (port ของ ZXing)
type ZxingDecoder struct{}

func NewZxingDecoder() *ZxingDecoder { return &ZxingDecoder{} }

func (d *ZxingDecoder) Decode(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}

	// reader มี state ภายใน สร้างใหม่ทุกครั้งกันเรื่องแปลก ๆ ตอนเรียกซ้อน
	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}
