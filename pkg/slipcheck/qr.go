package slipcheck

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/rs/zerolog/log"
)

// QR ในสลิปแต่ละธนาคารอยู่คนละตำแหน่ง/ขนาด สแกนเต็มรูปครั้งเดียวมักพลาด
// เลยไล่สแกนซ้ำ: เต็มรูป → 7 บริเวณย่อย → ขยาย 1.5x/2x แลก CPU กับ recall
var scanRegions = [][4]float64{
	{0, 0, 0.5, 0.5},
	{0.5, 0, 0.5, 0.5},
	{0, 0.5, 0.5, 0.5},
	{0.5, 0.5, 0.5, 0.5},
	{0.15, 0.15, 0.7, 0.7},
	{0.25, 0, 0.5, 0.5},
	{0.25, 0.5, 0.5, 0.5},
}

var upscaleFactors = []float64{1.5, 2}

const (
	minRegionPx = 50
	maxScalePx  = 4000
)

func (a *Authenticator) scanForQR(img image.Image) bool {
	if a.qr == nil {
		log.Warn().Msg("slipcheck: qr decoder unavailable, reporting not detected")
		return false
	}

	if _, ok := a.qr.Decode(img); ok {
		return true
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	for _, reg := range scanRegions {
		sw := int(float64(w) * reg[2])
		sh := int(float64(h) * reg[3])
		if sw < minRegionPx || sh < minRegionPx {
			continue
		}
		sx := b.Min.X + int(float64(w)*reg[0])
		sy := b.Min.Y + int(float64(h)*reg[1])
		crop := copyRegion(img, image.Rect(sx, sy, sx+sw, sy+sh))
		if _, ok := a.qr.Decode(crop); ok {
			return true
		}
	}

	for _, f := range upscaleFactors {
		sw := int(float64(w) * f)
		sh := int(float64(h) * f)
		if sw > maxScalePx || sh > maxScalePx {
			continue
		}
		if _, ok := a.qr.Decode(upscale(img, sw, sh)); ok {
			return true
		}
	}

	return false
}

func copyRegion(img image.Image, r image.Rectangle) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Copy(dst, image.Point{}, img, r, xdraw.Src, nil)
	return dst
}

func upscale(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
