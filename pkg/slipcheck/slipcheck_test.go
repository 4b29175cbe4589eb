package slipcheck

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LCG แบบง่าย ให้ noise ซ้ำได้ทุกครั้งที่รัน
type rng struct{ state uint32 }

func (r *rng) next() uint8 {
	r.state = r.state*1664525 + 1013904223
	return uint8(r.state >> 24)
}

// วาดสลิปปลอมขึ้นมา: พื้นหลังตามสี bg, แถบ noise กลางรูปเพื่อดันขนาดไฟล์
// ให้พ้น floor 10,000 bytes (รูปขาวล้วน png บีบเหลือไม่กี่ร้อย byte)
// และ QR จริงจาก go-qrcode ถ้าขอ
func makeSlip(t *testing.T, w, h int, withQR bool, bg color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	// แถบ noise วางช่วงกลาง ไม่ทับมุมที่ใช้เช็คความสว่าง ไม่ทับ QR
	r := &rng{state: 42}
	y0, y1 := h*55/100, h*70/100
	for y := y0; y < y1; y++ {
		for x := 20; x < w-20; x++ {
			v := r.next()
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}

	if withQR {
		qr, err := qrcode.New("00020101021229370016A000000677010111011300669312537485303764540650.005802TH6304ABCD", qrcode.Medium)
		require.NoError(t, err)
		qrImg := qr.Image(w / 2)
		off := image.Pt((w-qrImg.Bounds().Dx())/2, h/10)
		draw.Draw(img, qrImg.Bounds().Add(off), qrImg, image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var white = color.RGBA{255, 255, 255, 255}

func newAuthenticator() *Authenticator { return New(NewZxingDecoder()) }

func TestValidSlipPasses(t *testing.T) {
	data := makeSlip(t, 600, 900, true, white)
	require.GreaterOrEqual(t, len(data), minFileBytes, "fixture must clear the size floor")

	res := newAuthenticator().Validate(data)
	assert.True(t, res.Valid, "reason: %s", res.Reason)
	assert.Empty(t, res.Reason)
}

func TestValidateIsIdempotent(t *testing.T) {
	data := makeSlip(t, 600, 900, true, white)
	a := newAuthenticator()
	first := a.Validate(data)
	second := a.Validate(data)
	assert.Equal(t, first, second)
}

func TestRejectsMissingQR(t *testing.T) {
	data := makeSlip(t, 600, 900, false, white)
	res := newAuthenticator().Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNoQR, res.Reason)
}

func TestRejectsSmallFile(t *testing.T) {
	res := newAuthenticator().Validate(make([]byte, minFileBytes-1))
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonFileTooSmall, res.Reason)
}

func TestRejectsCorruptBytes(t *testing.T) {
	// ใหญ่พอจะผ่านด่านขนาดไฟล์ แต่ decode ไม่ได้
	r := &rng{state: 7}
	junk := make([]byte, minFileBytes+2_000)
	for i := range junk {
		junk[i] = r.next()
	}
	res := newAuthenticator().Validate(junk)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonUnreadable, res.Reason)
}

func TestRejectsTinyImage(t *testing.T) {
	// 150x250 ต่ำกว่า 200x300 แต่ต้องอัด noise ทั้งรูปให้ไฟล์พ้น floor ก่อน
	img := image.NewRGBA(image.Rect(0, 0, 150, 250))
	r := &rng{state: 1}
	for y := 0; y < 250; y++ {
		for x := 0; x < 150; x++ {
			v := r.next()
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.GreaterOrEqual(t, buf.Len(), minFileBytes)

	res := newAuthenticator().Validate(buf.Bytes())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonImageTooSmall, res.Reason)
}

func TestRejectsLandscape(t *testing.T) {
	data := makeSlip(t, 900, 600, true, white)
	res := newAuthenticator().Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotPortrait, res.Reason)
}

func TestSquareIsNotLandscape(t *testing.T) {
	// h/w = 1.0 ยังนับเป็นแนวตั้งพอ (threshold 0.8)
	data := makeSlip(t, 600, 600, true, white)
	res := newAuthenticator().Validate(data)
	assert.True(t, res.Valid, "reason: %s", res.Reason)
}

func TestRejectsDarkBackground(t *testing.T) {
	data := makeSlip(t, 600, 900, true, color.RGBA{40, 40, 40, 255})
	res := newAuthenticator().Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonDarkBackground, res.Reason)
}

func TestNilDecoderReportsNoQR(t *testing.T) {
	// decoder หายไป = ตอบ "ไม่เจอ QR" ไม่ใช่ panic หรือปล่อยผ่าน
	data := makeSlip(t, 600, 900, true, white)
	res := New(nil).Validate(data)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNoQR, res.Reason)
}

func TestCountBrightSamples(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 400))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)
	a := newAuthenticator()
	assert.Equal(t, 5, a.countBrightSamples(img))

	// ทามุมบนสองมุม + กลางขอบบนให้มืด เหลือสว่างแค่ 2 จุด ยังพอผ่าน
	dark := color.RGBA{30, 30, 30, 255}
	draw.Draw(img, image.Rect(0, 0, 300, 30), &image.Uniform{dark}, image.Point{}, draw.Src)
	assert.Equal(t, 2, a.countBrightSamples(img))
}
