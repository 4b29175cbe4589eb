package controllers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"bakery/entity"
	"bakery/pkg/slipcheck"
	"bakery/repository"
	"bakery/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubDecoder struct{ found bool }

func (d stubDecoder) Decode(img image.Image) (string, bool) { return "payload", d.found }

func setupSlipRouter(t *testing.T, qrFound bool) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SlipUpload{}))

	dir := t.TempDir()
	svc := services.NewSlipService(
		slipcheck.New(stubDecoder{found: qrFound}),
		repository.NewSlipRepository(db),
		dir,
	)

	r := gin.New()
	r.POST("/api/slip/upload", NewSlipController(svc).Upload)
	return r, db, dir
}

// PNG สลิปสังเคราะห์: พื้นขาว แนวตั้ง มี noise ให้ไฟล์ใหญ่พอ
func slipPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 900))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	seed := uint32(3)
	for y := 400; y < 500; y++ {
		for x := 20; x < 580; x++ {
			seed = seed*1664525 + 1013904223
			v := uint8(seed >> 24)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartSlip(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="slip.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func postSlip(t *testing.T, r *gin.Engine, contentType string, data []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, mime := multipartSlip(t, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/slip/upload", body)
	req.Header.Set("Content-Type", mime)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestUploadAcceptsValidSlip(t *testing.T) {
	r, db, dir := setupSlipRouter(t, true)

	w, out := postSlip(t, r, "image/png", slipPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, out["success"])

	path, _ := out["path"].(string)
	require.NotEmpty(t, path)
	// ไฟล์ลงถัง slips ใต้ upload dir จริง
	assert.Equal(t, filepath.Join(dir, "slips"), filepath.Dir(path))

	var count int64
	db.Model(&entity.SlipUpload{}).Where("path = ?", path).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUploadRejectsNonImage(t *testing.T) {
	r, db, _ := setupSlipRouter(t, true)

	w, out := postSlip(t, r, "application/pdf", slipPNG(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "select an image file", out["message"])

	var count int64
	db.Model(&entity.SlipUpload{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadRejectsInvalidSlip(t *testing.T) {
	r, db, _ := setupSlipRouter(t, true)

	// ไฟล์เล็กเกินกว่าจะเป็นสลิปจริง
	w, out := postSlip(t, r, "image/png", make([]byte, 500))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file too small, upload a clear slip", out["message"])

	// ไม่ valid = ไม่มี row ไม่มี path หลุดออกไป
	var count int64
	db.Model(&entity.SlipUpload{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadRejectsSlipWithoutQR(t *testing.T) {
	r, _, _ := setupSlipRouter(t, false)

	w, out := postSlip(t, r, "image/png", slipPNG(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no QR code found; bank slips must contain one", out["message"])
}

func TestUploadRequiresFile(t *testing.T) {
	r, _, _ := setupSlipRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/slip/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
