package bakeryapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery/pkg/slipcheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okDecoder struct{}

func (okDecoder) Decode(img image.Image) (string, bool) { return "payload", true }

// รูปสลิปสังเคราะห์ที่ผ่านทุกด่านของ slipcheck (คู่กับ okDecoder)
func passingSlip(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 600, 900))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	// noise กลางรูปดันขนาดไฟล์ให้พ้น floor
	seed := uint32(9)
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

func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// สลิปไม่ผ่าน = ห้ามมี request ออกไปเลยแม้แต่ตัวเดียว
func TestSubmitQROrderValidatesBeforeNetwork(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the server")
	})
	c := New(srv.URL)
	auth := slipcheck.New(okDecoder{})
	order := &CreateOrderReq{Items: []OrderItemIn{{ProductID: 1, Quantity: 1}}}

	// ไฟล์เล็กเกิน
	_, err := c.SubmitQROrder(auth, "image/png", "slip.png", make([]byte, 100), order)
	var rej *ErrSlipRejected
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, slipcheck.ReasonFileTooSmall, rej.Reason)

	// ไม่ใช่รูป
	_, err = c.SubmitQROrder(auth, "application/pdf", "slip.pdf", passingSlip(t), order)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, slipcheck.ReasonNotImage, rej.Reason)

	// ใหญ่เกินเพดาน
	_, err = c.SubmitQROrder(auth, "image/png", "slip.png", make([]byte, slipcheck.MaxFileBytes+1), order)
	assert.ErrorIs(t, err, errFileTooLarge)

	assert.Equal(t, 0, *hits)
}

func TestSubmitQROrderHappyPath(t *testing.T) {
	var gotOrder CreateOrderReq
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/slip/upload":
			require.NoError(t, r.ParseMultipartForm(10<<20))
			_, fh, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "slip.png", fh.Filename)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "path": "uploads/slips/abc.png"})
		case "/api/orders":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotOrder))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "orderId": 7})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.SubmitQROrder(slipcheck.New(okDecoder{}), "image/png", "slip.png", passingSlip(t),
		&CreateOrderReq{Items: []OrderItemIn{{ProductID: 1, Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	// อัปโหลดก่อน แล้วค่อยสร้างออเดอร์ด้วย path ที่ server ออกให้
	assert.Equal(t, []string{"POST /api/slip/upload", "POST /api/orders"}, calls)
	assert.Equal(t, "qr_promptpay", gotOrder.PaymentMethod)
	assert.Equal(t, "uploads/slips/abc.png", gotOrder.SlipImage)
}

// ข้อความปฏิเสธจาก server ต้องส่งถึงผู้ใช้ตรง ๆ ไม่แปลงไม่ห่อ
func TestServerMessageSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "background doesn't look like a receipt"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).UploadSlip("slip.png", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, "background doesn't look like a receipt", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

// transition โดน 409 ก็ยังต้องได้สถานะจริงล่าสุดกลับมา
func TestUpdateOrderStatusRefetchesOnConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid_or_conflict"})
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"order":   map[string]any{"ID": 3, "orderStatus": "shipping"},
				"items":   []any{},
				"actions": []map[string]any{{"label": "mark delivered", "orderStatus": "delivered"}},
			})
		}
	}))
	defer srv.Close()

	detail, err := New(srv.URL).UpdateOrderStatus(3, "preparing", "")
	require.Error(t, err)
	assert.Equal(t, "invalid_or_conflict", err.Error())
	require.NotNil(t, detail)
	assert.Equal(t, "shipping", detail.Order.OrderStatus)
	require.Len(t, detail.Actions, 1)
	assert.Equal(t, "mark delivered", detail.Actions[0].Label)
	assert.Equal(t, "delivered", detail.Actions[0].Next)
}

// POST ห้าม retry — ยิงซ้ำคือออเดอร์ซ้ำ
func TestCreateOrderDoesNotRetry(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "internal error"})
	})

	_, err := New(srv.URL).CreateOrder(&CreateOrderReq{Items: []OrderItemIn{{ProductID: 1, Quantity: 1}}})
	require.Error(t, err)
	assert.Equal(t, 1, *hits)
}

func TestLoginStoresToken(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			// envelope จริงของ /api/auth/login: token + user object
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   "tok-123",
				"user":    map[string]any{"ID": 1, "email": "admin@bakery.dev", "role": "admin"},
			})
		default:
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"success": true, "order": map[string]any{}, "items": []any{}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	user, err := c.Login("admin@bakery.dev", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	_, err = c.OrderDetail(1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authHeader)
}
