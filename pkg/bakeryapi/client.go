// Package bakeryapi is a small HTTP client for the bakery backend.
// ใช้ฝั่งหน้าร้าน/สคริปต์: login, อัปโหลดสลิป, สร้าง order, ตามสถานะ
package bakeryapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// APIError คือ response ที่ success=false จาก server ส่ง message ตรง ๆ ไม่แปลง
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken เก็บ JWT ไว้แนบ Authorization header ทุก request หลังจากนี้
func (c *Client) SetToken(tok string) { c.token = tok }

// User ตามที่ /api/auth ส่งกลับ (ไม่มี password อยู่แล้ว)
type User struct {
	ID       uint   `json:"ID"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type loginRes struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login ขอ token แล้วเก็บไว้ใน client เลย
func (c *Client) Login(email, password string) (*User, error) {
	var out loginRes
	err := c.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

// OrderItemIn คือรายการสินค้าใน checkout payload
type OrderItemIn struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type ShippingInfo struct {
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Note     string `json:"note"`
}

type CreateOrderReq struct {
	Email         string        `json:"email,omitempty"`
	Items         []OrderItemIn `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Shipping      float64       `json:"shipping"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentID     string        `json:"paymentId,omitempty"`
	SlipImage     string        `json:"slipImage,omitempty"`
	CardLast4     string        `json:"cardLast4,omitempty"`
	ShippingInfo  ShippingInfo  `json:"shippingInfo"`
}

type Order struct {
	ID            uint    `json:"ID"`
	Email         string  `json:"email"`
	Subtotal      float64 `json:"subtotal"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	OrderStatus   string  `json:"orderStatus"`
	SlipImage     string  `json:"slipImage"`
}

type OrderItem struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Action คือปุ่มที่หน้า admin ควรแสดงสำหรับสถานะปัจจุบัน
// tag ต้องตรงกับ orderflow.Action ฝั่ง server เป๊ะ ๆ
type Action struct {
	Label         string `json:"label"`
	Next          string `json:"orderStatus"`
	Payment       string `json:"paymentStatus"`
	ViaCancelPath bool   `json:"viaCancelPath"`
}

type OrderDetail struct {
	Order   Order       `json:"order"`
	Items   []OrderItem `json:"items"`
	Actions []Action    `json:"actions"`
}

// CreateOrder ยิง checkout payload ไม่มี retry — POST ซ้ำ = order ซ้ำ
func (c *Client) CreateOrder(req *CreateOrderReq) (uint, error) {
	var out struct {
		OrderID uint `json:"orderId"`
	}
	if err := c.doJSON(http.MethodPost, "/api/orders", req, &out); err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

func (c *Client) OrderDetail(id uint) (*OrderDetail, error) {
	var out OrderDetail
	if err := c.doJSON(http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus ยิง transition แล้ว fetch รายละเอียดกลับมาเสมอ
// ต่อให้โดน 409 ก็ต้องรู้สถานะจริงล่าสุด ไม่ใช่เดาจากฝั่ง client
func (c *Client) UpdateOrderStatus(id uint, orderStatus, paymentStatus string) (*OrderDetail, error) {
	body := map[string]string{"orderStatus": orderStatus}
	if paymentStatus != "" {
		body["paymentStatus"] = paymentStatus
	}
	transitionErr := c.doJSON(http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), body, nil)

	detail, fetchErr := c.OrderDetail(id)
	if transitionErr != nil {
		return detail, transitionErr
	}
	return detail, fetchErr
}

// CancelOrder ใช้ endpoint cancel แยก ฝั่ง server คืน stock ให้เอง
func (c *Client) CancelOrder(id uint) (*OrderDetail, error) {
	cancelErr := c.doJSON(http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", id), nil, nil)

	detail, fetchErr := c.OrderDetail(id)
	if cancelErr != nil {
		return detail, cancelErr
	}
	return detail, fetchErr
}

// UploadSlip ส่งไฟล์สลิปไปตรวจ ได้ path กลับมาเฉพาะกรณีผ่าน
func (c *Client) UploadSlip(filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.base+"/api/slip/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Path string `json:"path"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

func (c *Client) doJSON(method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &e)
		return &APIError{StatusCode: res.StatusCode, Message: e.Message}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
