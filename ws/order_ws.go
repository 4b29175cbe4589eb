package ws

import (
	"net/http"
	"sync"
	"time"

	"bakery/pkg/orderflow"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// OrderHub ส่งเหตุการณ์สถานะออเดอร์ให้จอ admin ที่เปิดค้างอยู่
// จะได้ไม่ต้อง poll รายการออเดอร์วนไป
type OrderHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan StatusEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// StatusEvent = สถานะใหม่ของออเดอร์หนึ่งใบ หลัง transition commit แล้วเท่านั้น
type StatusEvent struct {
	OrderID       uint                    `json:"orderId"`
	OrderStatus   orderflow.Status        `json:"orderStatus"`
	PaymentStatus orderflow.PaymentStatus `json:"paymentStatus,omitempty"`
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan StatusEvent),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *OrderHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				// connection ที่ค้างห้ามลากทั้ง hub ตาม เกิน deadline = ตัดทิ้ง
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					log.Warn().Err(err).Msg("ws write error")
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyStatus implement services.StatusNotifier
func (h *OrderHub) NotifyStatus(orderID uint, status orderflow.Status, pay orderflow.PaymentStatus) {
	h.broadcast <- StatusEvent{OrderID: orderID, OrderStatus: status, PaymentStatus: pay}
}

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS จัดการที่ middleware แล้ว
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/ws/orders (admin)
func (h *OrderHub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	h.register <- conn

	// ฝั่งนี้ push อย่างเดียว อ่านทิ้งไว้เพื่อจับตอน client หลุด
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
