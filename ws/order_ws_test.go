package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bakery/pkg/orderflow"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientCount(hub *OrderHub) int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

func dialHub(t *testing.T, hub *OrderHub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", hub.Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	before := clientCount(hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// handshake เสร็จก่อน hub จะ register เสร็จ รอให้ Run เก็บ conn เข้า set ก่อน
	require.Eventually(t, func() bool {
		return clientCount(hub) > before
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestHubBroadcastsStatusEvents(t *testing.T) {
	hub := NewOrderHub()
	go hub.Run()

	conn := dialHub(t, hub)

	hub.NotifyStatus(42, orderflow.StatusConfirmed, orderflow.PaymentPaid)

	var ev StatusEvent
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uint(42), ev.OrderID)
	assert.Equal(t, orderflow.StatusConfirmed, ev.OrderStatus)
	assert.Equal(t, orderflow.PaymentPaid, ev.PaymentStatus)
}

func TestHubEvictsClosedConnections(t *testing.T) {
	hub := NewOrderHub()
	go hub.Run()

	dead := dialHub(t, hub)
	alive := dialHub(t, hub)

	// ปิดฝั่ง client → read loop ใน Handle สั่ง unregister
	dead.Close()
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// ที่เหลือยังได้ event ปกติ
	hub.NotifyStatus(7, orderflow.StatusCancelled, "")

	var ev StatusEvent
	alive.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, alive.ReadJSON(&ev))
	assert.Equal(t, uint(7), ev.OrderID)
	assert.Equal(t, orderflow.StatusCancelled, ev.OrderStatus)
}
