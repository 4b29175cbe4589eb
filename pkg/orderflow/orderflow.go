// pkg/orderflow — state machine ของสถานะออเดอร์
// ฝั่งจอ admin ใช้ ActionsFor วาดปุ่ม ฝั่ง service ใช้ CanTransition เป็น guard
package orderflow

// OrderStatus ไล่ตามเส้นทางปกติ pending → confirmed → preparing → shipping → delivered
// มี cancelled เป็นทางตันฝั่งล้มเหลว
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus เป็นอีกแกนหนึ่ง แยกจากสถานะจัดส่ง
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Action คือปุ่มที่ admin กดได้จากสถานะปัจจุบัน
type Action struct {
	Label string `json:"label"`
	Next  Status `json:"orderStatus"`
	// Payment ว่าง = ไม่แตะ paymentStatus
	Payment PaymentStatus `json:"paymentStatus,omitempty"`
	// cancel ยิง endpoint แยก เพราะ backend ต้องคืน stock ให้ด้วย
	ViaCancelPath bool `json:"viaCancelPath,omitempty"`
}

// ตารางนี้อ่านจาก orderStatus อย่างเดียว ไม่สน paymentStatus
var actionTable = map[Status][]Action{
	StatusPending: {
		{Label: "confirm", Next: StatusConfirmed, Payment: PaymentPaid},
		{Label: "cancel", Next: StatusCancelled, ViaCancelPath: true},
	},
	StatusConfirmed: {
		{Label: "start preparing", Next: StatusPreparing},
	},
	StatusPreparing: {
		{Label: "ship", Next: StatusShipping},
	},
	StatusShipping: {
		{Label: "mark delivered", Next: StatusDelivered},
	},
}

// ActionsFor คืนปุ่มของสถานะนั้น สถานะปลายทาง (delivered/cancelled) ได้ลิสต์ว่าง
func ActionsFor(s Status) []Action {
	acts := actionTable[s]
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

// ฝั่ง server ยอมรับ confirmed → cancelled ด้วย (ลูกค้าขอยกเลิกหลังยืนยันได้)
// ถึงจอ admin จะไม่มีปุ่มนั้นก็ตาม server เป็น source of truth
var legal = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing: {StatusShipping: true},
	StatusShipping:  {StatusDelivered: true},
}

func CanTransition(from, to Status) bool { return legal[from][to] }

func CanCancel(s Status) bool { return CanTransition(s, StatusCancelled) }

func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(p PaymentStatus) bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}
