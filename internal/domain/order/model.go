package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidState = errors.New("invalid order state for this operation")
)

// Order statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var paymentMethods = map[string]bool{
	"credit_card":      true,
	"paypal":           true,
	"bank_transfer":    true,
	"cash_on_delivery": true,
}

// statusTransitions is the allowed state machine for admin updates.
// Cancellation by the customer is a separate path and only leaves pending.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusRefunded},
	StatusShipped:    {StatusDelivered, StatusRefunded},
	StatusDelivered:  {StatusRefunded},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Address is the shipping/billing document stored as jsonb on the order.
type Address struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type Order struct {
	ID                   uuid.UUID    `db:"id" json:"id"`
	UserID               uuid.UUID    `db:"user_id" json:"userId"`
	Items                []*OrderItem `json:"items"`
	Subtotal             float64      `db:"subtotal" json:"subtotal"`
	Tax                  float64      `db:"tax" json:"tax"`
	Shipping             float64      `db:"shipping" json:"shipping"`
	Total                float64      `db:"total" json:"total"`
	Status               string       `db:"status" json:"status"`
	PaymentStatus        string       `db:"payment_status" json:"paymentStatus"`
	PaymentMethod        string       `db:"payment_method" json:"paymentMethod"`
	ShippingAddress      Address      `db:"shipping_address" json:"shippingAddress"`
	BillingAddress       *Address     `db:"billing_address" json:"billingAddress,omitempty"`
	TrackingNumber       string       `db:"tracking_number" json:"trackingNumber"`
	Notes                string       `db:"notes" json:"notes,omitempty"`
	PrescriptionRequired bool         `db:"prescription_required" json:"prescriptionRequired"`
	PrescriptionImage    string       `db:"prescription_image" json:"prescriptionImage,omitempty"`
	PrescriptionApproved bool         `db:"prescription_approved" json:"prescriptionApproved"`
	CreatedAt            time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updatedAt"`
}

// OrderItem snapshots one product line at placement time.
type OrderItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrderID   uuid.UUID `db:"order_id" json:"-"`
	ProductID uuid.UUID `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Price     float64   `db:"price" json:"price"`
	Total     float64   `db:"total" json:"total"`
}
