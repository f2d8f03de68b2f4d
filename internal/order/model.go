package order

import (
	"encoding/json"
	"time"
)

// Order statuses. Transitions are server-authoritative; customers can only
// trigger pending -> cancelled.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

type Order struct {
	ID             string `json:"id"`
	OrderNumber    string `json:"orderNumber"`
	UserID         string `json:"-"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`
	ShippingStatus string `json:"shippingStatus"`
	// Money as string to avoid rounding errors (NUMERIC in Postgres)
	Subtotal        string          `json:"subtotal"`
	Tax             string          `json:"tax"`
	Shipping        string          `json:"shipping"`
	Discount        string          `json:"discount"`
	Total           string          `json:"total"`
	Items           []Item          `json:"items"`
	ShippingAddress json.RawMessage `json:"shippingAddress,omitempty"`
	BillingAddress  json.RawMessage `json:"billingAddress,omitempty"`
	CouponCode      string          `json:"couponCode,omitempty"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

// Item is a frozen order line: name and price are captured at creation time
// and never follow later product edits.
type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"-"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}
