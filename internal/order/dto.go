package order

import "encoding/json"

// CreateOrderItem is one requested line. Only the product reference and the
// quantity are trusted; prices are re-read from the catalog.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"productId" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity" example:"2"`
}

// CreateOrderRequest is the checkout payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	ShippingAddress json.RawMessage   `json:"shippingAddress"`
	BillingAddress  json.RawMessage   `json:"billingAddress,omitempty"`
	CouponCode      string            `json:"couponCode,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// CreatedResponse is the summary returned after a successful checkout.
// swagger:model OrderCreatedResponse
type CreatedResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Total       string `json:"total"`
	Status      string `json:"status"`
}
