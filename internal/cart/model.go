package cart

// Item is a cart line as mirrored from the client.
// swagger:model CartItem
type Item struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	// Price as string, same convention as the catalog (NUMERIC in Postgres)
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	MaxQuantity int    `json:"maxQuantity,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Cart is the server-side mirror of a user's cart.
type Cart struct {
	ID         string `json:"id"`
	UserID     string `json:"-"`
	Items      []Item `json:"items"`
	CouponCode string `json:"couponCode,omitempty"`
	// Discount mirrors the last synced client value; totals are always
	// recomputed server-side.
	Discount string `json:"discount"`
}
