package product

import "time"

// CategoryRef is the category summary embedded in product payloads.
type CategoryRef struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

type Variant struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	SKU      string            `json:"sku,omitempty"`
	Price    string            `json:"price"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price         string      `json:"price"`
	ComparePrice  string      `json:"comparePrice,omitempty"`
	SKU           string      `json:"sku,omitempty"`
	Barcode       string      `json:"barcode,omitempty"`
	Quantity      int         `json:"quantity"`
	Images        []string    `json:"images"`
	FeaturedImage string      `json:"featuredImage,omitempty"`
	Category      CategoryRef `json:"category"`
	Tags          []string    `json:"tags,omitempty"`
	Attributes    []Attribute `json:"attributes,omitempty"`
	Variants      []Variant   `json:"variants,omitempty"`
	Rating        string      `json:"rating"`
	ReviewCount   int         `json:"reviewCount"`
	IsActive      bool        `json:"isActive"`
	IsFeatured    bool        `json:"isFeatured"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
