package domain

import "time"

// Product represents a catalog product with its tag and review relations
type Product struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title                string    `gorm:"size:255;not null;index" json:"title"`
	Description          string    `gorm:"type:text" json:"description"`
	Category             string    `gorm:"size:50;index" json:"category"`
	Price                float64   `gorm:"type:decimal(10,2)" json:"price"`
	DiscountPercentage   float64   `gorm:"type:decimal(5,2)" json:"discount_percentage"`
	Rating               *float64  `json:"rating"` // aggregate rating, null until rated
	Stock                int       `json:"stock"`
	Brand                string    `gorm:"size:100" json:"brand"`
	Sku                  string    `gorm:"size:50" json:"sku"`
	Weight               float64   `json:"weight"`
	Width                float64   `json:"width"`
	Height               float64   `json:"height"`
	Depth                float64   `json:"depth"`
	WarrantyInformation  string    `gorm:"size:255" json:"warranty_information"`
	ShippingInformation  string    `gorm:"size:255" json:"shipping_information"`
	AvailabilityStatus   string    `gorm:"size:50" json:"availability_status"`
	ReturnPolicy         string    `gorm:"size:255" json:"return_policy"`
	MinimumOrderQuantity int       `json:"minimum_order_quantity"`
	Images               []string  `gorm:"serializer:json;type:text" json:"images"`
	Thumbnail            string    `gorm:"size:1024" json:"thumbnail"`
	Barcode              int64     `json:"barcode"`
	QrCode               string    `gorm:"size:1024" json:"qr_code"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Tags    []Tag    `gorm:"many2many:product_tags" json:"tags"`
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE" json:"reviews"`
}

// TableName returns table name
func (Product) TableName() string {
	return "products"
}
