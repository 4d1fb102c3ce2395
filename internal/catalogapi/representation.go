package catalogapi

import "github.com/catalogix/catalogd/internal/domain"

// Wire views. Product embeds its live tag and review lists; both are read
// back from the store after a write, never echoed from the request payload.

type tagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type reviewView struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	ReviewerName  string `json:"reviewer_name"`
	ReviewerEmail string `json:"reviewer_email"`
	Product       int64  `json:"product"`
}

type productView struct {
	ID                   int64        `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Category             string       `json:"category"`
	Price                float64      `json:"price"`
	DiscountPercentage   float64      `json:"discount_percentage"`
	Rating               *float64     `json:"rating"`
	Stock                int          `json:"stock"`
	Tags                 []tagView    `json:"tags"`
	Brand                string       `json:"brand"`
	Sku                  string       `json:"sku"`
	Weight               float64      `json:"weight"`
	WarrantyInformation  string       `json:"warranty_information"`
	ShippingInformation  string       `json:"shipping_information"`
	AvailabilityStatus   string       `json:"availability_status"`
	ReturnPolicy         string       `json:"return_policy"`
	MinimumOrderQuantity int          `json:"minimum_order_quantity"`
	Images               []string     `json:"images"`
	Thumbnail            string       `json:"thumbnail"`
	Width                float64      `json:"width"`
	Height               float64      `json:"height"`
	Depth                float64      `json:"depth"`
	Barcode              int64        `json:"barcode"`
	QrCode               string       `json:"qr_code"`
	Reviews              []reviewView `json:"reviews"`
}

func newTagView(tag domain.Tag) tagView {
	return tagView{ID: tag.ID, Name: tag.Name}
}

func newReviewView(review domain.Review) reviewView {
	return reviewView{
		Rating:        review.Rating,
		Comment:       review.Comment,
		ReviewerName:  review.ReviewerName,
		ReviewerEmail: review.ReviewerEmail,
		Product:       review.ProductID,
	}
}

func newProductView(product *domain.Product) productView {
	tags := make([]tagView, 0, len(product.Tags))
	for _, tag := range product.Tags {
		tags = append(tags, newTagView(tag))
	}
	reviews := make([]reviewView, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, newReviewView(review))
	}

	images := product.Images
	if images == nil {
		images = []string{}
	}

	return productView{
		ID:                   product.ID,
		Title:                product.Title,
		Description:          product.Description,
		Category:             product.Category,
		Price:                product.Price,
		DiscountPercentage:   product.DiscountPercentage,
		Rating:               product.Rating,
		Stock:                product.Stock,
		Tags:                 tags,
		Brand:                product.Brand,
		Sku:                  product.Sku,
		Weight:               product.Weight,
		WarrantyInformation:  product.WarrantyInformation,
		ShippingInformation:  product.ShippingInformation,
		AvailabilityStatus:   product.AvailabilityStatus,
		ReturnPolicy:         product.ReturnPolicy,
		MinimumOrderQuantity: product.MinimumOrderQuantity,
		Images:               images,
		Thumbnail:            product.Thumbnail,
		Width:                product.Width,
		Height:               product.Height,
		Depth:                product.Depth,
		Barcode:              product.Barcode,
		QrCode:               product.QrCode,
		Reviews:              reviews,
	}
}

func newProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views
}

func newTagViews(tags []domain.Tag) []tagView {
	views := make([]tagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, newTagView(tag))
	}
	return views
}

func newReviewViews(reviews []domain.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, newReviewView(review))
	}
	return views
}
