package catalog

import (
	"context"

	"github.com/catalogix/catalogd/internal/domain"
)

// TagRef is a tag reference taken from a write payload: either an id of an
// existing tag, or a bare name resolved with get-or-create semantics.
type TagRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// ProductPatch carries the scalar fields of a product update; nil fields
// keep their stored value.
type ProductPatch struct {
	Title                *string
	Description          *string
	Category             *string
	Price                *float64
	DiscountPercentage   *float64
	Rating               *float64
	Stock                *int
	Brand                *string
	Sku                  *string
	Weight               *float64
	Width                *float64
	Height               *float64
	Depth                *float64
	WarrantyInformation  *string
	ShippingInformation  *string
	AvailabilityStatus   *string
	ReturnPolicy         *string
	MinimumOrderQuantity *int
	Images               *[]string
	Thumbnail            *string
	Barcode              *int64
	QrCode               *string
}

// ReviewPatch carries the fields of a review update; nil fields keep
// their stored value.
type ReviewPatch struct {
	Rating        *int
	Comment       *string
	ReviewerName  *string
	ReviewerEmail *string
	ProductID     *int64
}

// ListQuery is the common pagination/sorting/search request for lists.
type ListQuery struct {
	Page     int
	PageSize int
	SortCol  string
	Order    string
	Search   string
}

// ProductRepository handles persistence for products, including transactional
// tag resolution and association replacement on writes.
type ProductRepository interface {
	// Create inserts a product and attaches the resolved tag set in one
	// transaction; the returned product carries the live associations.
	Create(ctx context.Context, product *domain.Product, tags []TagRef) (*domain.Product, error)

	// GetByID retrieves a product with its tags and reviews
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List retrieves products with pagination
	List(ctx context.Context, q ListQuery) ([]domain.Product, int64, error)

	// Update applies non-nil patch fields, refreshes updated_at and replaces
	// the whole tag association set (clear then attach, not a merge).
	Update(ctx context.Context, id int64, patch ProductPatch, tags []TagRef) (*domain.Product, error)

	// Delete removes a product, its review rows and its tag links
	Delete(ctx context.Context, id int64) error
}

// TagRepository handles persistence for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context, q ListQuery) ([]domain.Tag, int64, error)
	Update(ctx context.Context, id int64, name string) (*domain.Tag, error)

	// Delete removes the tag and its product links; products survive
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository handles persistence for reviews.
type ReviewRepository interface {
	// Create inserts a review after verifying the parent product exists
	Create(ctx context.Context, review *domain.Review) error

	GetByID(ctx context.Context, id int64) (*domain.Review, error)

	// List retrieves reviews; productID > 0 narrows to one product
	List(ctx context.Context, productID int64, q ListQuery) ([]domain.Review, int64, error)

	Update(ctx context.Context, id int64, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}
