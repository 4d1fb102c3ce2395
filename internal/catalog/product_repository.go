package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catalogix/catalogd/internal/domain"
)

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// resolveTag resolves a single tag reference inside tx. A reference by id
// must match an existing row; a reference by name is get-or-create against
// the unique name index.
func resolveTag(tx *gorm.DB, ref TagRef) (*domain.Tag, error) {
	if ref.ID != nil {
		var tag domain.Tag
		if err := tx.First(&tag, *ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("tags", "tag not found")
			}
			return nil, errors.Wrap(err, "resolve tag by id")
		}
		return &tag, nil
	}

	if ref.Name == nil || strings.TrimSpace(*ref.Name) == "" {
		return nil, NewValidationError("tags", "tag id or name is required")
	}

	name := strings.TrimSpace(*ref.Name)
	var tag domain.Tag
	if err := tx.Where(domain.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "resolve tag by name")
	}
	return &tag, nil
}

// replaceTags clears the product's tag links and attaches the resolved set.
// Duplicate references collapse to a single link.
func replaceTags(tx *gorm.DB, product *domain.Product, refs []TagRef) error {
	if err := tx.Model(product).Association("Tags").Clear(); err != nil {
		return errors.Wrap(err, "clear tag links")
	}

	seen := make(map[int64]struct{}, len(refs))
	for _, ref := range refs {
		tag, err := resolveTag(tx, ref)
		if err != nil {
			return err
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		if err := tx.Model(product).Association("Tags").Append(tag); err != nil {
			return errors.Wrap(err, "attach tag")
		}
	}
	return nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product, tags []TagRef) (*domain.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return errors.Wrap(err, "create product")
		}
		return replaceTags(tx, product, tags)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, product.ID)
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.id ASC") }).
		First(&product, id).Error
	if err != nil {
		return nil, wrapDBError(err, "query product")
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context, q ListQuery) ([]domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})

	if s := strings.TrimSpace(q.Search); s != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("title ILIKE ? OR brand ILIKE ? OR sku ILIKE ?", "%"+s+"%", "%"+s+"%", "%"+s+"%")
		} else {
			p := "%" + strings.ToLower(s) + "%"
			db = db.Where("LOWER(title) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(sku) LIKE ?", p, p, p)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	db = db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.id ASC") }).
		Order(q.SortCol + " " + q.Order)
	// PageSize <= 0 means no pagination (used by the CSV export)
	if q.PageSize > 0 {
		db = db.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}

	var rows []domain.Product
	err := db.Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query products")
	}
	return rows, total, nil
}

func (p ProductPatch) apply(product *domain.Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.DiscountPercentage != nil {
		product.DiscountPercentage = *p.DiscountPercentage
	}
	if p.Rating != nil {
		product.Rating = p.Rating
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Brand != nil {
		product.Brand = *p.Brand
	}
	if p.Sku != nil {
		product.Sku = *p.Sku
	}
	if p.Weight != nil {
		product.Weight = *p.Weight
	}
	if p.Width != nil {
		product.Width = *p.Width
	}
	if p.Height != nil {
		product.Height = *p.Height
	}
	if p.Depth != nil {
		product.Depth = *p.Depth
	}
	if p.WarrantyInformation != nil {
		product.WarrantyInformation = *p.WarrantyInformation
	}
	if p.ShippingInformation != nil {
		product.ShippingInformation = *p.ShippingInformation
	}
	if p.AvailabilityStatus != nil {
		product.AvailabilityStatus = *p.AvailabilityStatus
	}
	if p.ReturnPolicy != nil {
		product.ReturnPolicy = *p.ReturnPolicy
	}
	if p.MinimumOrderQuantity != nil {
		product.MinimumOrderQuantity = *p.MinimumOrderQuantity
	}
	if p.Images != nil {
		product.Images = *p.Images
	}
	if p.Thumbnail != nil {
		product.Thumbnail = *p.Thumbnail
	}
	if p.Barcode != nil {
		product.Barcode = *p.Barcode
	}
	if p.QrCode != nil {
		product.QrCode = *p.QrCode
	}
}

func (r *GormProductRepository) Update(ctx context.Context, id int64, patch ProductPatch, tags []TagRef) (*domain.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, id).Error; err != nil {
			return wrapDBError(err, "query product")
		}

		patch.apply(&product)
		product.UpdatedAt = time.Now()

		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return errors.Wrap(err, "save product")
		}
		return replaceTags(tx, &product, tags)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, id).Error; err != nil {
			return wrapDBError(err, "query product")
		}
		// Select(Associations) drops review rows and tag links with the product
		if err := tx.Select(clause.Associations).Delete(&product).Error; err != nil {
			return errors.Wrap(err, "delete product")
		}
		return nil
	})
}
