package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/catalogix/catalogd/internal/domain"
)

// GormReviewRepository is the GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM-based review repository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	review.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, review.ProductID).Error; err != nil {
			return wrapDBError(err, "query parent product")
		}
		if err := tx.Create(review).Error; err != nil {
			return errors.Wrap(err, "create review")
		}
		return nil
	})
}

func (r *GormReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, wrapDBError(err, "query review")
	}
	return &review, nil
}

func (r *GormReviewRepository) List(ctx context.Context, productID int64, q ListQuery) ([]domain.Review, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Review{})
	if productID > 0 {
		db = db.Where("product_id = ?", productID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count reviews")
	}

	var rows []domain.Review
	err := db.Order(q.SortCol + " " + q.Order).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query reviews")
	}
	return rows, total, nil
}

func (p ReviewPatch) apply(review *domain.Review) {
	if p.Rating != nil {
		review.Rating = *p.Rating
	}
	if p.Comment != nil {
		review.Comment = *p.Comment
	}
	if p.ReviewerName != nil {
		review.ReviewerName = *p.ReviewerName
	}
	if p.ReviewerEmail != nil {
		review.ReviewerEmail = *p.ReviewerEmail
	}
	if p.ProductID != nil {
		review.ProductID = *p.ProductID
	}
}

func (r *GormReviewRepository) Update(ctx context.Context, id int64, patch ReviewPatch) (*domain.Review, error) {
	var review domain.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			return wrapDBError(err, "query review")
		}

		if patch.ProductID != nil && *patch.ProductID != review.ProductID {
			var product domain.Product
			if err := tx.First(&product, *patch.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewValidationError("product", "product not found")
				}
				return errors.Wrap(err, "query product")
			}
		}

		patch.apply(&review)
		if err := tx.Save(&review).Error; err != nil {
			return errors.Wrap(err, "save review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, id int64) error {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return wrapDBError(err, "query review")
	}
	if err := r.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return errors.Wrap(err, "delete review")
	}
	return nil
}
