package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catalogix/catalogd/internal/domain"
)

// GormTagRepository is the GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM-based tag repository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return NewValidationError("name", "name is required")
	}

	var exists int64
	r.db.WithContext(ctx).Model(&domain.Tag{}).Where("name = ?", tag.Name).Count(&exists)
	if exists > 0 {
		return NewValidationError("name", "tag name already exists")
	}

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return errors.Wrap(err, "create tag")
	}
	return nil
}

func (r *GormTagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, wrapDBError(err, "query tag")
	}
	return &tag, nil
}

func (r *GormTagRepository) List(ctx context.Context, q ListQuery) ([]domain.Tag, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Tag{})

	if s := strings.TrimSpace(q.Search); s != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ?", "%"+s+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count tags")
	}

	var rows []domain.Tag
	err := db.Order(q.SortCol + " " + q.Order).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query tags")
	}
	return rows, total, nil
}

func (r *GormTagRepository) Update(ctx context.Context, id int64, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}

	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, wrapDBError(err, "query tag")
	}

	if name != tag.Name {
		var exists int64
		r.db.WithContext(ctx).Model(&domain.Tag{}).Where("name = ? AND id != ?", name, id).Count(&exists)
		if exists > 0 {
			return nil, NewValidationError("name", "tag name already exists")
		}
	}

	tag.Name = name
	if err := r.db.WithContext(ctx).Save(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "save tag")
	}
	return &tag, nil
}

func (r *GormTagRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag domain.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return wrapDBError(err, "query tag")
		}
		// drops the product links, never the products themselves
		if err := tx.Select(clause.Associations).Delete(&tag).Error; err != nil {
			return errors.Wrap(err, "delete tag")
		}
		return nil
	})
}
