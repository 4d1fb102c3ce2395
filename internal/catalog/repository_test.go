package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/catalogix/catalogd/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func i64Ptr(v int64) *int64 { return &v }

func f64Ptr(v float64) *float64 { return &v }

func fixtureProduct(sku string) *domain.Product {
	return &domain.Product{
		Title:                "Mechanical Keyboard",
		Description:          "87-key tenkeyless board",
		Category:             "electronics",
		Price:                89.9,
		DiscountPercentage:   10,
		Stock:                42,
		Brand:                "KeyCo",
		Sku:                  sku,
		Weight:               0.8,
		Width:                36,
		Height:               4,
		Depth:                14,
		WarrantyInformation:  "2 year limited warranty",
		ShippingInformation:  "Ships in 1-2 business days",
		AvailabilityStatus:   "In Stock",
		ReturnPolicy:         "30 days return policy",
		MinimumOrderQuantity: 1,
		Images:               []string{"https://cdn.example.com/kb-1.png"},
		Thumbnail:            "https://cdn.example.com/kb-thumb.png",
		Barcode:              4006381333931,
		QrCode:               "https://cdn.example.com/kb-qr.png",
	}
}

func TestProductCreateTimestamps(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, fixtureProduct("KB-01"), nil)
	require.NoError(t, err)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	time.Sleep(10 * time.Millisecond)
	updated, err := repo.Update(ctx, saved.ID, ProductPatch{Price: f64Ptr(79.9)}, nil)
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt),
		"updated_at must strictly increase after an update")
}

func TestProductCreateDeduplicatesTagNames(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, fixtureProduct("KB-02"), []TagRef{
		{Name: strPtr("sale")},
		{Name: strPtr("sale")},
	})
	require.NoError(t, err)
	require.Len(t, saved.Tags, 1)
	assert.Equal(t, "sale", saved.Tags[0].Name)

	var tagCount int64
	db.Model(&domain.Tag{}).Where("name = ?", "sale").Count(&tagCount)
	assert.EqualValues(t, 1, tagCount)
}

func TestTagResolutionGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, fixtureProduct("KB-03"), []TagRef{{Name: strPtr("wireless")}})
	require.NoError(t, err)
	second, err := repo.Create(ctx, fixtureProduct("KB-04"), []TagRef{{Name: strPtr("wireless")}})
	require.NoError(t, err)

	require.Len(t, first.Tags, 1)
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID, "same name must resolve to the same row")
}

func TestTagResolutionByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, fixtureProduct("KB-05"), []TagRef{{ID: i64Ptr(999)}})
	require.Error(t, err)
	verr, isValidation := AsValidation(err)
	require.True(t, isValidation)
	assert.Contains(t, verr.Fields, "tags")

	// the transaction rolled the product back as well
	var count int64
	db.Model(&domain.Product{}).Where("sku = ?", "KB-05").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestProductPartialUpdateKeepsOtherFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, fixtureProduct("KB-06"), nil)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, saved.ID, ProductPatch{Price: f64Ptr(59.0)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 59.0, updated.Price)
	assert.Equal(t, saved.Title, updated.Title)
	assert.Equal(t, saved.Description, updated.Description)
	assert.Equal(t, saved.Category, updated.Category)
	assert.Equal(t, saved.DiscountPercentage, updated.DiscountPercentage)
	assert.Equal(t, saved.Stock, updated.Stock)
	assert.Equal(t, saved.Brand, updated.Brand)
	assert.Equal(t, saved.Sku, updated.Sku)
	assert.Equal(t, saved.Weight, updated.Weight)
	assert.Equal(t, saved.Images, updated.Images)
	assert.Equal(t, saved.Thumbnail, updated.Thumbnail)
	assert.Equal(t, saved.Barcode, updated.Barcode)
	assert.Equal(t, saved.QrCode, updated.QrCode)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
}

func TestProductUpdateReplacesTagSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, fixtureProduct("KB-07"), []TagRef{
		{Name: strPtr("sale")},
		{Name: strPtr("wireless")},
	})
	require.NoError(t, err)
	require.Len(t, saved.Tags, 2)

	// full replace, not a merge
	updated, err := repo.Update(ctx, saved.ID, ProductPatch{}, []TagRef{{Name: strPtr("clearance")}})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "clearance", updated.Tags[0].Name)

	// empty list clears every link
	cleared, err := repo.Update(ctx, saved.ID, ProductPatch{}, []TagRef{})
	require.NoError(t, err)
	assert.Len(t, cleared.Tags, 0)

	// unlinked tags survive as rows
	var tagCount int64
	db.Model(&domain.Tag{}).Count(&tagCount)
	assert.EqualValues(t, 3, tagCount)
}

func TestProductDeleteCascadesReviews(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	saved, err := products.Create(ctx, fixtureProduct("KB-08"), []TagRef{{Name: strPtr("sale")}})
	require.NoError(t, err)

	review := &domain.Review{
		Rating:        5,
		Comment:       "Great keyboard",
		ReviewerName:  "Pat",
		ReviewerEmail: "pat@example.com",
		ProductID:     saved.ID,
	}
	require.NoError(t, reviews.Create(ctx, review))

	require.NoError(t, products.Delete(ctx, saved.ID))

	_, err = reviews.GetByID(ctx, review.ID)
	assert.True(t, IsNotFound(err), "review must be gone with its product")

	_, err = products.GetByID(ctx, saved.ID)
	assert.True(t, IsNotFound(err))

	// the shared tag row is untouched
	var tagCount int64
	db.Model(&domain.Tag{}).Where("name = ?", "sale").Count(&tagCount)
	assert.EqualValues(t, 1, tagCount)
}

func TestReviewCreateMissingParent(t *testing.T) {
	db := newTestDB(t)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	err := reviews.Create(ctx, &domain.Review{
		Rating:        4,
		Comment:       "nice",
		ReviewerName:  "Sam",
		ReviewerEmail: "sam@example.com",
		ProductID:     12345,
	})
	assert.True(t, IsNotFound(err))
}

func TestReviewListScopedToProduct(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	p1, err := products.Create(ctx, fixtureProduct("KB-09"), nil)
	require.NoError(t, err)
	p2, err := products.Create(ctx, fixtureProduct("KB-10"), nil)
	require.NoError(t, err)

	for i, pid := range []int64{p1.ID, p1.ID, p2.ID} {
		require.NoError(t, reviews.Create(ctx, &domain.Review{
			Rating:        i + 1,
			Comment:       "review",
			ReviewerName:  "Sam",
			ReviewerEmail: "sam@example.com",
			ProductID:     pid,
		}))
	}

	q := ListQuery{Page: 1, PageSize: 20, SortCol: "id", Order: "ASC"}

	scoped, total, err := reviews.List(ctx, p1.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range scoped {
		assert.Equal(t, p1.ID, r.ProductID)
	}

	all, total, err := reviews.List(ctx, 0, q)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}

func TestReviewUpdateUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	p, err := products.Create(ctx, fixtureProduct("KB-11"), nil)
	require.NoError(t, err)

	review := &domain.Review{
		Rating:        3,
		Comment:       "ok",
		ReviewerName:  "Lee",
		ReviewerEmail: "lee@example.com",
		ProductID:     p.ID,
	}
	require.NoError(t, reviews.Create(ctx, review))

	_, err = reviews.Update(ctx, review.ID, ReviewPatch{ProductID: i64Ptr(4242)})
	_, isValidation := AsValidation(err)
	assert.True(t, isValidation)

	updated, err := reviews.Update(ctx, review.ID, ReviewPatch{Rating: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "ok", updated.Comment)
}

func TestTagRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	tag := &domain.Tag{Name: "summer"}
	require.NoError(t, repo.Create(ctx, tag))
	require.NotZero(t, tag.ID)

	err := repo.Create(ctx, &domain.Tag{Name: "summer"})
	_, isValidation := AsValidation(err)
	assert.True(t, isValidation, "duplicate name must be rejected")

	err = repo.Create(ctx, &domain.Tag{Name: "  "})
	_, isValidation = AsValidation(err)
	assert.True(t, isValidation, "blank name must be rejected")

	renamed, err := repo.Update(ctx, tag.ID, "winter")
	require.NoError(t, err)
	assert.Equal(t, "winter", renamed.Name)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, IsNotFound(err))

	require.NoError(t, repo.Delete(ctx, tag.ID))
	_, err = repo.GetByID(ctx, tag.ID)
	assert.True(t, IsNotFound(err))
}

func TestTagDeleteKeepsProducts(t *testing.T) {
	db := newTestDB(t)
	products := NewGormProductRepository(db)
	tags := NewGormTagRepository(db)
	ctx := context.Background()

	saved, err := products.Create(ctx, fixtureProduct("KB-12"), []TagRef{{Name: strPtr("legacy")}})
	require.NoError(t, err)
	require.Len(t, saved.Tags, 1)

	require.NoError(t, tags.Delete(ctx, saved.Tags[0].ID))

	reloaded, err := products.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Tags, 0, "only the association goes away")
}

func TestProductListSearchAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p := fixtureProduct(fmt.Sprintf("KB-2%d", i))
		if i == 4 {
			p.Title = "Ergonomic Trackball"
			p.Brand = "BallCo"
		}
		_, err := repo.Create(ctx, p, nil)
		require.NoError(t, err)
	}

	rows, total, err := repo.List(ctx, ListQuery{Page: 1, PageSize: 2, SortCol: "id", Order: "ASC"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.List(ctx, ListQuery{Page: 1, PageSize: 20, SortCol: "id", Order: "ASC", Search: "trackball"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ergonomic Trackball", rows[0].Title)
}
