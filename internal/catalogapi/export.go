package catalogapi

import (
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/catalogix/catalogd/internal/catalog"
	"github.com/catalogix/catalogd/internal/domain"
)

type productExportRow struct {
	ID                 int64   `csv:"id"`
	Title              string  `csv:"title"`
	Category           string  `csv:"category"`
	Brand              string  `csv:"brand"`
	Sku                string  `csv:"sku"`
	Price              float64 `csv:"price"`
	DiscountPercentage float64 `csv:"discount_percentage"`
	Rating             string  `csv:"rating"`
	Stock              int     `csv:"stock"`
	AvailabilityStatus string  `csv:"availability_status"`
	Barcode            int64   `csv:"barcode"`
	Tags               string  `csv:"tags"`
	ReviewCount        int     `csv:"review_count"`
}

func newProductExportRow(product *domain.Product) productExportRow {
	tagNames := make([]string, 0, len(product.Tags))
	for _, tag := range product.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	rating := ""
	if product.Rating != nil {
		rating = cast.ToString(*product.Rating)
	}

	return productExportRow{
		ID:                 product.ID,
		Title:              product.Title,
		Category:           product.Category,
		Brand:              product.Brand,
		Sku:                product.Sku,
		Price:              product.Price,
		DiscountPercentage: product.DiscountPercentage,
		Rating:             rating,
		Stock:              product.Stock,
		AvailabilityStatus: product.AvailabilityStatus,
		Barcode:            product.Barcode,
		Tags:               strings.Join(tagNames, "|"),
		ReviewCount:        len(product.Reviews),
	}
}

// export streams the whole product table as CSV
func (h *productHandler) export(c echo.Context) error {
	rows, _, err := h.products.List(c.Request().Context(), catalog.ListQuery{SortCol: "id", Order: "ASC"})
	if err != nil {
		return restError(c, err, "products")
	}

	out := make([]productExportRow, 0, len(rows))
	for i := range rows {
		out = append(out, newProductExportRow(&rows[i]))
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&out, c.Response())
}
