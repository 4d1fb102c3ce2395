package catalogapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogix/catalogd/internal/catalog"
	"github.com/catalogix/catalogd/internal/domain"
	"github.com/catalogix/catalogd/internal/webserver"
)

type productPayload struct {
	Title                string           `json:"title" validate:"required,max=255"`
	Description          string           `json:"description" validate:"required"`
	Category             string           `json:"category" validate:"required,max=50"`
	Price                *float64         `json:"price" validate:"required,gte=0"`
	DiscountPercentage   *float64         `json:"discount_percentage" validate:"required,gte=0,lte=100"`
	Rating               *float64         `json:"rating"`
	Stock                *int             `json:"stock" validate:"required,gte=0"`
	Tags                 []catalog.TagRef `json:"tags"`
	Brand                string           `json:"brand" validate:"required,max=100"`
	Sku                  string           `json:"sku" validate:"required,max=50"`
	Weight               *float64         `json:"weight" validate:"required"`
	Width                *float64         `json:"width" validate:"required"`
	Height               *float64         `json:"height" validate:"required"`
	Depth                *float64         `json:"depth" validate:"required"`
	WarrantyInformation  string           `json:"warranty_information" validate:"required,max=255"`
	ShippingInformation  string           `json:"shipping_information" validate:"required,max=255"`
	AvailabilityStatus   string           `json:"availability_status" validate:"required,max=50"`
	ReturnPolicy         string           `json:"return_policy" validate:"required,max=255"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" validate:"required,gte=1"`
	Images               []string         `json:"images"`
	Thumbnail            string           `json:"thumbnail" validate:"required,url"`
	Barcode              *int64           `json:"barcode" validate:"required"`
	QrCode               string           `json:"qr_code" validate:"required,url"`
}

// productUpdatePayload relaxes every rule for partial updates; absent
// scalar fields keep their stored value. The tag list is always applied
// as a full replacement, so an absent or empty list clears all links.
type productUpdatePayload struct {
	Title                *string          `json:"title" validate:"omitempty,max=255"`
	Description          *string          `json:"description"`
	Category             *string          `json:"category" validate:"omitempty,max=50"`
	Price                *float64         `json:"price" validate:"omitempty,gte=0"`
	DiscountPercentage   *float64         `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	Rating               *float64         `json:"rating"`
	Stock                *int             `json:"stock" validate:"omitempty,gte=0"`
	Tags                 []catalog.TagRef `json:"tags"`
	Brand                *string          `json:"brand" validate:"omitempty,max=100"`
	Sku                  *string          `json:"sku" validate:"omitempty,max=50"`
	Weight               *float64         `json:"weight"`
	Width                *float64         `json:"width"`
	Height               *float64         `json:"height"`
	Depth                *float64         `json:"depth"`
	WarrantyInformation  *string          `json:"warranty_information" validate:"omitempty,max=255"`
	ShippingInformation  *string          `json:"shipping_information" validate:"omitempty,max=255"`
	AvailabilityStatus   *string          `json:"availability_status" validate:"omitempty,max=50"`
	ReturnPolicy         *string          `json:"return_policy" validate:"omitempty,max=255"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" validate:"omitempty,gte=1"`
	Images               *[]string        `json:"images"`
	Thumbnail            *string          `json:"thumbnail" validate:"omitempty,url"`
	Barcode              *int64           `json:"barcode"`
	QrCode               *string          `json:"qr_code" validate:"omitempty,url"`
}

var productSortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"category":   "category",
	"brand":      "brand",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type productHandler struct {
	products catalog.ProductRepository
}

func newProductHandler(products catalog.ProductRepository) *productHandler {
	return &productHandler{products: products}
}

func (h *productHandler) register(ws *webserver.WebServer) {
	ws.ApiGET("/products", h.list)
	ws.ApiGET("/products/export", h.export)
	ws.ApiGET("/products/:id", h.get)
	ws.ApiPOST("/products", h.create)
	ws.ApiPUT("/products/:id", h.update)
	ws.ApiPATCH("/products/:id", h.update)
	ws.ApiDELETE("/products/:id", h.delete)
}

func (h *productHandler) list(c echo.Context) error {
	q := parseListQuery(c, productSortColumns)
	rows, total, err := h.products.List(c.Request().Context(), q)
	if err != nil {
		return restError(c, err, "products")
	}
	return paged(c, newProductViews(rows), total, q.Page, q.PageSize)
}

func (h *productHandler) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	product, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		return restError(c, err, "product")
	}
	return ok(c, newProductView(product))
}

func (h *productHandler) create(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	product := domain.Product{
		Title:                payload.Title,
		Description:          payload.Description,
		Category:             payload.Category,
		Price:                *payload.Price,
		DiscountPercentage:   *payload.DiscountPercentage,
		Rating:               payload.Rating,
		Stock:                *payload.Stock,
		Brand:                payload.Brand,
		Sku:                  payload.Sku,
		Weight:               *payload.Weight,
		Width:                *payload.Width,
		Height:               *payload.Height,
		Depth:                *payload.Depth,
		WarrantyInformation:  payload.WarrantyInformation,
		ShippingInformation:  payload.ShippingInformation,
		AvailabilityStatus:   payload.AvailabilityStatus,
		ReturnPolicy:         payload.ReturnPolicy,
		MinimumOrderQuantity: *payload.MinimumOrderQuantity,
		Images:               payload.Images,
		Thumbnail:            payload.Thumbnail,
		Barcode:              *payload.Barcode,
		QrCode:               payload.QrCode,
	}

	saved, err := h.products.Create(c.Request().Context(), &product, payload.Tags)
	if err != nil {
		return restError(c, err, "product")
	}
	return created(c, newProductView(saved))
}

func (h *productHandler) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	patch := catalog.ProductPatch{
		Title:                payload.Title,
		Description:          payload.Description,
		Category:             payload.Category,
		Price:                payload.Price,
		DiscountPercentage:   payload.DiscountPercentage,
		Rating:               payload.Rating,
		Stock:                payload.Stock,
		Brand:                payload.Brand,
		Sku:                  payload.Sku,
		Weight:               payload.Weight,
		Width:                payload.Width,
		Height:               payload.Height,
		Depth:                payload.Depth,
		WarrantyInformation:  payload.WarrantyInformation,
		ShippingInformation:  payload.ShippingInformation,
		AvailabilityStatus:   payload.AvailabilityStatus,
		ReturnPolicy:         payload.ReturnPolicy,
		MinimumOrderQuantity: payload.MinimumOrderQuantity,
		Images:               payload.Images,
		Thumbnail:            payload.Thumbnail,
		Barcode:              payload.Barcode,
		QrCode:               payload.QrCode,
	}

	saved, err := h.products.Update(c.Request().Context(), id, patch, payload.Tags)
	if err != nil {
		return restError(c, err, "product")
	}
	return ok(c, newProductView(saved))
}

func (h *productHandler) delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return restError(c, err, "product")
	}
	return ok(c, map[string]interface{}{"id": id})
}
