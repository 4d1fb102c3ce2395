package catalogapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogix/catalogd/internal/catalog"
	"github.com/catalogix/catalogd/internal/domain"
	"github.com/catalogix/catalogd/internal/webserver"
)

type reviewPayload struct {
	Rating        *int   `json:"rating" validate:"required,gte=0,lte=5"`
	Comment       string `json:"comment" validate:"required"`
	ReviewerName  string `json:"reviewer_name" validate:"required,max=100"`
	ReviewerEmail string `json:"reviewer_email" validate:"required,email"`
	// accepted on unscoped updates; ignored on scoped creates where the
	// path decides the parent
	Product *int64 `json:"product"`
}

type reviewUpdatePayload struct {
	Rating        *int    `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Comment       *string `json:"comment"`
	ReviewerName  *string `json:"reviewer_name" validate:"omitempty,max=100"`
	ReviewerEmail *string `json:"reviewer_email" validate:"omitempty,email"`
	Product       *int64  `json:"product"`
}

var reviewSortColumns = map[string]string{
	"id":         "id",
	"rating":     "rating",
	"created_at": "created_at",
}

type reviewHandler struct {
	reviews  catalog.ReviewRepository
	products catalog.ProductRepository
}

func newReviewHandler(reviews catalog.ReviewRepository, products catalog.ProductRepository) *reviewHandler {
	return &reviewHandler{reviews: reviews, products: products}
}

func (h *reviewHandler) register(ws *webserver.WebServer) {
	// scoped under the parent product
	ws.ApiGET("/products/:product_id/reviews", h.listByProduct)
	ws.ApiPOST("/products/:product_id/reviews", h.createScoped)

	// unscoped
	ws.ApiGET("/reviews", h.list)
	ws.ApiGET("/reviews/:id", h.get)
	ws.ApiPUT("/reviews/:id", h.update)
	ws.ApiPATCH("/reviews/:id", h.update)
	ws.ApiDELETE("/reviews/:id", h.delete)
}

func (h *reviewHandler) list(c echo.Context) error {
	q := parseListQuery(c, reviewSortColumns)
	rows, total, err := h.reviews.List(c.Request().Context(), 0, q)
	if err != nil {
		return restError(c, err, "reviews")
	}
	return paged(c, newReviewViews(rows), total, q.Page, q.PageSize)
}

func (h *reviewHandler) listByProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	q := parseListQuery(c, reviewSortColumns)
	rows, total, err := h.reviews.List(c.Request().Context(), productID, q)
	if err != nil {
		return restError(c, err, "reviews")
	}
	return paged(c, newReviewViews(rows), total, q.Page, q.PageSize)
}

// createScoped creates a review under /products/:product_id/reviews. The
// parent comes from the path; a product value in the body is ignored.
func (h *reviewHandler) createScoped(c echo.Context) error {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	product, err := h.products.GetByID(c.Request().Context(), productID)
	if err != nil {
		return restError(c, err, "product")
	}

	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	review := domain.Review{
		Rating:        *payload.Rating,
		Comment:       payload.Comment,
		ReviewerName:  payload.ReviewerName,
		ReviewerEmail: payload.ReviewerEmail,
		ProductID:     product.ID,
	}
	if err := h.reviews.Create(c.Request().Context(), &review); err != nil {
		return restError(c, err, "review")
	}
	return created(c, newReviewView(review))
}

func (h *reviewHandler) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}

	review, err := h.reviews.GetByID(c.Request().Context(), id)
	if err != nil {
		return restError(c, err, "review")
	}
	return ok(c, newReviewView(*review))
}

func (h *reviewHandler) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}

	var payload reviewUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	patch := catalog.ReviewPatch{
		Rating:        payload.Rating,
		Comment:       payload.Comment,
		ReviewerName:  payload.ReviewerName,
		ReviewerEmail: payload.ReviewerEmail,
		ProductID:     payload.Product,
	}
	review, err := h.reviews.Update(c.Request().Context(), id, patch)
	if err != nil {
		return restError(c, err, "review")
	}
	return ok(c, newReviewView(*review))
}

func (h *reviewHandler) delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}

	if err := h.reviews.Delete(c.Request().Context(), id); err != nil {
		return restError(c, err, "review")
	}
	return ok(c, map[string]interface{}{"id": id})
}
