package catalogapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/catalogix/catalogd/internal/catalog"
	"github.com/catalogix/catalogd/internal/webserver"
)

// Register wires the catalog REST resources onto the web server. Handlers
// receive their repositories here; nothing reads the database handle from
// ambient state.
func Register(ws *webserver.WebServer, db *gorm.DB) {
	products := catalog.NewGormProductRepository(db)
	tags := catalog.NewGormTagRepository(db)
	reviews := catalog.NewGormReviewRepository(db)

	newProductHandler(products).register(ws)
	newTagHandler(tags).register(ws)
	newReviewHandler(reviews, products).register(ws)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"details": details,
	})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     data,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseListQuery reads page/perPage/sort/order/q; sort columns outside the
// whitelist fall back to id to keep user input out of the ORDER BY clause.
func parseListQuery(c echo.Context, allowedSort map[string]string) catalog.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	sortCol, found := allowedSort[strings.TrimSpace(c.QueryParam("sort"))]
	if !found || sortCol == "" {
		sortCol = "id"
	}

	return catalog.ListQuery{
		Page:     page,
		PageSize: pageSize,
		SortCol:  sortCol,
		Order:    order,
		Search:   strings.TrimSpace(c.QueryParam("q")),
	}
}

// handleValidationError renders validator failures as a field->message map
func handleValidationError(c echo.Context, err error) error {
	verrs, isFieldErrs := err.(validator.ValidationErrors)
	if !isFieldErrs {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", fields)
}

// restError maps repository failures onto the error envelope
func restError(c echo.Context, err error, resource string) error {
	if catalog.IsNotFound(err) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
	}
	if verr, isValidation := catalog.AsValidation(err); isValidation {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", verr.Fields)
	}
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to access "+resource, err.Error())
}
