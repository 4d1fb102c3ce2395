package catalogapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/catalogix/catalogd/internal/catalog"
	"github.com/catalogix/catalogd/internal/domain"
	"github.com/catalogix/catalogd/internal/webserver"
)

type tagPayload struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

var tagSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type tagHandler struct {
	tags catalog.TagRepository
}

func newTagHandler(tags catalog.TagRepository) *tagHandler {
	return &tagHandler{tags: tags}
}

func (h *tagHandler) register(ws *webserver.WebServer) {
	ws.ApiGET("/tags", h.list)
	ws.ApiGET("/tags/:id", h.get)
	ws.ApiPOST("/tags", h.create)
	ws.ApiPUT("/tags/:id", h.update)
	ws.ApiPATCH("/tags/:id", h.update)
	ws.ApiDELETE("/tags/:id", h.delete)
}

func (h *tagHandler) list(c echo.Context) error {
	q := parseListQuery(c, tagSortColumns)
	rows, total, err := h.tags.List(c.Request().Context(), q)
	if err != nil {
		return restError(c, err, "tags")
	}
	return paged(c, newTagViews(rows), total, q.Page, q.PageSize)
}

func (h *tagHandler) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID", nil)
	}

	tag, err := h.tags.GetByID(c.Request().Context(), id)
	if err != nil {
		return restError(c, err, "tag")
	}
	return ok(c, newTagView(*tag))
}

func (h *tagHandler) create(c echo.Context) error {
	var payload tagPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse tag", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	tag := domain.Tag{Name: strings.TrimSpace(payload.Name)}
	if err := h.tags.Create(c.Request().Context(), &tag); err != nil {
		return restError(c, err, "tag")
	}
	return created(c, newTagView(tag))
}

func (h *tagHandler) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID", nil)
	}

	var payload tagPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse tag", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	tag, err := h.tags.Update(c.Request().Context(), id, payload.Name)
	if err != nil {
		return restError(c, err, "tag")
	}
	return ok(c, newTagView(*tag))
}

func (h *tagHandler) delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID", nil)
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return restError(c, err, "tag")
	}
	return ok(c, map[string]interface{}{"id": id})
}
