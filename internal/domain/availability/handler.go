package availability

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaizenmindbody/kaizen-sub003/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.GetAvailability)
	api.POST("/availability", h.UpsertBlock)
	api.GET("/availability/blocks", h.ListBlocks)
}

// GetAvailability serves both query shapes: a bare date parameter
// returns the single-date shape, any range parameter switches to the
// range shape.
func (h *Handler) GetAvailability(c echo.Context) error {
	practitionerID := c.QueryParam("practitioner_id")
	date := c.QueryParam("date")
	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")

	ctx := c.Request().Context()

	if date != "" && startDate == "" && endDate == "" {
		day, err := h.svc.ResolveDay(ctx, practitionerID, date)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, day)
	}

	rng, err := h.svc.ResolveRange(ctx, RangeQuery{
		PractitionerID: practitionerID,
		Date:           date,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rng)
}

// UpsertBlock writes a practitioner's manual block for a date. A body
// whose unavailable_slots is not a JSON array fails to bind and is
// rejected as a bad request.
func (h *Handler) UpsertBlock(c echo.Context) error {
	var in UpsertBlockInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	block, err := h.svc.UpsertBlock(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, block)
}

func (h *Handler) ListBlocks(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListBlocks(c.Request().Context(), c.QueryParam("practitioner_id"), pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func httpError(err error) error {
	if errors.Is(err, ErrInvalidArgument) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
