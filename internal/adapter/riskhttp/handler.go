package riskhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"travel-risk-orchestrator/internal/adapter/repository"
	"travel-risk-orchestrator/internal/domain"
	"travel-risk-orchestrator/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// Handler exposes the risk pipeline over HTTP.
type Handler struct {
	reports     *usecase.ReportService
	registry    domain.DestinationRegistry
	itineraries *repository.ItineraryStore
	forecasts   domain.ForecastSource
	validate    *validator.Validate
}

// NewHandler wires the HTTP layer.
func NewHandler(
	reports *usecase.ReportService,
	registry domain.DestinationRegistry,
	itineraries *repository.ItineraryStore,
	forecasts domain.ForecastSource,
) *Handler {
	return &Handler{
		reports:     reports,
		registry:    registry,
		itineraries: itineraries,
		forecasts:   forecasts,
		validate:    validator.New(),
	}
}

// Register attaches the API routes to the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/v1/destinations", h.ListDestinations)
	e.GET("/v1/destinations/:id/forecast", h.CombinedForecast)
	e.GET("/v1/destinations/:id/forecast/daily", h.DailyForecast)
	e.POST("/v1/itineraries", h.CreateItinerary)
	e.GET("/v1/itineraries", h.ListItineraries)
	e.GET("/v1/itineraries/:id", h.GetItinerary)
	e.POST("/v1/risk/report", h.GenerateReport)
	e.POST("/v1/risk/report/refresh", h.RefreshReport)
}

// ListDestinations returns the configured destination set.
func (h *Handler) ListDestinations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"destinations": h.registry.List()})
}

// CreateItineraryRequest is the body of POST /v1/itineraries.
type CreateItineraryRequest struct {
	DestinationID string `json:"destinationId" validate:"required"`
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// CreateItinerary stores a new immutable itinerary.
func (h *Handler) CreateItinerary(c echo.Context) error {
	var req CreateItineraryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	if _, err := h.registry.Get(req.DestinationID); err != nil {
		return h.mapDomainError(c, err)
	}

	it, err := h.itineraries.Create(req.DestinationID, req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	return c.JSON(http.StatusCreated, it)
}

// ListItineraries returns every stored itinerary.
func (h *Handler) ListItineraries(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"itineraries": h.itineraries.List()})
}

// GetItinerary returns a stored itinerary by id.
func (h *Handler) GetItinerary(c echo.Context) error {
	it, err := h.itineraries.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	}
	return c.JSON(http.StatusOK, it)
}

// ReportRequest identifies the trip to analyze: either a stored itinerary id
// or an inline destination and date range.
type ReportRequest struct {
	ItineraryID   string `json:"itineraryId" validate:"required_without=DestinationID"`
	DestinationID string `json:"destinationId" validate:"required_without=ItineraryID"`
	StartDate     string `json:"startDate" validate:"required_with=DestinationID,omitempty,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required_with=DestinationID,omitempty,datetime=2006-01-02"`
}

// GenerateReport runs the risk pipeline, serving cached reports when fresh.
func (h *Handler) GenerateReport(c echo.Context) error {
	return h.report(c, h.reports.Get)
}

// RefreshReport bypasses the report cache and regenerates.
func (h *Handler) RefreshReport(c echo.Context) error {
	return h.report(c, h.reports.Refresh)
}

func (h *Handler) report(
	c echo.Context,
	run func(ctx context.Context, it domain.Itinerary) (*usecase.GenerateReportOutput, error),
) error {
	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	it, err := h.resolveItinerary(req)
	if err != nil {
		if req.ItineraryID != "" {
			return c.JSON(http.StatusNotFound, errorBody(err.Error()))
		}
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	out, err := run(c.Request().Context(), it)
	if err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"report":       out.Report,
		"forecastDays": out.ForecastDays,
	})
}

// resolveItinerary maps a report request onto a concrete itinerary. Inline
// requests get a deterministic id so repeated calls share one cache entry.
func (h *Handler) resolveItinerary(req ReportRequest) (domain.Itinerary, error) {
	if req.ItineraryID != "" {
		return h.itineraries.Get(req.ItineraryID)
	}
	id := fmt.Sprintf("%s:%s:%s", req.DestinationID, req.StartDate, req.EndDate)
	return domain.NewItinerary(id, req.DestinationID, req.StartDate, req.EndDate)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// DailyForecast returns normalized daily forecasts for a destination.
func (h *Handler) DailyForecast(c echo.Context) error {
	dest, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return h.mapDomainError(c, err)
	}

	days := h.forecasts.HorizonDays()
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, errorBody("days must be a positive integer"))
		}
		days = parsed
	}

	forecast, err := h.forecasts.DailyForecast(c.Request().Context(), dest.LocationKey, days)
	if err != nil {
		return h.mapDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"destination": dest,
		"days":        forecast,
	})
}

// CombinedForecast returns daily and hourly forecasts, fetched concurrently.
func (h *Handler) CombinedForecast(c echo.Context) error {
	dest, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return h.mapDomainError(c, err)
	}

	var (
		daily  []domain.DayForecast
		hourly []domain.HourForecast
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		daily, err = h.forecasts.DailyForecast(ctx, dest.LocationKey, h.forecasts.HorizonDays())
		return err
	})
	g.Go(func() error {
		var err error
		hourly, err = h.forecasts.HourlyForecast(ctx, dest.LocationKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.mapDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"destination": dest,
		"daily":       daily,
		"hourly":      hourly,
	})
}

func (h *Handler) mapDomainError(c echo.Context, err error) error {
	var (
		unknownDest *domain.UnknownDestinationError
		emptyFc     *domain.EmptyForecastError
		netErr      *domain.NetworkError
		emptyModel  *domain.EmptyModelResponseError
		badJSON     *domain.MalformedJsonError
		schemaErr   *domain.SchemaValidationError
	)
	switch {
	case errors.As(err, &unknownDest):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case errors.As(err, &emptyFc):
		return c.JSON(http.StatusUnprocessableEntity, errorBody(err.Error()))
	case errors.As(err, &netErr), errors.As(err, &emptyModel), errors.As(err, &badJSON):
		return c.JSON(http.StatusBadGateway, errorBody(err.Error()))
	case errors.As(err, &schemaErr):
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":      "model output failed schema validation",
			"violations": schemaErr.Violations,
		})
	default:
		return c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
}
