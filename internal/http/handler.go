package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-tracking-service/internal/service"
)

type Handler struct {
	metrics *service.MetricsService
	log     zerolog.Logger
}

func NewHandler(metrics *service.MetricsService, log zerolog.Logger) *Handler {
	return &Handler{metrics: metrics, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/api")
	protected.Use(authMiddleware)

	protected.GET("/trips", h.listTrips)
	protected.GET("/trips/:id", h.getTrip)
	protected.GET("/trips/:id/events", h.getTripEvents)
	protected.GET("/trips/:id/metrics", h.getTripMetrics)
	protected.GET("/metrics/fleet", h.getFleetMetrics)
	protected.GET("/metrics/trip/:id", h.getTripMetrics)
	protected.GET("/events/current", h.getCurrentEvents)
}

func (h *Handler) listTrips(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.ListTrips())
}

func (h *Handler) getTrip(c *gin.Context) {
	trip, err := h.metrics.GetTrip(strings.TrimSpace(c.Param("id")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) getTripEvents(c *gin.Context) {
	tripID := strings.TrimSpace(c.Param("id"))

	var upTo *time.Time
	if at, ok := parseEpochMillis(c.Query("upTo")); ok {
		upTo = &at
	}

	limit := 0
	if limitStr := strings.TrimSpace(c.Query("limit")); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	c.JSON(http.StatusOK, h.metrics.TripEvents(tripID, upTo, limit))
}

func (h *Handler) getTripMetrics(c *gin.Context) {
	metrics, err := h.metrics.TripMetrics(strings.TrimSpace(c.Param("id")), h.queryTime(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) getFleetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.FleetMetrics(h.queryTime(c)))
}

func (h *Handler) getCurrentEvents(c *gin.Context) {
	at, ok := parseEpochMillis(c.Query("simTime"))
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("simTime query parameter is required"))
		return
	}
	c.JSON(http.StatusOK, h.metrics.CurrentEvents(at))
}

// queryTime resolves the simulation instant from the simTime query
// parameter (epoch milliseconds). Absent or nonsensical values mean now.
func (h *Handler) queryTime(c *gin.Context) time.Time {
	if at, ok := parseEpochMillis(c.Query("simTime")); ok {
		return at
	}
	return time.Now()
}

func parseEpochMillis(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis < 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		c.JSON(http.StatusNotFound, errorResponse("Trip not found"))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
