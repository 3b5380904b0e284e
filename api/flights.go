package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     logrus.FieldLogger
}

type flightRequest struct {
	Airplane      int64      `json:"airplane" binding:"required,gt=0"`
	Route         int64      `json:"route" binding:"required,gt=0"`
	DepartureTime *time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   *time.Time `json:"arrival_time" binding:"required"`
	Crew          []int64    `json:"crew" binding:"omitempty,dive,gt=0"`
}

type flightResponse struct {
	ID            int64     `json:"id"`
	Airplane      int64     `json:"airplane"`
	Route         int64     `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew"`
}

func NewFlightHandler(service flights.FlightUseCase, log logrus.FieldLogger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

// parseFlightFilter reads ?departure_time=YYYY-MM-DD&route=<id>.
func parseFlightFilter(c *gin.Context) (domain.FlightFilter, error) {
	var filter domain.FlightFilter
	if raw := c.Query("departure_time"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, invalidParam("departure_time must be YYYY-MM-DD")
		}
		filter.DepartureDate = &date
	}
	if raw := c.Query("route"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, invalidParam("route must be an integer id")
		}
		filter.RouteID = &id
	}
	return filter, nil
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, err := parseFlightFilter(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r flightRequest) input() flights.FlightInput {
	in := flights.FlightInput{
		AirplaneID: r.Airplane,
		RouteID:    r.Route,
		CrewIDs:    r.Crew,
	}
	if r.DepartureTime != nil {
		in.DepartureTime = *r.DepartureTime
	}
	if r.ArrivalTime != nil {
		in.ArrivalTime = *r.ArrivalTime
	}
	return in
}

func toFlightResponse(f *domain.Flight) flightResponse {
	crew := f.CrewIDs
	if crew == nil {
		crew = []int64{}
	}
	return flightResponse{
		ID:            f.ID,
		Airplane:      f.AirplaneID,
		Route:         f.RouteID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Crew:          crew,
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
