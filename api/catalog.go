package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the reference data: airports, airplane types,
// crews, airplanes and routes.
type CatalogHandler struct {
	service catalog.CatalogUseCase
	log     logrus.FieldLogger
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required"`
	Rows         int    `json:"rows" binding:"required,gt=0"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required,gt=0"`
	AirplaneType *int64 `json:"airplane_type" binding:"omitempty,gt=0"`
}

type airplaneResponse struct {
	domain.Airplane
	Capacity int `json:"capacity"`
}

type routeRequest struct {
	Source      int64 `json:"source" binding:"required,gt=0"`
	Destination int64 `json:"destination" binding:"required,gt=0"`
	Distance    int   `json:"distance" binding:"gte=0"`
}

type routeListItem struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func NewCatalogHandler(service catalog.CatalogUseCase, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.listAirports)
	router.POST("/airports", h.createAirport)
	router.GET("/airplane_types", h.listAirplaneTypes)
	router.POST("/airplane_types", h.createAirplaneType)
	router.GET("/crews", h.listCrews)
	router.POST("/crews", h.createCrew)
	router.GET("/airplanes", h.listAirplanes)
	router.POST("/airplanes", h.createAirplane)
	router.GET("/airplanes/:id", h.getAirplane)
	router.GET("/routes", h.listRoutes)
	router.POST("/routes", h.createRoute)
	router.GET("/routes/:id", h.getRoute)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	list, err := h.service.ListAirports(c.Request.Context(), domain.AirportFilter{Name: c.Query("name")})
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), req.Name)
	h.respond(c, http.StatusCreated, airport, err)
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	list, err := h.service.ListAirplaneTypes(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	h.respond(c, http.StatusCreated, t, err)
}

func (h *CatalogHandler) listCrews(c *gin.Context) {
	list, err := h.service.ListCrews(c.Request.Context())
	h.respond(c, http.StatusOK, list, err)
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req crewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	crew, err := h.service.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	h.respond(c, http.StatusCreated, crew, err)
}

// parseIDList reads a comma separated id list such as "1,2".
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, invalidParam("expected a comma separated list of ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	typeIDs, err := parseIDList(c.Query("airplane_type"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	list, err := h.service.ListAirplanes(c.Request.Context(), domain.AirplaneFilter{Name: c.Query("name"), TypeIDs: typeIDs})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]airplaneResponse, 0, len(list))
	for _, a := range list {
		out = append(out, airplaneResponse{Airplane: a, Capacity: a.Capacity()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req airplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	airplane, err := h.service.CreateAirplane(c.Request.Context(), catalog.AirplaneInput{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneType,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneResponse{Airplane: *airplane, Capacity: airplane.Capacity()})
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, airplaneResponse{Airplane: *airplane, Capacity: airplane.Capacity()})
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	var filter domain.RouteFilter
	for param, dst := range map[string]**int64{"source": &filter.SourceID, "destination": &filter.DestinationID} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, h.log, invalidParam(param+" must be an integer id"))
			return
		}
		*dst = &id
	}

	list, err := h.service.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]routeListItem, 0, len(list))
	for _, r := range list {
		out = append(out, routeListItem{ID: r.ID, Source: r.Source.Name, Destination: r.Destination.Name, Distance: r.Distance})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), catalog.RouteInput{
		SourceID:      req.Source,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	})
	h.respond(c, http.StatusCreated, route, err)
}

func (h *CatalogHandler) getRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := h.service.GetRoute(c.Request.Context(), id)
	h.respond(c, http.StatusOK, route, err)
}

func (h *CatalogHandler) respond(c *gin.Context, status int, body any, err error) {
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(status, body)
}
