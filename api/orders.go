package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	service orders.OrderUseCase
	log     logrus.FieldLogger
}

type ticketRequest struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight_id" binding:"required,gt=0"`
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets" binding:"required,min=1,dive"`
}

func NewOrderHandler(service orders.OrderUseCase, log logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
}

// create leaves row and seat unchecked; bounds belong to the order itself
// so the failing ticket can be reported.
func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	requests := make([]domain.TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		requests = append(requests, domain.TicketRequest{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), ownerID(c), requests)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c *gin.Context) {
	list, err := h.service.ListOrders(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
