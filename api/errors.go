package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors name fields the way clients
// send them.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

type ticketErrorBody struct {
	Index    int    `json:"index"`
	FlightID int64  `json:"flight_id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	Reason   string `json:"reason"`
	Limit    int    `json:"limit,omitempty"`
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt", "gte", "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var seatErr *domain.SeatError
	switch {
	case errors.As(err, &seatErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"ticket": ticketErrorBody{
				Index:    seatErr.Index,
				FlightID: seatErr.FlightID,
				Row:      seatErr.Row,
				Seat:     seatErr.Seat,
				Reason:   seatErr.ReasonCode(),
				Limit:    seatErr.Limit,
			},
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func invalidParam(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
