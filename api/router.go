package api

import (
	"embed"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed docs/openapi.json
var docsFS embed.FS

const headerRequestID = "X-Request-ID"

type RouterConfig struct {
	JWTSecret string
	Swagger   bool
}

type Services struct {
	Flights flights.FlightUseCase
	Orders  orders.OrderUseCase
	Catalog catalog.CatalogUseCase
}

// NewRouter wires every handler under /api. All of /api needs a valid
// token; catalog and flight writes are staff only.
func NewRouter(cfg RouterConfig, svc Services, log logrus.FieldLogger) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Swagger {
		r.GET("/docs/openapi.json", func(c *gin.Context) {
			c.FileFromFS("docs/openapi.json", http.FS(docsFS))
		})
		r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))
	}

	api := r.Group("/api", Authenticate(cfg.JWTSecret))

	readOnly := api.Group("", AdminOrReadOnly())
	NewCatalogHandler(svc.Catalog, log).Register(readOnly)
	NewFlightHandler(svc.Flights, log).Register(readOnly.Group("/flights"))

	NewOrderHandler(svc.Orders, log).Register(api.Group("/orders"))
	return r
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Debug("request served")
	}
}
