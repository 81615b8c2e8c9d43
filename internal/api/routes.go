package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"physique-coach/internal/service"
)

// NewRouter builds the gin engine for the coaching API wrapped in a CORS
// handler for allowedOrigins.
func NewRouter(svc *service.CoachService, allowedOrigins []string, logger *slog.Logger) http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := NewAthleteHandler(svc, logger)
	SetupRoutes(router, h)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

// SetupRoutes registers every endpoint on router
func SetupRoutes(router *gin.Engine, h *AthleteHandler) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.GET("/references", GetReferences)

	athletes := apiV1.Group("/athletes/:id")
	{
		athletes.GET("", h.GetProfile)
		athletes.PUT("", h.PutProfile)

		athletes.GET("/measurements", h.ListMeasurements)
		athletes.POST("/measurements", h.LogMeasurement)
		athletes.DELETE("/measurements/:date", h.DeleteMeasurement)

		athletes.GET("/report", h.GetReport)
	}
}

// NewServer returns an http.Server with the timeouts used for the API
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
