package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/thabob/bakkieassets/internal/config"
	"github.com/thabob/bakkieassets/internal/metrics"
	"github.com/thabob/bakkieassets/internal/upload"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config        config.Config
	Logger        *zap.Logger
	DB            *pgxpool.Pool // nil when the memory store driver is active
	Blobs         upload.BlobStore
	UploadService *upload.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(deps.Logger))
	router.Use(CORS())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/api")
	if deps.UploadService != nil {
		upload.RegisterRoutes(api, deps.UploadService)
	}

	return router
}
