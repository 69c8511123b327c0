package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UploadsAccepted counts uploads that passed intake.
	UploadsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakkie_uploads_accepted_total",
		Help: "Number of uploads accepted and registered.",
	})

	// UploadsRejected counts rejected uploads by reason.
	UploadsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bakkie_uploads_rejected_total",
		Help: "Number of rejected uploads, labeled by rejection reason.",
	}, []string{"reason"})

	// UploadedBytes accumulates the bytes of accepted uploads.
	UploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakkie_uploaded_bytes_total",
		Help: "Total bytes stored by accepted uploads.",
	})
)

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
