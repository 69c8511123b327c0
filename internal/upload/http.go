package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thabob/bakkieassets/internal/metrics"
)

// RegisterRoutes mounts the upload endpoints under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/upload", handler.upload)
	group.GET("/uploads/:filename", handler.serveUpload)
}

type httpHandler struct {
	service *Service
}

type uploadResponse struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
}

func (h *httpHandler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile(uploadFieldTag)
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("no_file").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	record, err := h.service.Intake(c.Request.Context(), fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile):
			metrics.UploadsRejected.WithLabelValues("no_file").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		case errors.Is(err, ErrInvalidFileType):
			metrics.UploadsRejected.WithLabelValues("invalid_type").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed!"})
		case errors.Is(err, ErrFileTooLarge):
			metrics.UploadsRejected.WithLabelValues("too_large").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		case errors.Is(err, ErrDuplicateFilename), errors.Is(err, ErrInvalidRecord):
			metrics.UploadsRejected.WithLabelValues("bad_record").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			metrics.UploadsRejected.WithLabelValues("storage").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store upload"})
		}
		return
	}

	metrics.UploadsAccepted.Inc()
	metrics.UploadedBytes.Add(float64(record.Size))

	c.JSON(http.StatusOK, uploadResponse{
		ID:           record.ID,
		Filename:     record.Filename,
		OriginalName: record.OriginalName,
		URL:          URL(record.Filename),
	})
}

func (h *httpHandler) serveUpload(c *gin.Context) {
	filename := c.Param("filename")

	record, rc, err := h.service.Retrieve(c.Request.Context(), filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
		case errors.Is(err, ErrFileGone):
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found on disk"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload"})
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Type", record.Mimetype)
	c.Header("Content-Length", fmt.Sprintf("%d", record.Size))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers are already written; nothing to report to the client.
		c.Abort()
	}
}
