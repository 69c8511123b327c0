package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thabob/bakkieassets/internal/config"
	"github.com/thabob/bakkieassets/internal/upload"
)

func newTestRouter(t *testing.T) (*gin.Engine, *upload.DiskStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blobs, err := upload.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	repo := upload.NewMemoryRepository()
	service := upload.NewService(repo, blobs, 5*1024*1024, nil)

	cfg := config.Config{}
	cfg.Metrics.PrometheusPath = "/metrics"

	router := NewRouter(Dependencies{
		Config:        cfg,
		Blobs:         blobs,
		UploadService: service,
	})
	return router, blobs
}

func postFile(t *testing.T, router *gin.Engine, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

type uploadResponse struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
}

func TestUploadRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := []byte("0123456789")
	rr := postFile(t, router, "logo.png", "image/png", payload)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "logo.png", resp.OriginalName)
	assert.Regexp(t, regexp.MustCompile(`^file-\d+-\d+\.png$`), resp.Filename)
	assert.Equal(t, "/api/uploads/"+resp.Filename, resp.URL)

	req := httptest.NewRequest(http.MethodGet, resp.URL, nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
	body, err := io.ReadAll(get.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestUploadIDsAreMonotonic(t *testing.T) {
	router, _ := newTestRouter(t)

	var lastID int64
	for i := 0; i < 3; i++ {
		rr := postFile(t, router, "bakkie.jpg", "image/jpeg", []byte("jpegdata"))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp uploadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Greater(t, resp.ID, lastID)
		lastID = resp.ID
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	router, blobs := newTestRouter(t)

	rr := postFile(t, router, "report.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Only image files are allowed!")

	assertDirEmpty(t, blobs.Dir())
}

func TestUploadRejectsOversized(t *testing.T) {
	router, blobs := newTestRouter(t)

	rr := postFile(t, router, "huge.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 6*1024*1024))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "File too large")

	assertDirEmpty(t, blobs.Dir())
}

func TestUploadWithoutFile(t *testing.T) {
	router, _ := newTestRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No file uploaded")
}

func TestServeUnknownFilename(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/uploads/file-0-0.png", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "File not found")
}

func TestServeFileDeletedFromDisk(t *testing.T) {
	router, blobs := newTestRouter(t)

	rr := postFile(t, router, "logo.png", "image/png", []byte("0123456789"))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NoError(t, os.Remove(filepath.Join(blobs.Dir(), resp.Filename)))

	req := httptest.NewRequest(http.MethodGet, resp.URL, nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	require.Equal(t, http.StatusNotFound, get.Code)
	assert.Contains(t, get.Body.String(), "File not found on disk")
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotZero(t, rr.Body.Len())
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
	req.Header.Set("Origin", "https://bakkie.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://bakkie.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
