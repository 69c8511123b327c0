package upload

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// uploadFieldTag prefixes every generated filename; it matches the
// multipart form field the client submits under.
const uploadFieldTag = "file"

// RecordStore abstracts the metadata persistence layer.
type RecordStore interface {
	Create(ctx context.Context, data NewUpload) (Upload, error)
	Get(ctx context.Context, id int64) (Upload, error)
	GetByFilename(ctx context.Context, filename string) (Upload, error)
}

// Service runs the intake pipeline and resolves stored uploads.
type Service struct {
	repo    RecordStore
	blobs   BlobStore
	maxSize int64
	log     *zap.Logger
	nowFunc func() time.Time
	randInt func() int64
}

// NewService constructs an upload service.
func NewService(repo RecordStore, blobs BlobStore, maxSize int64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		blobs:   blobs,
		maxSize: maxSize,
		log:     log,
		nowFunc: time.Now,
		randInt: func() int64 { return rand.Int63n(1_000_000_000) },
	}
}

// Intake validates the upload, stores its bytes under a generated name and
// registers the metadata record. Metadata is only written after the byte
// write completed, so a failed write never leaves a dangling record.
func (s *Service) Intake(ctx context.Context, fileHeader *multipart.FileHeader) (Upload, error) {
	if fileHeader == nil {
		return Upload{}, ErrNoFile
	}

	mimetype := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimetype, "image/") {
		return Upload{}, ErrInvalidFileType
	}
	if fileHeader.Size > s.maxSize {
		return Upload{}, ErrFileTooLarge
	}

	name := s.generateFilename(fileHeader.Filename)

	src, err := fileHeader.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("open upload stream: %w", err)
	}
	defer src.Close()

	// The declared size already passed the check above; the limit guards
	// against a stream longer than its declared length.
	written, err := s.blobs.Save(ctx, name, io.LimitReader(src, s.maxSize+1), fileHeader.Size)
	if err != nil {
		return Upload{}, fmt.Errorf("store upload bytes: %w", err)
	}
	if written > s.maxSize {
		if rmErr := s.blobs.Remove(ctx, name); rmErr != nil {
			s.log.Error("remove oversized upload", zap.String("filename", name), zap.Error(rmErr))
		}
		return Upload{}, ErrFileTooLarge
	}

	record, err := s.repo.Create(ctx, NewUpload{
		Filename:     name,
		OriginalName: fileHeader.Filename,
		Mimetype:     mimetype,
		Size:         written,
	})
	if err != nil {
		if rmErr := s.blobs.Remove(ctx, name); rmErr != nil {
			s.log.Error("remove unregistered upload", zap.String("filename", name), zap.Error(rmErr))
		}
		return Upload{}, err
	}

	s.log.Info("upload stored",
		zap.Int64("id", record.ID),
		zap.String("filename", record.Filename),
		zap.Int64("size", record.Size),
	)
	return record, nil
}

// Retrieve resolves a generated filename to its record and byte stream.
// A record whose bytes have disappeared is reported as ErrFileGone so the
// inconsistency stays distinguishable from a name that never existed.
func (s *Service) Retrieve(ctx context.Context, filename string) (Upload, io.ReadCloser, error) {
	record, err := s.repo.GetByFilename(ctx, filename)
	if err != nil {
		return Upload{}, nil, err
	}

	exists, err := s.blobs.Exists(ctx, record.Filename)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("check upload bytes: %w", err)
	}
	if !exists {
		s.log.Warn("upload record without stored bytes",
			zap.Int64("id", record.ID),
			zap.String("filename", record.Filename),
		)
		return Upload{}, nil, ErrFileGone
	}

	rc, err := s.blobs.Open(ctx, record.Filename)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("open upload bytes: %w", err)
	}
	return record, rc, nil
}

// URL returns the public path a stored filename is served under.
func URL(filename string) string {
	return "/api/uploads/" + filename
}

// generateFilename derives a collision-resistant storage name. Only the
// extension is taken from the untrusted original name.
func (s *Service) generateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s-%d-%d%s", uploadFieldTag, s.nowFunc().UnixMilli(), s.randInt(), ext)
}
