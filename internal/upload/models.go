package upload

import (
	"fmt"
	"time"
)

// Upload is the stored metadata for one uploaded file.
type Upload struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// NewUpload carries the fields required to register an upload. The store
// assigns ID and UploadedAt.
type NewUpload struct {
	Filename     string
	OriginalName string
	Mimetype     string
	Size         int64
}

// Validate checks the record shape before it reaches a store.
func (n NewUpload) Validate() error {
	if n.Filename == "" {
		return fmt.Errorf("%w: filename is empty", ErrInvalidRecord)
	}
	if n.OriginalName == "" {
		return fmt.Errorf("%w: original name is empty", ErrInvalidRecord)
	}
	if n.Mimetype == "" {
		return fmt.Errorf("%w: mimetype is empty", ErrInvalidRecord)
	}
	if n.Size < 0 {
		return fmt.Errorf("%w: size %d is negative", ErrInvalidRecord, n.Size)
	}
	return nil
}
