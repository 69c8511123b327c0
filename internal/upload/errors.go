package upload

import "errors"

var (
	// ErrNoFile is returned when a request carries no file part.
	ErrNoFile = errors.New("no file uploaded")
	// ErrInvalidFileType rejects uploads whose mimetype is not image/*.
	ErrInvalidFileType = errors.New("only image files are allowed")
	// ErrFileTooLarge signals that the upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotFound signals that no record exists for the requested filename or id.
	ErrNotFound = errors.New("upload not found")
	// ErrFileGone indicates a record whose stored bytes have disappeared.
	ErrFileGone = errors.New("upload missing from blob storage")
	// ErrDuplicateFilename is returned when a generated filename is already taken.
	ErrDuplicateFilename = errors.New("filename already exists")
	// ErrInvalidRecord represents a malformed metadata record.
	ErrInvalidRecord = errors.New("invalid upload record")
)
