package upload

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps upload metadata in process memory. It is the
// reference store: state lives for the lifetime of the process and is
// lost on restart.
type MemoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	records    map[int64]Upload
	byFilename map[string]int64
	nowFunc    func() time.Time
}

// NewMemoryRepository constructs an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:     1,
		records:    make(map[int64]Upload),
		byFilename: make(map[string]int64),
		nowFunc:    time.Now,
	}
}

// Create assigns the next id, stamps UploadedAt and stores the record.
// The id increment and both map insertions happen under one lock so ids
// are never duplicated or reused.
func (r *MemoryRepository) Create(ctx context.Context, data NewUpload) (Upload, error) {
	if err := data.Validate(); err != nil {
		return Upload{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byFilename[data.Filename]; taken {
		return Upload{}, ErrDuplicateFilename
	}

	record := Upload{
		ID:           r.nextID,
		Filename:     data.Filename,
		OriginalName: data.OriginalName,
		Mimetype:     data.Mimetype,
		Size:         data.Size,
		UploadedAt:   r.nowFunc(),
	}
	r.nextID++
	r.records[record.ID] = record
	r.byFilename[record.Filename] = record.ID

	return record, nil
}

// Get returns the record with the given id.
func (r *MemoryRepository) Get(ctx context.Context, id int64) (Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return Upload{}, ErrNotFound
	}
	return record, nil
}

// GetByFilename resolves a record through the filename index.
func (r *MemoryRepository) GetByFilename(ctx context.Context, filename string) (Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byFilename[filename]
	if !ok {
		return Upload{}, ErrNotFound
	}
	return r.records[id], nil
}
