package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps uploaded bytes in a single flat directory on local disk.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the uploads directory if absent and returns a store
// rooted there. Creation is idempotent.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory %q: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save streams the reader into a file under the generated name. A failed
// or short write removes the partial file.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader, size int64) (int64, error) {
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file %q: %w", name, err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("write file %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("close file %q: %w", name, err)
	}
	return written, nil
}

// Open returns a reader over the stored file. A missing file surfaces
// fs.ErrNotExist.
func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Exists stats the file on disk.
func (s *DiskStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove deletes the stored file if present.
func (s *DiskStore) Remove(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Ping verifies the uploads directory is still reachable.
func (s *DiskStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", s.dir)
	}
	return nil
}
