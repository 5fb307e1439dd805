package storage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"tasktimer/errs"
	"tasktimer/logfields"
)

const lockRetryDelay = 50 * time.Millisecond

// FileStore implements Store on a single file in one of the supported formats.
type FileStore struct {
	path    string
	format  Format
	locking bool
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFormat overrides the format inferred from the file extension.
func WithFormat(f Format) FileOption {
	return func(s *FileStore) { s.format = f }
}

// WithLocking enables or disables the advisory lock file.
func WithLocking(enabled bool) FileOption {
	return func(s *FileStore) { s.locking = enabled }
}

// NewFileStore creates a store for path. Nothing is read until Load.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:    path,
		format:  FormatFromPath(path),
		locking: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the data file path.
func (s *FileStore) Location() string {
	return s.path
}

// Format returns the serialization format.
func (s *FileStore) Format() Format {
	return s.format
}

// LockPath returns the path of the advisory lock file.
func (s *FileStore) LockPath() string {
	return s.path + ".lock"
}

// Lock takes the advisory lock, waiting until ctx is done.
func (s *FileStore) Lock(ctx context.Context) (func() error, error) {
	if !s.locking {
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, errs.Persistence(err, "create directory for", s.path)
	}

	fl := flock.New(s.LockPath())
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, errs.Persistence(err, "lock", s.LockPath())
	}
	if !locked {
		return nil, errs.Persistence(errors.New("lock held by another process"), "lock", s.LockPath())
	}
	slog.Debug("Acquired store lock", logfields.Path(s.LockPath()))
	return fl.Unlock, nil
}

// Load reads and decodes the file. A missing file is an empty list.
func (s *FileStore) Load(_ context.Context) (*TaskList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Store file missing, starting empty", logfields.Path(s.path))
			return NewTaskList(), nil
		}
		return nil, errs.Persistence(err, "read", s.path)
	}

	list, err := Decode(s.format, data)
	if err != nil {
		return nil, errs.Persistence(err, "decode", s.path)
	}
	slog.Debug("Loaded tasks",
		logfields.Path(s.path),
		logfields.Format(string(s.format)),
		logfields.TaskCount(list.Len()))
	return list, nil
}

// Save rewrites the whole file through a temporary file and a rename so a
// crash never leaves a half-written list behind.
func (s *FileStore) Save(_ context.Context, list *TaskList) error {
	data, err := Encode(s.format, list)
	if err != nil {
		return errs.Persistence(err, "encode", s.path)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Persistence(err, "create directory for", s.path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errs.Persistence(err, "create temporary file for", s.path)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Persistence(err, "write", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errs.Persistence(err, "sync", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errs.Persistence(err, "close", tmpPath)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errs.Persistence(err, "chmod", tmpPath)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errs.Persistence(err, "replace", s.path)
	}

	slog.Debug("Saved tasks",
		logfields.Path(s.path),
		logfields.Format(string(s.format)),
		logfields.TaskCount(list.Len()))
	return nil
}
