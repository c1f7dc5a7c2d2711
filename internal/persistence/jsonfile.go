package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// JSONFile owns a single JSON document on disk. All mutation runs through
// Update, serialized by a mutex scoped to the file path; reads do not take
// the lock. Writes replace the whole file atomically, so a concurrent
// reader sees either the previous or the next content, never a torn one.
type JSONFile struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewJSONFile creates a client for the given absolute path. The file
// itself is created lazily on first write.
func NewJSONFile(path string, logger *zap.Logger) *JSONFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONFile{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Read returns the current content, or nil when the file does not exist yet.
func (f *JSONFile) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write atomically replaces the whole file, creating parent directories on
// first use.
func (f *JSONFile) Write(data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return err
	}
	f.logger.Debug("file replaced", zap.String("path", f.path), zap.Int("bytes", len(data)))
	return nil
}

// Update runs one read-modify-write cycle under the mutation lock. fn
// receives the current content (nil when the file is missing) and returns
// the replacement; returning an error abandons the cycle without writing.
// The lock is released unconditionally.
func (f *JSONFile) Update(fn func(current []byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.Read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return f.Write(next)
}
