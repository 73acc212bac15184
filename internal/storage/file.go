package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/IshaanNene/ReviewScope/internal/types"
)

// --- File Sink ---

// FileSink writes each blob to a file under a directory, named as the
// server suggested.
type FileSink struct {
	dir    string
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewFileSink creates the output directory and returns a sink writing into it.
func NewFileSink(dir string, logger *slog.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{
		dir:    dir,
		logger: logger.With("component", "file_sink"),
	}, nil
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Deliver(ctx context.Context, blob *Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &types.ExportError{Sink: s.Name(), Err: err}
	}

	// Keep the file inside dir even if the server sends a path.
	name := filepath.Base(blob.Filename)
	if name != blob.Filename {
		s.logger.Warn("export filename contained a path, using base name", "filename", blob.Filename, "base", name)
	}
	path := filepath.Join(s.dir, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, blob.Bytes(), 0o644); err != nil {
		return "", &types.ExportError{Sink: s.Name(), Err: err}
	}
	s.count++
	s.logger.Info("CSV written", "path", path, "bytes", blob.Size())
	return path, nil
}

func (s *FileSink) Close() error {
	s.logger.Debug("file sink closing", "files", s.count)
	return nil
}

// --- Memory Sink ---

// MemorySink keeps delivered blobs in memory so the web dashboard can
// serve them as attachments.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string]memoryFile
	last  string
}

type memoryFile struct {
	contentType string
	data        []byte
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]memoryFile)}
}

func (s *MemorySink) Name() string { return "memory" }

func (s *MemorySink) Deliver(ctx context.Context, blob *Blob) (string, error) {
	data := append([]byte(nil), blob.Bytes()...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[blob.Filename] = memoryFile{contentType: blob.ContentType, data: data}
	s.last = blob.Filename
	return "memory:" + blob.Filename, nil
}

// Get returns a delivered file by name.
func (s *MemorySink) Get(name string) (data []byte, contentType string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[name]
	return f.data, f.contentType, ok
}

// Last returns the name of the most recently delivered file.
func (s *MemorySink) Last() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *MemorySink) Close() error { return nil }
