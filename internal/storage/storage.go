package storage

import (
	"context"
	"sync"
)

// BOM is prepended to exported CSV so spreadsheet tools read it as UTF-8.
const BOM = "\uFEFF"

// CSVContentType is the media type of exported files.
const CSVContentType = "text/csv;charset=utf-8;"

// Blob is an in-memory file waiting to be delivered.
type Blob struct {
	Filename    string
	ContentType string

	mu       sync.Mutex
	data     []byte
	released bool
}

// NewCSVBlob wraps server CSV text as a downloadable file with a BOM prefix.
func NewCSVBlob(csvData, filename string) *Blob {
	return &Blob{
		Filename:    filename,
		ContentType: CSVContentType,
		data:        []byte(BOM + csvData),
	}
}

// Bytes returns the blob content, or nil once released.
func (b *Blob) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Size returns the content length in bytes.
func (b *Blob) Size() int {
	return len(b.Bytes())
}

// Release drops the content. Safe to call more than once.
func (b *Blob) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
	b.released = true
}

// Released reports whether Release has been called.
func (b *Blob) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

// Sink is the interface for all export destinations.
type Sink interface {
	// Deliver stores the blob and returns where it went.
	Deliver(ctx context.Context, blob *Blob) (string, error)

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the sink identifier.
	Name() string
}
