package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IshaanNene/ReviewScope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestCSVBlobStartsWithBOM(t *testing.T) {
	csv := "번호,평점,감정,리뷰 내용\n1,4.7,positive,\"great\"\n"
	blob := NewCSVBlob(csv, "amazon_reviews_1.csv")

	got := string(blob.Bytes())
	if !strings.HasPrefix(got, "\uFEFF") {
		t.Fatal("blob should start with the byte-order mark")
	}
	if strings.TrimPrefix(got, "\uFEFF") != csv {
		t.Errorf("blob body should equal server CSV exactly, got %q", got)
	}
	if blob.Filename != "amazon_reviews_1.csv" {
		t.Errorf("unexpected filename %q", blob.Filename)
	}
	if blob.ContentType != "text/csv;charset=utf-8;" {
		t.Errorf("unexpected content type %q", blob.ContentType)
	}
}

func TestBlobRelease(t *testing.T) {
	blob := NewCSVBlob("a\n", "x.csv")
	blob.Release()
	blob.Release()
	if !blob.Released() || blob.Bytes() != nil {
		t.Error("released blob should drop its content")
	}
}

func TestFileSinkDeliver(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(filepath.Join(dir, "out"), testLogger)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	defer sink.Close()

	blob := NewCSVBlob("a,b\n", "amazon_reviews_42.csv")
	path, err := sink.Deliver(context.Background(), blob)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if filepath.Base(path) != "amazon_reviews_42.csv" {
		t.Errorf("file should be named as the server suggested, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "\uFEFFa,b\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestFileSinkStripsPath(t *testing.T) {
	dir := t.TempDir()
	sink, _ := NewFileSink(dir, testLogger)

	path, err := sink.Deliver(context.Background(), NewCSVBlob("a\n", "../../escape.csv"))
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file escaped the output dir: %s", path)
	}
}

func TestFileSinkCancelled(t *testing.T) {
	sink, _ := NewFileSink(t.TempDir(), testLogger)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sink.Deliver(ctx, NewCSVBlob("a\n", "x.csv"))
	var ee *types.ExportError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExportError, got %v", err)
	}
}

func TestMemorySinkSurvivesRelease(t *testing.T) {
	sink := NewMemorySink()
	blob := NewCSVBlob("a\n", "x.csv")
	if _, err := sink.Deliver(context.Background(), blob); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	blob.Release()

	data, ct, ok := sink.Get("x.csv")
	if !ok {
		t.Fatal("expected stored file")
	}
	if string(data) != "\uFEFFa\n" || ct != CSVContentType {
		t.Errorf("unexpected stored file %q %q", data, ct)
	}
	if sink.Last() != "x.csv" {
		t.Errorf("unexpected last %q", sink.Last())
	}
}

type failingSink struct{}

func (failingSink) Deliver(context.Context, *Blob) (string, error) {
	return "", errors.New("disk full")
}
func (failingSink) Close() error { return nil }
func (failingSink) Name() string { return "failing" }

func TestMultiSinkContinuesAfterFailure(t *testing.T) {
	mem := NewMemorySink()
	multi := NewMultiSink([]Sink{failingSink{}, mem}, testLogger)

	loc, err := multi.Deliver(context.Background(), NewCSVBlob("a\n", "x.csv"))
	if err == nil {
		t.Error("expected first error to be reported")
	}
	if loc != "memory:x.csv" {
		t.Errorf("expected memory location, got %q", loc)
	}
	if _, _, ok := mem.Get("x.csv"); !ok {
		t.Error("later sinks should still receive the blob")
	}
}

func TestArchivingSinkIgnoresArchiveFailure(t *testing.T) {
	mem := NewMemorySink()
	sink := NewArchivingSink(mem, []Sink{failingSink{}}, testLogger)

	loc, err := sink.Deliver(context.Background(), NewCSVBlob("a\n", "x.csv"))
	if err != nil {
		t.Fatalf("archive failure should not fail delivery: %v", err)
	}
	if loc != "memory:x.csv" {
		t.Errorf("expected primary location, got %q", loc)
	}
	if _, _, ok := mem.Get("x.csv"); !ok {
		t.Error("primary should hold the blob")
	}
}

func TestArchivingSinkPrimaryFailure(t *testing.T) {
	mem := NewMemorySink()
	sink := NewArchivingSink(failingSink{}, []Sink{mem}, testLogger)

	if _, err := sink.Deliver(context.Background(), NewCSVBlob("a\n", "x.csv")); err == nil {
		t.Fatal("expected primary error")
	}
	if _, _, ok := mem.Get("x.csv"); ok {
		t.Error("archives should not receive a blob the primary rejected")
	}
}

func TestNewMongoSinkUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for server selection")
	}
	_, err := NewMongoSink("mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "reviewscope", "exports", testLogger)
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
	if !strings.Contains(err.Error(), "mongodb ping") {
		t.Errorf("unexpected error: %v", err)
	}
}
