package reviewscope

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("POST /get-product-info", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{
			"product_id":   "B000000001",
			"product_info": map[string]any{"product_name": "Kettle", "avg_rating": 4.2},
		})
	})
	mux.HandleFunc("POST /analyze-reviews", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{
			"reviews": []map[string]any{
				{"rating": 5, "sentiment": "positive", "text": "fast"},
				{"rating": 1, "sentiment": "negative", "text": "leaks"},
			},
			"sentiment_stats": map[string]int{"positive": 1, "negative": 1},
			"summary":         "Split.",
		})
	})
	mux.HandleFunc("POST /export-csv", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]string{"csv_data": "n,r\n", "filename": "amazon_reviews_1.csv"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDashboardEndToEnd(t *testing.T) {
	srv := newBackend(t)
	dir := t.TempDir()

	d, err := New(WithBackend(srv.URL), WithLocale("en"), WithOutputDir(dir))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()
	ctx := context.Background()

	info, err := d.LookupProduct(ctx, "https://www.amazon.com/dp/B000000001")
	if err != nil {
		t.Fatalf("LookupProduct: %v", err)
	}
	if info.ProductName == nil || *info.ProductName != "Kettle" {
		t.Errorf("unexpected product info %+v", info)
	}
	if d.ProductID() != "B000000001" {
		t.Errorf("ProductID = %q", d.ProductID())
	}

	analysis, err := d.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Reviews) != 2 || analysis.Stats.Negative != 1 || analysis.Summary != "Split." {
		t.Errorf("unexpected analysis %+v", analysis)
	}
	if analysis.Reviews[0].Sentiment != Positive {
		t.Errorf("first review sentiment = %q", analysis.Reviews[0].Sentiment)
	}

	file, err := d.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if file.Name != "amazon_reviews_1.csv" || string(file.Data) != "\uFEFFn,r\n" {
		t.Errorf("unexpected export %q %q", file.Name, file.Data)
	}
	onDisk, err := os.ReadFile(filepath.Join(dir, file.Name))
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if string(onDisk) != string(file.Data) {
		t.Errorf("disk copy differs from export")
	}

	page, err := d.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(page, "leaks") {
		t.Error("page is missing the review table")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(WithBackend("ftp://example.com")); err == nil {
		t.Error("expected error for non-http backend")
	}
	if _, err := New(WithLocale("fr")); err == nil {
		t.Error("expected error for unsupported locale")
	}
}

func TestAnalyzeBeforeLookup(t *testing.T) {
	d, err := New(WithBackend(newBackend(t).URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	if _, err := d.Analyze(context.Background()); err == nil {
		t.Error("expected error when no product is loaded")
	}
}
