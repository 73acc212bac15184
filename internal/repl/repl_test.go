package repl

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/storage"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

type stubBackend struct {
	inputs []string
}

func (s *stubBackend) GetProductInfo(_ context.Context, input string) (*types.ProductInfoResponse, error) {
	s.inputs = append(s.inputs, input)
	if input == "missing" {
		return nil, &types.ServerError{Endpoint: types.EndpointProductInfo, StatusCode: 404, Message: "product not found"}
	}
	name := "Kettle"
	return &types.ProductInfoResponse{ProductID: "B1", ProductInfo: types.ProductInfo{ProductName: &name}}, nil
}

func (s *stubBackend) AnalyzeReviews(context.Context, string) (*types.AnalyzeResponse, error) {
	return &types.AnalyzeResponse{
		Reviews: []types.Review{
			{Rating: 5, Sentiment: types.SentimentPositive, Text: "lovely"},
			{Rating: 2, Sentiment: types.SentimentNegative, Text: "rusty"},
		},
		SentimentStats: types.SentimentStats{Positive: 1, Negative: 1},
		Summary:        "Split opinions.",
	}, nil
}

func (s *stubBackend) ExportCSV(_ context.Context, reviews []types.Review) (*types.ExportResponse, error) {
	if len(reviews) == 0 {
		return nil, errors.New("unexpected empty export")
	}
	return &types.ExportResponse{CSVData: "a\n", Filename: "amazon_reviews_1.csv"}, nil
}

func runShell(t *testing.T, input string) (string, *stubBackend, *storage.MemorySink) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.DefaultConfig()
	stub := &stubBackend{}
	sink := storage.NewMemorySink()
	view := dashboard.NewTerminalView(&out, false)
	ctrl := dashboard.NewController(stub, view, i18n.MustNew("en"), testLogger, dashboard.WithSink(sink))

	New(cfg, ctrl, view, strings.NewReader(input), &out, testLogger).Start(context.Background())
	return out.String(), stub, sink
}

func TestBareLineIsProductInput(t *testing.T) {
	out, stub, _ := runShell(t, "https://www.amazon.com/dp/B1\nexit\n")

	assert.Equal(t, []string{"https://www.amazon.com/dp/B1"}, stub.inputs)
	assert.Contains(t, out, "📦 Kettle")
	assert.Contains(t, out, "Goodbye!")
}

func TestInfoAnalyzeExport(t *testing.T) {
	out, _, sink := runShell(t, "info B1\nanalyze\nexport\nstatus\n")

	assert.Contains(t, out, "Split opinions.")
	assert.Contains(t, out, "rusty")
	assert.Contains(t, out, "Saved memory:amazon_reviews_1.csv")
	assert.Contains(t, out, "Reviews:   2")
	data, _, ok := sink.Get("amazon_reviews_1.csv")
	require.True(t, ok)
	assert.Equal(t, storage.BOM+"a\n", string(data))
}

func TestFlowErrorsAreShown(t *testing.T) {
	out, _, _ := runShell(t, "analyze\nexport\ninfo missing\n")

	assert.Contains(t, out, "❌ Please look up the product info first.")
	assert.Contains(t, out, "❌ There is no review data to export.")
	assert.Contains(t, out, "❌ product not found")
}

func TestSetLocale(t *testing.T) {
	out, _, _ := runShell(t, "set locale ko\nanalyze\nset locale fr\n")

	assert.Contains(t, out, "Locale set to ko")
	assert.Contains(t, out, "상품 정보를 먼저 조회해주세요.")
	assert.Contains(t, out, `unsupported locale "fr"`)
}

func TestReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "kettle.md")
	out, _, _ := runShell(t, "info B1\nanalyze\nreport "+path+"\n")

	assert.Contains(t, out, "Report written to "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Kettle")
	assert.Contains(t, string(data), "Split opinions.")
}

func TestReviewsRequiresAnalysis(t *testing.T) {
	out, _, _ := runShell(t, "reviews\nstatus\n")
	assert.Contains(t, out, "There is no review data to export.")
	assert.Contains(t, out, "No product loaded.")
}
