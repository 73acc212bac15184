// Package i18n holds the user-facing strings of the dashboard in every
// supported locale and formats numbers with locale-aware grouping.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Each key is also the English format string.
const (
	MsgEnterProductURL  = "Please enter a product URL."
	MsgLoadProductFirst = "Please look up the product info first."
	MsgNoExportData     = "There is no review data to export."

	MsgLoadingProduct  = "Fetching product info..."
	MsgLoadingAnalysis = "Collecting and analyzing reviews... (up to 1 minute)"

	MsgProductInfoFailed = "An error occurred while fetching product info."
	MsgAnalyzeFailed     = "An error occurred while analyzing reviews."
	MsgExportFailed      = "An error occurred while exporting CSV."

	MsgNoInformation = "No information"
	MsgNoSimilar     = "No competing products found."

	MsgCount   = "%d items"
	MsgPoints  = "%s points"
	MsgPercent = "%s%%"

	MsgPositive = "Positive"
	MsgNeutral  = "Neutral"
	MsgNegative = "Negative"

	MsgChartPositive = "Positive 😊"
	MsgChartNeutral  = "Neutral 😐"
	MsgChartNegative = "Negative 😞"
	MsgTooltip       = "%s: %d items (%s%%)"

	MsgExported = "Saved %s"
)

var korean = map[string]string{
	MsgEnterProductURL:  "상품 URL을 입력해주세요.",
	MsgLoadProductFirst: "상품 정보를 먼저 조회해주세요.",
	MsgNoExportData:     "내보낼 리뷰 데이터가 없습니다.",

	MsgLoadingProduct:  "상품 정보를 조회하는 중입니다...",
	MsgLoadingAnalysis: "리뷰를 수집하고 분석하는 중입니다... (최대 1분 소요)",

	MsgProductInfoFailed: "상품 정보 조회 중 오류가 발생했습니다.",
	MsgAnalyzeFailed:     "리뷰 분석 중 오류가 발생했습니다.",
	MsgExportFailed:      "CSV 내보내기 중 오류가 발생했습니다.",

	MsgNoInformation: "정보 없음",
	MsgNoSimilar:     "경쟁 제품 정보를 찾을 수 없습니다.",

	MsgCount:   "%d개",
	MsgPoints:  "%s점",
	MsgPercent: "%s%%",

	MsgPositive: "긍정",
	MsgNeutral:  "중립",
	MsgNegative: "부정",

	MsgChartPositive: "긍정 😊",
	MsgChartNeutral:  "중립 😐",
	MsgChartNegative: "부정 😞",
	MsgTooltip:       "%s: %d개 (%s%%)",

	MsgExported: "%s 저장 완료",
}

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range korean {
		// SetString only fails on malformed messages, which are compile-time constants here.
		if err := b.SetString(language.Korean, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: korean %q: %v", key, err))
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: english %q: %v", key, err))
		}
	}
	return b
}

// Catalog formats messages for one locale.
type Catalog struct {
	locale  string
	printer *message.Printer
}

// New returns the catalog for "ko" or "en".
func New(locale string) (*Catalog, error) {
	var tag language.Tag
	switch locale {
	case "ko":
		tag = language.Korean
	case "en":
		tag = language.English
	default:
		return nil, fmt.Errorf("unsupported locale %q (valid: ko, en)", locale)
	}
	return &Catalog{
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// MustNew is New for known-good locales.
func MustNew(locale string) *Catalog {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the locale code.
func (c *Catalog) Locale() string { return c.locale }

// T returns the localized text for key formatted with args.
// Integer args are grouped by the locale's thousands separator.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
