package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradeflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (17 columns).
var columns = []string{
	"Component",
	"HS Code",
	"Normalized HS Code",
	"Origin",
	"Description",
	"Value",
	"Destination",
	"Match Level",
	"MFN Rate",
	"USMCA Rate",
	"Policy Rate",
	"MFN Duty",
	"USMCA Duty",
	"Savings",
	"Incomplete",
	"Notes",
	"Generated At",
}

// totalRowLabel marks per-destination summary rows.
const totalRowLabel = "TOTAL"

// Writer wraps csv.Writer for exporting comparisons as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteComparison writes one row per component and destination, followed by a
// TOTAL row per destination.
func (w *Writer) WriteComparison(result *domain.ComparisonResult) error {
	generated := result.GeneratedAt.Format(time.RFC3339)
	for i := range result.ComponentBreakdown {
		b := &result.ComponentBreakdown[i]
		for _, dest := range result.Destinations {
			cr, ok := b.Destinations[dest]
			if !ok {
				continue
			}
			if err := w.csv.Write(componentToRow(b, dest, &cr, generated)); err != nil {
				return err
			}
		}
	}
	for _, dest := range result.Destinations {
		r, ok := result.PerDestination[dest]
		if !ok {
			continue
		}
		if err := w.csv.Write(totalToRow(r, generated)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func componentToRow(b *domain.ComponentBreakdown, dest domain.Country, cr *domain.ComponentResult, generated string) []string {
	row := make([]string, len(columns))
	row[0] = strconv.Itoa(b.Index + 1)
	row[1] = cr.HSCode
	row[2] = cr.NormalizedHSCode
	row[3] = string(b.Origin)
	row[4] = b.Description
	row[5] = formatMoney(b.Value)
	row[6] = string(dest)
	row[7] = string(cr.MatchLevel)
	row[8] = formatNull(cr.MFNRate, 4)
	row[9] = formatNull(cr.USMCARate, 4)
	row[10] = formatNull(cr.PolicyRate, 4)
	row[11] = formatNull(cr.MFNDuty, 2)
	row[12] = formatNull(cr.USMCADuty, 2)
	row[13] = formatNull(cr.Savings, 2)
	row[14] = formatBool(cr.Incomplete)
	row[15] = cr.Reason
	row[16] = generated
	return row
}

func totalToRow(r *domain.DestinationResult, generated string) []string {
	row := make([]string, len(columns))
	row[0] = totalRowLabel
	row[5] = formatMoney(r.TotalValue)
	row[6] = string(r.Destination)
	row[11] = formatNull(r.TotalMFNDuty, 2)
	row[12] = formatNull(r.TotalUSMCADuty, 2)
	row[13] = formatNull(r.Savings, 2)
	row[14] = formatBool(r.DataQuality == domain.DataQualityPartial)
	if r.IncompleteComponents > 0 {
		row[15] = fmt.Sprintf("%d incomplete component(s)", r.IncompleteComponents)
	}
	row[16] = generated
	return row
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// formatNull renders unknown amounts as an empty cell, never as zero.
func formatNull(v decimal.NullDecimal, places int32) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(places)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string, at time.Time) string {
	sanitized := SanitizeFilename(name)
	return fmt.Sprintf("%s_%s.csv", sanitized, at.Format("2006-01-02"))
}
