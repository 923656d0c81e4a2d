// Package export renders composed financial data into downloadable
// documents. Artifacts write into any io.Writer so the renderers stay
// independent of the HTTP layer and can be tested against in-memory sinks.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

// Format selects the document type of an export.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	// ErrNoData signals that the requested window holds nothing worth
	// exporting; callers answer with a not-found outcome instead of an
	// empty document.
	ErrNoData = errors.New("no data for period")

	// ErrUnsupportedFormat is returned for formats other than pdf/excel.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ParseFormat validates a caller-supplied format string. Empty defaults to
// pdf.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatPDF, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatExcel:
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Artifact is a renderable document: filename and content type for the
// response headers, and a Render that streams the bytes.
type Artifact struct {
	Filename    string
	ContentType string
	render      func(ctx context.Context, w io.Writer) error
}

// Render streams the document into w. The context is consulted between
// layout steps so an abandoned download aborts the render loop.
func (a Artifact) Render(ctx context.Context, w io.Writer) error {
	return a.render(ctx, w)
}

// Exporter builds report artifacts.
type Exporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter wires a new exporter instance.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger, now: time.Now}
}

// WithClock overrides the exporter clock. Test hook.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// FinancialArtifact prepares the financial report document for the requested
// format. Reports without data yield ErrNoData before any byte is produced.
func (e *Exporter) FinancialArtifact(format Format, report models.FinancialReport, periodLabel string) (Artifact, error) {
	if !report.HasData() {
		return Artifact{}, ErrNoData
	}

	now := e.now()
	stamp := now.UnixMilli()

	switch format {
	case FormatPDF:
		return Artifact{
			Filename:    fmt.Sprintf("financial_report_%s_%d.pdf", periodLabel, stamp),
			ContentType: contentTypePDF,
			render: func(ctx context.Context, w io.Writer) error {
				return writeFinancialPDF(ctx, w, report, periodLabel, now)
			},
		}, nil
	case FormatExcel:
		return Artifact{
			Filename:    fmt.Sprintf("financial_report_%s_%d.xlsx", periodLabel, stamp),
			ContentType: contentTypeXLSX,
			render: func(ctx context.Context, w io.Writer) error {
				return writeFinancialExcel(ctx, w, report)
			},
		}, nil
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SavingsArtifact prepares the savings history document for the requested
// format.
func (e *Exporter) SavingsArtifact(format Format, savings []models.SavingsRecord) (Artifact, error) {
	if len(savings) == 0 {
		return Artifact{}, ErrNoData
	}

	now := e.now()
	stamp := now.UnixMilli()

	switch format {
	case FormatPDF:
		return Artifact{
			Filename:    fmt.Sprintf("savings_report_%d.pdf", stamp),
			ContentType: contentTypePDF,
			render: func(ctx context.Context, w io.Writer) error {
				return writeSavingsPDF(ctx, w, savings, now)
			},
		}, nil
	case FormatExcel:
		return Artifact{
			Filename:    fmt.Sprintf("savings_report_%d.xlsx", stamp),
			ContentType: contentTypeXLSX,
			render: func(ctx context.Context, w io.Writer) error {
				return writeSavingsExcel(ctx, w, savings)
			},
		}, nil
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// formatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 1234567.5 -> "1,234,567.50".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
