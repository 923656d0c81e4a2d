package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/baletrack/bizpulse/internal/config"
	"github.com/baletrack/bizpulse/internal/domain/models"
)

const digestRange = "Digests!A:I"

// Mirror defines the append-only spreadsheet destination for monthly digests.
type Mirror interface {
	AppendDigest(ctx context.Context, digest models.ReportDigest) error
}

// GoogleSheetMirror implements Mirror using the official Google Sheets API.
type GoogleSheetMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetMirror builds a Google Sheets backed mirror instance.
func NewGoogleSheetMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetMirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDigest appends one digest as a row in the mirror spreadsheet.
func (m *GoogleSheetMirror) AppendDigest(ctx context.Context, digest models.ReportDigest) error {
	values := []interface{}{
		digest.GeneratedAt.Format("2006-01-02"),
		digest.OwnerID,
		digest.PeriodLabel,
		digest.Window.StartDate.Format("2006-01-02"),
		digest.Window.EndDate.Format("2006-01-02"),
		digest.Metrics.TotalBalesSales,
		digest.Metrics.TotalCosts,
		digest.Metrics.ActualProfit,
		digest.Metrics.ProfitMargin,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, digestRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append digest row: %w", err)
	}

	m.logger.Debug("digest appended to sheet",
		zap.String("owner_id", digest.OwnerID),
		zap.String("period", digest.PeriodLabel))
	return nil
}
