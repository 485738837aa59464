package googlesheet

import (
	"context"
	"fmt"

	"creedava-api/domain/model"
	"creedava-api/infrastructure/configuration"
	"creedava-api/infrastructure/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type ILeadSheet interface {
	AppendLeads(ctx context.Context, leads []model.Lead) (int, error)
}

type LeadSheet struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewLeadSheet creates the Sheets client used for lead exports.
// Returns a nil-service sheet when credentials are not configured.
func NewLeadSheet(ctx context.Context) ILeadSheet {
	cfg := configuration.C.GoogleSheet
	if cfg.SpreadsheetId == "" || cfg.CredentialsFile == "" {
		logger.GetLogger().Warn("Google Sheet not configured, lead export disabled")
		return &LeadSheet{}
	}
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating Sheets service.")
		return &LeadSheet{}
	}
	return &LeadSheet{service: service, spreadsheetID: cfg.SpreadsheetId, sheetName: cfg.SheetName}
}

// AppendLeads appends one row per lead and returns how many were written.
func (s *LeadSheet) AppendLeads(ctx context.Context, leads []model.Lead) (int, error) {
	if s.service == nil {
		return 0, fmt.Errorf("lead export is not configured")
	}
	if len(leads) == 0 {
		return 0, nil
	}

	values := make([][]interface{}, 0, len(leads))
	for _, l := range leads {
		values = append(values, []interface{}{
			l.ID, l.Name, l.Email, l.Phone, l.Company, l.Message, l.Source, l.Status,
			l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	rangeRef := fmt.Sprintf("%s!A:I", s.sheetName)
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, rangeRef, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, err
	}
	logger.GetLogger().WithField("rows", len(values)).Info("Leads exported to sheet")
	return len(values), nil
}
