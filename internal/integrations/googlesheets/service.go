package googlesheets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"shortboard/pkg/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// ShortageSheetService pulls shortage rows straight from a purchasing
// spreadsheet so schedulers can import without downloading a file first.
type ShortageSheetService struct {
	sheetsService *sheets.Service
	layout        SheetLayout
}

func NewShortageSheetService() (*ShortageSheetService, error) {
	ctx := context.Background()

	credentialsJSON := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON")
	var credentials *google.Credentials
	var err error

	if credentialsJSON != "" {
		credentials, err = google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsReadonlyScope)
	} else {
		credentialsFile := "configs/google-credentials.json"
		b, readErr := os.ReadFile(credentialsFile)
		if readErr != nil {
			return nil, fmt.Errorf("could not read credentials file: %w", readErr)
		}
		credentials, err = google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsReadonlyScope)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("could not create Google Sheets client: %w", err)
	}

	return &ShortageSheetService{
		sheetsService: sheetsService,
		layout:        DefaultLayout(),
	}, nil
}

// FetchShortages reads the configured range and converts it to shortage
// records.
func (s *ShortageSheetService) FetchShortages(spreadsheetID, readRange string) ([]models.ShortageRecord, error) {
	values, err := s.readSpreadsheet(spreadsheetID, readRange)
	if err != nil {
		return nil, err
	}
	return ParseShortageRows(values, s.layout), nil
}

func (s *ShortageSheetService) readSpreadsheet(spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := s.sheetsService.Spreadsheets.Values.Get(spreadsheetID, readRange).Do()
	if err != nil {
		return nil, fmt.Errorf("could not read spreadsheet: %w", err)
	}
	return resp.Values, nil
}

// ParseShortageRows converts raw sheet values to records. Rows without a
// work order are dropped.
func ParseShortageRows(values [][]interface{}, layout SheetLayout) []models.ShortageRecord {
	records := make([]models.ShortageRecord, 0, len(values))

	for i, row := range values {
		if i < layout.HeaderRows {
			continue
		}

		workOrder := cellString(row, layout.WorkOrderCol)
		if workOrder == "" {
			continue
		}

		records = append(records, models.ShortageRecord{
			WorkOrder:     workOrder,
			PartNumber:    cellString(row, layout.PartNumberCol),
			PartName:      cellString(row, layout.PartNameCol),
			Specification: cellString(row, layout.SpecificationCol),
			Supplier:      cellString(row, layout.SupplierCol),
			ShortageQty:   cellQuantity(row, layout.QuantityCol),
		})
	}

	return records
}

func cellString(row []interface{}, col int) string {
	if col < 0 || col >= len(row) || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[col]))
}

func cellQuantity(row []interface{}, col int) int {
	qty, err := strconv.Atoi(cellString(row, col))
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}
