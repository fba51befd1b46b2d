package googlesheets

import (
	"context"
	"net/http"
	"os"

	"shortboard/pkg/models"
	"shortboard/pkg/roles"
	"shortboard/pkg/security"

	"github.com/gin-gonic/gin"
)

// ShortageImporter is the piece of the tracking service the integration
// needs.
type ShortageImporter interface {
	ImportShortages(ctx context.Context, records []models.ShortageRecord, policy models.ImportPolicy, importedBy string) error
}

type SheetsHandler struct {
	sheets   *ShortageSheetService
	importer ShortageImporter
}

func NewHandler(sheets *ShortageSheetService, importer ShortageImporter) *SheetsHandler {
	return &SheetsHandler{sheets: sheets, importer: importer}
}

func (h *SheetsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/integrations/sheets/shortages", security.Authorize(roles.Scheduler), h.ImportShortages)
}

// ImportShortages pulls the shortage sheet and runs a merge import unless
// the request asks for replace.
func (h *SheetsHandler) ImportShortages(c *gin.Context) {
	var req struct {
		SpreadsheetID string              `json:"spreadsheetId"`
		Range         string              `json:"range"`
		Policy        models.ImportPolicy `json:"policy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.SpreadsheetID == "" {
		req.SpreadsheetID = os.Getenv("SHEETS_SHORTAGE_SPREADSHEET_ID")
	}
	if req.Range == "" {
		req.Range = os.Getenv("SHEETS_SHORTAGE_RANGE")
	}
	if req.Policy == "" {
		req.Policy = models.PolicyMerge
	}
	if req.SpreadsheetID == "" || req.Range == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet ID and range are required"})
		return
	}

	records, err := h.sheets.FetchShortages(req.SpreadsheetID, req.Range)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not read spreadsheet", "details": err.Error()})
		return
	}

	if err := h.importer.ImportShortages(c.Request.Context(), records, req.Policy, c.GetString("username")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import shortages", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "records": len(records)})
}
