package tracking

import (
	"errors"
	"net/http"

	"shortboard/pkg/models"
	"shortboard/pkg/roles"
	"shortboard/pkg/security"
	"shortboard/pkg/spreadsheet"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	Service *Service
}

func NewHandler(s *Service) *TrackingHandler {
	return &TrackingHandler{Service: s}
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tracking", h.SearchTracking)
	router.GET("/tracking/summary", h.GetSummary)
	router.GET("/erp", h.GetAllERP)

	router.PATCH("/tracking/:id/delivery-date", security.Authorize(roles.Purchaser), h.UpdateDeliveryDate)
	router.PATCH("/tracking/:id/remark", security.Authorize(roles.Purchaser), h.UpdatePurchaserRemark)

	router.PATCH("/tracking/stage-date", security.Authorize(roles.Scheduler), h.UpdateStageDate)
	router.PATCH("/tracking/stage-ready", security.Authorize(roles.Scheduler), h.UpdateStageReady)
	router.PATCH("/tracking/archive", security.Authorize(roles.Scheduler), h.ArchiveModel)

	router.POST("/tracking/import/work-orders", security.Authorize(roles.Scheduler), h.ImportWorkOrders)
	router.POST("/tracking/import/work-orders/file", security.Authorize(roles.Scheduler), h.ImportWorkOrdersFile)
	router.POST("/tracking/import/shortages", security.Authorize(roles.Scheduler), h.ImportShortages)
	router.POST("/tracking/import/shortages/file", security.Authorize(roles.Scheduler), h.ImportShortagesFile)
}

func (h *TrackingHandler) SearchTracking(c *gin.Context) {
	rows, err := h.Service.SearchTracking(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain tracking rows", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *TrackingHandler) GetSummary(c *gin.Context) {
	summaries, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *TrackingHandler) GetAllERP(c *gin.Context) {
	rows, err := h.Service.GetAllERP(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain ERP rows", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *TrackingHandler) UpdateDeliveryDate(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	err := h.Service.UpdateDeliveryDate(c.Request.Context(), c.Param("id"), req.Date)
	h.respondMutation(c, err)
}

func (h *TrackingHandler) UpdatePurchaserRemark(c *gin.Context) {
	var req struct {
		Remark string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	err := h.Service.UpdatePurchaserRemark(c.Request.Context(), c.Param("id"), req.Remark)
	h.respondMutation(c, err)
}

func (h *TrackingHandler) UpdateStageDate(c *gin.Context) {
	var req struct {
		WorkOrder string `json:"workOrder" binding:"required"`
		Stage     string `json:"stage" binding:"required"`
		Date      string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	err := h.Service.UpdateStageDate(c.Request.Context(), req.WorkOrder, req.Stage, req.Date)
	h.respondMutation(c, err)
}

func (h *TrackingHandler) UpdateStageReady(c *gin.Context) {
	var req struct {
		WorkOrder string `json:"workOrder" binding:"required"`
		Stage     string `json:"stage" binding:"required"`
		Ready     *bool  `json:"ready" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	err := h.Service.UpdateStageReady(c.Request.Context(), req.WorkOrder, req.Stage, *req.Ready)
	h.respondMutation(c, err)
}

func (h *TrackingHandler) ArchiveModel(c *gin.Context) {
	var req struct {
		Model    string `json:"model" binding:"required"`
		Archived *bool  `json:"archived" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.Service.ArchiveModel(c.Request.Context(), req.Model, *req.Archived); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive model", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TrackingHandler) ImportWorkOrders(c *gin.Context) {
	var records []models.WorkOrderDetailRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	imported, err := h.Service.ImportWorkOrderDetails(c.Request.Context(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import work order details", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": imported})
}

// ImportWorkOrdersFile accepts a CSV upload instead of pre-parsed records.
func (h *TrackingHandler) ImportWorkOrdersFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not open upload", "details": err.Error()})
		return
	}
	defer file.Close()

	records, err := spreadsheet.ParseWorkOrderRecords(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse file", "details": err.Error()})
		return
	}

	imported, err := h.Service.ImportWorkOrderDetails(c.Request.Context(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import work order details", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": imported, "records": len(records)})
}

func (h *TrackingHandler) ImportShortages(c *gin.Context) {
	var req struct {
		Records []models.ShortageRecord `json:"records"`
		Policy  models.ImportPolicy     `json:"policy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	err := h.Service.ImportShortages(c.Request.Context(), req.Records, req.Policy, c.GetString("username"))
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown import policy"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import shortages", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportShortagesFile accepts a CSV upload instead of pre-parsed records.
func (h *TrackingHandler) ImportShortagesFile(c *gin.Context) {
	policy := models.ImportPolicy(c.DefaultQuery("policy", string(models.PolicyMerge)))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not open upload", "details": err.Error()})
		return
	}
	defer file.Close()

	records, err := spreadsheet.ParseShortageRecords(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse file", "details": err.Error()})
		return
	}

	err = h.Service.ImportShortages(c.Request.Context(), records, policy, c.GetString("username"))
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown import policy"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import shortages", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "records": len(records)})
}

func (h *TrackingHandler) respondMutation(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, ErrRowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find tracking row", "code": "ROW_NOT_FOUND"})
	case errors.Is(err, ErrNoRowsMatched):
		c.JSON(http.StatusNotFound, gin.H{"error": "No rows matched work order and stage", "code": "NO_ROWS_MATCHED"})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tracking row", "details": err.Error()})
	}
}
