package tracking

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"shortboard/internal/blob"
	"shortboard/internal/store"
	"shortboard/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*TrackingHandler, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.New(blob.NewMemory(), zap.NewNop())
	return NewHandler(NewService(s, nil, zap.NewNop())), s
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("username", "planner")
	c.Set("role", "scheduler")
	return c, w
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUpdateDeliveryDateHandler(t *testing.T) {
	handler, s := newTestHandler(t)
	seedRows(t, s, models.TrackingRow{
		ID: "r1", WorkOrder: "WO-1", PartNumber: "P-1", ShortageQty: 5, Status: models.StatusPending,
	})

	tests := []struct {
		name           string
		rowID          string
		payload        interface{}
		expectedStatus int
	}{
		{
			name:           "successful update",
			rowID:          "r1",
			payload:        gin.H{"date": "2026-09-05"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown row",
			rowID:          "missing",
			payload:        gin.H{"date": "2026-09-05"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			c.Request = jsonRequest("PATCH", "/tracking/"+tt.rowID+"/delivery-date", tt.payload)
			c.Params = []gin.Param{{Key: "id", Value: tt.rowID}}

			handler.UpdateDeliveryDate(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUpdateStageReadyHandler(t *testing.T) {
	handler, s := newTestHandler(t)
	seedRows(t, s, models.TrackingRow{
		ID: "r1", WorkOrder: "WO-1", Stage: "SMT", PartNumber: "P-1", ShortageQty: 2, Status: models.StatusPending,
	})

	tests := []struct {
		name           string
		payload        interface{}
		expectedStatus int
	}{
		{
			name:           "successful flip",
			payload:        gin.H{"workOrder": "WO-1", "stage": "SMT", "ready": true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing ready flag",
			payload:        gin.H{"workOrder": "WO-1", "stage": "SMT"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no matching rows",
			payload:        gin.H{"workOrder": "WO-9", "stage": "SMT", "ready": true},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			c.Request = jsonRequest("PATCH", "/tracking/stage-ready", tt.payload)

			handler.UpdateStageReady(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestImportShortagesHandler(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		name           string
		payload        interface{}
		expectedStatus int
	}{
		{
			name: "merge import",
			payload: gin.H{
				"policy": "merge",
				"records": []gin.H{
					{"workOrder": "WO-1", "partNumber": "P-1", "shortageQty": 5},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown policy",
			payload: gin.H{
				"policy":  "upsert",
				"records": []gin.H{},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing policy",
			payload:        gin.H{"records": []gin.H{}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			c.Request = jsonRequest("POST", "/tracking/import/shortages", tt.payload)

			handler.ImportShortages(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestImportShortagesFileHandler(t *testing.T) {
	handler, _ := newTestHandler(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "shortages.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("work_order,part_number,part_name,qty\nWO-1,P-1,Capacitor,5\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	c, w := setupTestContext()
	c.Request = httptest.NewRequest("POST", "/tracking/import/shortages/file?policy=merge", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	handler.ImportShortagesFile(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Records int  `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Records)
}

func TestSearchTrackingHandler(t *testing.T) {
	handler, s := newTestHandler(t)
	seedRows(t, s,
		models.TrackingRow{ID: "r1", WorkOrder: "WO-1", PartNumber: "P-1", ShortageQty: 5},
		models.TrackingRow{ID: "r2", WorkOrder: "WO-2", PartNumber: "P-2", ShortageQty: 3},
	)

	c, w := setupTestContext()
	c.Request = httptest.NewRequest("GET", "/tracking", nil)

	handler.SearchTracking(c)

	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.TrackingRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 2)
}
