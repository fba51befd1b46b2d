// Package spreadsheet turns uploaded CSV files into the loosely-typed
// records the reconciler consumes. Column presence is not guaranteed;
// missing fields come back as empty strings and quantities that fail to
// parse are coerced to zero.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shortboard/pkg/models"
)

var shortageColumns = map[string]string{
	"work_order":    "workOrder",
	"workorder":     "workOrder",
	"part_number":   "partNumber",
	"partnumber":    "partNumber",
	"part_name":     "partName",
	"partname":      "partName",
	"specification": "specification",
	"spec":          "specification",
	"supplier":      "supplier",
	"shortage_qty":  "shortageQty",
	"qty":           "shortageQty",
	"model":         "model",
}

var workOrderColumns = map[string]string{
	"work_order":          "workOrder",
	"workorder":           "workOrder",
	"model":               "model",
	"vendor":              "vendor",
	"stage":               "stage",
	"product_part_number": "productPartNumber",
	"production_date":     "productionDate",
}

// ParseShortageRecords reads a shortage CSV. The first row is the header;
// recognized columns may appear in any order and unknown columns are
// ignored.
func ParseShortageRecords(r io.Reader) ([]models.ShortageRecord, error) {
	rows, index, err := readAll(r, shortageColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.ShortageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.ShortageRecord{
			WorkOrder:     field(row, index, "workOrder"),
			PartNumber:    field(row, index, "partNumber"),
			PartName:      field(row, index, "partName"),
			Specification: field(row, index, "specification"),
			Supplier:      field(row, index, "supplier"),
			ShortageQty:   quantity(field(row, index, "shortageQty")),
			Model:         field(row, index, "model"),
		})
	}

	return records, nil
}

// ParseWorkOrderRecords reads a work-order metadata CSV.
func ParseWorkOrderRecords(r io.Reader) ([]models.WorkOrderDetailRecord, error) {
	rows, index, err := readAll(r, workOrderColumns)
	if err != nil {
		return nil, err
	}

	records := make([]models.WorkOrderDetailRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.WorkOrderDetailRecord{
			WorkOrder:         field(row, index, "workOrder"),
			Model:             field(row, index, "model"),
			Vendor:            field(row, index, "vendor"),
			Stage:             field(row, index, "stage"),
			ProductPartNumber: field(row, index, "productPartNumber"),
			ProductionDate:    field(row, index, "productionDate"),
		})
	}

	return records, nil
}

// readAll parses the CSV and maps recognized header names to column
// positions.
func readAll(r io.Reader, columns map[string]string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("CSV is empty")
	}

	index := make(map[string]int)
	for i, name := range rows[0] {
		normalized := strings.ToLower(strings.TrimSpace(name))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		if fieldName, ok := columns[normalized]; ok {
			if _, taken := index[fieldName]; !taken {
				index[fieldName] = i
			}
		}
	}
	if _, ok := index["workOrder"]; !ok {
		return nil, nil, fmt.Errorf("CSV has no work order column")
	}

	return rows[1:], index, nil
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func quantity(value string) int {
	qty, err := strconv.Atoi(value)
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}
