package googlesheets

import (
	"testing"

	"shortboard/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestParseShortageRows(t *testing.T) {
	values := [][]interface{}{
		{"Work Order", "Part Number", "Part Name", "Specification", "Supplier", "Qty"},
		{"WO-1", "P-1", "Capacitor", "10uF 0805", "Acme", "5"},
		{"WO-1", "P-2", "Resistor", "", "Acme", "not a number"},
		{"", "P-3", "Orphan", "", "", "2"},
		{"WO-2", "P-4", "Diode", "", "Other", "-3"},
		{"WO-3"},
	}

	records := ParseShortageRows(values, DefaultLayout())

	assert.Equal(t, []models.ShortageRecord{
		{WorkOrder: "WO-1", PartNumber: "P-1", PartName: "Capacitor", Specification: "10uF 0805", Supplier: "Acme", ShortageQty: 5},
		{WorkOrder: "WO-1", PartNumber: "P-2", PartName: "Resistor", Supplier: "Acme", ShortageQty: 0},
		{WorkOrder: "WO-2", PartNumber: "P-4", PartName: "Diode", Supplier: "Other", ShortageQty: 0},
		{WorkOrder: "WO-3"},
	}, records)
}

func TestParseShortageRowsTrimsCells(t *testing.T) {
	values := [][]interface{}{
		{},
		{"  WO-1 ", " P-1 ", nil, nil, nil, " 7 "},
	}

	records := ParseShortageRows(values, DefaultLayout())

	assert.Len(t, records, 1)
	assert.Equal(t, "WO-1", records[0].WorkOrder)
	assert.Equal(t, "P-1", records[0].PartNumber)
	assert.Equal(t, 7, records[0].ShortageQty)
}
