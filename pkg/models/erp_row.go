package models

import "time"

// ERPRawRow is a shortage record exactly as it arrived from an import,
// retained for audit and history. It never takes part in the tracking
// lifecycle.
type ERPRawRow struct {
	WorkOrder     string    `json:"workOrder"`
	PartNumber    string    `json:"partNumber"`
	PartName      string    `json:"partName"`
	Specification string    `json:"specification"`
	Supplier      string    `json:"supplier"`
	ShortageQty   int       `json:"shortageQty"`
	Policy        string    `json:"policy"`
	ImportedAt    time.Time `json:"importedAt"`
	ImportedBy    string    `json:"importedBy"`
}
