package models

// WorkOrderDetailRecord is one parsed spreadsheet row of a work-order
// metadata import. Field presence is not guaranteed by the parsing
// boundary; the reconciler coerces and trims every field it reads.
type WorkOrderDetailRecord struct {
	WorkOrder         string `json:"workOrder"`
	Model             string `json:"model"`
	Vendor            string `json:"vendor"`
	Stage             string `json:"stage"`
	ProductPartNumber string `json:"productPartNumber"`
	ProductionDate    string `json:"productionDate"`
}

// ShortageRecord is one parsed spreadsheet row of a component-shortage
// import. Model is optional and only honored by the replace policy.
type ShortageRecord struct {
	WorkOrder     string `json:"workOrder"`
	PartNumber    string `json:"partNumber"`
	PartName      string `json:"partName"`
	Specification string `json:"specification"`
	Supplier      string `json:"supplier"`
	ShortageQty   int    `json:"shortageQty"`
	Model         string `json:"model"`
}

// ImportPolicy selects how a shortage batch is reconciled into the
// existing row set.
type ImportPolicy string

const (
	// PolicyReplace deletes and recreates every row of the affected work
	// orders. Purchaser replies and readiness flags do not survive.
	PolicyReplace ImportPolicy = "replace"
	// PolicyMerge updates quantities in place, preserves purchaser state
	// and resolves rows that are absent from the batch.
	PolicyMerge ImportPolicy = "merge"
)

func (p ImportPolicy) IsValid() bool {
	switch p {
	case PolicyReplace, PolicyMerge:
		return true
	default:
		return false
	}
}
