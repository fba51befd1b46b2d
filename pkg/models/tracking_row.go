package models

import "strings"

// SkeletonPartNumber marks a metadata-only row created from a work-order
// import before any shortage is known. Skeleton rows carry no real shortage
// and are skipped by shortage counting.
const SkeletonPartNumber = "N/A"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusReady     Status = "Ready"
	StatusLate      Status = "Late"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusLate:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// TrackingRow is one tracked component shortage of a work order, or a
// skeleton row when PartNumber equals SkeletonPartNumber.
type TrackingRow struct {
	ID                 string `json:"id"`
	Model              string `json:"model"`
	WorkOrder          string `json:"workOrder"`
	Stage              string `json:"stage"`
	Vendor             string `json:"vendor"`
	ProductPartNumber  string `json:"productPartNumber"`
	ProductionDate     string `json:"productionDate"`
	PartNumber         string `json:"partNumber"`
	PartName           string `json:"partName"`
	Specification      string `json:"specification"`
	Supplier           string `json:"supplier"`
	ShortageQty        int    `json:"shortageQty"`
	OQCDate            string `json:"oqcDate"`
	IsMaterialReady    bool   `json:"isMaterialReady"`
	PurchaserReplyDate string `json:"purchaserReplyDate"`
	PurchaserRemark    string `json:"purchaserRemark"`
	Status             Status `json:"status"`
	IsArchived         bool   `json:"isArchived"`
}

func (r TrackingRow) IsSkeleton() bool {
	return r.PartNumber == SkeletonPartNumber
}

// RowKey is the composite identity of a tracking row. Using a struct key
// avoids the delimiter-collision problem of concatenated string keys.
type RowKey struct {
	WorkOrder  string
	PartNumber string
}

func (r TrackingRow) Key() RowKey {
	return RowKey{WorkOrder: r.WorkOrder, PartNumber: r.PartNumber}
}

// NormalizeModelName folds case and strips all whitespace so that model
// names imported from different spreadsheets compare equal.
func NormalizeModelName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
