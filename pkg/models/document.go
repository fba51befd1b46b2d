package models

// ReferenceRow is a lookup record kept alongside the tracking data for the
// presentation layer (supplier directories, stage label translations and the
// like). Core logic never reads it.
type ReferenceRow struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// Database is the single persisted document. It is serialized as one JSON
// blob; the four collections are the whole of the stored state.
type Database struct {
	Users     []User         `json:"users"`
	ERPRows   []ERPRawRow    `json:"erpRows"`
	Tracking  []TrackingRow  `json:"tracking"`
	Reference []ReferenceRow `json:"reference"`
}
