package tracking

import (
	"strings"

	"shortboard/pkg/models"
)

// LatePolicy decides whether a row counts as late. No lateness rule is
// built in: the status vocabulary contains Late but nothing here produces
// it, so the predicate is supplied by the caller or stays nil.
type LatePolicy func(row models.TrackingRow) bool

// ComputeStatus derives the status from the readiness and reply fields.
// Late is never returned; see LatePolicy.
func ComputeStatus(row models.TrackingRow) models.Status {
	if row.IsMaterialReady {
		return models.StatusReady
	}
	if strings.TrimSpace(row.PurchaserReplyDate) == "" {
		return models.StatusPending
	}
	return models.StatusConfirmed
}
