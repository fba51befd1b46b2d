package tracking

import (
	"strings"

	"shortboard/pkg/metadata"
	"shortboard/pkg/models"
)

// Reconciler merges parsed spreadsheet batches into the tracking row set.
// It works on plain slices so the whole import logic is testable without a
// store; the service runs it inside a store transaction.
type Reconciler struct {
	newID func() string
}

func NewReconciler(newID func() string) *Reconciler {
	return &Reconciler{newID: newID}
}

// woMetadata is the snapshot of work-order level fields inherited by rows
// created without their own metadata.
type woMetadata struct {
	Model             string
	Vendor            string
	Stage             string
	ProductionDate    string
	ProductPartNumber string
}

// defaultMetadata is used when a work order has no prior rows to inherit
// from: unknown model, empty vendor, first stage.
func defaultMetadata() woMetadata {
	return woMetadata{Model: "Unknown", Stage: string(metadata.StageSMT)}
}

func snapshotOf(row models.TrackingRow) woMetadata {
	return woMetadata{
		Model:             row.Model,
		Vendor:            row.Vendor,
		Stage:             row.Stage,
		ProductionDate:    row.ProductionDate,
		ProductPartNumber: row.ProductPartNumber,
	}
}

// ImportWorkOrders applies a work-order metadata batch. Unknown work orders
// get exactly one skeleton row; known ones get their metadata updated on
// every row, skipping fields the record leaves empty. The returned flag is
// false when the batch changed nothing, in which case nothing should be
// persisted.
func (r *Reconciler) ImportWorkOrders(rows []models.TrackingRow, records []models.WorkOrderDetailRecord) ([]models.TrackingRow, bool) {
	changed := false

	for _, rec := range records {
		workOrder := strings.TrimSpace(rec.WorkOrder)
		if workOrder == "" {
			continue
		}

		model := strings.TrimSpace(rec.Model)
		vendor := strings.TrimSpace(rec.Vendor)
		rawStage := strings.TrimSpace(rec.Stage)
		productPN := strings.TrimSpace(rec.ProductPartNumber)
		productionDate := strings.TrimSpace(rec.ProductionDate)

		var matched bool
		for i := range rows {
			if rows[i].WorkOrder != workOrder {
				continue
			}
			matched = true

			// Partial records must not blank out existing metadata.
			if model != "" && rows[i].Model != model {
				rows[i].Model = model
				changed = true
			}
			if vendor != "" && rows[i].Vendor != vendor {
				rows[i].Vendor = vendor
				changed = true
			}
			if stage := string(metadata.NewStage(rawStage)); rawStage != "" && rows[i].Stage != stage {
				rows[i].Stage = stage
				changed = true
			}
			if productPN != "" && rows[i].ProductPartNumber != productPN {
				rows[i].ProductPartNumber = productPN
				changed = true
			}
			if productionDate != "" && rows[i].ProductionDate != productionDate {
				rows[i].ProductionDate = productionDate
				changed = true
			}
		}

		if !matched {
			rows = append(rows, models.TrackingRow{
				ID:                r.newID(),
				Model:             model,
				WorkOrder:         workOrder,
				Stage:             string(metadata.NewStage(rawStage)),
				Vendor:            vendor,
				ProductPartNumber: productPN,
				ProductionDate:    productionDate,
				PartNumber:        models.SkeletonPartNumber,
				ShortageQty:       0,
				Status:            models.StatusReady,
				IsArchived:        false,
			})
			changed = true
		}
	}

	return rows, changed
}

// ImportShortages applies a shortage batch under the given policy.
func (r *Reconciler) ImportShortages(rows []models.TrackingRow, records []models.ShortageRecord, policy models.ImportPolicy) []models.TrackingRow {
	if policy == models.PolicyReplace {
		return r.replaceShortages(rows, records)
	}
	return r.mergeShortages(rows, records)
}

// replaceShortages deletes every row of the affected work orders and
// recreates one row per incoming record. Purchaser replies, remarks and
// readiness flags of those work orders are lost; that is the contract of
// the policy, not an accident.
func (r *Reconciler) replaceShortages(rows []models.TrackingRow, records []models.ShortageRecord) []models.TrackingRow {
	affected := make(map[string]bool)
	for _, rec := range records {
		if wo := strings.TrimSpace(rec.WorkOrder); wo != "" {
			affected[wo] = true
		}
	}

	// Capture metadata before deleting anything, first matching row wins.
	snapshots := make(map[string]woMetadata)
	for _, row := range rows {
		if affected[row.WorkOrder] {
			if _, ok := snapshots[row.WorkOrder]; !ok {
				snapshots[row.WorkOrder] = snapshotOf(row)
			}
		}
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if !affected[row.WorkOrder] {
			kept = append(kept, row)
		}
	}

	for _, rec := range records {
		workOrder := strings.TrimSpace(rec.WorkOrder)
		// A record without a part number only scopes the work order; it
		// deletes prior rows but creates nothing.
		if workOrder == "" || strings.TrimSpace(rec.PartNumber) == "" {
			continue
		}

		meta, ok := snapshots[workOrder]
		if !ok {
			meta = defaultMetadata()
		}
		if model := strings.TrimSpace(rec.Model); model != "" {
			meta.Model = model
		}

		kept = append(kept, r.newShortageRow(workOrder, rec, meta))
	}

	return kept
}

// mergeShortages updates quantities in place, keeps purchaser state and
// treats absence from the batch as resolution.
func (r *Reconciler) mergeShortages(rows []models.TrackingRow, records []models.ShortageRecord) []models.TrackingRow {
	index := make(map[models.RowKey]int, len(rows))
	for i, row := range rows {
		index[row.Key()] = i
	}

	existingCount := len(rows)
	incoming := make(map[models.RowKey]bool)
	affected := make(map[string]bool)

	for _, rec := range records {
		workOrder := strings.TrimSpace(rec.WorkOrder)
		partNumber := strings.TrimSpace(rec.PartNumber)
		if workOrder == "" {
			continue
		}
		// A record without a part number marks the work order as covered
		// by the batch so the resolution sweep applies, but carries no
		// shortage of its own.
		if partNumber == "" {
			affected[workOrder] = true
			continue
		}

		key := models.RowKey{WorkOrder: workOrder, PartNumber: partNumber}
		incoming[key] = true
		affected[workOrder] = true
		qty := rec.ShortageQty
		if qty < 0 {
			qty = 0
		}

		if i, ok := index[key]; ok {
			rows[i].ShortageQty = qty
			if qty == 0 {
				rows[i].Status = models.StatusReady
			}
			continue
		}

		meta := defaultMetadata()
		for _, row := range rows[:existingCount] {
			if row.WorkOrder == workOrder {
				meta = snapshotOf(row)
				break
			}
		}

		rows = append(rows, r.newShortageRow(workOrder, rec, meta))
		index[key] = len(rows) - 1
	}

	// Resolution sweep: a known shortage missing from the batch has been
	// resolved, not forgotten.
	for i := 0; i < existingCount; i++ {
		row := &rows[i]
		if !affected[row.WorkOrder] || row.IsSkeleton() || incoming[row.Key()] {
			continue
		}
		row.ShortageQty = 0
		row.Status = models.StatusReady
	}

	return rows
}

func (r *Reconciler) newShortageRow(workOrder string, rec models.ShortageRecord, meta woMetadata) models.TrackingRow {
	qty := rec.ShortageQty
	if qty < 0 {
		qty = 0
	}

	status := models.StatusPending
	if qty == 0 {
		status = models.StatusReady
	}

	return models.TrackingRow{
		ID:                r.newID(),
		Model:             meta.Model,
		WorkOrder:         workOrder,
		Stage:             meta.Stage,
		Vendor:            meta.Vendor,
		ProductPartNumber: meta.ProductPartNumber,
		ProductionDate:    meta.ProductionDate,
		PartNumber:        strings.TrimSpace(rec.PartNumber),
		PartName:          strings.TrimSpace(rec.PartName),
		Specification:     strings.TrimSpace(rec.Specification),
		Supplier:          strings.TrimSpace(rec.Supplier),
		ShortageQty:       qty,
		Status:            status,
		IsArchived:        false,
	}
}
