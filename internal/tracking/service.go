package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"shortboard/internal/store"
	"shortboard/pkg/metadata"
	"shortboard/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRowNotFound   = errors.New("tracking row not found")
	ErrNoRowsMatched = errors.New("no rows matched work order and stage")
	ErrInvalidInput  = errors.New("invalid input")
)

// Service implements the row mutators and the import entry points over the
// shared store. Every operation loads, mutates and persists the document as
// one step.
type Service struct {
	store      *store.Store
	reconciler *Reconciler
	latePolicy LatePolicy
	log        *zap.Logger
	now        func() time.Time
}

func NewService(s *store.Store, latePolicy LatePolicy, log *zap.Logger) *Service {
	return &Service{
		store:      s,
		reconciler: NewReconciler(uuid.NewString),
		latePolicy: latePolicy,
		log:        log,
		now:        time.Now,
	}
}

// recompute refreshes the derived status after a readiness or reply change.
// The late policy may only demote rows that are not ready.
func (s *Service) recompute(row *models.TrackingRow) {
	row.Status = ComputeStatus(*row)
	if s.latePolicy != nil && row.Status != models.StatusReady && s.latePolicy(*row) {
		row.Status = models.StatusLate
	}
}

// SearchTracking returns the full tracking row set. The query is accepted
// for interface compatibility but not evaluated; filtering happens in the
// presentation layer.
func (s *Service) SearchTracking(ctx context.Context, _ string) ([]models.TrackingRow, error) {
	var rows []models.TrackingRow
	err := s.store.View(ctx, func(db *models.Database) error {
		rows = append(rows, db.Tracking...)
		return nil
	})
	return rows, err
}

// GetAllERP returns the retained raw import history.
func (s *Service) GetAllERP(ctx context.Context) ([]models.ERPRawRow, error) {
	var rows []models.ERPRawRow
	err := s.store.View(ctx, func(db *models.Database) error {
		rows = append(rows, db.ERPRows...)
		return nil
	})
	return rows, err
}

// UpdateDeliveryDate sets the purchaser reply date on one row.
func (s *Service) UpdateDeliveryDate(ctx context.Context, rowID string, date string) error {
	if rowID == "" {
		return ErrInvalidInput
	}

	return s.store.Update(ctx, func(db *models.Database) (bool, error) {
		for i := range db.Tracking {
			if db.Tracking[i].ID != rowID {
				continue
			}
			db.Tracking[i].PurchaserReplyDate = strings.TrimSpace(date)
			s.recompute(&db.Tracking[i])
			return true, nil
		}
		return false, ErrRowNotFound
	})
}

// UpdatePurchaserRemark sets the remark on one row. The remark is not a
// readiness signal, so the status stays as it is.
func (s *Service) UpdatePurchaserRemark(ctx context.Context, rowID string, remark string) error {
	if rowID == "" {
		return ErrInvalidInput
	}

	return s.store.Update(ctx, func(db *models.Database) (bool, error) {
		for i := range db.Tracking {
			if db.Tracking[i].ID != rowID {
				continue
			}
			db.Tracking[i].PurchaserRemark = remark
			return true, nil
		}
		return false, ErrRowNotFound
	})
}

// UpdateStageDate sets the OQC date on every row of the work order and
// stage.
func (s *Service) UpdateStageDate(ctx context.Context, workOrder, stage, date string) error {
	return s.updateStageRows(ctx, workOrder, stage, func(row *models.TrackingRow) {
		row.OQCDate = strings.TrimSpace(date)
	})
}

// UpdateStageReady flips the readiness flag on every row of the work order
// and stage, skeleton rows included.
func (s *Service) UpdateStageReady(ctx context.Context, workOrder, stage string, ready bool) error {
	return s.updateStageRows(ctx, workOrder, stage, func(row *models.TrackingRow) {
		row.IsMaterialReady = ready
	})
}

func (s *Service) updateStageRows(ctx context.Context, workOrder, stage string, mutate func(*models.TrackingRow)) error {
	workOrder = strings.TrimSpace(workOrder)
	canonical := string(metadata.NewStage(stage))
	if workOrder == "" {
		return ErrInvalidInput
	}

	return s.store.Update(ctx, func(db *models.Database) (bool, error) {
		matched := false
		for i := range db.Tracking {
			if db.Tracking[i].WorkOrder != workOrder || db.Tracking[i].Stage != canonical {
				continue
			}
			mutate(&db.Tracking[i])
			s.recompute(&db.Tracking[i])
			matched = true
		}
		if !matched {
			return false, ErrNoRowsMatched
		}
		return true, nil
	})
}

// ArchiveModel flags every row of a model, matching the name case and
// whitespace insensitively. Zero matches is still a success; archiving an
// unknown model is a no-op, not an error.
func (s *Service) ArchiveModel(ctx context.Context, model string, archived bool) error {
	target := models.NormalizeModelName(model)

	return s.store.Update(ctx, func(db *models.Database) (bool, error) {
		changed := false
		for i := range db.Tracking {
			if models.NormalizeModelName(db.Tracking[i].Model) != target {
				continue
			}
			if db.Tracking[i].IsArchived != archived {
				db.Tracking[i].IsArchived = archived
				changed = true
			}
		}
		return changed, nil
	})
}

// ImportWorkOrderDetails merges a work-order metadata batch. The returned
// flag is false when the batch was a no-op; nothing is persisted then.
func (s *Service) ImportWorkOrderDetails(ctx context.Context, records []models.WorkOrderDetailRecord) (bool, error) {
	imported := false
	err := s.store.Update(ctx, func(db *models.Database) (bool, error) {
		rows, changed := s.reconciler.ImportWorkOrders(db.Tracking, records)
		db.Tracking = rows
		imported = changed
		return changed, nil
	})
	if err != nil {
		return false, err
	}

	s.log.Info("Work order details imported",
		zap.Int("records", len(records)),
		zap.Bool("changed", imported))
	return imported, nil
}

// ImportShortages reconciles a shortage batch under the given policy and
// retains the raw records for audit.
func (s *Service) ImportShortages(ctx context.Context, records []models.ShortageRecord, policy models.ImportPolicy, importedBy string) error {
	if !policy.IsValid() {
		return ErrInvalidInput
	}

	err := s.store.Update(ctx, func(db *models.Database) (bool, error) {
		db.Tracking = s.reconciler.ImportShortages(db.Tracking, records, policy)

		importedAt := s.now().UTC()
		for _, rec := range records {
			if strings.TrimSpace(rec.PartNumber) == "" {
				continue
			}
			db.ERPRows = append(db.ERPRows, models.ERPRawRow{
				WorkOrder:     strings.TrimSpace(rec.WorkOrder),
				PartNumber:    strings.TrimSpace(rec.PartNumber),
				PartName:      strings.TrimSpace(rec.PartName),
				Specification: strings.TrimSpace(rec.Specification),
				Supplier:      strings.TrimSpace(rec.Supplier),
				ShortageQty:   rec.ShortageQty,
				Policy:        string(policy),
				ImportedAt:    importedAt,
				ImportedBy:    importedBy,
			})
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Shortages imported",
		zap.Int("records", len(records)),
		zap.String("policy", string(policy)),
		zap.String("importedBy", importedBy))
	return nil
}

// ModelSummary aggregates the live shortage situation of one model.
// Skeleton rows carry no shortage and are not counted.
type ModelSummary struct {
	Model         string `json:"model"`
	WorkOrders    int    `json:"workOrders"`
	OpenShortages int    `json:"openShortages"`
	TotalShortQty int    `json:"totalShortQty"`
	IsArchived    bool   `json:"isArchived"`
}

// Summary reports per-model shortage counts across the tracking set.
func (s *Service) Summary(ctx context.Context) ([]ModelSummary, error) {
	var summaries []ModelSummary

	err := s.store.View(ctx, func(db *models.Database) error {
		order := []string{}
		byModel := make(map[string]*ModelSummary)
		workOrders := make(map[string]map[string]bool)

		for _, row := range db.Tracking {
			key := models.NormalizeModelName(row.Model)
			summary, ok := byModel[key]
			if !ok {
				summary = &ModelSummary{Model: row.Model, IsArchived: true}
				byModel[key] = summary
				workOrders[key] = make(map[string]bool)
				order = append(order, key)
			}

			workOrders[key][row.WorkOrder] = true
			if !row.IsArchived {
				summary.IsArchived = false
			}
			if !row.IsSkeleton() && row.ShortageQty > 0 {
				summary.OpenShortages++
				summary.TotalShortQty += row.ShortageQty
			}
		}

		for _, key := range order {
			byModel[key].WorkOrders = len(workOrders[key])
			summaries = append(summaries, *byModel[key])
		}
		return nil
	})

	return summaries, err
}
