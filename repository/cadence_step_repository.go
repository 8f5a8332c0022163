package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"gorm.io/gorm"
)

// CadenceStepRepositoryImpl implements CadenceStepRepository interface
type CadenceStepRepositoryImpl struct {
	*BaseRepository[models.CadenceStep, models.CadenceStepFilter]
}

// NewCadenceStepRepository creates a new cadence step repository
func NewCadenceStepRepository(db *gorm.DB) CadenceStepRepository {
	return &CadenceStepRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CadenceStep, models.CadenceStepFilter](db),
	}
}

// ByID retrieves a cadence step by its ID
func (r *CadenceStepRepositoryImpl) ByID(ctx context.Context, id uint) (*models.CadenceStep, error) {
	db := r.getDB(ctx)
	var row models.CadenceStep
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByLead lists every step of a lead's cadence in step order
func (r *CadenceStepRepositoryImpl) ListByLead(ctx context.Context, leadID uint) ([]*models.CadenceStep, error) {
	return r.ByFilter(ctx, models.CadenceStepFilter{LeadID: &leadID}, "step_number ASC, id ASC", 0, 0)
}

// ListPendingByRep lists a rep's pending steps scheduled before the given
// instant; this feeds the session queue builder
func (r *CadenceStepRepositoryImpl) ListPendingByRep(ctx context.Context, repID uint, scheduledBefore time.Time) ([]*models.CadenceStep, error) {
	pending := true
	filter := models.CadenceStepFilter{
		SalesRepID:      &repID,
		Pending:         &pending,
		ScheduledBefore: &scheduledBefore,
	}
	return r.ByFilter(ctx, filter, "scheduled_at ASC, id ASC", 0, 0)
}

// MarkCompleted records the completion instant of a step
func (r *CadenceStepRepositoryImpl) MarkCompleted(ctx context.Context, stepID uint, at time.Time) error {
	return r.terminate(ctx, stepID, map[string]any{"completed_at": at})
}

// MarkSkipped marks a step as skipped
func (r *CadenceStepRepositoryImpl) MarkSkipped(ctx context.Context, stepID uint) error {
	return r.terminate(ctx, stepID, map[string]any{"skipped": true})
}

// terminate applies a terminal update to a still-pending step
func (r *CadenceStepRepositoryImpl) terminate(ctx context.Context, stepID uint, updates map[string]any) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	updates["updated_at"] = utils.UTCNow()
	result := db.Model(&models.CadenceStep{}).
		Where("id = ? AND completed_at IS NULL AND skipped = ?", stepID, false).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to terminate cadence step: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
		return err
	}

	return nil
}

// SkipPendingForLead marks every pending step of a lead+rep cadence as skipped.
// Used when a fresh cadence replaces the one in effect.
func (r *CadenceStepRepositoryImpl) SkipPendingForLead(ctx context.Context, leadID, repID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.CadenceStep{}).
		Where("lead_id = ? AND sales_rep_id = ? AND completed_at IS NULL AND skipped = ?", leadID, repID, false).
		Updates(map[string]any{"skipped": true, "updated_at": utils.UTCNow()}).Error
	if err != nil {
		return fmt.Errorf("failed to skip pending cadence steps: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CadenceStepRepositoryImpl) applyFilter(query *gorm.DB, filter models.CadenceStepFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.LeadID != nil {
		query = query.Where("lead_id = ?", *filter.LeadID)
	}
	if filter.SalesRepID != nil {
		query = query.Where("sales_rep_id = ?", *filter.SalesRepID)
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", *filter.Channel)
	}
	if filter.Pending != nil {
		if *filter.Pending {
			query = query.Where("completed_at IS NULL AND skipped = ?", false)
		} else {
			query = query.Where("completed_at IS NOT NULL OR skipped = ?", true)
		}
	}
	if filter.Skipped != nil {
		query = query.Where("skipped = ?", *filter.Skipped)
	}
	if filter.ScheduledAfter != nil {
		query = query.Where("scheduled_at > ?", *filter.ScheduledAfter)
	}
	if filter.ScheduledBefore != nil {
		query = query.Where("scheduled_at < ?", *filter.ScheduledBefore)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves cadence steps based on filter criteria
func (r *CadenceStepRepositoryImpl) ByFilter(ctx context.Context, filter models.CadenceStepFilter, orderBy string, limit, offset int) ([]*models.CadenceStep, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CadenceStep{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.CadenceStep
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of cadence steps matching filter
func (r *CadenceStepRepositoryImpl) Count(ctx context.Context, filter models.CadenceStepFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CadenceStep{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any cadence step matches the filter
func (r *CadenceStepRepositoryImpl) Exists(ctx context.Context, filter models.CadenceStepFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
