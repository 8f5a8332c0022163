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

// LeadRepositoryImpl implements LeadRepository interface
type LeadRepositoryImpl struct {
	*BaseRepository[models.Lead, models.LeadFilter]
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &LeadRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Lead, models.LeadFilter](db),
	}
}

// ByID retrieves a lead by its ID
func (r *LeadRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Lead, error) {
	db := r.getDB(ctx)
	var row models.Lead
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a lead by UUID
func (r *LeadRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Lead, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.LeadFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByRep lists a rep's leads ordered by composite score, weakest first, so
// reps review the long tail before the obvious winners
func (r *LeadRepositoryImpl) ListByRep(ctx context.Context, repID uint, filter models.LeadFilter, limit, offset int) ([]*models.Lead, error) {
	filter.AssignedTo = &repID
	return r.ByFilter(ctx, filter, "composite_score ASC, id ASC", limit, offset)
}

// ListQueueCandidates lists every lead assigned to the rep that a session
// queue may reference. Pending steps can point at contacted leads, so the
// whole assigned book is fetched; the queue builder applies the
// cold-uncontacted filter for the fresh-lead bucket itself.
func (r *LeadRepositoryImpl) ListQueueCandidates(ctx context.Context, repID uint) ([]*models.Lead, error) {
	return r.ByFilter(ctx, models.LeadFilter{AssignedTo: &repID}, "composite_score DESC, id ASC", 0, 0)
}

// UpdateStage moves a lead to a new pipeline stage
func (r *LeadRepositoryImpl) UpdateStage(ctx context.Context, leadID uint, stage models.PipelineStage) error {
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

	now := utils.UTCNow()
	err = db.Model(&models.Lead{}).
		Where("id = ?", leadID).
		Updates(map[string]any{"pipeline_stage": stage, "updated_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to update lead stage: %w", err)
	}

	return nil
}

// TouchLastContacted records the instant of the latest outreach attempt
func (r *LeadRepositoryImpl) TouchLastContacted(ctx context.Context, leadID uint, at time.Time) error {
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

	err = db.Model(&models.Lead{}).
		Where("id = ? AND (last_contacted_at IS NULL OR last_contacted_at < ?)", leadID, at).
		Update("last_contacted_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch last contacted: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *LeadRepositoryImpl) applyFilter(query *gorm.DB, filter models.LeadFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.PipelineStage != nil {
		query = query.Where("pipeline_stage = ?", *filter.PipelineStage)
	}
	if filter.Tag != nil {
		query = query.Where("? = ANY(tags)", *filter.Tag)
	}
	if filter.Uncontacted != nil {
		if *filter.Uncontacted {
			query = query.Where("last_contacted_at IS NULL")
		} else {
			query = query.Where("last_contacted_at IS NOT NULL")
		}
	}
	if filter.MinScore != nil {
		query = query.Where("composite_score >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		query = query.Where("composite_score <= ?", *filter.MaxScore)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.ContactedAfter != nil {
		query = query.Where("last_contacted_at > ?", *filter.ContactedAfter)
	}
	if filter.ContactedBefore != nil {
		query = query.Where("last_contacted_at < ?", *filter.ContactedBefore)
	}
	return query
}

// ByFilter retrieves leads based on filter criteria
func (r *LeadRepositoryImpl) ByFilter(ctx context.Context, filter models.LeadFilter, orderBy string, limit, offset int) ([]*models.Lead, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Lead{})

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

	var rows []*models.Lead
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of leads matching filter
func (r *LeadRepositoryImpl) Count(ctx context.Context, filter models.LeadFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Lead{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any lead matches the filter
func (r *LeadRepositoryImpl) Exists(ctx context.Context, filter models.LeadFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
