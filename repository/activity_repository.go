package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"gorm.io/gorm"
)

// ActivityRepositoryImpl implements ActivityRepository interface
type ActivityRepositoryImpl struct {
	*BaseRepository[models.Activity, models.ActivityFilter]
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Activity, models.ActivityFilter](db),
	}
}

// ByID retrieves an activity by its ID
func (r *ActivityRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Activity, error) {
	db := r.getDB(ctx)
	var row models.Activity
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByLead lists a lead's activities, newest first
func (r *ActivityRepositoryImpl) ListByLead(ctx context.Context, leadID uint, limit, offset int) ([]*models.Activity, error) {
	return r.ByFilter(ctx, models.ActivityFilter{LeadID: &leadID}, "occurred_at DESC, id DESC", limit, offset)
}

// ListCallsByRep lists a rep's call attempts since the given instant; this
// feeds the learned-slot analysis
func (r *ActivityRepositoryImpl) ListCallsByRep(ctx context.Context, repID uint, since time.Time) ([]*models.Activity, error) {
	db := r.getDB(ctx)

	phone := models.ChannelPhone
	var rows []*models.Activity
	err := db.Model(&models.Activity{}).
		Where("sales_rep_id = ? AND occurred_at > ?", repID, since).
		Where("activity_type = ? OR channel = ?", models.ActivityTypeCall, phone).
		Order("occurred_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ActivityRepositoryImpl) applyFilter(query *gorm.DB, filter models.ActivityFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.LeadID != nil {
		query = query.Where("lead_id = ?", *filter.LeadID)
	}
	if filter.SalesRepID != nil {
		query = query.Where("sales_rep_id = ?", *filter.SalesRepID)
	}
	if filter.ActivityType != nil {
		query = query.Where("activity_type = ?", *filter.ActivityType)
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", *filter.Channel)
	}
	if filter.Outcome != nil {
		query = query.Where("outcome = ?", *filter.Outcome)
	}
	if filter.IsPrivate != nil {
		query = query.Where("is_private = ?", *filter.IsPrivate)
	}
	if filter.OccurredAfter != nil {
		query = query.Where("occurred_at > ?", *filter.OccurredAfter)
	}
	if filter.OccurredBefore != nil {
		query = query.Where("occurred_at < ?", *filter.OccurredBefore)
	}
	return query
}

// ByFilter retrieves activities based on filter criteria
func (r *ActivityRepositoryImpl) ByFilter(ctx context.Context, filter models.ActivityFilter, orderBy string, limit, offset int) ([]*models.Activity, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Activity{})

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

	var rows []*models.Activity
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of activities matching filter
func (r *ActivityRepositoryImpl) Count(ctx context.Context, filter models.ActivityFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Activity{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any activity matches the filter
func (r *ActivityRepositoryImpl) Exists(ctx context.Context, filter models.ActivityFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
