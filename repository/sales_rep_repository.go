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

// SalesRepRepositoryImpl implements SalesRepRepository interface
type SalesRepRepositoryImpl struct {
	*BaseRepository[models.SalesRep, models.SalesRepFilter]
}

// NewSalesRepRepository creates a new sales rep repository
func NewSalesRepRepository(db *gorm.DB) SalesRepRepository {
	return &SalesRepRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SalesRep, models.SalesRepFilter](db),
	}
}

// ByID retrieves a sales rep by its ID
func (r *SalesRepRepositoryImpl) ByID(ctx context.Context, id uint) (*models.SalesRep, error) {
	db := r.getDB(ctx)
	var row models.SalesRep
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByEmail retrieves a sales rep by email address
func (r *SalesRepRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.SalesRep, error) {
	rows, err := r.ByFilter(ctx, models.SalesRepFilter{Email: &email}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales rep by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByUUID retrieves a sales rep by UUID
func (r *SalesRepRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.SalesRep, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.SalesRepFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// UpdateLastLogin records the instant of the rep's latest successful login
func (r *SalesRepRepositoryImpl) UpdateLastLogin(ctx context.Context, repID uint, at time.Time) error {
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

	err = db.Model(&models.SalesRep{}).
		Where("id = ?", repID).
		Updates(map[string]any{"last_login_at": at, "updated_at": utils.UTCNow()}).Error
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *SalesRepRepositoryImpl) applyFilter(query *gorm.DB, filter models.SalesRepFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.LastLoginAfter != nil {
		query = query.Where("last_login_at > ?", *filter.LastLoginAfter)
	}
	return query
}

// ByFilter retrieves sales reps based on filter criteria
func (r *SalesRepRepositoryImpl) ByFilter(ctx context.Context, filter models.SalesRepFilter, orderBy string, limit, offset int) ([]*models.SalesRep, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SalesRep{})

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

	var rows []*models.SalesRep
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of sales reps matching filter
func (r *SalesRepRepositoryImpl) Count(ctx context.Context, filter models.SalesRepFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SalesRep{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any sales rep matches the filter
func (r *SalesRepRepositoryImpl) Exists(ctx context.Context, filter models.SalesRepFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
