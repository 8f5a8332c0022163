package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesRepSessionRepositoryImpl implements SalesRepSessionRepository interface
type SalesRepSessionRepositoryImpl struct {
	*BaseRepository[models.SalesRepSession, models.SalesRepSessionFilter]
}

// NewSalesRepSessionRepository creates a new sales rep session repository
func NewSalesRepSessionRepository(db *gorm.DB) SalesRepSessionRepository {
	return &SalesRepSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SalesRepSession, models.SalesRepSessionFilter](db),
	}
}

// BySessionToken retrieves an active, unexpired session by session token
func (r *SalesRepSessionRepositoryImpl) BySessionToken(ctx context.Context, token string) (*models.SalesRepSession, error) {
	db := r.getDB(ctx)

	var session models.SalesRepSession
	err := db.Where("session_token = ? AND is_active = ? AND expires_at > ?",
		token, true, time.Now()).
		Preload("SalesRep").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}

	return &session, nil
}

// ByRefreshToken retrieves an active, unexpired session by refresh token
func (r *SalesRepSessionRepositoryImpl) ByRefreshToken(ctx context.Context, token string) (*models.SalesRepSession, error) {
	db := r.getDB(ctx)

	var session models.SalesRepSession
	err := db.Where("refresh_token = ? AND is_active = ? AND expires_at > ?",
		token, true, time.Now()).
		Preload("SalesRep").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by refresh token: %w", err)
	}

	return &session, nil
}

// ListActiveSessionsByRep retrieves all active sessions for a sales rep
func (r *SalesRepSessionRepositoryImpl) ListActiveSessionsByRep(ctx context.Context, repID uint) ([]*models.SalesRepSession, error) {
	active := true
	filter := models.SalesRepSessionFilter{
		SalesRepID: &repID,
		IsActive:   &active,
	}

	sessions, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions by rep: %w", err)
	}

	// Filter out expired sessions
	var activeSessions []*models.SalesRepSession
	now := time.Now()
	for _, session := range sessions {
		if session.ExpiresAt.After(now) {
			activeSessions = append(activeSessions, session)
		}
	}

	return activeSessions, nil
}

// ExpireSession creates a new expired session record (insert-only approach)
func (r *SalesRepSessionRepositoryImpl) ExpireSession(ctx context.Context, sessionID uint) error {
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

	var session models.SalesRepSession
	err = db.Last(&session, sessionID).Error
	if err != nil {
		return fmt.Errorf("failed to find session to expire: %w", err)
	}

	inactive := false
	expiredSession := models.SalesRepSession{
		CorrelationID:  session.CorrelationID,
		SalesRepID:     session.SalesRepID,
		SessionToken:   session.SessionToken + "_expired",
		RefreshToken:   nil, // Clear refresh token on expiration
		DeviceInfo:     session.DeviceInfo,
		IPAddress:      session.IPAddress,
		UserAgent:      session.UserAgent,
		IsActive:       &inactive,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: time.Now(),
		ExpiresAt:      time.Now(),
	}

	err = db.Create(&expiredSession).Error
	if err != nil {
		return fmt.Errorf("failed to create expired session record: %w", err)
	}

	return nil
}

// ExpireAllRepSessions expires all sessions for a sales rep (insert-only approach)
func (r *SalesRepSessionRepositoryImpl) ExpireAllRepSessions(ctx context.Context, repID uint) error {
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

	var sessions []models.SalesRepSession
	err = db.Where("sales_rep_id = ? AND is_active = ?", repID, true).
		Find(&sessions).Error
	if err != nil {
		return fmt.Errorf("failed to find rep sessions: %w", err)
	}

	now := time.Now()
	inactive := false
	for _, session := range sessions {
		expiredSession := models.SalesRepSession{
			CorrelationID:  session.CorrelationID,
			SalesRepID:     session.SalesRepID,
			SessionToken:   session.SessionToken + "_expired",
			RefreshToken:   nil, // Clear refresh token on expiration
			DeviceInfo:     session.DeviceInfo,
			IPAddress:      session.IPAddress,
			UserAgent:      session.UserAgent,
			IsActive:       &inactive,
			CreatedAt:      session.CreatedAt,
			LastAccessedAt: now,
			ExpiresAt:      now,
		}

		err = db.Create(&expiredSession).Error
		if err != nil {
			return fmt.Errorf("failed to create expired session record: %w", err)
		}
	}

	return nil
}

// GetLatestByCorrelationID retrieves the latest session record in a correlation chain
func (r *SalesRepSessionRepositoryImpl) GetLatestByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*models.SalesRepSession, error) {
	rows, err := r.ByFilter(ctx, models.SalesRepSessionFilter{CorrelationID: &correlationID}, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// applyFilter applies filter criteria to a GORM query
func (r *SalesRepSessionRepositoryImpl) applyFilter(query *gorm.DB, filter models.SalesRepSessionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CorrelationID != nil {
		query = query.Where("correlation_id = ?", *filter.CorrelationID)
	}
	if filter.SalesRepID != nil {
		query = query.Where("sales_rep_id = ?", *filter.SalesRepID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IPAddress != nil {
		query = query.Where("ip_address = ?", *filter.IPAddress)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.ExpiresAfter != nil {
		query = query.Where("expires_at > ?", *filter.ExpiresAfter)
	}
	if filter.ExpiresBefore != nil {
		query = query.Where("expires_at < ?", *filter.ExpiresBefore)
	}
	if filter.IsExpired != nil {
		if *filter.IsExpired {
			query = query.Where("expires_at <= ?", time.Now())
		} else {
			query = query.Where("expires_at > ?", time.Now())
		}
	}
	return query
}

// ByFilter retrieves sessions based on filter criteria
func (r *SalesRepSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.SalesRepSessionFilter, orderBy string, limit, offset int) ([]*models.SalesRepSession, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SalesRepSession{})

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

	var rows []*models.SalesRepSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of sessions matching filter
func (r *SalesRepSessionRepositoryImpl) Count(ctx context.Context, filter models.SalesRepSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SalesRepSession{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any session matches the filter
func (r *SalesRepSessionRepositoryImpl) Exists(ctx context.Context, filter models.SalesRepSessionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
