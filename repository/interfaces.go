// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// SalesRepRepository defines operations for sales reps
type SalesRepRepository interface {
	Repository[models.SalesRep, models.SalesRepFilter]
	ByEmail(ctx context.Context, email string) (*models.SalesRep, error)
	ByUUID(ctx context.Context, uuid string) (*models.SalesRep, error)
	UpdateLastLogin(ctx context.Context, repID uint, at time.Time) error
}

// SalesRepSessionRepository defines operations for sales rep sessions
type SalesRepSessionRepository interface {
	Repository[models.SalesRepSession, models.SalesRepSessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.SalesRepSession, error)
	ByRefreshToken(ctx context.Context, token string) (*models.SalesRepSession, error)
	ListActiveSessionsByRep(ctx context.Context, repID uint) ([]*models.SalesRepSession, error)
	ExpireSession(ctx context.Context, sessionID uint) error
	ExpireAllRepSessions(ctx context.Context, repID uint) error
	GetLatestByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*models.SalesRepSession, error)
}

// LeadRepository defines operations for leads
type LeadRepository interface {
	Repository[models.Lead, models.LeadFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Lead, error)
	ListByRep(ctx context.Context, repID uint, filter models.LeadFilter, limit, offset int) ([]*models.Lead, error)
	ListQueueCandidates(ctx context.Context, repID uint) ([]*models.Lead, error)
	UpdateStage(ctx context.Context, leadID uint, stage models.PipelineStage) error
	TouchLastContacted(ctx context.Context, leadID uint, at time.Time) error
}

// CadenceStepRepository defines operations for cadence steps
type CadenceStepRepository interface {
	Repository[models.CadenceStep, models.CadenceStepFilter]
	ListByLead(ctx context.Context, leadID uint) ([]*models.CadenceStep, error)
	ListPendingByRep(ctx context.Context, repID uint, scheduledBefore time.Time) ([]*models.CadenceStep, error)
	MarkCompleted(ctx context.Context, stepID uint, at time.Time) error
	MarkSkipped(ctx context.Context, stepID uint) error
	SkipPendingForLead(ctx context.Context, leadID, repID uint) error
}

// ActivityRepository defines operations for activities
type ActivityRepository interface {
	Repository[models.Activity, models.ActivityFilter]
	ListByLead(ctx context.Context, leadID uint, limit, offset int) ([]*models.Activity, error)
	ListCallsByRep(ctx context.Context, repID uint, since time.Time) ([]*models.Activity, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListBySalesRep(ctx context.Context, repID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}
