package models

import (
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesRep represents a member of the sales team who owns leads and works cadences
type SalesRep struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_sales_reps_uuid;index:idx_sales_reps_uuid" json:"uuid"`

	FirstName string `gorm:"size:255;not null" json:"first_name"`
	LastName  string `gorm:"size:255;not null" json:"last_name"`

	Email        string  `gorm:"size:255;not null;uniqueIndex:idx_sales_reps_email" json:"email"`
	Mobile       *string `gorm:"size:20" json:"mobile,omitempty"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"` // Never serialize password hash

	IsActive *bool `gorm:"default:true;index:idx_sales_reps_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_sales_reps_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_sales_reps_last_login_at" json:"last_login_at,omitempty"`

	// Relations
	Leads     []Lead            `gorm:"foreignKey:AssignedTo" json:"-"`
	Sessions  []SalesRepSession `gorm:"foreignKey:SalesRepID" json:"-"`
	AuditLogs []AuditLog        `gorm:"foreignKey:SalesRepID" json:"-"`
}

// TableName returns the table name for the model
func (SalesRep) TableName() string {
	return "sales_reps"
}

// BeforeCreate is called before creating a new record
func (r *SalesRep) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// FullName returns the rep's display name
func (r *SalesRep) FullName() string {
	return r.FirstName + " " + r.LastName
}

// SalesRepFilter represents filter criteria for sales rep queries
type SalesRepFilter struct {
	ID             *uint
	UUID           *uuid.UUID
	Email          *string
	IsActive       *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	LastLoginAfter *time.Time
}
