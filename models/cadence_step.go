package models

import (
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"gorm.io/gorm"
)

// CadenceStep represents one scheduled outreach touch belonging to a lead and an owning rep.
// Step numbers are 1-based and contiguous within the cadence currently in effect for a
// lead+rep pair; a step is terminal once completed or skipped and is never mutated after.
type CadenceStep struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	LeadID     uint `gorm:"not null;index:idx_cadence_steps_lead_id;index:idx_cadence_steps_lead_rep,priority:1" json:"lead_id"`
	SalesRepID uint `gorm:"not null;index:idx_cadence_steps_sales_rep_id;index:idx_cadence_steps_lead_rep,priority:2" json:"sales_rep_id"`

	StepNumber   int     `gorm:"not null" json:"step_number"`
	Channel      Channel `gorm:"type:outreach_channel;not null;index:idx_cadence_steps_channel" json:"channel"`
	TemplateName *string `gorm:"size:100" json:"template_name,omitempty"`

	ScheduledAt time.Time  `gorm:"not null;index:idx_cadence_steps_scheduled_at" json:"scheduled_at"`
	CompletedAt *time.Time `gorm:"index:idx_cadence_steps_completed_at" json:"completed_at,omitempty"`
	Skipped     bool       `gorm:"not null;default:false" json:"skipped"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Lead     *Lead     `gorm:"foreignKey:LeadID;references:ID" json:"lead,omitempty"`
	SalesRep *SalesRep `gorm:"foreignKey:SalesRepID;references:ID" json:"sales_rep,omitempty"`
}

// TableName returns the table name for the model
func (CadenceStep) TableName() string {
	return "cadence_steps"
}

// BeforeCreate is called before creating a new record
func (s *CadenceStep) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (s *CadenceStep) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	s.UpdatedAt = &now
	return nil
}

// Terminal reports whether the step has been completed or skipped
func (s *CadenceStep) Terminal() bool {
	return s.CompletedAt != nil || s.Skipped
}

// Pending reports whether the step is still actionable
func (s *CadenceStep) Pending() bool {
	return !s.Terminal()
}

// OverdueAt reports whether the step was scheduled before the start of the day
// containing the given instant
func (s *CadenceStep) OverdueAt(now time.Time) bool {
	return s.ScheduledAt.Before(utils.StartOfDay(now))
}

// DueTodayAt reports whether the step is scheduled within the day containing
// the given instant
func (s *CadenceStep) DueTodayAt(now time.Time) bool {
	start := utils.StartOfDay(now)
	return !s.ScheduledAt.Before(start) && s.ScheduledAt.Before(utils.StartOfNextDay(now))
}

// CadenceStepFilter represents filter criteria for cadence step queries
type CadenceStepFilter struct {
	ID              *uint
	LeadID          *uint
	SalesRepID      *uint
	Channel         *Channel
	Pending         *bool
	Skipped         *bool
	ScheduledAfter  *time.Time
	ScheduledBefore *time.Time
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}
