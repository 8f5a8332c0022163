package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PipelineStage represents a lead's position in the sales funnel
type PipelineStage string

const (
	StageCold        PipelineStage = "cold"
	StageContacted   PipelineStage = "contacted"
	StageWarm        PipelineStage = "warm"
	StageHot         PipelineStage = "hot"
	StageProposal    PipelineStage = "proposal"
	StageNegotiation PipelineStage = "negotiation"
	StageClosedWon   PipelineStage = "closed_won"
	StageClosedLost  PipelineStage = "closed_lost"
	StageDead        PipelineStage = "dead"
)

// String returns the string representation of the stage
func (s PipelineStage) String() string {
	return string(s)
}

// Valid checks if the stage is valid
func (s PipelineStage) Valid() bool {
	switch s {
	case StageCold, StageContacted, StageWarm, StageHot, StageProposal,
		StageNegotiation, StageClosedWon, StageClosedLost, StageDead:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PipelineStage
func (s *PipelineStage) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = PipelineStage(v)
	case []byte:
		*s = PipelineStage(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PipelineStage", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for PipelineStage
func (s PipelineStage) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid PipelineStage: %s", s)
	}
	return string(s), nil
}

// Terminal reports whether the stage ends the funnel
func (s PipelineStage) Terminal() bool {
	return s == StageClosedWon || s == StageClosedLost || s == StageDead
}

// order returns the funnel position for forward-only checks; terminal side
// states are not ordered
func (s PipelineStage) order() int {
	switch s {
	case StageCold:
		return 0
	case StageContacted:
		return 1
	case StageWarm:
		return 2
	case StageHot:
		return 3
	case StageProposal:
		return 4
	case StageNegotiation:
		return 5
	default:
		return -1
	}
}

// CanTransitionTo checks if a manual move from s to newStage is allowed.
// Forward moves and drops to dead/closed are permitted; moving backwards is not.
func (s PipelineStage) CanTransitionTo(newStage PipelineStage) bool {
	if !newStage.Valid() || s == newStage {
		return false
	}
	if s.Terminal() {
		return false
	}
	if newStage.Terminal() {
		return true
	}
	return newStage.order() > s.order()
}

// DisplayName returns a human-readable stage name
func (s PipelineStage) DisplayName() string {
	switch s {
	case StageCold:
		return "Cold"
	case StageContacted:
		return "Contacted"
	case StageWarm:
		return "Warm"
	case StageHot:
		return "Hot"
	case StageProposal:
		return "Proposal"
	case StageNegotiation:
		return "Negotiation"
	case StageClosedWon:
		return "Closed (Won)"
	case StageClosedLost:
		return "Closed (Lost)"
	case StageDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Lead represents a prospective customer in the database
type Lead struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_leads_uuid;index:idx_leads_uuid" json:"uuid"`
	AssignedTo *uint     `gorm:"index:idx_leads_assigned_to" json:"assigned_to,omitempty"`

	// Identity
	Name        string  `gorm:"size:255;not null" json:"name"`
	CompanyName *string `gorm:"size:255" json:"company_name,omitempty"`
	Category    *string `gorm:"size:255;index:idx_leads_category" json:"category,omitempty"`

	// Contact channels; presence of a value means the channel is available
	Phone           *string `gorm:"size:20" json:"phone,omitempty"`
	Email           *string `gorm:"size:255" json:"email,omitempty"`
	InstagramHandle *string `gorm:"size:255" json:"instagram_handle,omitempty"`
	FacebookHandle  *string `gorm:"size:255" json:"facebook_handle,omitempty"`
	TikTokHandle    *string `gorm:"size:255" json:"tiktok_handle,omitempty"`
	LinkedInHandle  *string `gorm:"size:255" json:"linkedin_handle,omitempty"`

	// Ranking and recommendations
	CompositeScore float64  `gorm:"not null;default:0;index:idx_leads_composite_score" json:"composite_score"`
	AIChannelRec   *Channel `gorm:"type:outreach_channel" json:"ai_channel_rec,omitempty"`

	// Funnel state
	PipelineStage   PipelineStage `gorm:"type:pipeline_stage;not null;default:'cold';index:idx_leads_pipeline_stage" json:"pipeline_stage"`
	LastContactedAt *time.Time    `gorm:"index:idx_leads_last_contacted_at" json:"last_contacted_at,omitempty"`

	Tags  pq.StringArray `gorm:"type:text[];index:idx_leads_tags_gin,using:gin" json:"tags"`
	Notes *string        `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_leads_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Owner        *SalesRep     `gorm:"foreignKey:AssignedTo;references:ID" json:"owner,omitempty"`
	CadenceSteps []CadenceStep `gorm:"foreignKey:LeadID" json:"cadence_steps,omitempty"`
	Activities   []Activity    `gorm:"foreignKey:LeadID" json:"activities,omitempty"`
}

// TableName returns the table name for the model
func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate is called before creating a new record
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == uuid.Nil {
		l.UUID = uuid.New()
	}
	if l.PipelineStage == "" {
		l.PipelineStage = StageCold
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (l *Lead) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	l.UpdatedAt = &now
	return nil
}

// HasChannel reports whether the lead can be reached on the given channel
func (l *Lead) HasChannel(c Channel) bool {
	switch c {
	case ChannelPhone:
		return notEmpty(l.Phone)
	case ChannelEmail:
		return notEmpty(l.Email)
	case ChannelInstagram:
		return notEmpty(l.InstagramHandle)
	case ChannelFacebook:
		return notEmpty(l.FacebookHandle)
	case ChannelTikTok:
		return notEmpty(l.TikTokHandle)
	case ChannelLinkedIn:
		return notEmpty(l.LinkedInHandle)
	default:
		return false
	}
}

// IsUncontacted reports whether the lead has never been reached out to
func (l *Lead) IsUncontacted() bool {
	return l.LastContactedAt == nil
}

func notEmpty(s *string) bool {
	return s != nil && *s != ""
}

// LeadFilter represents filter criteria for lead queries
type LeadFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	AssignedTo      *uint
	Category        *string
	PipelineStage   *PipelineStage
	Tag             *string
	Uncontacted     *bool
	MinScore        *float64
	MaxScore        *float64
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	ContactedAfter  *time.Time
	ContactedBefore *time.Time
}
