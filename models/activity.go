package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/amirphl/Yatagarasu/utils"
	"gorm.io/gorm"
)

// ActivityType represents the kind of contact attempt that was logged
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeDM      ActivityType = "dm"
	ActivityTypeWalkIn  ActivityType = "walk_in"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeNote    ActivityType = "note"
)

// String returns the string representation of the activity type
func (t ActivityType) String() string {
	return string(t)
}

// Valid checks if the activity type is valid
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeDM,
		ActivityTypeWalkIn, ActivityTypeMeeting, ActivityTypeNote:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActivityType
func (t *ActivityType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = ActivityType(v)
	case []byte:
		*t = ActivityType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActivityType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActivityType
func (t ActivityType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid ActivityType: %s", t)
	}
	return string(t), nil
}

// ActivityOutcome represents the result of a contact attempt
type ActivityOutcome string

const (
	OutcomeNoAnswer          ActivityOutcome = "no_answer"
	OutcomeLeftVoicemail     ActivityOutcome = "left_voicemail"
	OutcomeConnected         ActivityOutcome = "connected"
	OutcomeInterested        ActivityOutcome = "interested"
	OutcomeNotInterested     ActivityOutcome = "not_interested"
	OutcomeReplied           ActivityOutcome = "replied"
	OutcomeCallbackRequested ActivityOutcome = "callback_requested"
	OutcomeMeetingSet        ActivityOutcome = "meeting_set"
	OutcomeProposalRequested ActivityOutcome = "proposal_requested"
	OutcomeWrongNumber       ActivityOutcome = "wrong_number"
)

// String returns the string representation of the outcome
func (o ActivityOutcome) String() string {
	return string(o)
}

// Valid checks if the outcome is valid
func (o ActivityOutcome) Valid() bool {
	switch o {
	case OutcomeNoAnswer, OutcomeLeftVoicemail, OutcomeConnected,
		OutcomeInterested, OutcomeNotInterested, OutcomeReplied,
		OutcomeCallbackRequested, OutcomeMeetingSet,
		OutcomeProposalRequested, OutcomeWrongNumber:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActivityOutcome
func (o *ActivityOutcome) Scan(value any) error {
	if value == nil {
		*o = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*o = ActivityOutcome(v)
	case []byte:
		*o = ActivityOutcome(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActivityOutcome", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActivityOutcome
func (o ActivityOutcome) Value() (driver.Value, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid ActivityOutcome: %s", o)
	}
	return string(o), nil
}

// IsConnect reports whether the outcome counts as a successful connect for
// connect-rate analytics
func (o ActivityOutcome) IsConnect() bool {
	return o == OutcomeConnected || o == OutcomeInterested || o == OutcomeMeetingSet
}

// Activity is an immutable log entry of a contact attempt and its outcome
type Activity struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	LeadID     uint  `gorm:"not null;index:idx_activities_lead_id" json:"lead_id"`
	SalesRepID *uint `gorm:"index:idx_activities_sales_rep_id" json:"sales_rep_id,omitempty"`

	ActivityType ActivityType     `gorm:"type:activity_type;not null;index:idx_activities_type" json:"activity_type"`
	Channel      *Channel         `gorm:"type:outreach_channel" json:"channel,omitempty"`
	Outcome      *ActivityOutcome `gorm:"type:activity_outcome;index:idx_activities_outcome" json:"outcome,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	IsPrivate    bool             `gorm:"not null;default:false" json:"is_private"`

	OccurredAt time.Time `gorm:"not null;index:idx_activities_occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Lead     *Lead     `gorm:"foreignKey:LeadID;references:ID" json:"lead,omitempty"`
	SalesRep *SalesRep `gorm:"foreignKey:SalesRepID;references:ID" json:"sales_rep,omitempty"`
}

// TableName returns the table name for the model
func (Activity) TableName() string {
	return "activities"
}

// BeforeCreate is called before creating a new record
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.OccurredAt.IsZero() {
		a.OccurredAt = utils.UTCNow()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// IsCall reports whether the activity was a call attempt
func (a *Activity) IsCall() bool {
	if a.ActivityType == ActivityTypeCall {
		return true
	}
	return a.Channel != nil && *a.Channel == ChannelPhone
}

// ActivityFilter represents filter criteria for activity queries
type ActivityFilter struct {
	ID             *uint
	LeadID         *uint
	SalesRepID     *uint
	ActivityType   *ActivityType
	Channel        *Channel
	Outcome        *ActivityOutcome
	IsPrivate      *bool
	OccurredAfter  *time.Time
	OccurredBefore *time.Time
}
