package dto

import (
	"time"
)

// LogActivityRequest represents the request payload for logging a contact attempt
type LogActivityRequest struct {
	ActivityType  string     `json:"activity_type" validate:"required,oneof=call email dm walk_in meeting note" example:"call"`
	Channel       *string    `json:"channel,omitempty" validate:"omitempty,oneof=phone email instagram facebook tiktok linkedin in_person other" example:"phone"`
	Outcome       *string    `json:"outcome,omitempty" validate:"omitempty,oneof=no_answer left_voicemail connected interested not_interested replied callback_requested meeting_set proposal_requested wrong_number" example:"connected"`
	Notes         *string    `json:"notes,omitempty"`
	IsPrivate     bool       `json:"is_private" example:"false"`
	OccurredAt    *time.Time `json:"occurred_at,omitempty"`
	CadenceStepID *uint      `json:"cadence_step_id,omitempty" example:"91"`
}

// ActivityDTO represents an activity in API responses
type ActivityDTO struct {
	ID           uint      `json:"id" example:"311"`
	LeadID       uint      `json:"lead_id" example:"42"`
	SalesRepID   *uint     `json:"sales_rep_id,omitempty" example:"7"`
	ActivityType string    `json:"activity_type" example:"call"`
	Channel      *string   `json:"channel,omitempty" example:"phone"`
	Outcome      *string   `json:"outcome,omitempty" example:"connected"`
	Notes        *string   `json:"notes,omitempty"`
	IsPrivate    bool      `json:"is_private"`
	OccurredAt   time.Time `json:"occurred_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogActivityResponse represents the result of logging an activity, including
// any automatic side effects
type LogActivityResponse struct {
	Activity        ActivityDTO `json:"activity"`
	StageAdvancedTo *string     `json:"stage_advanced_to,omitempty" example:"warm"`
	CompletedStepID *uint       `json:"completed_step_id,omitempty" example:"91"`
}

// ListActivitiesRequest represents the query parameters for listing a lead's activities
type ListActivitiesRequest struct {
	Page     int `query:"page" validate:"omitempty,gte=1" example:"1"`
	PageSize int `query:"page_size" validate:"omitempty,gte=1,lte=100" example:"25"`
}

// ListActivitiesResponse represents the paginated activity listing
type ListActivitiesResponse struct {
	Items      []ActivityDTO `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
