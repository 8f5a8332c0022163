package dto

import (
	"time"
)

// CadenceStepDTO represents a cadence step in API responses
type CadenceStepDTO struct {
	ID           uint       `json:"id" example:"91"`
	LeadID       uint       `json:"lead_id" example:"42"`
	SalesRepID   uint       `json:"sales_rep_id" example:"7"`
	StepNumber   int        `json:"step_number" example:"1"`
	Channel      string     `json:"channel" example:"phone"`
	TemplateName *string    `json:"template_name,omitempty" example:"cold_call_intro"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Skipped      bool       `json:"skipped" example:"false"`
}

// GenerateCadenceResponse represents a freshly generated cadence
type GenerateCadenceResponse struct {
	LeadUUID      string           `json:"lead_uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	BusinessType  string           `json:"business_type" example:"restaurant"`
	Steps         []CadenceStepDTO `json:"steps"`
	ReplacedSteps int              `json:"replaced_steps" example:"3"`
}

// ListCadenceResponse represents a lead's cadence steps
type ListCadenceResponse struct {
	Items []CadenceStepDTO `json:"items"`
}

// CompleteStepResponse represents the result of completing a step
type CompleteStepResponse struct {
	Step CadenceStepDTO `json:"step"`
}

// SkipStepResponse represents the result of skipping a step
type SkipStepResponse struct {
	Step CadenceStepDTO `json:"step"`
}
