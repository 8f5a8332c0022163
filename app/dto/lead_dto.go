package dto

import (
	"time"
)

// CreateLeadRequest represents the request payload for creating a lead
type CreateLeadRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=255" example:"Tony's Pizza & Pasta"`
	CompanyName     *string  `json:"company_name,omitempty" validate:"omitempty,max=255" example:"Tony's Pizza LLC"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=255" example:"Restaurant"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=20" example:"+15551234567"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email,max=255" example:"tony@tonyspizza.com"`
	InstagramHandle *string  `json:"instagram_handle,omitempty" validate:"omitempty,max=255" example:"@tonyspizza"`
	FacebookHandle  *string  `json:"facebook_handle,omitempty" validate:"omitempty,max=255"`
	TikTokHandle    *string  `json:"tiktok_handle,omitempty" validate:"omitempty,max=255"`
	LinkedInHandle  *string  `json:"linkedin_handle,omitempty" validate:"omitempty,max=255"`
	CompositeScore  *float64 `json:"composite_score,omitempty" validate:"omitempty,gte=0" example:"72.5"`
	AIChannelRec    *string  `json:"ai_channel_rec,omitempty" validate:"omitempty,oneof=phone email instagram facebook tiktok linkedin in_person other"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
	Notes           *string  `json:"notes,omitempty"`
}

// UpdateLeadRequest represents a partial lead update; nil fields are untouched
type UpdateLeadRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	CompanyName     *string  `json:"company_name,omitempty" validate:"omitempty,max=255"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=255"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	InstagramHandle *string  `json:"instagram_handle,omitempty" validate:"omitempty,max=255"`
	FacebookHandle  *string  `json:"facebook_handle,omitempty" validate:"omitempty,max=255"`
	TikTokHandle    *string  `json:"tiktok_handle,omitempty" validate:"omitempty,max=255"`
	LinkedInHandle  *string  `json:"linkedin_handle,omitempty" validate:"omitempty,max=255"`
	CompositeScore  *float64 `json:"composite_score,omitempty" validate:"omitempty,gte=0"`
	AIChannelRec    *string  `json:"ai_channel_rec,omitempty" validate:"omitempty,oneof=phone email instagram facebook tiktok linkedin in_person other"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
	Notes           *string  `json:"notes,omitempty"`
}

// LeadDTO represents a lead in API responses
type LeadDTO struct {
	ID              uint       `json:"id" example:"42"`
	UUID            string     `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AssignedTo      *uint      `json:"assigned_to,omitempty" example:"7"`
	Name            string     `json:"name" example:"Tony's Pizza & Pasta"`
	CompanyName     *string    `json:"company_name,omitempty"`
	Category        *string    `json:"category,omitempty" example:"Restaurant"`
	BusinessType    string     `json:"business_type" example:"restaurant"`
	Phone           *string    `json:"phone,omitempty"`
	Email           *string    `json:"email,omitempty"`
	InstagramHandle *string    `json:"instagram_handle,omitempty"`
	FacebookHandle  *string    `json:"facebook_handle,omitempty"`
	TikTokHandle    *string    `json:"tiktok_handle,omitempty"`
	LinkedInHandle  *string    `json:"linkedin_handle,omitempty"`
	CompositeScore  float64    `json:"composite_score" example:"72.5"`
	AIChannelRec    *string    `json:"ai_channel_rec,omitempty" example:"phone"`
	PipelineStage   string     `json:"pipeline_stage" example:"cold"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	Tags            []string   `json:"tags"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ListLeadsRequest represents the query parameters for listing leads
type ListLeadsRequest struct {
	Page          int      `query:"page" validate:"omitempty,gte=1" example:"1"`
	PageSize      int      `query:"page_size" validate:"omitempty,gte=1,lte=100" example:"25"`
	PipelineStage *string  `query:"pipeline_stage" validate:"omitempty,oneof=cold contacted warm hot proposal negotiation closed_won closed_lost dead"`
	Category      *string  `query:"category" validate:"omitempty,max=255"`
	Tag           *string  `query:"tag" validate:"omitempty,max=100"`
	Uncontacted   *bool    `query:"uncontacted"`
	MinScore      *float64 `query:"min_score" validate:"omitempty,gte=0"`
	MaxScore      *float64 `query:"max_score" validate:"omitempty,gte=0"`
}

// ListLeadsResponse represents the paginated lead listing
type ListLeadsResponse struct {
	Items      []LeadDTO     `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// MoveStageRequest represents a manual pipeline stage move
type MoveStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=cold contacted warm hot proposal negotiation closed_won closed_lost dead" example:"proposal"`
}

// MoveStageResponse represents the result of a stage move
type MoveStageResponse struct {
	Lead          LeadDTO `json:"lead"`
	PreviousStage string  `json:"previous_stage" example:"warm"`
}
