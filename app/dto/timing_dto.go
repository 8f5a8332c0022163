package dto

import (
	"time"
)

// TimingScoreDTO represents how good an instant is for contacting a lead
type TimingScoreDTO struct {
	Score       float64 `json:"score" example:"0.95"`
	Label       string  `json:"label" example:"Great time to call"`
	WindowLabel *string `json:"window_label,omitempty" example:"Post-lunch lull"`
}

// WindowGroupDTO summarizes a recommended contact window across weekdays
type WindowGroupDTO struct {
	DayLabel  string `json:"day_label" example:"Tue-Thu"`
	TimeRange string `json:"time_range" example:"09:00 - 10:30"`
	Quality   string `json:"quality" example:"best"`
}

// LearnedSlotDTO represents a weekday/hour bucket ranked by observed connect rate
type LearnedSlotDTO struct {
	TimeLabel   string  `json:"time_label" example:"Tue 10:00-11:00"`
	ConnectRate float64 `json:"connect_rate" example:"0.62"`
	Calls       int     `json:"calls" example:"8"`
}

// TimingRecommendationResponse represents the full timing guidance for a lead
type TimingRecommendationResponse struct {
	LeadUUID        string           `json:"lead_uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	BusinessType    string           `json:"business_type" example:"restaurant"`
	CurrentScore    TimingScoreDTO   `json:"current_score"`
	NextBestTime    time.Time        `json:"next_best_time"`
	NextWindowLabel string           `json:"next_window_label" example:"Before lunch prep"`
	BestWindows     []WindowGroupDTO `json:"best_windows"`
	LearnedSlots    []LearnedSlotDTO `json:"learned_slots,omitempty"`
}
