package dto

// BuildQueueRequest represents the request payload for building a work session queue
type BuildQueueRequest struct {
	SessionType string `json:"session_type" validate:"required,oneof=email call dm mixed" example:"call"`
}

// QueueItemDTO represents one unit of work in a session queue
type QueueItemDTO struct {
	Lead        *LeadDTO        `json:"lead,omitempty"`
	Step        *CadenceStepDTO `json:"step,omitempty"`
	Reason      string          `json:"reason" example:"overdue"`
	TimingScore *float64        `json:"timing_score,omitempty" example:"0.95"`
}

// QueueCountsDTO breaks the queue down by reason
type QueueCountsDTO struct {
	Overdue     int `json:"overdue" example:"3"`
	Today       int `json:"today" example:"5"`
	Uncontacted int `json:"uncontacted" example:"12"`
}

// BuildQueueResponse represents the ordered work queue for one session
type BuildQueueResponse struct {
	SessionType string         `json:"session_type" example:"call"`
	Items       []QueueItemDTO `json:"items"`
	Counts      QueueCountsDTO `json:"counts"`
}
