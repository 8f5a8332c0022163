// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	Location   *LocationInfo     `json:"location,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// LocationInfo holds geographical location information
type LocationInfo struct {
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceInfo: make(map[string]string),
		Additional: make(map[string]string),
	}
}

// AddDeviceInfo adds device information to the metadata
func (cm *ClientMetadata) AddDeviceInfo(key, value string) {
	if cm.DeviceInfo == nil {
		cm.DeviceInfo = make(map[string]string)
	}
	cm.DeviceInfo[key] = value
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetLocation sets location information
func (cm *ClientMetadata) SetLocation(location *LocationInfo) {
	cm.Location = location
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// ToAuthSalesRepDTO converts a sales rep model to AuthSalesRepDTO for authentication responses
func ToAuthSalesRepDTO(rep models.SalesRep) dto.AuthSalesRepDTO {
	d := dto.AuthSalesRepDTO{
		ID:        rep.ID,
		UUID:      rep.UUID.String(),
		FirstName: rep.FirstName,
		LastName:  rep.LastName,
		Email:     rep.Email,
		Mobile:    rep.Mobile,
		IsActive:  rep.IsActive,
		CreatedAt: rep.CreatedAt.Format(time.RFC3339),
	}
	if rep.LastLoginAt != nil {
		formatted := rep.LastLoginAt.Format(time.RFC3339)
		d.LastLoginAt = &formatted
	}
	return d
}

func ToSessionDTO(session models.SalesRepSession) dto.SessionDTO {
	return dto.SessionDTO{
		SessionToken: session.SessionToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToLeadDTO converts a lead model to its API representation. The business type
// is derived from the category rather than stored.
func ToLeadDTO(lead models.Lead) dto.LeadDTO {
	d := dto.LeadDTO{
		ID:              lead.ID,
		UUID:            lead.UUID.String(),
		AssignedTo:      lead.AssignedTo,
		Name:            lead.Name,
		CompanyName:     lead.CompanyName,
		Category:        lead.Category,
		BusinessType:    outreach.ClassifyBusiness(lead.Category).String(),
		Phone:           lead.Phone,
		Email:           lead.Email,
		InstagramHandle: lead.InstagramHandle,
		FacebookHandle:  lead.FacebookHandle,
		TikTokHandle:    lead.TikTokHandle,
		LinkedInHandle:  lead.LinkedInHandle,
		CompositeScore:  lead.CompositeScore,
		PipelineStage:   lead.PipelineStage.String(),
		LastContactedAt: lead.LastContactedAt,
		Tags:            lead.Tags,
		Notes:           lead.Notes,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
	if lead.AIChannelRec != nil {
		rec := lead.AIChannelRec.String()
		d.AIChannelRec = &rec
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d
}

// ToCadenceStepDTO converts a cadence step model to its API representation
func ToCadenceStepDTO(step models.CadenceStep) dto.CadenceStepDTO {
	return dto.CadenceStepDTO{
		ID:           step.ID,
		LeadID:       step.LeadID,
		SalesRepID:   step.SalesRepID,
		StepNumber:   step.StepNumber,
		Channel:      step.Channel.String(),
		TemplateName: step.TemplateName,
		ScheduledAt:  step.ScheduledAt,
		CompletedAt:  step.CompletedAt,
		Skipped:      step.Skipped,
	}
}

// ToActivityDTO converts an activity model to its API representation
func ToActivityDTO(activity models.Activity) dto.ActivityDTO {
	d := dto.ActivityDTO{
		ID:           activity.ID,
		LeadID:       activity.LeadID,
		SalesRepID:   activity.SalesRepID,
		ActivityType: activity.ActivityType.String(),
		Notes:        activity.Notes,
		IsPrivate:    activity.IsPrivate,
		OccurredAt:   activity.OccurredAt,
		CreatedAt:    activity.CreatedAt,
	}
	if activity.Channel != nil {
		ch := activity.Channel.String()
		d.Channel = &ch
	}
	if activity.Outcome != nil {
		out := activity.Outcome.String()
		d.Outcome = &out
	}
	return d
}
