// Package dto contains Data Transfer Objects for API request and response structures
package dto

// LoginRequest represents the request payload for sales rep login
type LoginRequest struct {
	Email        string  `json:"email" validate:"required,email,max=255" example:"rep@example.com"`
	Password     string  `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
	CaptchaID    string  `json:"captcha_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	CaptchaAngle float64 `json:"captcha_angle" validate:"required" example:"137"`
}

// AuthSalesRepDTO represents sales rep information returned in auth responses
type AuthSalesRepDTO struct {
	ID          uint    `json:"id" example:"123"`
	UUID        string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName   string  `json:"first_name" example:"Jordan"`
	LastName    string  `json:"last_name" example:"Reyes"`
	Email       string  `json:"email" example:"rep@example.com"`
	Mobile      *string `json:"mobile,omitempty" example:"+15551234567"`
	IsActive    *bool   `json:"is_active" example:"true"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	LastLoginAt *string `json:"last_login_at,omitempty" example:"2024-01-15T16:30:00Z"`
}

// SessionDTO represents an issued token pair
type SessionDTO struct {
	SessionToken string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken *string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string  `json:"token_type" example:"Bearer"`
	ExpiresIn    int     `json:"expires_in" example:"3600"`
	CreatedAt    string  `json:"created_at" example:"2024-01-15T16:30:00Z"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	SalesRep AuthSalesRepDTO `json:"sales_rep"`
	Session  SessionDTO      `json:"session"`
}

// RefreshTokenRequest represents the request to exchange a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshTokenResponse represents the response with the rotated token pair
type RefreshTokenResponse struct {
	Session SessionDTO `json:"session"`
}

// LogoutResponse represents the response after session termination
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out" example:"true"`
}

// CaptchaChallengeResponse carries a rotate captcha challenge
type CaptchaChallengeResponse struct {
	CaptchaID   string `json:"captcha_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MasterImage string `json:"master_image"`
	ThumbImage  string `json:"thumb_image"`
}

// Common error codes for auth operations
const (
	ErrorUserNotFound      = "USER_NOT_FOUND"
	ErrorIncorrectPassword = "INCORRECT_PASSWORD"
	ErrorAccountInactive   = "ACCOUNT_INACTIVE"
	ErrorCaptchaFailed     = "CAPTCHA_FAILED"
	ErrorSessionNotFound   = "SESSION_NOT_FOUND"
)
