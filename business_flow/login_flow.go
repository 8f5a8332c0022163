// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/services"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginFlow handles sales rep authentication and session lifecycle operations
type LoginFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error)
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	salesRepRepo   repository.SalesRepRepository
	sessionRepo    repository.SalesRepSessionRepository
	auditRepo      repository.AuditLogRepository
	tokenService   services.TokenService
	captchaService services.CaptchaService
	db             *gorm.DB
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	salesRepRepo repository.SalesRepRepository,
	sessionRepo repository.SalesRepSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	captchaService services.CaptchaService,
	db *gorm.DB,
) LoginFlow {
	return &LoginFlowImpl{
		salesRepRepo:   salesRepRepo,
		sessionRepo:    sessionRepo,
		auditRepo:      auditRepo,
		tokenService:   tokenService,
		captchaService: captchaService,
		db:             db,
	}
}

// Login authenticates a sales rep with email and password
func (lf *LoginFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	// Validate business rules
	if err := lf.validateLoginRequest(request); err != nil {
		return nil, NewBusinessError("LOGIN_VALIDATION_FAILED", "Login validation failed", err)
	}

	if !lf.captchaService.VerifyRotate(ctx, request.CaptchaID, request.CaptchaAngle) {
		errMsg := "Login failed: captcha verification failed"
		_ = lf.LogLoginAttempt(ctx, nil, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
	}

	var rep *models.SalesRep

	// Start transaction for login process
	resp, err := lf.WithLoginTransaction(ctx, func(ctx context.Context) (*dto.LoginResponse, error) {
		var err error
		rep, err = lf.salesRepRepo.ByEmail(ctx, strings.TrimSpace(strings.ToLower(request.Email)))
		if err != nil {
			return nil, err
		}
		if rep == nil {
			return nil, ErrSalesRepNotFound
		}

		// Check if account is active
		if !utils.IsTrue(rep.IsActive) {
			return nil, ErrAccountInactive
		}

		// Verify password
		if err := bcrypt.CompareHashAndPassword([]byte(rep.PasswordHash), []byte(request.Password)); err != nil {
			return nil, ErrIncorrectPassword
		}

		// Create new session
		session, err := lf.CreateSession(ctx, rep.ID, metadata)
		if err != nil {
			return nil, err
		}

		now := utils.UTCNow()
		if err := lf.salesRepRepo.UpdateLastLogin(ctx, rep.ID, now); err != nil {
			return nil, err
		}
		rep.LastLoginAt = &now

		return &dto.LoginResponse{
			SalesRep: ToAuthSalesRepDTO(*rep),
			Session:  ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		_ = lf.LogLoginAttempt(ctx, rep, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	} else {
		msg := fmt.Sprintf("Sales rep logged in successfully: %d", resp.SalesRep.ID)
		_ = lf.LogLoginAttempt(ctx, rep, models.AuditActionLoginSuccessful, msg, true, nil, metadata)
	}

	return resp, nil
}

// RefreshToken exchanges a valid refresh token for a rotated token pair.
// The old session row stays untouched; an expiration record is inserted for it
// and a fresh session row carries the new pair.
func (lf *LoginFlowImpl) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.RefreshTokenResponse, error) {
	if request.RefreshToken == "" {
		return nil, NewBusinessError("REFRESH_VALIDATION_FAILED", "Refresh token is required", ErrSessionNotFound)
	}

	resp, err := lf.WithRefreshTransaction(ctx, func(ctx context.Context) (*dto.RefreshTokenResponse, error) {
		session, err := lf.sessionRepo.ByRefreshToken(ctx, request.RefreshToken)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}
		if !session.IsValid() {
			return nil, ErrSessionExpired
		}
		if !utils.IsTrue(session.SalesRep.IsActive) {
			return nil, ErrAccountInactive
		}

		accessToken, refreshToken, err := lf.tokenService.RefreshToken(request.RefreshToken)
		if err != nil {
			return nil, err
		}

		// Retire the old pair
		if err := lf.sessionRepo.ExpireSession(ctx, session.ID); err != nil {
			return nil, err
		}
		_ = lf.tokenService.RevokeToken(session.SessionToken)

		ipAddress, userAgent := clientAddr(metadata)
		rotated := &models.SalesRepSession{
			SalesRepID:    session.SalesRepID,
			CorrelationID: session.CorrelationID,
			SessionToken:  accessToken,
			RefreshToken:  &refreshToken,
			ExpiresAt:     utils.UTCNowAdd(utils.SessionTimeout),
			IsActive:      utils.ToPtr(true),
			IPAddress:     &ipAddress,
			UserAgent:     &userAgent,
		}
		if err := lf.sessionRepo.Save(ctx, rotated); err != nil {
			return nil, err
		}

		return &dto.RefreshTokenResponse{
			Session: ToSessionDTO(*rotated),
		}, nil
	})

	if err != nil {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", err)
	}

	return resp, nil
}

// Logout terminates the session identified by the access token
func (lf *LoginFlowImpl) Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	var rep *models.SalesRep

	resp, err := lf.WithLogoutTransaction(ctx, func(ctx context.Context) (*dto.LogoutResponse, error) {
		session, err := lf.sessionRepo.BySessionToken(ctx, sessionToken)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}
		rep = &session.SalesRep

		if err := lf.sessionRepo.ExpireSession(ctx, session.ID); err != nil {
			return nil, err
		}
		_ = lf.tokenService.RevokeToken(sessionToken)

		return &dto.LogoutResponse{LoggedOut: true}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Logout failed: %s", err.Error())
		_ = lf.LogLoginAttempt(ctx, rep, models.AuditActionLogout, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	} else {
		msg := "Sales rep logged out"
		_ = lf.LogLoginAttempt(ctx, rep, models.AuditActionLogout, msg, true, nil, metadata)
	}

	return resp, nil
}

// Private helper methods

func (lf *LoginFlowImpl) CreateSession(ctx context.Context, salesRepID uint, metadata *ClientMetadata) (*models.SalesRepSession, error) {
	// Generate tokens
	accessToken, refreshToken, err := lf.tokenService.GenerateTokens(salesRepID)
	if err != nil {
		return nil, err
	}

	// Calculate expiry time using constant
	expiresAt := utils.UTCNowAdd(utils.SessionTimeout)

	ipAddress, userAgent := clientAddr(metadata)

	// Create session record
	session := &models.SalesRepSession{
		SalesRepID:    salesRepID,
		CorrelationID: uuid.New(),
		SessionToken:  accessToken,
		RefreshToken:  &refreshToken,
		ExpiresAt:     expiresAt,
		IsActive:      utils.ToPtr(true),
		IPAddress:     &ipAddress,
		UserAgent:     &userAgent,
	}

	err = lf.sessionRepo.Save(ctx, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func clientAddr(metadata *ClientMetadata) (ipAddress, userAgent string) {
	ipAddress = "127.0.0.1"
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}
	return ipAddress, userAgent
}

func (lf *LoginFlowImpl) LogLoginAttempt(ctx context.Context, rep *models.SalesRep, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	var salesRepID *uint
	if rep != nil {
		salesRepID = &rep.ID
	}

	ipAddress, userAgent := clientAddr(metadata)

	audit := &models.AuditLog{
		SalesRepID:   salesRepID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return lf.auditRepo.Save(ctx, audit)
}

func (lf *LoginFlowImpl) WithLoginTransaction(ctx context.Context, fn func(context.Context) (*dto.LoginResponse, error)) (*dto.LoginResponse, error) {
	var result *dto.LoginResponse
	var fnErr error

	err := repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (lf *LoginFlowImpl) WithRefreshTransaction(ctx context.Context, fn func(context.Context) (*dto.RefreshTokenResponse, error)) (*dto.RefreshTokenResponse, error) {
	var result *dto.RefreshTokenResponse
	var fnErr error

	err := repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (lf *LoginFlowImpl) WithLogoutTransaction(ctx context.Context, fn func(context.Context) (*dto.LogoutResponse, error)) (*dto.LogoutResponse, error) {
	var result *dto.LogoutResponse
	var fnErr error

	err := repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (lf *LoginFlowImpl) validateLoginRequest(request *dto.LoginRequest) error {
	if strings.TrimSpace(request.Email) == "" {
		return ErrSalesRepNotFound
	}

	if request.Password == "" {
		return ErrIncorrectPassword
	}

	if request.CaptchaID == "" {
		return ErrCaptchaFailed
	}

	return nil
}
