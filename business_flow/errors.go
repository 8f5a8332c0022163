// Package businessflow contains the core business logic and use cases for outreach workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Sales rep / auth errors
	ErrSalesRepNotFound  = errors.New("sales rep not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrCaptchaFailed     = errors.New("captcha verification failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session has expired")

	// Lead errors
	ErrLeadNotFound           = errors.New("lead not found")
	ErrLeadAccessDenied       = errors.New("lead access denied")
	ErrLeadNameRequired       = errors.New("lead name is required")
	ErrLeadUpdateRequired     = errors.New("at least one field must be provided for update")
	ErrInvalidStageTransition = errors.New("invalid pipeline stage transition")

	// Cadence errors
	ErrStepNotFound        = errors.New("cadence step not found")
	ErrStepAccessDenied    = errors.New("cadence step access denied")
	ErrStepAlreadyTerminal = errors.New("cadence step is already completed or skipped")
	ErrNoAvailableChannels = errors.New("lead has no reachable channels")

	// Session queue errors
	ErrInvalidSessionType = errors.New("invalid session type")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsSalesRepNotFound(err error) bool {
	return errors.Is(err, ErrSalesRepNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

func IsLeadNotFound(err error) bool {
	return errors.Is(err, ErrLeadNotFound)
}

func IsLeadAccessDenied(err error) bool {
	return errors.Is(err, ErrLeadAccessDenied)
}

func IsLeadNameRequired(err error) bool {
	return errors.Is(err, ErrLeadNameRequired)
}

func IsLeadUpdateRequired(err error) bool {
	return errors.Is(err, ErrLeadUpdateRequired)
}

func IsInvalidStageTransition(err error) bool {
	return errors.Is(err, ErrInvalidStageTransition)
}

func IsStepNotFound(err error) bool {
	return errors.Is(err, ErrStepNotFound)
}

func IsStepAccessDenied(err error) bool {
	return errors.Is(err, ErrStepAccessDenied)
}

func IsStepAlreadyTerminal(err error) bool {
	return errors.Is(err, ErrStepAlreadyTerminal)
}

func IsNoAvailableChannels(err error) bool {
	return errors.Is(err, ErrNoAvailableChannels)
}

func IsInvalidSessionType(err error) bool {
	return errors.Is(err, ErrInvalidSessionType)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
