package businessflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorError(t *testing.T) {
	plain := NewBusinessError("LEAD_NOT_FOUND", "Lead not found", nil)
	assert.Equal(t, "Lead not found", plain.Error())

	wrapped := NewBusinessError("LEAD_NOT_FOUND", "Lead not found", ErrLeadNotFound)
	assert.Equal(t, "Lead not found: lead not found", wrapped.Error())
}

func TestBusinessErrorUnwrap(t *testing.T) {
	wrapped := NewBusinessError("STEP_TERMINAL", "Step already handled", ErrStepAlreadyTerminal)

	require.ErrorIs(t, wrapped, ErrStepAlreadyTerminal)
	assert.True(t, IsStepAlreadyTerminal(wrapped))

	var be *BusinessError
	require.ErrorAs(t, fmt.Errorf("handler: %w", wrapped), &be)
	assert.Equal(t, "STEP_TERMINAL", be.Code)
}

func TestNewBusinessErrorf(t *testing.T) {
	err := NewBusinessErrorf("INVALID_STAGE_TRANSITION", "cannot move lead from %s to %s", ErrInvalidStageTransition, "warm", "cold")
	assert.Equal(t, "cannot move lead from warm to cold: invalid pipeline stage transition", err.Error())
	assert.True(t, IsInvalidStageTransition(err))
}

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name     string
		helper   func(error) bool
		sentinel error
	}{
		{"sales rep not found", IsSalesRepNotFound, ErrSalesRepNotFound},
		{"account inactive", IsAccountInactive, ErrAccountInactive},
		{"incorrect password", IsIncorrectPassword, ErrIncorrectPassword},
		{"captcha failed", IsCaptchaFailed, ErrCaptchaFailed},
		{"session not found", IsSessionNotFound, ErrSessionNotFound},
		{"session expired", IsSessionExpired, ErrSessionExpired},
		{"lead not found", IsLeadNotFound, ErrLeadNotFound},
		{"lead access denied", IsLeadAccessDenied, ErrLeadAccessDenied},
		{"lead name required", IsLeadNameRequired, ErrLeadNameRequired},
		{"lead update required", IsLeadUpdateRequired, ErrLeadUpdateRequired},
		{"invalid stage transition", IsInvalidStageTransition, ErrInvalidStageTransition},
		{"step not found", IsStepNotFound, ErrStepNotFound},
		{"step access denied", IsStepAccessDenied, ErrStepAccessDenied},
		{"step already terminal", IsStepAlreadyTerminal, ErrStepAlreadyTerminal},
		{"no available channels", IsNoAvailableChannels, ErrNoAvailableChannels},
		{"invalid session type", IsInvalidSessionType, ErrInvalidSessionType},
		{"invalid page", IsInvalidPage, ErrInvalidPage},
		{"invalid page size", IsInvalidPageSize, ErrInvalidPageSize},
		{"start date after end date", IsStartDateAfterEndDate, ErrStartDateAfterEndDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.helper(tt.sentinel))
			assert.True(t, tt.helper(fmt.Errorf("wrapped: %w", tt.sentinel)))
			assert.True(t, tt.helper(NewBusinessError("X", "wrapped in business error", tt.sentinel)))
			assert.False(t, tt.helper(errors.New("some other error")))
			assert.False(t, tt.helper(nil))
		})
	}
}
