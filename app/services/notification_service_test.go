package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSMSProvider struct {
	mobile  string
	message string
	err     error
}

func (p *recordingSMSProvider) SendSMS(mobile, message string) error {
	p.mobile = mobile
	p.message = message
	return p.err
}

type recordingEmailProvider struct {
	email   string
	subject string
	message string
	err     error
}

func (p *recordingEmailProvider) SendEmail(email, subject, message string) error {
	p.email = email
	p.subject = subject
	p.message = message
	return p.err
}

func TestSendSMS(t *testing.T) {
	sms := &recordingSMSProvider{}
	svc := NewNotificationService(sms, NewMockEmailProvider())

	require.NoError(t, svc.SendSMS("+15551234567", "3 overdue steps"))
	assert.Equal(t, "+15551234567", sms.mobile)
	assert.Equal(t, "3 overdue steps", sms.message)
}

func TestSendSMSRejectsBadNumbers(t *testing.T) {
	sms := &recordingSMSProvider{}
	svc := NewNotificationService(sms, NewMockEmailProvider())

	require.Error(t, svc.SendSMS("5551234567", "missing plus prefix"))
	require.Error(t, svc.SendSMS("+1", "too short"))
	assert.Empty(t, sms.mobile, "provider must not be called on invalid input")
}

func TestSendSMSWithoutProvider(t *testing.T) {
	svc := NewNotificationService(nil, NewMockEmailProvider())
	require.Error(t, svc.SendSMS("+15551234567", "message"))
}

func TestSendEmail(t *testing.T) {
	email := &recordingEmailProvider{}
	svc := NewNotificationService(NewMockSMSProvider(), email)

	require.NoError(t, svc.SendEmail("rep@example.com", "Overdue steps", "digest body"))
	assert.Equal(t, "rep@example.com", email.email)
	assert.Equal(t, "Overdue steps", email.subject)
	assert.Equal(t, "digest body", email.message)
}

func TestSendEmailRejectsBadAddresses(t *testing.T) {
	email := &recordingEmailProvider{}
	svc := NewNotificationService(NewMockSMSProvider(), email)

	require.Error(t, svc.SendEmail("", "subject", "body"))
	require.Error(t, svc.SendEmail("not-an-address", "subject", "body"))
	assert.Empty(t, email.email)
}

func TestSendEmailPropagatesProviderError(t *testing.T) {
	providerErr := errors.New("relay refused connection")
	email := &recordingEmailProvider{err: providerErr}
	svc := NewNotificationService(NewMockSMSProvider(), email)

	err := svc.SendEmail("rep@example.com", "subject", "body")
	assert.ErrorIs(t, err, providerErr)
}
