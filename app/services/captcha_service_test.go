package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRotateChallenge(t *testing.T) {
	svc, err := NewCaptchaServiceRotate(2*time.Minute, 10, 220)
	require.NoError(t, err)

	challenge, err := svc.GenerateRotate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, challenge)

	assert.NotEmpty(t, challenge.ID)
	assert.NotEmpty(t, challenge.MasterImageBase64)
	assert.NotEmpty(t, challenge.ThumbImageBase64)

	second, err := svc.GenerateRotate(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, challenge.ID, second.ID)
}

func TestVerifyRotateUnknownChallenge(t *testing.T) {
	svc, err := NewCaptchaServiceRotate(2*time.Minute, 10, 220)
	require.NoError(t, err)

	assert.False(t, svc.VerifyRotate(context.Background(), "no-such-challenge", 90))
}

func TestVerifyRotateConsumesChallenge(t *testing.T) {
	// Zero padding and an out-of-range angle guarantee a failed verification
	svc, err := NewCaptchaServiceRotate(2*time.Minute, 0, 220)
	require.NoError(t, err)

	challenge, err := svc.GenerateRotate(context.Background())
	require.NoError(t, err)

	assert.False(t, svc.VerifyRotate(context.Background(), challenge.ID, -720))
	// The attempt consumed the challenge regardless of outcome
	assert.False(t, svc.VerifyRotate(context.Background(), challenge.ID, -720))
}

func TestVerifyRotateExpiredChallenge(t *testing.T) {
	svc, err := NewCaptchaServiceRotate(time.Millisecond, 10, 220)
	require.NoError(t, err)

	challenge, err := svc.GenerateRotate(context.Background())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	assert.False(t, svc.VerifyRotate(context.Background(), challenge.ID, 90))
}
