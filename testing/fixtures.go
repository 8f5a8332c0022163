// Package testing provides test utilities and database setup for testing the outreach CRM
package testing

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestSalesRep creates an active sales rep with a bcrypt-hashed password of "TestPass123!"
func (tf *TestFixtures) CreateTestSalesRep() (*models.SalesRep, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	mobile := fmt.Sprintf("+1555%s", randomDigits[:7])

	rep := &models.SalesRep{
		FirstName:    "Jordan",
		LastName:     "Reyes",
		Email:        fmt.Sprintf("jordan.reyes.%s@example.com", randomDigits),
		Mobile:       &mobile,
		PasswordHash: string(hashedPassword),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(rep).Error; err != nil {
		return nil, fmt.Errorf("failed to create test sales rep: %w", err)
	}

	return rep, nil
}

// CreateTestLead creates a lead assigned to the given rep with phone and email channels
func (tf *TestFixtures) CreateTestLead(repID uint) (*models.Lead, error) {
	phone := "+15551230001"
	email := fmt.Sprintf("owner.%d@example.com", rand.Intn(1000000))
	category := "Restaurant"

	lead := &models.Lead{
		AssignedTo:     &repID,
		Name:           fmt.Sprintf("Test Lead %d", rand.Intn(1000000)),
		Category:       &category,
		Phone:          &phone,
		Email:          &email,
		CompositeScore: 50,
		PipelineStage:  models.StageCold,
		Tags:           []string{"test"},
	}

	if err := tf.DB.DB.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create test lead: %w", err)
	}

	return lead, nil
}

// CreateTestCadenceStep creates a pending cadence step for the lead and rep
func (tf *TestFixtures) CreateTestCadenceStep(leadID, repID uint, stepNumber int, scheduledAt time.Time) (*models.CadenceStep, error) {
	step := &models.CadenceStep{
		LeadID:      leadID,
		SalesRepID:  repID,
		StepNumber:  stepNumber,
		Channel:     models.ChannelPhone,
		ScheduledAt: scheduledAt,
	}

	if err := tf.DB.DB.Create(step).Error; err != nil {
		return nil, fmt.Errorf("failed to create test cadence step: %w", err)
	}

	return step, nil
}

// CreateTestActivity creates a call activity with the given outcome
func (tf *TestFixtures) CreateTestActivity(leadID, repID uint, outcome models.ActivityOutcome, occurredAt time.Time) (*models.Activity, error) {
	channel := models.ChannelPhone

	activity := &models.Activity{
		LeadID:       leadID,
		SalesRepID:   &repID,
		ActivityType: models.ActivityTypeCall,
		Channel:      &channel,
		Outcome:      &outcome,
		OccurredAt:   occurredAt,
	}

	if err := tf.DB.DB.Create(activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create test activity: %w", err)
	}

	return activity, nil
}

func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateTestSession creates an active session for the rep
func (tf *TestFixtures) CreateTestSession(repID uint) (*models.SalesRepSession, error) {
	sessionToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure session token: %w", err)
	}

	refreshToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure refresh token: %w", err)
	}

	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	session := &models.SalesRepSession{
		CorrelationID: uuid.New(),
		SalesRepID:    repID,
		SessionToken:  sessionToken,
		RefreshToken:  &refreshToken,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      utils.ToPtr(true),
		IPAddress:     &ipAddress,
		UserAgent:     &userAgent,
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}

	return session, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(repID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		SalesRepID:  repID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
