// Package scheduler runs background workers for the outreach CRM
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/amirphl/Yatagarasu/app/services"
	"github.com/amirphl/Yatagarasu/config"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/repository"
	"github.com/amirphl/Yatagarasu/utils"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ReminderScheduler periodically scans for cadence steps that have gone
// overdue and notifies the owning rep. A step is considered overdue once it
// is still pending past its scheduled time by more than the configured
// threshold.
type ReminderScheduler struct {
	repRepo  repository.SalesRepRepository
	stepRepo repository.CadenceStepRepository
	leadRepo repository.LeadRepository
	notifier services.NotificationService
	logger   *log.Logger
	interval time.Duration

	// Steps already reminded this process lifetime, keyed by step ID.
	// Restarting the process re-sends at most one reminder per step.
	reminded map[uint]struct{}
}

func NewReminderScheduler(
	repRepo repository.SalesRepRepository,
	stepRepo repository.CadenceStepRepository,
	leadRepo repository.LeadRepository,
	notifier services.NotificationService,
	interval time.Duration,
	logCfg config.LoggingConfig,
) *ReminderScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	s := &ReminderScheduler{
		repRepo:  repRepo,
		stepRepo: stepRepo,
		leadRepo: leadRepo,
		notifier: notifier,
		interval: interval,
		reminded: make(map[uint]struct{}),
	}
	s.initSchedulerLogger(logCfg)

	return s
}

// initSchedulerLogger configures a logger that writes to stdout and a rotated file
func (s *ReminderScheduler) initSchedulerLogger(cfg config.LoggingConfig) {
	path := cfg.FilePath
	if path == "" {
		path = "data/scheduler.log"
	} else {
		path = strings.TrimSuffix(path, ".log") + "_scheduler.log"
	}

	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	mw := io.MultiWriter(os.Stdout, rotated)
	// log.Logger is goroutine-safe; include timestamps with microseconds and UTC
	s.logger = log.New(mw, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *ReminderScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *ReminderScheduler) runOnce(ctx context.Context) {
	reps, err := s.repRepo.ByFilter(ctx, models.SalesRepFilter{IsActive: utils.ToPtr(true)}, "id ASC", 0, 0)
	if err != nil {
		s.logger.Printf("scheduler: list active reps failed: %v", err)
		return
	}

	cutoff := utils.UTCNow().Add(-utils.ReminderOverdueThreshold)

	for _, rep := range reps {
		overdue, err := s.overdueSteps(ctx, rep.ID, cutoff)
		if err != nil {
			s.logger.Printf("scheduler: list overdue steps failed for rep id=%d: %v", rep.ID, err)
			continue
		}
		if len(overdue) == 0 {
			continue
		}

		if err := s.notifyRep(ctx, rep, overdue); err != nil {
			s.logger.Printf("scheduler: notify rep id=%d failed: %v", rep.ID, err)
			continue
		}

		for _, step := range overdue {
			s.reminded[step.ID] = struct{}{}
		}
		s.logger.Printf("scheduler: reminded rep id=%d about %d overdue steps", rep.ID, len(overdue))
	}
}

// overdueSteps returns the rep's pending steps scheduled before the cutoff
// that have not been reminded yet this process lifetime
func (s *ReminderScheduler) overdueSteps(ctx context.Context, repID uint, cutoff time.Time) ([]*models.CadenceStep, error) {
	steps, err := s.stepRepo.ListPendingByRep(ctx, repID, cutoff)
	if err != nil {
		return nil, err
	}

	fresh := make([]*models.CadenceStep, 0, len(steps))
	for _, step := range steps {
		if _, seen := s.reminded[step.ID]; seen {
			continue
		}
		fresh = append(fresh, step)
	}
	return fresh, nil
}

func (s *ReminderScheduler) notifyRep(ctx context.Context, rep *models.SalesRep, overdue []*models.CadenceStep) error {
	digest, err := s.buildDigest(ctx, overdue)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%d overdue cadence steps", len(overdue))
	if err := s.notifier.SendEmail(rep.Email, subject, digest); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	// SMS is best effort; a rep without a mobile number still gets the email
	if rep.Mobile != nil && *rep.Mobile != "" {
		sms := fmt.Sprintf("Yatagarasu: you have %d overdue outreach steps waiting.", len(overdue))
		if err := s.notifier.SendSMS(*rep.Mobile, sms); err != nil {
			s.logger.Printf("scheduler: send sms to rep id=%d failed: %v", rep.ID, err)
		}
	}

	return nil
}

// buildDigest renders a plain-text summary of overdue steps with lead names
func (s *ReminderScheduler) buildDigest(ctx context.Context, overdue []*models.CadenceStep) (string, error) {
	var b strings.Builder
	b.WriteString("The following outreach steps are overdue:\n\n")

	for _, step := range overdue {
		leadName := fmt.Sprintf("lead #%d", step.LeadID)
		lead, err := s.leadRepo.ByID(ctx, step.LeadID)
		if err != nil {
			return "", err
		}
		if lead != nil {
			leadName = lead.Name
		}

		fmt.Fprintf(&b, "- %s via %s, scheduled %s\n",
			leadName,
			step.Channel,
			step.ScheduledAt.Format("Mon Jan 2 15:04 MST"),
		)
	}

	b.WriteString("\nOpen your session queue to work through them.\n")
	return b.String(), nil
}
