package services

import (
	"context"
	"time"

	"github.com/mysahara/health-assistant/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

// SchedulerService runs the daily summary broadcast at a configured local
// time. It replaces an external cron trigger with an in-process timer.
type SchedulerService struct {
	cfg           config.SchedulerConfig
	notifications *NotificationService
	remindersFor  func(ctx context.Context, userID string) []ReminderLine
	stop          chan struct{}
}

// NewSchedulerService creates a new scheduler. remindersFor resolves the
// day's reminder lines per user at send time.
func NewSchedulerService(cfg config.SchedulerConfig, notifications *NotificationService, remindersFor func(ctx context.Context, userID string) []ReminderLine) *SchedulerService {
	return &SchedulerService{
		cfg:           cfg,
		notifications: notifications,
		remindersFor:  remindersFor,
		stop:          make(chan struct{}),
	}
}

// Start launches the daily job loop in a goroutine. No-op when disabled.
func (s *SchedulerService) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Info().Msg("scheduler disabled")
		return
	}

	go s.run(ctx)
	log.Info().
		Int("hour", s.cfg.SummaryHour).
		Int("minute", s.cfg.SummaryMinute).
		Msg("daily summary job scheduled")
}

// Stop terminates the job loop.
func (s *SchedulerService) Stop() {
	close(s.stop)
}

func (s *SchedulerService) run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			sent, failed := s.notifications.BroadcastDailySummaries(ctx, s.remindersFor)
			log.Info().Int("sent", sent).Int("failed", failed).Msg("daily summary run finished")
		}
	}
}

// nextRun returns the next occurrence of the configured send time strictly
// after now.
func (s *SchedulerService) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.SummaryHour, s.cfg.SummaryMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
