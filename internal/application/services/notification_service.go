package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// MedicationReminder carries the fields rendered into a medication push.
type MedicationReminder struct {
	UserID         string `json:"user_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Instructions   string `json:"instructions,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	Relationship   string `json:"relationship,omitempty"`
}

// VaccineReminder carries the fields rendered into a vaccine push.
type VaccineReminder struct {
	UserID       string `json:"user_id"`
	VaccineName  string `json:"vaccine_name"`
	DoseNumber   int    `json:"dose_number"`
	TotalDoses   int    `json:"total_doses,omitempty"`
	Location     string `json:"location,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	DaysUntilDue int    `json:"days_until_due"`
}

// ReminderLine is one entry in a daily summary notification.
type ReminderLine struct {
	Kind   entities.ReminderKind `json:"type"`
	Owner  string                `json:"owner"`
	Name   string                `json:"name"`
	Dosage string                `json:"dosage"`
	Time   string                `json:"time,omitempty"`
}

// NotificationService composes and delivers push notifications through the
// registered device tokens.
type NotificationService struct {
	sender    providers.PushSender
	tokens    repositories.DeviceTokenRepository
	reminders repositories.ReminderRepository
}

// NewNotificationService creates a new notification service. reminders may
// be nil when reminder storage is not configured.
func NewNotificationService(sender providers.PushSender, tokens repositories.DeviceTokenRepository, reminders repositories.ReminderRepository) *NotificationService {
	return &NotificationService{sender: sender, tokens: tokens, reminders: reminders}
}

// RegisterDevice stores or replaces the push token for a user.
func (s *NotificationService) RegisterDevice(ctx context.Context, userID, token string) error {
	if userID == "" || token == "" {
		return apperrors.NewValidationError("user_id and token are required")
	}
	return s.tokens.Upsert(ctx, &entities.DeviceToken{UserID: userID, Token: token})
}

// Send delivers an arbitrary push message to one token.
func (s *NotificationService) Send(ctx context.Context, msg entities.PushMessage) (*entities.DeliveryResult, error) {
	if s.sender == nil {
		return nil, apperrors.NewUnavailableError("push sender is not configured")
	}
	return s.sender.Send(ctx, msg)
}

// SendBulk delivers the same notification to many tokens.
func (s *NotificationService) SendBulk(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]entities.DeliveryResult, error) {
	if s.sender == nil {
		return nil, apperrors.NewUnavailableError("push sender is not configured")
	}
	return s.sender.SendBulk(ctx, tokens, title, body, data)
}

// SendMedicationReminder composes and delivers a medication reminder to the
// user's registered device.
func (s *NotificationService) SendMedicationReminder(ctx context.Context, reminder MedicationReminder) (*entities.DeliveryResult, error) {
	token, err := s.userToken(ctx, reminder.UserID)
	if err != nil {
		return nil, err
	}

	body := ownerDisplay(reminder.OwnerName, reminder.Relationship) + " - " + reminder.Dosage
	if reminder.Instructions != "" {
		body += "\n" + reminder.Instructions
	}

	return s.Send(ctx, entities.PushMessage{
		Token: token,
		Title: "Time to take " + reminder.MedicationName,
		Body:  body,
		Data: map[string]string{
			"type":       string(entities.ReminderMedication),
			"owner_name": reminder.OwnerName,
		},
	})
}

// SendVaccineReminder composes and delivers a vaccine reminder with a
// contextual due-date phrase.
func (s *NotificationService) SendVaccineReminder(ctx context.Context, reminder VaccineReminder) (*entities.DeliveryResult, error) {
	token, err := s.userToken(ctx, reminder.UserID)
	if err != nil {
		return nil, err
	}

	var timeText string
	switch {
	case reminder.DaysUntilDue < 0:
		timeText = fmt.Sprintf("overdue by %d days", -reminder.DaysUntilDue)
	case reminder.DaysUntilDue == 0:
		timeText = "due today"
	case reminder.DaysUntilDue == 1:
		timeText = "due tomorrow"
	default:
		timeText = fmt.Sprintf("due in %d days", reminder.DaysUntilDue)
	}

	body := fmt.Sprintf("%s - Dose %d", ownerDisplay(reminder.OwnerName, reminder.Relationship), reminder.DoseNumber)
	if reminder.TotalDoses > 0 {
		body += fmt.Sprintf("/%d", reminder.TotalDoses)
	}
	if reminder.Location != "" {
		body += "\nLocation: " + reminder.Location
	}

	return s.Send(ctx, entities.PushMessage{
		Token: token,
		Title: fmt.Sprintf("%s vaccine %s", reminder.VaccineName, timeText),
		Body:  body,
		Data: map[string]string{
			"type":       string(entities.ReminderVaccine),
			"owner_name": reminder.OwnerName,
		},
	})
}

// SendDailySummary aggregates the day's reminders into one notification for
// the user. Returns nil without sending when there is nothing to report.
func (s *NotificationService) SendDailySummary(ctx context.Context, userID string, reminders []ReminderLine) (*entities.DeliveryResult, error) {
	if len(reminders) == 0 {
		return nil, nil
	}

	token, err := s.userToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	owners := make(map[string]struct{})
	lines := make([]string, 0, len(reminders))
	for _, r := range reminders {
		owners[r.Owner] = struct{}{}
		if r.Kind == entities.ReminderMedication {
			lines = append(lines, fmt.Sprintf("• %s - %s %s at %s", r.Owner, r.Name, r.Dosage, r.Time))
		} else {
			lines = append(lines, fmt.Sprintf("• %s - %s vaccine %s", r.Owner, r.Name, r.Dosage))
		}
	}

	plural := "s need"
	if len(owners) == 1 {
		plural = " needs"
	}
	title := fmt.Sprintf("%d family member%s attention today", len(owners), plural)

	body := strings.Join(lines[:min(len(lines), 5)], "\n")
	if len(lines) > 5 {
		body += fmt.Sprintf("\n+ %d more reminders...", len(lines)-5)
	}

	return s.Send(ctx, entities.PushMessage{
		Token: token,
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":           string(entities.ReminderDailySummary),
			"reminder_count": fmt.Sprintf("%d", len(reminders)),
		},
	})
}

// BroadcastDailySummaries sends the daily summary to every registered
// device. Per-user failures are logged and skipped.
func (s *NotificationService) BroadcastDailySummaries(ctx context.Context, remindersFor func(ctx context.Context, userID string) []ReminderLine) (sent, failed int) {
	tokens, err := s.tokens.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list device tokens for daily summary")
		return 0, 0
	}

	for _, token := range tokens {
		reminders := remindersFor(ctx, token.UserID)
		result, err := s.SendDailySummary(ctx, token.UserID, reminders)
		if err != nil || (result != nil && !result.Succeeded) {
			failed++
			log.Warn().Err(err).Str("user_id", token.UserID).Msg("daily summary delivery failed")
			continue
		}
		if result != nil {
			sent++
		}
	}

	log.Info().Int("sent", sent).Int("failed", failed).Msg("daily summary batch complete")
	return sent, failed
}

// CreateReminder stores a recurring reminder schedule for the daily summary.
func (s *NotificationService) CreateReminder(ctx context.Context, reminder *entities.ReminderSchedule) error {
	if s.reminders == nil {
		return apperrors.NewUnavailableError("reminder storage is not configured")
	}
	if reminder == nil || reminder.UserID == "" || reminder.Name == "" {
		return apperrors.NewValidationError("user_id and name are required")
	}
	if reminder.Kind == "" {
		reminder.Kind = entities.ReminderMedication
	}
	return s.reminders.Create(ctx, reminder)
}

// ListReminders returns the active reminder schedules for a user.
func (s *NotificationService) ListReminders(ctx context.Context, userID string) ([]*entities.ReminderSchedule, error) {
	if s.reminders == nil {
		return nil, apperrors.NewUnavailableError("reminder storage is not configured")
	}
	if userID == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	return s.reminders.ListActiveByUser(ctx, userID)
}

// DeactivateReminder stops a schedule from appearing in future summaries.
func (s *NotificationService) DeactivateReminder(ctx context.Context, id string) error {
	if s.reminders == nil {
		return apperrors.NewUnavailableError("reminder storage is not configured")
	}
	if id == "" {
		return apperrors.NewValidationError("reminder id is required")
	}
	return s.reminders.Deactivate(ctx, id)
}

// RemindersDue resolves a user's active schedules into daily summary lines.
// Errors are logged and yield an empty day so one bad row cannot stall the
// whole broadcast.
func (s *NotificationService) RemindersDue(ctx context.Context, userID string) []ReminderLine {
	if s.reminders == nil {
		return nil
	}

	schedules, err := s.reminders.ListActiveByUser(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to load reminder schedules")
		return nil
	}

	lines := make([]ReminderLine, 0, len(schedules))
	for _, schedule := range schedules {
		lines = append(lines, ReminderLine{
			Kind:   schedule.Kind,
			Owner:  schedule.OwnerName,
			Name:   schedule.Name,
			Dosage: schedule.Dosage,
			Time:   schedule.TimeOfDay,
		})
	}
	return lines
}

// SendTest delivers a fixed test notification to verify the setup.
func (s *NotificationService) SendTest(ctx context.Context, token string) (*entities.DeliveryResult, error) {
	return s.Send(ctx, entities.PushMessage{
		Token: token,
		Title: "mySahara Test Notification",
		Body:  "Your notification system is working correctly!",
		Data:  map[string]string{"type": "test"},
	})
}

func (s *NotificationService) userToken(ctx context.Context, userID string) (string, error) {
	token, err := s.tokens.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return token.Token, nil
}

func ownerDisplay(owner, relationship string) string {
	if owner == "" {
		owner = "You"
	}
	if relationship != "" {
		return fmt.Sprintf("%s (%s)", relationship, owner)
	}
	return owner
}
