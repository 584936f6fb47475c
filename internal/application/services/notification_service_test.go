package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPushSender struct {
	sent    []entities.PushMessage
	failFor map[string]bool
}

func (s *stubPushSender) Send(_ context.Context, msg entities.PushMessage) (*entities.DeliveryResult, error) {
	s.sent = append(s.sent, msg)
	if s.failFor[msg.Token] {
		return &entities.DeliveryResult{Succeeded: false, Error: "NotRegistered"}, nil
	}
	return &entities.DeliveryResult{Succeeded: true, MessageID: "msg-1"}, nil
}

func (s *stubPushSender) SendBulk(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]entities.DeliveryResult, error) {
	results := make([]entities.DeliveryResult, 0, len(tokens))
	for _, token := range tokens {
		result, _ := s.Send(ctx, entities.PushMessage{Token: token, Title: title, Body: body, Data: data})
		results = append(results, *result)
	}
	return results, nil
}

type stubTokenRepo struct {
	tokens map[string]*entities.DeviceToken
	order  []string
}

func newStubTokenRepo(pairs ...string) *stubTokenRepo {
	repo := &stubTokenRepo{tokens: map[string]*entities.DeviceToken{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		repo.tokens[pairs[i]] = &entities.DeviceToken{UserID: pairs[i], Token: pairs[i+1]}
		repo.order = append(repo.order, pairs[i])
	}
	return repo
}

func (r *stubTokenRepo) Upsert(_ context.Context, token *entities.DeviceToken) error {
	if _, ok := r.tokens[token.UserID]; !ok {
		r.order = append(r.order, token.UserID)
	}
	r.tokens[token.UserID] = token
	return nil
}

func (r *stubTokenRepo) GetByUser(_ context.Context, userID string) (*entities.DeviceToken, error) {
	token, ok := r.tokens[userID]
	if !ok {
		return nil, errors.New("no device token registered for user " + userID)
	}
	return token, nil
}

func (r *stubTokenRepo) ListAll(_ context.Context) ([]*entities.DeviceToken, error) {
	all := make([]*entities.DeviceToken, 0, len(r.order))
	for _, userID := range r.order {
		all = append(all, r.tokens[userID])
	}
	return all, nil
}

func TestRegisterDevice_Validation(t *testing.T) {
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), nil)

	assert.Error(t, service.RegisterDevice(context.Background(), "", "token"))
	assert.Error(t, service.RegisterDevice(context.Background(), "user-1", ""))
	assert.NoError(t, service.RegisterDevice(context.Background(), "user-1", "token"))
}

func TestSend_SenderNotConfigured(t *testing.T) {
	service := NewNotificationService(nil, newStubTokenRepo(), nil)

	_, err := service.Send(context.Background(), entities.PushMessage{Token: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push sender is not configured")
}

func TestSendMedicationReminder_Composition(t *testing.T) {
	sender := &stubPushSender{}
	service := NewNotificationService(sender, newStubTokenRepo("user-1", "tok-1"), nil)

	result, err := service.SendMedicationReminder(context.Background(), MedicationReminder{
		UserID:         "user-1",
		MedicationName: "Metformin",
		Dosage:         "500mg",
		Instructions:   "Take after meals",
		OwnerName:      "Rahim",
		Relationship:   "Father",
	})

	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok-1", sender.sent[0].Token)
	assert.Equal(t, "Time to take Metformin", sender.sent[0].Title)
	assert.Equal(t, "Father (Rahim) - 500mg\nTake after meals", sender.sent[0].Body)
	assert.Equal(t, "medication", sender.sent[0].Data["type"])
}

func TestSendMedicationReminder_NoToken(t *testing.T) {
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), nil)

	_, err := service.SendMedicationReminder(context.Background(), MedicationReminder{UserID: "ghost"})
	assert.Error(t, err)
}

func TestSendVaccineReminder_DuePhrasing(t *testing.T) {
	sender := &stubPushSender{}
	service := NewNotificationService(sender, newStubTokenRepo("user-1", "tok-1"), nil)

	cases := []struct {
		days  int
		title string
	}{
		{-3, "BCG vaccine overdue by 3 days"},
		{0, "BCG vaccine due today"},
		{1, "BCG vaccine due tomorrow"},
		{5, "BCG vaccine due in 5 days"},
	}

	for _, tc := range cases {
		_, err := service.SendVaccineReminder(context.Background(), VaccineReminder{
			UserID:       "user-1",
			VaccineName:  "BCG",
			DoseNumber:   1,
			TotalDoses:   2,
			DaysUntilDue: tc.days,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.title, sender.sent[len(sender.sent)-1].Title)
	}

	assert.Equal(t, "You - Dose 1/2", sender.sent[0].Body)
}

func TestSendDailySummary_NothingToReport(t *testing.T) {
	sender := &stubPushSender{}
	service := NewNotificationService(sender, newStubTokenRepo("user-1", "tok-1"), nil)

	result, err := service.SendDailySummary(context.Background(), "user-1", nil)

	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, sender.sent)
}

func TestSendDailySummary_Composition(t *testing.T) {
	sender := &stubPushSender{}
	service := NewNotificationService(sender, newStubTokenRepo("user-1", "tok-1"), nil)

	reminders := []ReminderLine{
		{Kind: entities.ReminderMedication, Owner: "Rahim", Name: "Metformin", Dosage: "500mg", Time: "8:00 AM"},
		{Kind: entities.ReminderVaccine, Owner: "Ayesha", Name: "MMR", Dosage: "Dose 2"},
	}

	result, err := service.SendDailySummary(context.Background(), "user-1", reminders)

	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "2 family members need attention today", sender.sent[0].Title)
	assert.Equal(t, "• Rahim - Metformin 500mg at 8:00 AM\n• Ayesha - MMR vaccine Dose 2", sender.sent[0].Body)
	assert.Equal(t, "2", sender.sent[0].Data["reminder_count"])
}

func TestSendDailySummary_SingleOwnerAndOverflow(t *testing.T) {
	sender := &stubPushSender{}
	service := NewNotificationService(sender, newStubTokenRepo("user-1", "tok-1"), nil)

	var reminders []ReminderLine
	for i := 0; i < 7; i++ {
		reminders = append(reminders, ReminderLine{
			Kind: entities.ReminderMedication, Owner: "Rahim", Name: "Med", Dosage: "5ml", Time: "9:00 AM",
		})
	}

	_, err := service.SendDailySummary(context.Background(), "user-1", reminders)
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, "1 family member needs attention today", msg.Title)
	assert.Contains(t, msg.Body, "+ 2 more reminders...")
}

func TestBroadcastDailySummaries(t *testing.T) {
	sender := &stubPushSender{failFor: map[string]bool{"tok-2": true}}
	repo := newStubTokenRepo("user-1", "tok-1", "user-2", "tok-2", "user-3", "tok-3")
	service := NewNotificationService(sender, repo, nil)

	remindersFor := func(_ context.Context, userID string) []ReminderLine {
		if userID == "user-3" {
			return nil
		}
		return []ReminderLine{{Kind: entities.ReminderMedication, Owner: "You", Name: "Med", Dosage: "1 tab", Time: "8:00 AM"}}
	}

	sent, failed := service.BroadcastDailySummaries(context.Background(), remindersFor)

	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	// user-3 had nothing to report and was neither sent nor failed.
	assert.Len(t, sender.sent, 2)
}

func TestOwnerDisplay(t *testing.T) {
	assert.Equal(t, "You", ownerDisplay("", ""))
	assert.Equal(t, "Rahim", ownerDisplay("Rahim", ""))
	assert.Equal(t, "Father (Rahim)", ownerDisplay("Rahim", "Father"))
}

type stubReminderRepo struct {
	reminders []*entities.ReminderSchedule
	listErr   error
}

func (r *stubReminderRepo) Create(_ context.Context, reminder *entities.ReminderSchedule) error {
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *stubReminderRepo) ListActiveByUser(_ context.Context, userID string) ([]*entities.ReminderSchedule, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var matched []*entities.ReminderSchedule
	for _, reminder := range r.reminders {
		if reminder.UserID == userID && reminder.Active {
			matched = append(matched, reminder)
		}
	}
	return matched, nil
}

func (r *stubReminderRepo) Deactivate(_ context.Context, id string) error {
	for _, reminder := range r.reminders {
		if reminder.ID == id {
			reminder.Active = false
			return nil
		}
	}
	return errors.New("no reminder found with id " + id)
}

func TestCreateReminder(t *testing.T) {
	repo := &stubReminderRepo{}
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), repo)

	err := service.CreateReminder(context.Background(), &entities.ReminderSchedule{
		UserID:    "user-1",
		OwnerName: "Rahim",
		Name:      "Metformin",
		Dosage:    "500mg",
		TimeOfDay: "8:00 AM",
	})

	require.NoError(t, err)
	require.Len(t, repo.reminders, 1)
	// Kind defaults to medication when unset.
	assert.Equal(t, entities.ReminderMedication, repo.reminders[0].Kind)
}

func TestCreateReminder_Validation(t *testing.T) {
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), &stubReminderRepo{})

	assert.Error(t, service.CreateReminder(context.Background(), &entities.ReminderSchedule{Name: "Metformin"}))
	assert.Error(t, service.CreateReminder(context.Background(), &entities.ReminderSchedule{UserID: "user-1"}))
}

func TestCreateReminder_StorageNotConfigured(t *testing.T) {
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), nil)

	err := service.CreateReminder(context.Background(), &entities.ReminderSchedule{UserID: "user-1", Name: "Metformin"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reminder storage is not configured")
}

func TestRemindersDue(t *testing.T) {
	repo := &stubReminderRepo{reminders: []*entities.ReminderSchedule{
		{ID: "r-1", UserID: "user-1", Kind: entities.ReminderMedication, OwnerName: "Rahim", Name: "Metformin", Dosage: "500mg", TimeOfDay: "8:00 AM", Active: true},
		{ID: "r-2", UserID: "user-1", Kind: entities.ReminderVaccine, OwnerName: "Ayesha", Name: "MMR", Dosage: "Dose 2", Active: true},
		{ID: "r-3", UserID: "user-2", Kind: entities.ReminderMedication, OwnerName: "You", Name: "Napa", Dosage: "500mg", Active: true},
	}}
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), repo)

	lines := service.RemindersDue(context.Background(), "user-1")

	require.Len(t, lines, 2)
	assert.Equal(t, ReminderLine{Kind: entities.ReminderMedication, Owner: "Rahim", Name: "Metformin", Dosage: "500mg", Time: "8:00 AM"}, lines[0])
	assert.Equal(t, "MMR", lines[1].Name)
}

func TestRemindersDue_ListFailure(t *testing.T) {
	repo := &stubReminderRepo{listErr: errors.New("connection refused")}
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), repo)

	assert.Empty(t, service.RemindersDue(context.Background(), "user-1"))
}

func TestDeactivateReminder(t *testing.T) {
	repo := &stubReminderRepo{reminders: []*entities.ReminderSchedule{
		{ID: "r-1", UserID: "user-1", Name: "Metformin", Active: true},
	}}
	service := NewNotificationService(&stubPushSender{}, newStubTokenRepo(), repo)

	require.NoError(t, service.DeactivateReminder(context.Background(), "r-1"))
	assert.Empty(t, service.RemindersDue(context.Background(), "user-1"))

	assert.Error(t, service.DeactivateReminder(context.Background(), ""))
}
