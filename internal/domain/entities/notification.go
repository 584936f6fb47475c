package entities

import "time"

// DeviceToken maps a user to their push notification token.
type DeviceToken struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"fcm_token"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PushMessage is a single push notification payload.
type PushMessage struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// ReminderKind distinguishes the reminder templates.
type ReminderKind string

const (
	ReminderMedication   ReminderKind = "medication"
	ReminderVaccine      ReminderKind = "vaccine"
	ReminderDailySummary ReminderKind = "daily_summary"
)

// ReminderSchedule is a stored recurring reminder. The daily summary job
// collects the active schedules for each user into one notification.
type ReminderSchedule struct {
	ID        string       `json:"id" db:"id"`
	UserID    string       `json:"user_id" db:"user_id"`
	Kind      ReminderKind `json:"type" db:"kind"`
	OwnerName string       `json:"owner_name" db:"owner_name"`
	Name      string       `json:"name" db:"name"`
	Dosage    string       `json:"dosage" db:"dosage"`
	TimeOfDay string       `json:"time_of_day,omitempty" db:"time_of_day"`
	Active    bool         `json:"active" db:"active"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// DeliveryResult reports the outcome of a push send.
type DeliveryResult struct {
	Succeeded bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
