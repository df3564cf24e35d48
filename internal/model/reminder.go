package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice-daily"
	FrequencyThreeTimes Frequency = "three-times"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyCustom     Frequency = "custom"
)

var frequencyLabels = map[Frequency]string{
	FrequencyDaily:      "Daily",
	FrequencyTwiceDaily: "Twice Daily",
	FrequencyThreeTimes: "Three Times Daily",
	FrequencyWeekly:     "Weekly",
	FrequencyCustom:     "Custom",
}

func (f Frequency) IsValid() bool {
	_, ok := frequencyLabels[f]
	return ok
}

// Label returns the human-readable form of the frequency.
func (f Frequency) Label() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return string(f)
}

// TimeOfDay is a wall-clock time with minute resolution and no date
// component. A reminder's time is always interpreted against the current
// calendar date, so the model never stores an absolute instant.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// TimeOfDayFrom truncates t to minute resolution, discarding the date.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Display formats the time in 12-hour form, e.g. "2:05 PM".
func (t TimeOfDay) Display() string {
	ampm := "AM"
	hour := t.Hour
	if hour >= 12 {
		ampm = "PM"
	}
	if hour > 12 {
		hour -= 12
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, ampm)
}

// On anchors the time of day to the calendar date of ref.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid time of day: %s", data)
	}
	parsed, err := ParseTimeOfDay(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Reminder is a scheduled medication prompt keyed by time of day. It recurs
// every day at the same time until deleted; marking it taken dismisses the
// current alert only.
type Reminder struct {
	ID             uuid.UUID `json:"id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	ReminderTime   TimeOfDay `json:"reminder_time"`
	Frequency      Frequency `json:"frequency"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	IsActive       bool      `json:"is_active"`
}

// ReminderView is the display projection of a reminder.
type ReminderView struct {
	Reminder
	DisplayTime    string `json:"display_time"`
	FrequencyLabel string `json:"frequency_label"`
	Overdue        bool   `json:"overdue"`
}

// NewReminderView builds the view projection. Overdue means the reminder's
// time of day has already passed on the calendar date of now.
func NewReminderView(r *Reminder, now time.Time) *ReminderView {
	return &ReminderView{
		Reminder:       *r,
		DisplayTime:    r.ReminderTime.Display(),
		FrequencyLabel: r.Frequency.Label(),
		Overdue:        now.After(r.ReminderTime.On(now)),
	}
}
