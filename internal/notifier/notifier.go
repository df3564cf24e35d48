// Package notifier presents alerts to the user: stacking toasts, actionable
// popups and best-effort platform notifications. Presentation is independent
// of scheduling; the scheduler only calls into the Presenter interface.
package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/meditrack/meditrack/internal/model"
)

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

func (p Permission) IsValid() bool {
	return p == PermissionGranted || p == PermissionDenied || p == PermissionDefault
}

type AlertKind string

const (
	AlertToast AlertKind = "toast"
	AlertPopup AlertKind = "popup"
)

// Popup actions.
const (
	ActionTaken  = "taken"
	ActionSnooze = "snooze"
)

// Alert is one visible notification. Toasts auto-dismiss after a short TTL;
// popups stay up longer and carry the taken/snooze actions.
type Alert struct {
	ID         string     `json:"id"`
	Kind       AlertKind  `json:"kind"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	ReminderID uuid.UUID  `json:"reminder_id,omitempty"`
	Actions    []string   `json:"actions,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// Presenter renders alerts. Implementations must never propagate platform
// failures to callers; a channel that cannot deliver degrades silently.
type Presenter interface {
	// Toast shows a transient, auto-dismissing notification. Concurrent
	// toasts stack; there is no coalescing.
	Toast(title, body string)
	// Notify sends a platform notification when permission was granted and
	// always shows the in-app toast as well.
	Notify(title, body string)
	// ShowPopup raises the prominent taken/snooze alert for a reminder.
	ShowPopup(r *model.Reminder)
	// DismissPopup clears any popup for the reminder; unknown ids are a
	// no-op. Pending snooze timers are not affected.
	DismissPopup(reminderID uuid.UUID)
	// Active returns currently visible alerts, oldest first.
	Active() []*Alert

	SetPermission(p Permission)
	PermissionState() Permission
}

// PlatformNotifier delivers a native notification. Send may fail; callers
// treat failure as a silent no-op.
type PlatformNotifier interface {
	Send(title, body string) error
}

// Alarm is the shared audio alert. Play may fail (and the failure is
// ignored); Stop silences and resets.
type Alarm interface {
	Play() error
	Stop()
}
