package notifier

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/meditrack/meditrack/internal/model"
	"github.com/meditrack/meditrack/pkg/logger"
)

const (
	DefaultToastTTL = 5 * time.Second
	DefaultPopupTTL = 2 * time.Minute
)

// InApp keeps visible alerts in a TTL cache; expiry is the auto-dismiss.
type InApp struct {
	alerts   *cache.Cache
	platform PlatformNotifier
	logger   *logger.Logger
	toastTTL time.Duration
	popupTTL time.Duration

	mu         sync.RWMutex
	permission Permission
}

func NewInApp(platform PlatformNotifier, permission Permission, toastTTL, popupTTL time.Duration, logger *logger.Logger) *InApp {
	if toastTTL <= 0 {
		toastTTL = DefaultToastTTL
	}
	if popupTTL <= 0 {
		popupTTL = DefaultPopupTTL
	}
	if !permission.IsValid() {
		permission = PermissionDefault
	}
	return &InApp{
		alerts:   cache.New(cache.NoExpiration, time.Second),
		platform: platform,
		logger:   logger,
		toastTTL: toastTTL,
		popupTTL: popupTTL,

		permission: permission,
	}
}

func (p *InApp) Toast(title, body string) {
	now := time.Now()
	alert := &Alert{
		ID:        uuid.New().String(),
		Kind:      AlertToast,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		ExpiresAt: now.Add(p.toastTTL),
	}
	p.alerts.Set(alert.ID, alert, p.toastTTL)
	p.logger.Info("toast", "title", title, "body", body)
}

func (p *InApp) Notify(title, body string) {
	if p.PermissionState() == PermissionGranted {
		if err := p.platform.Send(title, body); err != nil {
			// Platform failures degrade to the in-app toast below.
			p.logger.Debug("platform notification failed", "error", err.Error())
		}
	}
	p.Toast(title, body)
}

func (p *InApp) ShowPopup(r *model.Reminder) {
	now := time.Now()
	alert := &Alert{
		ID:         uuid.New().String(),
		Kind:       AlertPopup,
		Title:      "Medication Reminder",
		Body:       fmt.Sprintf("%s - %s at %s", r.MedicationName, r.Dosage, r.ReminderTime.Display()),
		ReminderID: r.ID,
		Actions:    []string{ActionTaken, ActionSnooze},
		CreatedAt:  now,
		ExpiresAt:  now.Add(p.popupTTL),
	}
	p.alerts.Set(alert.ID, alert, p.popupTTL)
	p.logger.Info("popup raised", "reminder_id", r.ID.String(), "medication", r.MedicationName)
}

func (p *InApp) DismissPopup(reminderID uuid.UUID) {
	for key, item := range p.alerts.Items() {
		alert, ok := item.Object.(*Alert)
		if !ok {
			continue
		}
		if alert.Kind == AlertPopup && alert.ReminderID == reminderID {
			p.alerts.Delete(key)
		}
	}
}

func (p *InApp) Active() []*Alert {
	items := p.alerts.Items()
	out := make([]*Alert, 0, len(items))
	for _, item := range items {
		if alert, ok := item.Object.(*Alert); ok {
			out = append(out, alert)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (p *InApp) SetPermission(permission Permission) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.permission = permission
}

func (p *InApp) PermissionState() Permission {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.permission
}
