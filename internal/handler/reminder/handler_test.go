package reminder_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alertHandler "github.com/meditrack/meditrack/internal/handler/alert"
	bmiHandler "github.com/meditrack/meditrack/internal/handler/bmi"
	reminderHandler "github.com/meditrack/meditrack/internal/handler/reminder"
	"github.com/meditrack/meditrack/internal/notifier"
	"github.com/meditrack/meditrack/internal/repository/blob"
	"github.com/meditrack/meditrack/internal/router"
	"github.com/meditrack/meditrack/internal/scheduler"
	bmiService "github.com/meditrack/meditrack/internal/service/bmi"
	reminderService "github.com/meditrack/meditrack/internal/service/reminder"
	"github.com/meditrack/meditrack/internal/storage/memory"
	"github.com/meditrack/meditrack/pkg/clock"
	"github.com/meditrack/meditrack/pkg/logger"
	"github.com/meditrack/meditrack/pkg/metrics"
)

type env struct {
	engine *httptest.Server
	clk    *clock.Fake
	sched  *scheduler.Scheduler
}

type response struct {
	Code    int
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	adapter := memory.New()
	reminderRepo := blob.NewReminderStore(adapter, log)
	bmiRepo := blob.NewBMIHistory(adapter, log)

	clk := clock.NewFake(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	presenter := notifier.NewInApp(notifier.NewLogNotifier(log), notifier.PermissionDefault, time.Minute, time.Minute, log)
	alarm := notifier.NewLogAlarm(log)
	sched := scheduler.New(reminderRepo, presenter, alarm, clk, metrics.NewUnregistered("meditrack_handler_test"), log, scheduler.Config{
		DailyFireGuard: true,
		SnoozeDelay:    5 * time.Minute,
	})

	r := router.NewRouter(
		router.Config{},
		reminderHandler.NewHandler(reminderService.NewService(reminderRepo, presenter, log), sched, clk),
		bmiHandler.NewHandler(bmiService.NewService(bmiRepo, log)),
		alertHandler.NewHandler(presenter),
	)

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)

	return &env{engine: srv, clk: clk, sched: sched}
}

func (e *env) request(t *testing.T, method, path string, body interface{}) *response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.engine.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := &response{Code: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return out
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"medication_name": "Aspirin",
		"dosage":          "100mg",
		"reminder_time":   "09:00",
		"frequency":       "daily",
		"notes":           "after breakfast",
	}
}

func TestCreateAndListReminders(t *testing.T) {
	e := newEnv(t)

	created := e.request(t, "POST", "/api/v1/reminders", validBody())
	require.Equal(t, http.StatusCreated, created.Code, "message: %s", created.Message)

	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &rec))
	assert.NotEmpty(t, rec.ID)

	listed := e.request(t, "GET", "/api/v1/reminders", nil)
	require.Equal(t, http.StatusOK, listed.Code)

	var views []struct {
		ID             string `json:"id"`
		MedicationName string `json:"medication_name"`
		ReminderTime   string `json:"reminder_time"`
		DisplayTime    string `json:"display_time"`
		FrequencyLabel string `json:"frequency_label"`
		IsActive       bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(listed.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, rec.ID, views[0].ID)
	assert.Equal(t, "Aspirin", views[0].MedicationName)
	assert.Equal(t, "09:00", views[0].ReminderTime)
	assert.Equal(t, "9:00 AM", views[0].DisplayTime)
	assert.Equal(t, "Daily", views[0].FrequencyLabel)
	assert.True(t, views[0].IsActive)
}

func TestCreateReminderValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing name", func(b map[string]interface{}) { delete(b, "medication_name") }},
		{"missing dosage", func(b map[string]interface{}) { delete(b, "dosage") }},
		{"bad time", func(b map[string]interface{}) { b["reminder_time"] = "25:00" }},
		{"bad frequency", func(b map[string]interface{}) { b["frequency"] = "hourly" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)

			resp := e.request(t, "POST", "/api/v1/reminders", body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestUpdateReminderReplacesIdentity(t *testing.T) {
	e := newEnv(t)

	created := e.request(t, "POST", "/api/v1/reminders", validBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &rec))

	body := validBody()
	body["dosage"] = "200mg"
	updated := e.request(t, "PUT", "/api/v1/reminders/"+rec.ID, body)
	require.Equal(t, http.StatusOK, updated.Code)

	var newRec struct {
		ID     string `json:"id"`
		Dosage string `json:"dosage"`
	}
	require.NoError(t, json.Unmarshal(updated.Data, &newRec))
	assert.NotEqual(t, rec.ID, newRec.ID)
	assert.Equal(t, "200mg", newRec.Dosage)
}

func TestDeleteReminder(t *testing.T) {
	e := newEnv(t)

	created := e.request(t, "POST", "/api/v1/reminders", validBody())
	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &rec))

	deleted := e.request(t, "DELETE", "/api/v1/reminders/"+rec.ID, nil)
	assert.Equal(t, http.StatusOK, deleted.Code)

	listed := e.request(t, "GET", "/api/v1/reminders", nil)
	var views []struct{}
	require.NoError(t, json.Unmarshal(listed.Data, &views))
	assert.Empty(t, views)

	// Unknown id deletes are a no-op, not an error.
	again := e.request(t, "DELETE", "/api/v1/reminders/"+rec.ID, nil)
	assert.Equal(t, http.StatusOK, again.Code)

	bad := e.request(t, "DELETE", "/api/v1/reminders/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestDefaults(t *testing.T) {
	e := newEnv(t)

	resp := e.request(t, "GET", "/api/v1/reminders/defaults", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var data struct {
		ReminderTime string `json:"reminder_time"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	// Fake clock sits at 08:00; the suggestion is one hour ahead.
	assert.Equal(t, "09:00", data.ReminderTime)
}

func TestFirePopupTakenFlow(t *testing.T) {
	e := newEnv(t)

	created := e.request(t, "POST", "/api/v1/reminders", validBody())
	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &rec))

	// Advance to the due minute and run a poll tick.
	e.clk.Set(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	e.sched.CheckDue(context.Background())

	alerts := e.request(t, "GET", "/api/v1/alerts", nil)
	var active []struct {
		Kind       string   `json:"kind"`
		ReminderID string   `json:"reminder_id"`
		Actions    []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(alerts.Data, &active))

	var popupCount int
	for _, a := range active {
		if a.Kind == "popup" {
			popupCount++
			assert.Equal(t, rec.ID, a.ReminderID)
			assert.Equal(t, []string{"taken", "snooze"}, a.Actions)
		}
	}
	assert.Equal(t, 1, popupCount)

	taken := e.request(t, "POST", "/api/v1/reminders/"+rec.ID+"/taken", nil)
	assert.Equal(t, http.StatusOK, taken.Code)

	alerts = e.request(t, "GET", "/api/v1/alerts", nil)
	active = nil
	require.NoError(t, json.Unmarshal(alerts.Data, &active))
	for _, a := range active {
		assert.NotEqual(t, "popup", a.Kind)
	}

	// Still listed: taken does not delete or deactivate.
	listed := e.request(t, "GET", "/api/v1/reminders", nil)
	var views []struct{}
	require.NoError(t, json.Unmarshal(listed.Data, &views))
	assert.Len(t, views, 1)
}

func TestSnoozeEndpoint(t *testing.T) {
	e := newEnv(t)

	created := e.request(t, "POST", "/api/v1/reminders", validBody())
	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &rec))

	e.clk.Set(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	e.sched.CheckDue(context.Background())

	snoozed := e.request(t, "POST", "/api/v1/reminders/"+rec.ID+"/snooze", nil)
	assert.Equal(t, http.StatusOK, snoozed.Code)
}

func TestBMIEndpoints(t *testing.T) {
	e := newEnv(t)

	computed := e.request(t, "POST", "/api/v1/bmi", map[string]interface{}{
		"weight": 70, "height": 175, "age": 30,
	})
	require.Equal(t, http.StatusOK, computed.Code)

	var rec struct {
		Value    float64 `json:"bmi"`
		Category string  `json:"category"`
	}
	require.NoError(t, json.Unmarshal(computed.Data, &rec))
	assert.InDelta(t, 22.9, rec.Value, 0.05)
	assert.Equal(t, "Normal", rec.Category)

	rejected := e.request(t, "POST", "/api/v1/bmi", map[string]interface{}{
		"weight": 0, "height": 170, "age": 40,
	})
	assert.Equal(t, http.StatusBadRequest, rejected.Code)

	history := e.request(t, "GET", "/api/v1/bmi/history", nil)
	require.Equal(t, http.StatusOK, history.Code)
	var records []struct{}
	require.NoError(t, json.Unmarshal(history.Data, &records))
	assert.Len(t, records, 1)
}

func TestNotificationPermission(t *testing.T) {
	e := newEnv(t)

	state := e.request(t, "GET", "/api/v1/notifications/permission", nil)
	var data struct {
		Permission string `json:"permission"`
	}
	require.NoError(t, json.Unmarshal(state.Data, &data))
	assert.Equal(t, "default", data.Permission)

	granted := e.request(t, "PUT", "/api/v1/notifications/permission", map[string]interface{}{
		"permission": "granted",
	})
	assert.Equal(t, http.StatusOK, granted.Code)

	state = e.request(t, "GET", "/api/v1/notifications/permission", nil)
	require.NoError(t, json.Unmarshal(state.Data, &data))
	assert.Equal(t, "granted", data.Permission)

	bogus := e.request(t, "PUT", "/api/v1/notifications/permission", map[string]interface{}{
		"permission": "sometimes",
	})
	assert.Equal(t, http.StatusBadRequest, bogus.Code)
}
