package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "08:30", want: TimeOfDay{Hour: 8, Minute: 30}},
		{input: "00:00", want: TimeOfDay{Hour: 0, Minute: 0}},
		{input: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "9:5", wantErr: true},
		{input: "not-a-time", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayDisplay(t *testing.T) {
	tests := []struct {
		tod  TimeOfDay
		want string
	}{
		{TimeOfDay{Hour: 0, Minute: 5}, "12:05 AM"},
		{TimeOfDay{Hour: 9, Minute: 0}, "9:00 AM"},
		{TimeOfDay{Hour: 12, Minute: 30}, "12:30 PM"},
		{TimeOfDay{Hour: 14, Minute: 5}, "2:05 PM"},
		{TimeOfDay{Hour: 23, Minute: 59}, "11:59 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tod.Display())
	}
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	tod := TimeOfDay{Hour: 7, Minute: 45}

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"07:45"`, string(data))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tod, back)

	assert.Error(t, json.Unmarshal([]byte(`"25:99"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}

func TestFrequencyLabels(t *testing.T) {
	assert.Equal(t, "Daily", FrequencyDaily.Label())
	assert.Equal(t, "Twice Daily", FrequencyTwiceDaily.Label())
	assert.Equal(t, "Three Times Daily", FrequencyThreeTimes.Label())
	assert.Equal(t, "Weekly", FrequencyWeekly.Label())
	assert.Equal(t, "Custom", FrequencyCustom.Label())

	assert.False(t, Frequency("hourly").IsValid())
	assert.Equal(t, "hourly", Frequency("hourly").Label())
}

func TestNewReminderView(t *testing.T) {
	r := &Reminder{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ReminderTime:   TimeOfDay{Hour: 9, Minute: 0},
		Frequency:      FrequencyTwiceDaily,
		IsActive:       true,
	}

	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	view := NewReminderView(r, morning)
	assert.Equal(t, "9:00 AM", view.DisplayTime)
	assert.Equal(t, "Twice Daily", view.FrequencyLabel)
	assert.False(t, view.Overdue)

	evening := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)
	assert.True(t, NewReminderView(r, evening).Overdue)
}

func TestBMICategoryFor(t *testing.T) {
	tests := []struct {
		value float64
		want  BMICategory
	}{
		{16.0, BMIUnderweight},
		{18.4, BMIUnderweight},
		{18.5, BMINormal},
		{24.9, BMINormal},
		{25.0, BMIOverweight},
		{29.9, BMIOverweight},
		{30.0, BMIObese},
		{45.0, BMIObese},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BMICategoryFor(tt.value), "value %.1f", tt.value)
	}
}

func TestBMICategoryDescription(t *testing.T) {
	for _, c := range []BMICategory{BMIUnderweight, BMINormal, BMIOverweight, BMIObese} {
		assert.NotEmpty(t, c.Description())
	}
}

func TestRoundBMI(t *testing.T) {
	assert.InDelta(t, 22.9, RoundBMI(22.857), 0.0001)
	assert.InDelta(t, 19.5, RoundBMI(19.53), 0.0001)
	assert.InDelta(t, 34.6, RoundBMI(34.602), 0.0001)
}
