package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduler metrics
	RemindersFired   prometheus.Counter
	RemindersSnoozed prometheus.Counter
	RemindersTaken   prometheus.Counter
	PollDuration     prometheus.Histogram

	ActiveReminders prometheus.Gauge
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		RemindersFired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_fired_total",
			Help:      "Total number of reminder alerts fired",
		}),
		RemindersSnoozed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_snoozed_total",
			Help:      "Total number of reminders snoozed",
		}),
		RemindersTaken: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_taken_total",
			Help:      "Total number of reminders marked as taken",
		}),
		PollDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent in one due-reminder poll",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		ActiveReminders: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_reminders",
			Help:      "Current number of active reminders",
		}),
	}
}

// NewUnregistered creates metrics on a private registry, for tests that
// build more than one scheduler in a process.
func NewUnregistered(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		RemindersFired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_fired_total",
			Help:      "Total number of reminder alerts fired",
		}),
		RemindersSnoozed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_snoozed_total",
			Help:      "Total number of reminders snoozed",
		}),
		RemindersTaken: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_taken_total",
			Help:      "Total number of reminders marked as taken",
		}),
		PollDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent in one due-reminder poll",
		}),
		ActiveReminders: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_reminders",
			Help:      "Current number of active reminders",
		}),
	}
}
