package notifier

import (
	"sync/atomic"

	"github.com/meditrack/meditrack/pkg/logger"
)

// LogAlarm stands in for a real audio device in headless deployments. It
// tracks playing state so Stop is a no-op when nothing is sounding.
type LogAlarm struct {
	logger  *logger.Logger
	playing atomic.Bool
}

func NewLogAlarm(logger *logger.Logger) *LogAlarm {
	return &LogAlarm{logger: logger}
}

func (a *LogAlarm) Play() error {
	if a.playing.CompareAndSwap(false, true) {
		a.logger.Info("alarm started")
	}
	return nil
}

func (a *LogAlarm) Stop() {
	if a.playing.CompareAndSwap(true, false) {
		a.logger.Info("alarm silenced")
	}
}

// LogNotifier writes platform notifications to the log. It satisfies
// PlatformNotifier where no native notification channel is available.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(title, body string) error {
	n.logger.Info("platform notification", "title", title, "body", body)
	return nil
}
