package notifier

import "github.com/meditrack/meditrack/pkg/circuitbreaker"

type breakerNotifier struct {
	inner PlatformNotifier
	cb    *circuitbreaker.CircuitBreaker
}

// WithBreaker wraps a platform channel so repeated delivery failures
// short-circuit instead of blocking every fire on a dead endpoint.
func WithBreaker(inner PlatformNotifier, cb *circuitbreaker.CircuitBreaker) PlatformNotifier {
	return &breakerNotifier{inner: inner, cb: cb}
}

func (b *breakerNotifier) Send(title, body string) error {
	return b.cb.Execute(func() error {
		return b.inner.Send(title, body)
	})
}
