package notification

// Notifier is the outbound notification port. Implementations deliver
// best-effort: failures are logged by the implementation and never raised to
// the caller.
type Notifier interface {
	Notify(subject, body string, recipients []string)
}

// NopNotifier discards every notification. Used when email is not configured.
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(subject, body string, recipients []string) {}
