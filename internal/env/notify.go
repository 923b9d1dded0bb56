package env

// Notifier tells running programs that environment variables changed.
// It is best-effort: it never reports failure.
type Notifier interface {
	Broadcast()
}

// NopNotifier does nothing
type NopNotifier struct{}

func (NopNotifier) Broadcast() {}
