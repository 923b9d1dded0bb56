//go:build !windows

package env

// NewNotifier returns the platform notifier. Other systems have no
// environment-change broadcast.
func NewNotifier() Notifier {
	return NopNotifier{}
}
