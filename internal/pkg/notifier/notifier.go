package notifier

import "context"

// Notifier delivers composed alert content to one channel. The tracker
// decides what to say; notifiers only carry it.
type Notifier interface {
	// Name returns the channel identifier for logs.
	Name() string

	// Notify sends one subject+body message. Implementations with no
	// transport configured log and return nil so a run never fails on
	// a missing channel.
	Notify(ctx context.Context, subject, body string) error
}
