package driven

import "context"

// AdminNotifier delivers a message to the site operator. Implementations are
// best-effort: callers log failures and never let them fail the primary request.
type AdminNotifier interface {
	Send(ctx context.Context, text string) error
}

// UserNotifier delivers a message to an end user's contact address.
// Best-effort, same as AdminNotifier.
type UserNotifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
