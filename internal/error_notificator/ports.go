package error_notificator

import "context"

type Notificator interface {
	// Notify reports a failed conversion to whoever operates the service.
	Notify(ctx context.Context, err error, details string) error
}
