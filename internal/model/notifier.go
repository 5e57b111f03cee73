package model

import "context"

// Notifier delivers account mail. Delivery is best-effort: callers log
// failures and never fail the request on them.
type Notifier interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, resetURL string) error
	SendResetSuccess(ctx context.Context, email string) error
}
