package email

import (
	"context"
)

// Service delivers account mail. The reset token travels only through
// this collaborator, never back to the HTTP caller.
type Service interface {
	SendPasswordReset(ctx context.Context, to, name, token string) error
	SendWelcome(ctx context.Context, to, name string) error
}
