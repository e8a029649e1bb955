package email

import (
	"context"
	"fmt"

	"github.com/shark062/EridesSouzaStudio/pkg/logger"
)

type consoleService struct {
	log          *logger.Logger
	resetBaseURL string
}

// NewConsoleService returns a Service that logs mail instead of sending
// it. Used in development when no SMTP relay is configured.
func NewConsoleService(log *logger.Logger, resetBaseURL string) Service {
	return &consoleService{log: log, resetBaseURL: resetBaseURL}
}

func (s *consoleService) SendPasswordReset(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)
	s.log.Info("password reset email",
		"to", to,
		"link", link,
	)
	return nil
}

func (s *consoleService) SendWelcome(ctx context.Context, to, name string) error {
	s.log.Info("welcome email",
		"to", to,
		"name", name,
	)
	return nil
}
