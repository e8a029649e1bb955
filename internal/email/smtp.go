package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	ResetBaseURL string
}

type smtpService struct {
	dialer *gomail.Dialer
	cfg    SMTPConfig
}

// NewSMTPService returns a Service that delivers over SMTP.
func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (s *smtpService) SendPasswordReset(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.ResetBaseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Recuperação de senha - Erides Souza Studio")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Olá %s,</p>
<p>Recebemos um pedido para redefinir a sua senha. O link abaixo é válido por 24 horas:</p>
<p><a href="%s">%s</a></p>
<p>Se você não pediu a redefinição, ignore este e-mail.</p>`,
		name, link, link,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bem-vinda ao Erides Souza Studio")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Olá %s,</p><p>Sua conta foi criada com sucesso. Até breve!</p>`, name,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
