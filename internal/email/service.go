package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/GanehsaConsulting/cms-admin-api/internal/config"
	"github.com/GanehsaConsulting/cms-admin-api/pkg/retry"
)

type Service interface {
	SendInvite(ctx context.Context, to, name, tempPassword string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	policy retry.Policy
}

func NewService(cfg config.SMTPConfig, policy retry.Policy) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		policy: policy,
	}
}

func (s *smtpService) SendInvite(ctx context.Context, to, name, tempPassword string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your CMS account")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nAn account was created for you. Sign in with this temporary password and change it right away:\n\n%s\n",
		name, tempPassword,
	))

	err := s.policy.Do(ctx, func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}
