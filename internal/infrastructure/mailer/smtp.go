package mailer

import (
	"github.com/invento/backend/internal/application/notification"
	"github.com/invento/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPNotifier delivers notifications over SMTP. Delivery is best-effort:
// failures are logged and dropped, matching the Notifier contract.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPNotifier creates a notifier for the given SMTP configuration
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Notify sends a plain-text email to all recipients
func (n *SMTPNotifier) Notify(subject, body string, recipients []string) {
	if len(recipients) == 0 {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error("failed to send email",
			zap.String("subject", subject),
			zap.Int("recipients", len(recipients)),
			zap.Error(err))
		return
	}

	n.logger.Debug("email sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(recipients)))
}

var _ notification.Notifier = (*SMTPNotifier)(nil)
