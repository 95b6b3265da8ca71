package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// SMTPConfig configures the SMTP email notifier
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPNotifier sends email notifications over SMTP
type SMTPNotifier struct {
	cfg    SMTPConfig
	auth   smtp.Auth
	addr   string
	logger *zap.Logger
}

// NewSMTPNotifier creates an SMTP-backed email notifier
func NewSMTPNotifier(cfg SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPNotifier{
		cfg:    cfg,
		auth:   auth,
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		logger: logger,
	}
}

// Channel returns the transport name
func (n *SMTPNotifier) Channel() string {
	return "email"
}

// Send delivers the message to the recipient's email address
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	if msg.Recipient == "" {
		return fmt.Errorf("email recipient is empty")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	from := n.cfg.FromAddress
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromAddress)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(n.addr, n.auth, n.cfg.FromAddress, []string{msg.Recipient}, []byte(b.String())); err != nil {
		n.logger.Warn("email send failed",
			zap.String("recipient", msg.Recipient),
			zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}

	n.logger.Info("email sent", zap.String("recipient", msg.Recipient))
	return nil
}
