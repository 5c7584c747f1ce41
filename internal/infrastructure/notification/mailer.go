// Package notification delivers order status emails to clients.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"go.uber.org/zap"

	"github.com/delivery/backend/internal/domain/ordering"
	"github.com/delivery/backend/internal/infrastructure/config"
)

const statusChangeTemplate = `Dear customer,

The status of your order #{{.OrderID}} has changed from "{{.OldStatus}}" to "{{.NewStatus}}".

Thank you for shopping with us.

Best regards,
The store team
`

type statusChangeData struct {
	OrderID   string
	OldStatus string
	NewStatus string
}

// SMTPNotifier sends order status change emails over SMTP
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	tmpl   *template.Template
	logger *zap.Logger

	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		tmpl:   template.Must(template.New("statusChange").Parse(statusChangeTemplate)),
		logger: logger,
		send:   smtp.SendMail,
	}
}

// NotifyStatusChange sends a status change email to the order's client
func (n *SMTPNotifier) NotifyStatusChange(ctx context.Context, order *ordering.Order, oldStatus, newStatus ordering.OrderStatus, recipientEmail string) error {
	if recipientEmail == "" {
		return fmt.Errorf("no recipient email for order %s", order.ID)
	}

	var body bytes.Buffer
	if err := n.tmpl.Execute(&body, statusChangeData{
		OrderID:   order.ID.String(),
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}); err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	subject := fmt.Sprintf("Your order #%s status has changed", order.ID)
	msg := buildMessage(n.cfg.From, recipientEmail, subject, body.String())

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	if err := n.send(addr, auth, n.cfg.From, []string{recipientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}

	n.logger.Debug("status change email sent",
		zap.String("order_id", order.ID.String()),
		zap.String("recipient", recipientEmail),
		zap.String("new_status", string(newStatus)),
	)
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

var _ ordering.StatusNotifier = (*SMTPNotifier)(nil)

// LogNotifier logs status changes instead of emailing them.
// Used when SMTP is disabled in configuration
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyStatusChange logs the status change
func (n *LogNotifier) NotifyStatusChange(ctx context.Context, order *ordering.Order, oldStatus, newStatus ordering.OrderStatus, recipientEmail string) error {
	n.logger.Info("order status notification",
		zap.String("order_id", order.ID.String()),
		zap.String("recipient", recipientEmail),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)),
	)
	return nil
}

var _ ordering.StatusNotifier = (*LogNotifier)(nil)
