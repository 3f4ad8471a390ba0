// Package notify sends lead alert emails to territory sales reps. A send
// happens at most once per lead, after the lead row is committed; failures
// are logged by the caller and never retried.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/config"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
)

// sendFunc delivers a raw RFC 5322 message. Tests substitute it to
// capture messages without a live SMTP server.
type sendFunc func(ctx context.Context, to string, msg []byte) error

// EmailNotifier builds and sends one alert email per created lead.
type EmailNotifier struct {
	cfg  config.NotificationConfig
	log  logger.Logger
	send sendFunc
}

// NewEmailNotifier creates a notifier that delivers via SMTP with
// STARTTLS when the server supports it.
func NewEmailNotifier(cfg config.NotificationConfig, log logger.Logger) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, log: log}
	n.send = n.sendSMTP
	return n
}

// Notify emails the lead alert to the territory recipient, falling back
// to the default recipient when the territory has no mapping.
func (n *EmailNotifier) Notify(ctx context.Context, lead *domain.Lead, company *domain.Company) error {
	to := n.Recipient(lead.TerritoryState)
	if to == "" {
		return fmt.Errorf("no recipient configured for territory %q and no default set", lead.TerritoryState)
	}

	msg, err := n.buildMessage(to, lead, company)
	if err != nil {
		return fmt.Errorf("failed to build lead alert: %w", err)
	}

	if err := n.send(ctx, to, msg); err != nil {
		return fmt.Errorf("failed to send lead alert for lead %d: %w", lead.ID, err)
	}

	n.log.Info("Lead alert sent",
		logger.Int64("lead_id", lead.ID),
		logger.String("recipient", to),
		logger.String("territory", lead.TerritoryState))
	return nil
}

// Recipient resolves the alert recipient for a territory. Lookup is
// case-insensitive; an empty or unmapped territory falls back to the
// default recipient.
func (n *EmailNotifier) Recipient(territory string) string {
	if territory != "" {
		for state, addr := range n.cfg.TerritoryRecipients {
			if strings.EqualFold(state, territory) {
				return addr
			}
		}
	}
	return n.cfg.DefaultRecipient
}

func (n *EmailNotifier) buildMessage(to string, lead *domain.Lead, company *domain.Company) ([]byte, error) {
	body, err := renderAlertBody(alertData{
		Lead:         lead,
		Company:      company,
		DashboardURL: n.cfg.DashboardURL,
	})
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("[Lead Alert] %s intent: %s (score %.0f)",
		strings.ToUpper(string(lead.IntentStrength)), company.Name, lead.LeadScore)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", n.cfg.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	if lead.IntentStrength == domain.IntentHigh {
		b.WriteString("X-Priority: 1\r\n")
		b.WriteString("Importance: high\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String()), nil
}

func (n *EmailNotifier) sendSMTP(ctx context.Context, to string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: n.cfg.SMTPHost}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if n.cfg.SMTPUser != "" && n.cfg.Password != "" {
		auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.Password, n.cfg.SMTPHost)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
