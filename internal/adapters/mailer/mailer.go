// Package mailer hands verification mail requests to the mail delivery service.
// Rendering and sending the mail happens elsewhere; this package only publishes
// the request.
package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/core/ports/gateways"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/nats-io/nats.go"
)

// VerificationRequest is the message published for every verification mail.
type VerificationRequest struct {
	Type             string    `json:"type"`
	Email            string    `json:"email"`
	VerificationCode string    `json:"verificationCode"`
	RequestedAt      time.Time `json:"requestedAt"`
}

const requestTypeVerification = "emailVerification"

// publisher is the part of *nats.Conn the mailer uses.
type publisher interface {
	Publish(subj string, data []byte) error
}

// NATSMailer publishes verification requests as JSON to a NATS subject.
type NATSMailer struct {
	conn    *nats.Conn
	pub     publisher
	subject string
}

// NewNATSMailer connects to url and publishes on subject.
func NewNATSMailer(url, subject string, opts ...nats.Option) (*NATSMailer, error) {
	if subject == "" {
		return nil, errors.New("mail subject is required")
	}
	opts = append([]nats.Option{nats.Name("citizen-accounts")}, opts...)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSMailer{conn: nc, pub: nc, subject: subject}, nil
}

func (m *NATSMailer) SendVerification(ctx context.Context, email, verificationCode string) error {
	if m == nil || m.pub == nil {
		return errors.New("nil mailer")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(VerificationRequest{
		Type:             requestTypeVerification,
		Email:            email,
		VerificationCode: verificationCode,
		RequestedAt:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := m.pub.Publish(m.subject, data); err != nil {
		return fmt.Errorf("failed to publish verification request: %w", err)
	}
	return nil
}

// Close drains the connection.
func (m *NATSMailer) Close() {
	if m == nil || m.conn == nil {
		return
	}
	if err := m.conn.Drain(); err != nil {
		m.conn.Close()
	}
}

// LogMailer only logs verification requests. It is used when no NATS server is configured.
type LogMailer struct{}

func (LogMailer) SendVerification(ctx context.Context, email, verificationCode string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Verification mail requested",
		slog.String("email", email),
		slog.String("transport", "log"),
	)
	return nil
}

// New returns a NATS mailer when url is set and a LogMailer otherwise.
// The returned func releases the connection.
func New(url, subject string) (gateways.VerificationMailer, func(), error) {
	if url == "" {
		return LogMailer{}, func() {}, nil
	}
	m, err := NewNATSMailer(url, subject)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}
