// Package contact relays portfolio contact-form messages and publishes the owner's vCard.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/upstream"
	"github.com/tartampluch/go-folio/internal/validation"
)

// Errors returned by Send. Their messages are safe to show to users.
var (
	ErrNotConfigured  = errors.New(config.ErrRelayNotConfig)
	ErrDeliveryFailed = errors.New(config.ErrRelayFailed)
)

// Submission is one contact-form message.
type Submission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks the normalised submission against its tags.
func (s Submission) Validate() error {
	return validation.Struct(s.Normalize())
}

// Mailer delivers a submission to the portfolio owner.
type Mailer interface {
	Send(ctx context.Context, s Submission) error
}

// TokenSource returns the relay access token.
type TokenSource func() (string, error)

// KeyringToken reads the token from the OS keyring and falls back to the environment.
func KeyringToken() (string, error) {
	token, err := keyring.Get(config.KeyringService, config.KeyringRelayUser)
	if err == nil && token != "" {
		return token, nil
	}
	if env := os.Getenv(config.EnvRelayToken); env != "" {
		slog.Debug(config.MsgRelayTokenEnv, config.LogKeyComponent, config.CompContact)
		return env, nil
	}
	if err == nil {
		err = keyring.ErrNotFound
	}
	return "", fmt.Errorf("%s: %w", config.ErrRelayToken, err)
}

// StoreToken saves the relay access token in the OS keyring.
func StoreToken(token string) error {
	if err := keyring.Set(config.KeyringService, config.KeyringRelayUser, token); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringStore, err)
	}
	return nil
}

type relayRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// RelayMailer posts submissions to an EmailJS-compatible HTTP relay. Failed deliveries
// are not retried.
type RelayMailer struct {
	Settings config.RelaySettings
	Token    TokenSource

	client *upstream.Client
}

// NewRelayMailer creates a mailer reading its token with KeyringToken.
func NewRelayMailer(settings config.RelaySettings, opts ...upstream.Option) *RelayMailer {
	return &RelayMailer{
		Settings: settings,
		Token:    KeyringToken,
		client:   upstream.New(config.UpstreamRelay, opts...),
	}
}

// Send validates s and hands it to the relay.
func (m *RelayMailer) Send(ctx context.Context, s Submission) error {
	s = s.Normalize()
	if err := validation.Struct(s); err != nil {
		return err
	}
	if !m.Settings.Configured() {
		return ErrNotConfigured
	}

	log := slog.With(slog.String(config.LogKeyComponent, config.CompContact))

	req := relayRequest{
		ServiceID:  m.Settings.ServiceID,
		TemplateID: m.Settings.TemplateID,
		UserID:     m.Settings.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  s.Name,
			"from_email": s.Email,
			"reply_to":   s.Email,
			"message":    s.Message,
		},
	}
	// The token is optional unless the relay account enforces it.
	if m.Token != nil {
		if token, err := m.Token(); err == nil {
			req.AccessToken = token
		} else {
			log.Debug(config.ErrRelayToken, config.LogKeyError, err)
		}
	}

	if err := m.client.PostJSON(ctx, m.Settings.URL, req, nil); err != nil {
		log.Error(config.ErrRelayFailed, config.LogKeyError, err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	log.Info(config.MsgRelaySent)
	return nil
}
