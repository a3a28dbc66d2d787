// Package notify sends parent alerts over SMS via the Twilio API.
//
// Alerts are best effort: a failed notification is logged and never blocks
// the operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator defines the minimal interface for sending a Twilio message.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Notifier delivers parent alerts.
type Notifier interface {
	NotifyEmergencyUnlock(ctx context.Context, reason string, count int) error
}

// Opts holds configuration options for the Twilio notifier.
type Opts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
}

// Option defines a configuration option for the Twilio notifier.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromNumber sets the sending phone number.
func WithFromNumber(from string) Option {
	return func(o *Opts) { o.FromNumber = from }
}

// WithToNumber sets the parent's phone number.
func WithToNumber(to string) Option {
	return func(o *Opts) { o.ToNumber = to }
}

// TwilioNotifier sends parent alerts as SMS messages.
type TwilioNotifier struct {
	api  messageCreator
	from string
	to   string
}

// NewTwilioNotifier creates a notifier, falling back to TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER, and PARENT_PHONE_NUMBER environment
// variables for unset options.
func NewTwilioNotifier(opts ...Option) (*TwilioNotifier, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.AccountSID == "" {
		cfg.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}
	if cfg.FromNumber == "" {
		cfg.FromNumber = os.Getenv("TWILIO_FROM_NUMBER")
	}
	if cfg.ToNumber == "" {
		cfg.ToNumber = os.Getenv("PARENT_PHONE_NUMBER")
	}
	slog.Debug("Twilio notifier config loaded",
		"AccountSID_set", cfg.AccountSID != "",
		"AuthToken_set", cfg.AuthToken != "",
		"FromNumber_set", cfg.FromNumber != "",
		"ToNumber_set", cfg.ToNumber != "")

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromNumber == "" || cfg.ToNumber == "" {
		return nil, fmt.Errorf("from and parent phone numbers must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioNotifier{api: client.Api, from: cfg.FromNumber, to: cfg.ToNumber}, nil
}

// NotifyEmergencyUnlock sends the parent an SMS about a PIN bypass.
func (n *TwilioNotifier) NotifyEmergencyUnlock(ctx context.Context, reason string, count int) error {
	body := fmt.Sprintf("CurioGate: emergency unlock used (total %d).", count)
	if reason != "" {
		body = fmt.Sprintf("CurioGate: emergency unlock used (total %d). Reason: %s", count, reason)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.api.CreateMessage(params); err != nil {
		slog.Error("Twilio NotifyEmergencyUnlock failed", "error", err)
		return fmt.Errorf("failed to send parent alert: %w", err)
	}
	slog.Debug("Twilio parent alert sent")
	return nil
}

// NopNotifier drops alerts; used when Twilio is not configured.
type NopNotifier struct{}

// NotifyEmergencyUnlock logs and discards the alert.
func (NopNotifier) NotifyEmergencyUnlock(ctx context.Context, reason string, count int) error {
	slog.Debug("NopNotifier: parent alert skipped (Twilio not configured)")
	return nil
}
