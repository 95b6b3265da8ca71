package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// SMSConfig configures the SMS gateway notifier
type SMSConfig struct {
	// GatewayURL is the JSON endpoint of the SMS provider
	GatewayURL string
	// APIKey is sent as a bearer token
	APIKey string
	// SenderID is the alphanumeric sender shown on the handset
	SenderID string
	// Timeout for gateway calls
	Timeout time.Duration
}

// SMSNotifier sends SMS notifications through an HTTP gateway
type SMSNotifier struct {
	cfg    SMSConfig
	client *http.Client
	logger *zap.Logger
}

// NewSMSNotifier creates a gateway-backed SMS notifier
func NewSMSNotifier(cfg SMSConfig, logger *zap.Logger) *SMSNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &SMSNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Channel returns the transport name
func (n *SMSNotifier) Channel() string {
	return "sms"
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

// Send delivers the message to the recipient's phone number
func (n *SMSNotifier) Send(ctx context.Context, msg Message) error {
	if msg.Recipient == "" {
		return fmt.Errorf("sms recipient is empty")
	}
	if n.cfg.GatewayURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	body, err := json.Marshal(smsPayload{
		To:      msg.Recipient,
		From:    n.cfg.SenderID,
		Message: msg.Body,
	})
	if err != nil {
		return fmt.Errorf("encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("sms send failed",
			zap.String("recipient", msg.Recipient),
			zap.Error(err))
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("sms gateway rejected message",
			zap.String("recipient", msg.Recipient),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	n.logger.Info("sms sent", zap.String("recipient", msg.Recipient))
	return nil
}

// LoggingNotifier logs messages instead of sending them. Used in
// development when no real channel is configured.
type LoggingNotifier struct {
	ChannelName string
	Logger      *zap.Logger
}

// Channel returns the configured transport name
func (n *LoggingNotifier) Channel() string {
	return n.ChannelName
}

// Send logs the message and reports success
func (n *LoggingNotifier) Send(ctx context.Context, msg Message) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("notification logged instead of sent",
		zap.String("channel", n.ChannelName),
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}
