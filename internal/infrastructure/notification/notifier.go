package notification

import (
	"context"
)

// Message is one outbound notification to a tenant
type Message struct {
	// Recipient is the channel-specific address: an email address or a
	// phone number in international format.
	Recipient string
	// Subject is used by channels that support one (email)
	Subject string
	// Body is the message text
	Body string
}

// Notifier delivers a message on one concrete channel. A timeout is the
// caller's concern; implementations return the transport error as-is
// and the dispatcher treats timeouts like any other channel failure.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
	// Channel names the transport, e.g. "email" or "sms"
	Channel() string
}
