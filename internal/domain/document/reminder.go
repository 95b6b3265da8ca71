package document

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// ChannelResult is the delivery outcome on one concrete channel
type ChannelResult struct {
	Channel     ReminderChannel `json:"channel"`
	Delivered   bool            `json:"delivered"`
	Error       string          `json:"error,omitempty"`
	AttemptedAt time.Time       `json:"attempted_at"`
}

// ChannelResults is stored as a JSONB column
type ChannelResults []ChannelResult

// Value implements driver.Valuer for GORM to store as JSONB
func (c ChannelResults) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(ChannelResults{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (c *ChannelResults) Scan(value interface{}) error {
	if value == nil {
		*c = ChannelResults{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ChannelResults: unsupported type")
	}
	if len(bytes) == 0 {
		*c = ChannelResults{}
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// Reminder is one outbound payment notification tied to a billing
// period. Re-sends create new Reminder rows; there is no deduplication,
// every attempt stays on record.
type Reminder struct {
	shared.BaseAggregateRoot
	RentPaymentID uuid.UUID
	TenantID      uuid.UUID
	PropertyID    uuid.UUID
	TenantName    string
	PropertyName  string
	Channel       ReminderChannel
	Message       string
	CustomMessage bool // True when the caller replaced the template
	Outcome       ReminderOutcome
	Results       ChannelResults
	SentAt        *time.Time
}

// NewReminder creates a reminder in the Pending outcome. The message is
// final at creation time; a custom message replaces the template
// entirely rather than appending to it.
func NewReminder(
	rentPaymentID uuid.UUID,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	tenantName string,
	propertyName string,
	channel ReminderChannel,
	message string,
	customMessage bool,
) (*Reminder, error) {
	if rentPaymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Rent payment ID cannot be empty")
	}
	if tenantID == uuid.Nil || propertyID == uuid.Nil {
		return nil, shared.ErrMissingBillingData
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Reminder channel is not valid")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Reminder message cannot be empty")
	}

	r := &Reminder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RentPaymentID:     rentPaymentID,
		TenantID:          tenantID,
		PropertyID:        propertyID,
		TenantName:        tenantName,
		PropertyName:      propertyName,
		Channel:           channel,
		Message:           message,
		CustomMessage:     customMessage,
		Outcome:           ReminderOutcomePending,
	}
	r.AddDomainEvent(NewReminderCreatedEvent(r))
	return r, nil
}

// RequestedChannels expands the channel selection into the concrete
// channels that must each be attempted.
func (r *Reminder) RequestedChannels() []ReminderChannel {
	if r.Channel == ReminderChannelBoth {
		return []ReminderChannel{ReminderChannelEmail, ReminderChannelSMS}
	}
	return []ReminderChannel{r.Channel}
}

// RecordResults stores the per-channel outcomes and resolves the overall
// outcome. Every requested channel must carry a result entry even when a
// sibling channel already failed. The reminder counts as Sent only when
// all requested channels delivered; a partial delivery on BOTH stays
// Pending with both attempts on record.
func (r *Reminder) RecordResults(results ChannelResults) error {
	if r.Outcome == ReminderOutcomeResolved {
		return shared.NewDomainError("INVALID_STATE", "Cannot record results on a resolved reminder")
	}
	requested := r.RequestedChannels()
	if len(results) != len(requested) {
		return shared.NewDomainError(shared.ErrCodeDispatchFailed,
			"Every requested channel must be attempted and recorded")
	}
	seen := make(map[ReminderChannel]bool, len(results))
	for _, result := range results {
		seen[result.Channel] = true
	}
	for _, channel := range requested {
		if !seen[channel] {
			return shared.NewDomainError(shared.ErrCodeDispatchFailed,
				"Missing result for requested channel: "+channel.String())
		}
	}

	r.Results = results
	allDelivered := true
	for _, result := range results {
		if !result.Delivered {
			allDelivered = false
			break
		}
	}
	if allDelivered {
		now := time.Now()
		r.Outcome = ReminderOutcomeSent
		r.SentAt = &now
	} else {
		r.Outcome = ReminderOutcomePending
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.AddDomainEvent(NewReminderDispatchedEvent(r))
	return nil
}

// Succeeded reports whether every requested channel delivered
func (r *Reminder) Succeeded() bool {
	return r.Outcome == ReminderOutcomeSent
}

// PartiallyDelivered reports whether at least one but not all requested
// channels delivered. Only possible for the BOTH selection.
func (r *Reminder) PartiallyDelivered() bool {
	if r.Outcome == ReminderOutcomeSent || len(r.Results) < 2 {
		return false
	}
	delivered := 0
	for _, result := range r.Results {
		if result.Delivered {
			delivered++
		}
	}
	return delivered > 0 && delivered < len(r.Results)
}

// MarkResolved closes the reminder once the underlying period is paid
func (r *Reminder) MarkResolved() error {
	if r.Outcome == ReminderOutcomeResolved {
		return shared.NewDomainError("INVALID_STATE", "Reminder is already resolved")
	}
	r.Outcome = ReminderOutcomeResolved
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
