package shared

import "context"

// EventHandler reacts to domain events, a payment being recorded or a
// reminder falling due for instance.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types the handler wants.
	// An empty slice subscribes it to everything.
	EventTypes() []string
}

// EventPublisher emits domain events after an aggregate change commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages the handler registry.
type EventSubscriber interface {
	// Subscribe registers a handler. Without explicit eventTypes the
	// handler's own EventTypes decide what it receives.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full publish/subscribe surface.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
