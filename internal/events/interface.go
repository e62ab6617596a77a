package events

// EventPublisher is the write side used by services. A nil publisher is valid
// everywhere services accept one and simply disables events.
type EventPublisher interface {
	SendEvent(event Event) error
}

// Subscriber is the read side used by the HTTP event stream.
type Subscriber interface {
	// Subscribe returns a channel of events for projectID (0 = all projects)
	// and a function that ends the subscription.
	Subscribe(projectID int) (<-chan Event, func())
}

var (
	_ EventPublisher = (*Broker)(nil)
	_ EventPublisher = (*Client)(nil)
	_ Subscriber     = (*Broker)(nil)
)
