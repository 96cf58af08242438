package interfaces

// EventPublisher pushes domain events to an external pipeline. Delivery
// is best effort; callers must not fail user-visible work on a publish
// error.
type EventPublisher interface {
	Publish(topic string, event any) error
}
