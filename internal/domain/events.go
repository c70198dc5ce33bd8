package domain

import "time"

// DomainEvent is the interface implemented by all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}
