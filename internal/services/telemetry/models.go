// Package telemetry provides a vendor-agnostic analytics facade.
//
// Application code emits events, identity updates, screen views and
// feature-flag queries through the Service; the actual delivery is delegated
// to whichever Provider is currently configured. Swapping the analytics
// vendor never requires touching call sites:
// - Fire-and-forget dispatch with blocking variants for tests and shutdown
// - Graceful degradation when no provider is configured
// - Property normalization into provider-transportable shapes
package telemetry

import "time"

// Properties is a string-keyed bag of event, user or screen attributes.
// Values may be of any type; provider implementations run them through
// NormalizeProperties before handing them to a vendor SDK.
type Properties map[string]any

// Event describes one analytics fact: a named occurrence with optional
// properties and a timestamp. Events are plain values and must not be
// mutated after construction.
type Event struct {
	Name       string
	Properties Properties
	Timestamp  time.Time
}

// NewEvent creates an Event stamped with the current time.
func NewEvent(name string, properties Properties) Event {
	return Event{
		Name:       name,
		Properties: properties,
		Timestamp:  time.Now(),
	}
}

// User is the payload of an identify operation. It exists only for the
// duration of one dispatch call.
type User struct {
	UserID     string
	Properties Properties
}

// ScreenView describes a screen (or page) view. Same shape and lifecycle
// as Event, minus the timestamp.
type ScreenView struct {
	Name       string
	Properties Properties
}
