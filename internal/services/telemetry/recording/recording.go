// Package recording provides an in-memory telemetry provider that stores
// every call for later assertion. Test suites and previews configure it in
// place of a real vendor provider.
package recording

import (
	"context"
	"sync"

	"beaconflow/analytics/internal/services/telemetry"
)

// Provider records tracked events, identify payloads and screen views in
// insertion order, counts reset/flush invocations, and answers feature-flag
// queries from maps populated via the explicit setters. All access is
// serialized on one mutex, so insertion order equals call-completion order.
type Provider struct {
	mu         sync.Mutex
	events     []telemetry.Event
	users      []telemetry.User
	screens    []telemetry.ScreenView
	flags      map[string]bool
	payloads   map[string]string
	resetCount int
	flushCount int
}

var _ telemetry.Provider = (*Provider)(nil)

// New creates an empty recording provider.
func New() *Provider {
	return &Provider{
		flags:    make(map[string]bool),
		payloads: make(map[string]string),
	}
}

// Track appends event to the event log.
func (p *Provider) Track(ctx context.Context, event telemetry.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Identify appends user to the user log.
func (p *Provider) Identify(ctx context.Context, user telemetry.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, user)
}

// Screen appends view to the screen log.
func (p *Provider) Screen(ctx context.Context, view telemetry.ScreenView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screens = append(p.screens, view)
}

// FeatureFlag answers from the flag map; defaultValue when the key was
// never set.
func (p *Provider) FeatureFlag(ctx context.Context, key string, defaultValue bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if value, ok := p.flags[key]; ok {
		return value
	}
	return defaultValue
}

// FeatureFlagPayload answers from the payload map; "" when the key was
// never set.
func (p *Provider) FeatureFlagPayload(ctx context.Context, key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payloads[key]
}

// Reset clears the event, user and screen logs and increments the reset
// counter. The flag maps and the flush counter are left untouched.
func (p *Provider) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.users = nil
	p.screens = nil
	p.resetCount++
}

// Flush increments the flush counter. Nothing is buffered, so there is
// nothing else to do.
func (p *Provider) Flush(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushCount++
}

// SetFeatureFlag binds key to value for subsequent FeatureFlag queries.
func (p *Provider) SetFeatureFlag(key string, value bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flags[key] = value
}

// SetFeatureFlagPayload binds key to payload for subsequent
// FeatureFlagPayload queries.
func (p *Provider) SetFeatureFlagPayload(key, payload string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads[key] = payload
}

// ClearAll wipes every log, both flag maps and both counters. Strictly
// broader than Reset; intended for test teardown only and deliberately not
// part of the provider capability contract.
func (p *Provider) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.users = nil
	p.screens = nil
	p.flags = make(map[string]bool)
	p.payloads = make(map[string]string)
	p.resetCount = 0
	p.flushCount = 0
}

// Events returns a copy of the event log.
func (p *Provider) Events() []telemetry.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]telemetry.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Users returns a copy of the user log.
func (p *Provider) Users() []telemetry.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]telemetry.User, len(p.users))
	copy(out, p.users)
	return out
}

// Screens returns a copy of the screen log.
func (p *Provider) Screens() []telemetry.ScreenView {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]telemetry.ScreenView, len(p.screens))
	copy(out, p.screens)
	return out
}

// EventCount returns the number of recorded events.
func (p *Provider) EventCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// LastEvent returns the most recently recorded event, if any.
func (p *Provider) LastEvent() (telemetry.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return telemetry.Event{}, false
	}
	return p.events[len(p.events)-1], true
}

// ResetCount returns the number of Reset calls since construction or the
// last ClearAll.
func (p *Provider) ResetCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resetCount
}

// FlushCount returns the number of Flush calls since construction or the
// last ClearAll.
func (p *Provider) FlushCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushCount
}
