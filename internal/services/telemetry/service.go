package telemetry

import (
	"context"
	"sync"

	"beaconflow/analytics/internal/logger"
)

// Service is the process-wide dispatch entry point for analytics calls.
//
// It holds at most one active Provider and forwards every call to it.
// Fire-and-forget methods (Track, Identify, Screen, Reset, Flush) snapshot
// the provider and hand the work to a background goroutine, returning
// before the provider call has necessarily run. The *Sync variants block
// until the provider call completes.
//
// When no provider is configured every operation degrades: fire-and-forget
// calls are dropped (a debug-level log line is the only trace), flag
// queries answer with the caller-supplied default, and the remaining
// blocking calls no-op. Telemetry must never break application logic, so
// nothing here returns an error.
type Service struct {
	mu       sync.RWMutex
	provider Provider
	log      *logger.Logger
}

// New creates an independent Service with no provider configured. Most
// applications use the shared Default instance; tests build their own.
func New() *Service {
	return &Service{
		log: logger.New("telemetry"),
	}
}

// Configure installs p as the active provider, replacing any previous one.
// Replacement is atomic: concurrent dispatches observe either the old or
// the new provider, never a torn slot. There is no drain step — work
// already scheduled against the old provider still runs against it.
func (s *Service) Configure(p Provider) {
	s.mu.Lock()
	s.provider = p
	s.mu.Unlock()
}

// ConfigureSync installs p and returns once the slot update is committed.
func (s *Service) ConfigureSync(ctx context.Context, p Provider) {
	s.Configure(p)
}

// current snapshots the active provider under the read lock. A nil return
// means the service is unconfigured.
func (s *Service) current() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// dispatch schedules op against the current provider on a background
// goroutine. Each scheduled call captures its own provider reference, so a
// later Configure never redirects in-flight work. Unconfigured: drop.
func (s *Service) dispatch(name string, op func(ctx context.Context, p Provider)) {
	p := s.current()
	if p == nil {
		s.log.Debugf("no provider configured, dropping %s", name)
		return
	}
	go op(context.Background(), p)
}

// Track records a named event with optional properties, stamped with the
// current time. Fire-and-forget.
func (s *Service) Track(name string, properties Properties) {
	s.TrackEvent(NewEvent(name, properties))
}

// TrackEvent records a fully constructed event. Fire-and-forget.
func (s *Service) TrackEvent(event Event) {
	s.dispatch("track", func(ctx context.Context, p Provider) {
		p.Track(ctx, event)
	})
}

// TrackSync records event and blocks until the provider call completes.
// Unconfigured: no-op.
func (s *Service) TrackSync(ctx context.Context, event Event) {
	if p := s.current(); p != nil {
		p.Track(ctx, event)
	}
}

// Identify associates userID (with optional properties) with subsequent
// activity. Fire-and-forget.
func (s *Service) Identify(userID string, properties Properties) {
	s.IdentifyUser(User{UserID: userID, Properties: properties})
}

// IdentifyUser dispatches a fully constructed identify payload.
// Fire-and-forget.
func (s *Service) IdentifyUser(user User) {
	s.dispatch("identify", func(ctx context.Context, p Provider) {
		p.Identify(ctx, user)
	})
}

// Screen records a screen view. Fire-and-forget.
func (s *Service) Screen(name string, properties Properties) {
	s.ScreenView(ScreenView{Name: name, Properties: properties})
}

// ScreenView dispatches a fully constructed screen view. Fire-and-forget.
func (s *Service) ScreenView(view ScreenView) {
	s.dispatch("screen", func(ctx context.Context, p Provider) {
		p.Screen(ctx, view)
	})
}

// FeatureFlag queries a boolean feature flag, blocking until the provider
// answers. Unconfigured: returns defaultValue immediately.
func (s *Service) FeatureFlag(ctx context.Context, key string, defaultValue bool) bool {
	p := s.current()
	if p == nil {
		return defaultValue
	}
	return p.FeatureFlag(ctx, key, defaultValue)
}

// FeatureFlagPayload queries a feature flag's string payload, blocking
// until the provider answers. Unconfigured or unknown key: "".
func (s *Service) FeatureFlagPayload(ctx context.Context, key string) string {
	p := s.current()
	if p == nil {
		return ""
	}
	return p.FeatureFlagPayload(ctx, key)
}

// Reset clears any user association held by the provider, e.g. on logout.
// Fire-and-forget.
func (s *Service) Reset() {
	s.dispatch("reset", func(ctx context.Context, p Provider) {
		p.Reset(ctx)
	})
}

// ResetSync clears user association and blocks until done. Unconfigured:
// no-op.
func (s *Service) ResetSync(ctx context.Context) {
	if p := s.current(); p != nil {
		p.Reset(ctx)
	}
}

// Flush asks the provider to push any buffered data. Fire-and-forget.
func (s *Service) Flush() {
	s.dispatch("flush", func(ctx context.Context, p Provider) {
		p.Flush(ctx)
	})
}

// FlushSync asks the provider to push buffered data and blocks until done.
// Unconfigured: no-op.
func (s *Service) FlushSync(ctx context.Context) {
	if p := s.current(); p != nil {
		p.Flush(ctx)
	}
}
