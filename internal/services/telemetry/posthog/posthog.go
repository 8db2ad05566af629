// Package posthog bridges the telemetry facade to PostHog via the official
// posthog-go client. Batching, retries and transport are owned entirely by
// the vendor client; this package only translates facade calls into
// enqueued PostHog messages.
package posthog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	sdk "github.com/posthog/posthog-go"

	"beaconflow/analytics/internal/logger"
	"beaconflow/analytics/internal/services/telemetry"
)

// Config holds the PostHog project credentials and endpoint.
type Config struct {
	// ProjectAPIKey is the PostHog project API key. When empty the
	// provider stays client-less and every call degrades to a no-op, so a
	// missing key never breaks the host application.
	ProjectAPIKey string
	// Endpoint is the PostHog instance to send to.
	Endpoint string
}

// DefaultConfig returns a config pointed at PostHog cloud.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: "https://app.posthog.com",
	}
}

// Provider implements telemetry.Provider on top of the PostHog client.
//
// The client is built lazily on first use, per the provider contract: the
// dispatch service never drives setup. Until Identify is called, events
// are attributed to a generated anonymous distinct id; Reset discards the
// identified user and generates a fresh anonymous id.
type Provider struct {
	config *Config
	log    *logger.Logger

	mu          sync.Mutex
	client      sdk.Client
	initialized bool
	distinctID  string
}

var _ telemetry.Provider = (*Provider)(nil)

// New creates a PostHog provider. No connection is made until the first
// dispatched call.
func New(config *Config) *Provider {
	if config == nil {
		config = DefaultConfig()
	}
	return &Provider{
		config:     config,
		log:        logger.New("telemetry.posthog"),
		distinctID: uuid.NewString(),
	}
}

// ensureClient lazily builds the PostHog client. Returns nil when no API
// key is configured or construction failed; callers treat nil as "drop".
func (p *Provider) ensureClient() sdk.Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureClientLocked()
}

func (p *Provider) ensureClientLocked() sdk.Client {
	if p.initialized {
		return p.client
	}
	p.initialized = true

	if p.config.ProjectAPIKey == "" {
		p.log.Debug("no PostHog API key, so analytics won't track")
		return nil
	}

	client, err := sdk.NewWithConfig(p.config.ProjectAPIKey, sdk.Config{
		Endpoint: p.config.Endpoint,
	})
	if err != nil {
		p.log.Debugf("failed to create PostHog client: %v", err)
		return nil
	}
	p.client = client
	return p.client
}

func (p *Provider) currentDistinctID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distinctID
}

// Track enqueues a capture message. Enqueue failures are swallowed; the
// vendor client owns delivery.
func (p *Provider) Track(ctx context.Context, event telemetry.Event) {
	client := p.ensureClient()
	if client == nil {
		return
	}

	err := client.Enqueue(sdk.Capture{
		DistinctId: p.currentDistinctID(),
		Event:      event.Name,
		Timestamp:  event.Timestamp,
		Properties: sdk.Properties(telemetry.NormalizeProperties(event.Properties)),
	})
	if err != nil {
		p.log.Debugf("failed to enqueue capture: %v", err)
	}
}

// Identify enqueues an identify message and attributes subsequent events
// to the identified user.
func (p *Provider) Identify(ctx context.Context, user telemetry.User) {
	p.mu.Lock()
	client := p.ensureClientLocked()
	p.distinctID = user.UserID
	p.mu.Unlock()
	if client == nil {
		return
	}

	err := client.Enqueue(sdk.Identify{
		DistinctId: user.UserID,
		Properties: sdk.Properties(telemetry.NormalizeProperties(user.Properties)),
	})
	if err != nil {
		p.log.Debugf("failed to enqueue identify: %v", err)
	}
}

// Screen enqueues a "$screen" capture, PostHog's representation of a
// screen view.
func (p *Provider) Screen(ctx context.Context, view telemetry.ScreenView) {
	client := p.ensureClient()
	if client == nil {
		return
	}

	properties := telemetry.NormalizeProperties(view.Properties)
	merged := make(sdk.Properties, len(properties)+1)
	for key, value := range properties {
		merged[key] = value
	}
	merged["$screen_name"] = view.Name

	err := client.Enqueue(sdk.Capture{
		DistinctId: p.currentDistinctID(),
		Event:      "$screen",
		Properties: merged,
	})
	if err != nil {
		p.log.Debugf("failed to enqueue screen view: %v", err)
	}
}

// FeatureFlag asks PostHog whether the flag is enabled for the current
// distinct id. Any error or non-boolean answer yields defaultValue.
func (p *Provider) FeatureFlag(ctx context.Context, key string, defaultValue bool) bool {
	client := p.ensureClient()
	if client == nil {
		return defaultValue
	}

	value, err := client.IsFeatureEnabled(sdk.FeatureFlagPayload{
		Key:        key,
		DistinctId: p.currentDistinctID(),
	})
	if err != nil {
		p.log.Debugf("feature flag lookup failed for %q: %v", key, err)
		return defaultValue
	}
	if enabled, ok := value.(bool); ok {
		return enabled
	}
	return defaultValue
}

// FeatureFlagPayload returns the flag's payload string; "" when the key is
// unknown or the lookup fails.
func (p *Provider) FeatureFlagPayload(ctx context.Context, key string) string {
	client := p.ensureClient()
	if client == nil {
		return ""
	}

	payload, err := client.GetFeatureFlagPayload(sdk.FeatureFlagPayload{
		Key:        key,
		DistinctId: p.currentDistinctID(),
	})
	if err != nil {
		p.log.Debugf("feature flag payload lookup failed for %q: %v", key, err)
		return ""
	}
	return payload
}

// Reset discards the identified user and starts a fresh anonymous session.
func (p *Provider) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.distinctID = uuid.NewString()
}

// Flush pushes buffered messages to PostHog. The vendor client only
// flushes on its batch interval or on Close, so the client is closed and
// rebuilt lazily on next use.
func (p *Provider) Flush(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return
	}
	if err := p.client.Close(); err != nil {
		p.log.Debugf("failed to flush PostHog client: %v", err)
	}
	p.client = nil
	p.initialized = false
}

// Close flushes and releases the underlying client. Call on application
// shutdown.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	p.initialized = false
	return err
}
