package telemetry

import (
	"context"
	"sync"
)

// Package-level shared instance, built lazily on first use. The
// constructor stays public so tests and previews can build isolated
// services instead of going through the shared one.
var (
	defaultOnce    sync.Once
	defaultService *Service
)

// Default returns the shared Service instance.
func Default() *Service {
	defaultOnce.Do(func() {
		defaultService = New()
	})
	return defaultService
}

// Configure installs p on the shared instance.
func Configure(p Provider) {
	Default().Configure(p)
}

// Track records an event through the shared instance.
func Track(name string, properties Properties) {
	Default().Track(name, properties)
}

// Identify associates a user through the shared instance.
func Identify(userID string, properties Properties) {
	Default().Identify(userID, properties)
}

// Screen records a screen view through the shared instance.
func Screen(name string, properties Properties) {
	Default().Screen(name, properties)
}

// FeatureFlag queries a flag through the shared instance.
func FeatureFlag(ctx context.Context, key string, defaultValue bool) bool {
	return Default().FeatureFlag(ctx, key, defaultValue)
}

// FeatureFlagPayload queries a flag payload through the shared instance.
func FeatureFlagPayload(ctx context.Context, key string) string {
	return Default().FeatureFlagPayload(ctx, key)
}

// Reset clears user association through the shared instance.
func Reset() {
	Default().Reset()
}

// Flush pushes buffered data through the shared instance.
func Flush() {
	Default().Flush()
}
