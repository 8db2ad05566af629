package telemetry

import "context"

// Provider is the capability contract every analytics backend must satisfy.
//
// Implementations may do network I/O inside any method. No ordering is
// guaranteed between two operations invoked concurrently on the same
// provider; an implementation is free to serialize or parallelize
// internally, but each operation's observable side effect should apply
// atomically (a Track call must not partially insert into an internal
// store).
//
// Methods deliberately return no error: a vendor failure is swallowed at
// the provider boundary and never surfaces to application code. Recoverable
// conditions degrade instead — FeatureFlag returns the caller-supplied
// default and FeatureFlagPayload returns "" when the key is unknown.
//
// A vendor-backed provider is expected to self-initialize lazily on first
// use; the dispatch service never drives provider setup.
type Provider interface {
	Track(ctx context.Context, event Event)
	Identify(ctx context.Context, user User)
	Screen(ctx context.Context, view ScreenView)
	FeatureFlag(ctx context.Context, key string, defaultValue bool) bool
	FeatureFlagPayload(ctx context.Context, key string) string
	Reset(ctx context.Context)
	Flush(ctx context.Context)
}
