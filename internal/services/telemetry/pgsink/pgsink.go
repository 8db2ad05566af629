// Package pgsink implements a telemetry provider that records analytics
// facts into PostgreSQL tables instead of shipping them to a SaaS vendor.
// Useful as an in-house warehouse sink, and as the flag backend for
// self-hosted feature flags.
package pgsink

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"beaconflow/analytics/internal/services/telemetry"
)

const schema = `
CREATE TABLE IF NOT EXISTS telemetry_events (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    properties  JSONB NOT NULL DEFAULT '{}',
    occurred_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS telemetry_identities (
    user_id    TEXT PRIMARY KEY,
    properties JSONB NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS telemetry_screen_views (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    properties JSONB NOT NULL DEFAULT '{}',
    viewed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS telemetry_feature_flags (
    key     TEXT PRIMARY KEY,
    enabled BOOLEAN NOT NULL DEFAULT false,
    payload TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the telemetry tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

// idGenerator produces monotonic, lexicographically sortable row ids so
// insertion order survives in the primary key.
type idGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDGenerator() *idGenerator {
	return &idGenerator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (g *idGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return strings.ToLower(id.String())
}

// Provider implements telemetry.Provider on a pgx connection pool.
//
// Write failures are swallowed per the provider contract: the worst
// outcome of a database problem is unrecorded analytics, never an error
// surfaced to application code. Failures are logged at debug level.
type Provider struct {
	pool   *pgxpool.Pool
	ids    *idGenerator
	logger *slog.Logger
}

var _ telemetry.Provider = (*Provider)(nil)

// New creates a Postgres sink over pool. The schema must already be in
// place; see Migrate.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		pool:   pool,
		ids:    newIDGenerator(),
		logger: logger,
	}
}

func encodeProperties(properties telemetry.Properties) []byte {
	normalized := telemetry.NormalizeProperties(properties)
	if len(normalized) == 0 {
		return []byte("{}")
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		// Normalized values are all JSON-encodable shapes; a failure here
		// means a pass-through sequence or map held something exotic.
		return []byte("{}")
	}
	return encoded
}

// Track inserts the event into telemetry_events.
func (p *Provider) Track(ctx context.Context, event telemetry.Event) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO telemetry_events (id, name, properties, occurred_at) VALUES ($1, $2, $3, $4)`,
		p.ids.next(), event.Name, encodeProperties(event.Properties), event.Timestamp)
	if err != nil {
		p.logger.Debug("failed to record event", "event_name", event.Name, "error", err)
	}
}

// Identify upserts the user's properties into telemetry_identities.
func (p *Provider) Identify(ctx context.Context, user telemetry.User) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO telemetry_identities (user_id, properties, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET properties = EXCLUDED.properties, updated_at = now()`,
		user.UserID, encodeProperties(user.Properties))
	if err != nil {
		p.logger.Debug("failed to record identity", "user_id", user.UserID, "error", err)
	}
}

// Screen inserts the view into telemetry_screen_views.
func (p *Provider) Screen(ctx context.Context, view telemetry.ScreenView) {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO telemetry_screen_views (id, name, properties) VALUES ($1, $2, $3)`,
		p.ids.next(), view.Name, encodeProperties(view.Properties))
	if err != nil {
		p.logger.Debug("failed to record screen view", "screen_name", view.Name, "error", err)
	}
}

// FeatureFlag answers from telemetry_feature_flags; defaultValue when the
// key is absent or the query fails.
func (p *Provider) FeatureFlag(ctx context.Context, key string, defaultValue bool) bool {
	var enabled bool
	err := p.pool.QueryRow(ctx,
		`SELECT enabled FROM telemetry_feature_flags WHERE key = $1`, key).Scan(&enabled)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Debug("feature flag lookup failed", "key", key, "error", err)
		}
		return defaultValue
	}
	return enabled
}

// FeatureFlagPayload answers from telemetry_feature_flags; "" when the key
// is absent or the query fails.
func (p *Provider) FeatureFlagPayload(ctx context.Context, key string) string {
	var payload string
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM telemetry_feature_flags WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Debug("feature flag payload lookup failed", "key", key, "error", err)
		}
		return ""
	}
	return payload
}

// Reset is a no-op: the sink keeps no per-session user association.
func (p *Provider) Reset(ctx context.Context) {}

// Flush is a no-op: every write is synchronous.
func (p *Provider) Flush(ctx context.Context) {}

// SetFeatureFlag upserts a flag definition. Administrative helper, not
// part of the provider capability contract.
func (p *Provider) SetFeatureFlag(ctx context.Context, key string, enabled bool, payload string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO telemetry_feature_flags (key, enabled, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET enabled = EXCLUDED.enabled, payload = EXCLUDED.payload`,
		key, enabled, payload)
	return err
}
