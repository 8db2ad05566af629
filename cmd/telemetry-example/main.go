package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"beaconflow/analytics/internal/services/telemetry"
	"beaconflow/analytics/internal/services/telemetry/posthog"
	"beaconflow/analytics/internal/services/telemetry/recording"
)

// Example demonstrating the telemetry facade: configure a provider once,
// emit events from anywhere, swap providers without touching call sites.
func main() {
	ctx := context.Background()

	// A PostHog provider; with no POSTHOG_PROJECT_KEY set it degrades
	// gracefully and nothing is sent anywhere.
	provider := posthog.New(&posthog.Config{
		ProjectAPIKey: os.Getenv("POSTHOG_PROJECT_KEY"),
		Endpoint:      "https://app.posthog.com",
	})
	defer provider.Close()

	telemetry.Configure(provider)

	// Example 1: user signup flow
	fmt.Println("=== User Signup Flow ===")

	telemetry.Identify("user_12345", telemetry.Properties{
		"email":     "john.doe@example.com",
		"plan":      "free",
		"createdAt": time.Now(),
	})
	fmt.Println("✓ Identified user")

	telemetry.Track("signed up", telemetry.Properties{
		"referrer": "newsletter",
		"trial":    true,
	})
	fmt.Println("✓ Tracked signup event")

	// Example 2: screen views and purchases
	fmt.Println("\n=== Purchase Flow ===")

	telemetry.Screen("checkout", telemetry.Properties{"items": 2})
	telemetry.Track("purchase", telemetry.Properties{
		"price":    9.99,
		"currency": "USD",
	})
	fmt.Println("✓ Tracked screen view and purchase")

	// Example 3: feature flags (blocking queries)
	fmt.Println("\n=== Feature Flags ===")

	darkMode := telemetry.FeatureFlag(ctx, "dark-mode", false)
	fmt.Printf("✓ dark-mode enabled: %v\n", darkMode)

	payload := telemetry.FeatureFlagPayload(ctx, "pricing-experiment")
	fmt.Printf("✓ pricing-experiment payload: %q\n", payload)

	// Example 4: swapping to a recording provider (e.g. for a preview
	// build) without touching any call site
	fmt.Println("\n=== Provider Swap ===")

	recorder := recording.New()
	telemetry.Configure(recorder)

	service := telemetry.Default()
	service.TrackSync(ctx, telemetry.NewEvent("previewed", nil))

	if last, ok := recorder.LastEvent(); ok {
		fmt.Printf("✓ Recording provider captured %q\n", last.Name)
	}

	// Flush before exit; the PostHog provider's own Close also flushes.
	service.FlushSync(ctx)

	fmt.Println("\n=== Telemetry Example Complete ===")
	fmt.Println("Note: with no POSTHOG_PROJECT_KEY, events are dropped by the degraded provider")
}
