package pgsink

import (
	"sort"
	"strings"
	"testing"
	"time"

	"beaconflow/analytics/internal/services/telemetry"
)

func TestIDGeneratorOrdering(t *testing.T) {
	generator := newIDGenerator()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = generator.next()
	}

	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	for i := range ids {
		if ids[i] != sorted[i] {
			t.Fatalf("ids not monotonically sortable at %d: %s vs %s", i, ids[i], sorted[i])
		}
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestEncodeProperties(t *testing.T) {
	if got := string(encodeProperties(nil)); got != "{}" {
		t.Errorf("expected empty object for nil properties, got %s", got)
	}

	encoded := string(encodeProperties(telemetry.Properties{
		"price": 9.99,
		"when":  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}))

	for _, want := range []string{`"price":9.99`, `"when":"2024-03-15T10:00:00.000Z"`} {
		if !strings.Contains(encoded, want) {
			t.Errorf("expected %s in encoded properties, got %s", want, encoded)
		}
	}
}
