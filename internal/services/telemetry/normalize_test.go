package telemetry

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNormalizePassThrough(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "string", value: "hello"},
		{name: "int", value: 42},
		{name: "int64", value: int64(1 << 40)},
		{name: "float64", value: 9.99},
		{name: "bool true", value: true},
		{name: "bool false", value: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := NormalizeProperties(Properties{"k": tt.value})
			if normalized["k"] != tt.value {
				t.Errorf("expected %v (%T) to pass through, got %v (%T)",
					tt.value, tt.value, normalized["k"], normalized["k"])
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	props := Properties{
		"plan":    "pro",
		"seats":   12,
		"price":   9.99,
		"trial":   false,
		"blocked": true,
	}

	once := NormalizeProperties(props)
	twice := NormalizeProperties(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent: %v != %v", once, twice)
	}
}

func TestNormalizeBooleanStaysBoolean(t *testing.T) {
	normalized := NormalizeProperties(Properties{"k": true})

	value, ok := normalized["k"].(bool)
	if !ok {
		t.Fatalf("expected bool, got %T (%v)", normalized["k"], normalized["k"])
	}
	if value != true {
		t.Errorf("expected true, got %v", value)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 10, 30, 0, 250_000_000, time.UTC)

	normalized := NormalizeProperties(Properties{"k": instant})

	rendered, ok := normalized["k"].(string)
	if !ok {
		t.Fatalf("expected string rendering of time.Time, got %T", normalized["k"])
	}

	if want := "2024"; !strings.Contains(rendered, want) {
		t.Errorf("expected rendered timestamp %q to contain year %q", rendered, want)
	}

	parsed, err := time.Parse(timestampLayout, rendered)
	if err != nil {
		t.Fatalf("rendered timestamp %q does not parse back: %v", rendered, err)
	}
	if !parsed.Equal(instant) {
		t.Errorf("round trip lost the instant: %v != %v", parsed, instant)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := NormalizeProperties(nil); got != nil {
		t.Errorf("expected nil in, nil out, got %v", got)
	}

	empty := Properties{}
	if got := NormalizeProperties(empty); len(got) != 0 {
		t.Errorf("expected empty in, empty out, got %v", got)
	}
}

func TestNormalizeSequenceAndMapPassThrough(t *testing.T) {
	sequence := []any{"a", 1, true}
	nested := map[string]any{"inner": 1}

	normalized := NormalizeProperties(Properties{
		"seq": sequence,
		"map": nested,
	})

	// Elements are deliberately not normalized recursively.
	if !reflect.DeepEqual(normalized["seq"], sequence) {
		t.Errorf("sequence changed: %v", normalized["seq"])
	}
	if !reflect.DeepEqual(normalized["map"], nested) {
		t.Errorf("nested map changed: %v", normalized["map"])
	}
}

type exoticValue struct {
	A int
	B string
}

func TestNormalizeFallbackToString(t *testing.T) {
	value := exoticValue{A: 1, B: "x"}

	normalized := NormalizeProperties(Properties{"k": value})

	rendered, ok := normalized["k"].(string)
	if !ok {
		t.Fatalf("expected string fallback, got %T", normalized["k"])
	}
	if want := fmt.Sprintf("%v", value); rendered != want {
		t.Errorf("expected %q, got %q", want, rendered)
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	props := Properties{
		"plan":  "pro",
		"when":  time.Now(),
		"count": 3,
	}

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				NormalizeProperties(props)
			}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}
