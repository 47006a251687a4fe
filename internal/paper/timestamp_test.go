package paper

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampCanonicalForm(t *testing.T) {
	parsed := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{"parsed time", NewTimestamp(parsed), "2023-01-15T10:30:00Z"},
		{"rfc3339 text promotes", RawTimestamp("2023-01-15T10:30:00Z"), "2023-01-15T10:30:00Z"},
		{"rfc3339 with offset keeps zone", RawTimestamp("2023-01-15T10:30:00+02:00"), "2023-01-15T10:30:00+02:00"},
		{"non-rfc3339 passes through", RawTimestamp("January 15, 2023"), "January 15, 2023"},
		{"date without zone passes through", RawTimestamp("2023-01-15"), "2023-01-15"},
		{"zero", Timestamp{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimestampIsZero(t *testing.T) {
	if !(Timestamp{}).IsZero() {
		t.Error("zero Timestamp IsZero() = false, want true")
	}
	if RawTimestamp("2023-01-15").IsZero() {
		t.Error("raw Timestamp IsZero() = true, want false")
	}
	if NewTimestamp(time.Now()).IsZero() {
		t.Error("parsed Timestamp IsZero() = true, want false")
	}
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Timestamp
	}{
		{"parsed", NewTimestamp(time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC))},
		{"raw text", RawTimestamp("submitted last week")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			var out Timestamp
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			if out.String() != tt.in.String() {
				t.Errorf("round trip = %q, want %q", out.String(), tt.in.String())
			}
		})
	}
}

func TestTimestampTime(t *testing.T) {
	parsed := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)

	if got, ok := NewTimestamp(parsed).Time(); !ok || !got.Equal(parsed) {
		t.Errorf("Time() = (%v, %v), want (%v, true)", got, ok, parsed)
	}
	if _, ok := RawTimestamp("not a time").Time(); ok {
		t.Error("Time() ok = true for raw text, want false")
	}
}
