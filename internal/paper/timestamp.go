package paper

import (
	"encoding/json"
	"time"
)

// Timestamp holds a feed timestamp that may arrive already parsed or as
// pre-formatted text (upstream feed formats vary). Exactly one of the two
// forms is set; the zero value means "absent". Raw text passes through
// unchanged so a string lacking a timezone is never silently rewritten.
type Timestamp struct {
	time time.Time
	raw  string
}

// NewTimestamp wraps a parsed time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{time: t}
}

// RawTimestamp wraps pre-formatted timestamp text. If the text parses as
// RFC3339 it is promoted to the parsed form, so round-trips through
// serialization converge on one representation.
func RawTimestamp(s string) Timestamp {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Timestamp{time: t}
	}
	return Timestamp{raw: s}
}

// Time returns the parsed time and whether one is set.
func (ts Timestamp) Time() (time.Time, bool) {
	return ts.time, !ts.time.IsZero()
}

// IsZero reports whether the timestamp is absent.
func (ts Timestamp) IsZero() bool {
	return ts.time.IsZero() && ts.raw == ""
}

// String returns the canonical persisted form: RFC3339 for parsed times,
// the original text otherwise.
func (ts Timestamp) String() string {
	if !ts.time.IsZero() {
		return ts.time.Format(time.RFC3339)
	}
	return ts.raw
}

// MarshalJSON encodes the canonical string form.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts a JSON string, keeping unparseable text as-is.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = RawTimestamp(s)
	return nil
}
