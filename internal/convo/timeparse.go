package convo

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// FlexTime is an epoch-millisecond timestamp decoded from any of the
// shapes the backend emits: epoch numbers in seconds or milliseconds,
// ISO-8601 strings, or nothing.
type FlexTime int64

// UnmarshalJSON accepts numbers and strings. Naive ISO strings (no zone
// or offset) are treated as UTC.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = FlexTime(NormalizeMillis(raw))
	return nil
}

// Time converts to a time.Time in UTC.
func (t FlexTime) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// NormalizeMillis converts a loosely-typed timestamp to epoch
// milliseconds. Epoch numbers are disambiguated by digit count: values
// below 1e12 are seconds, anything larger already milliseconds.
// Unparseable input normalizes to 0.
func NormalizeMillis(v any) int64 {
	switch tv := v.(type) {
	case nil:
		return 0
	case time.Time:
		return tv.UnixMilli()
	case int64:
		return epochToMillis(float64(tv))
	case int:
		return epochToMillis(float64(tv))
	case float64:
		return epochToMillis(tv)
	case json.Number:
		f, err := tv.Float64()
		if err != nil {
			return 0
		}
		return epochToMillis(f)
	case string:
		return parseTimeString(tv)
	default:
		return 0
	}
}

func epochToMillis(f float64) int64 {
	if f <= 0 {
		return 0
	}
	// 1e12 ms is Sep 2001; any plausible epoch-seconds value is below it.
	if f < 1e12 {
		return int64(f * 1000)
	}
	return int64(f)
}

func parseTimeString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Bare epoch numbers arrive as strings too.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return epochToMillis(f)
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UnixMilli()
		}
	}
	// Naive ISO strings carry no zone: treat as UTC.
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts.UnixMilli()
		}
	}
	return 0
}
