package model

import "time"

// ParseTimestamp accepts RFC3339 or naive local date-time forms. Naive
// timestamps are interpreted in local time, matching the convention the
// model was trained under.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}
