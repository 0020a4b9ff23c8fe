package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD. Cycle dates and deadlines
// arrive in either form depending on the client.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
