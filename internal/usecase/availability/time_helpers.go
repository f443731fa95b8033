package availability

import (
	"fmt"
	"time"
)

// parseDayTime combines a calendar date with an "HH:MM" working-hours label
// in the business time zone.
func parseDayTime(date, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
	if err != nil {
		// Some provider configurations return seconds.
		t, err = time.ParseInLocation("2006-01-02 15:04:05", date+" "+hm, loc)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse working hours %q %q: %w", date, hm, err)
	}
	return t, nil
}

// Record datetimes arrive either with an explicit offset or as a local
// timestamp in the business time zone.
var recordLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseProviderDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range recordLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}
