package tools

import (
	"fmt"
	"strings"
	"time"
)

// Accepted pickup formats. The 24-hour layout is tried before the
// 12-hour ones so "14:30" never half-matches an AM/PM layout.
var (
	pickupDateLayouts = []string{"02-01-2006", "2006-01-02"}
	pickupTimeLayouts = []string{"15:04", "3:04 PM", "3:04PM"}
)

// ParsePickupTime combines a date string (dd-MM-yyyy or yyyy-MM-dd) and a
// time string (HH:MM 24-hour, or H:MM AM/PM) into epoch milliseconds in
// the server's local time.
func ParsePickupTime(dateStr, timeStr string) (int64, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)

	var day time.Time
	var err error
	parsed := false
	for _, layout := range pickupDateLayouts {
		if day, err = time.ParseInLocation(layout, dateStr, time.Local); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return 0, fmt.Errorf("invalid date %q: use dd-MM-yyyy or yyyy-MM-dd", dateStr)
	}

	var clock time.Time
	parsed = false
	for _, layout := range pickupTimeLayouts {
		if clock, err = time.Parse(layout, timeStr); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return 0, fmt.Errorf("invalid time %q: use HH:MM (24h) or H:MM AM/PM", timeStr)
	}

	pickup := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local)
	return pickup.UnixMilli(), nil
}
