package utils

import "time"

const defaultTimeFormat = "2006-01-02 15:04:05"

var (
	configuredLocation *time.Location
	configuredFormat   = defaultTimeFormat
)

// InitTimezone sets the location and layout used by FormatTime. An empty
// format keeps the current layout.
func InitTimezone(loc *time.Location, format string) {
	configuredLocation = loc
	if format != "" {
		configuredFormat = format
	}
}

func FormatTime(t time.Time) string {
	if configuredLocation == nil {
		return t.Format(configuredFormat)
	}
	return t.In(configuredLocation).Format(configuredFormat)
}
