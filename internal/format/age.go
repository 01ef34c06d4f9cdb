package format

import "strconv"

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
	week   = 7 * day
	month  = 30 * day
)

// Age formats an age in seconds. Negative ages (clock skew) read as "now".
func Age(seconds int64) string {
	switch {
	case seconds < minute:
		return "now"
	case seconds < hour:
		return strconv.FormatInt(seconds/minute, 10) + "m"
	case seconds < day:
		return strconv.FormatInt(seconds/hour, 10) + "h"
	case seconds < week:
		return strconv.FormatInt(seconds/day, 10) + "d"
	case seconds < month:
		return strconv.FormatInt(seconds/week, 10) + "w"
	default:
		return strconv.FormatInt(seconds/month, 10) + "mo"
	}
}
