package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// The slot grid is fixed for every practitioner and date: four one-hour
// morning slots and four one-hour afternoon slots, identified by their
// 24h start label. Occupancy varies per practitioner per date; the grid
// itself never changes at runtime.
var (
	morningSlots   = []string{"08:00", "09:00", "10:00", "11:00"}
	afternoonSlots = []string{"14:00", "15:00", "16:00", "17:00"}
)

// TotalSlots is the number of bookable slots on any given day.
const TotalSlots = 8

// MorningSlots returns the ordered morning slot labels.
func MorningSlots() []string {
	out := make([]string, len(morningSlots))
	copy(out, morningSlots)
	return out
}

// AfternoonSlots returns the ordered afternoon slot labels.
func AfternoonSlots() []string {
	out := make([]string, len(afternoonSlots))
	copy(out, afternoonSlots)
	return out
}

// DisplayLabel converts a 24h slot label to the 12h range string shown to
// patients, e.g. "08:00" -> "8:00 AM - 9:00 AM". The 11:00 slot crosses
// noon ("11:00 AM - 12:00 PM") and afternoon labels drop 12 hours
// ("14:00" -> "2:00 PM - 3:00 PM"). Labels that do not parse are returned
// unchanged.
func DisplayLabel(label string) string {
	hour, err := strconv.Atoi(strings.SplitN(label, ":", 2)[0])
	if err != nil || hour < 0 || hour > 23 {
		return label
	}
	return hourLabel(hour) + " - " + hourLabel(hour+1)
}

func hourLabel(hour int) string {
	suffix := "AM"
	display := hour
	if hour >= 12 {
		suffix = "PM"
		if hour > 12 {
			display = hour - 12
		}
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
