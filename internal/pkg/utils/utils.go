package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// ParseISODurationMinutes converts an ISO-8601 duration to minutes.
// Example: "PT2H10M" -> 130. Seconds are not expected in flight durations.
func ParseISODurationMinutes(duration string) (int, error) {
	matches := isoDurationPattern.FindStringSubmatch(duration)
	if matches == nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration: %q", duration)
	}

	var h, m int
	if matches[1] != "" {
		h, _ = strconv.Atoi(matches[1])
	}
	if matches[2] != "" {
		m, _ = strconv.Atoi(matches[2])
	}

	return h*60 + m, nil
}

// FormatINR formats whole rupees with Indian digit grouping.
// Example: 1234567 -> "₹12,34,567"
func FormatINR(amount int64) string {
	if amount == 0 {
		return "₹0"
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := strconv.FormatInt(amount, 10)

	// last group of three, then groups of two
	var result []byte
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if i != 0 && (count == 3 || (count > 3 && (count-3)%2 == 0)) {
			result = append([]byte{','}, result...)
		}
	}

	if negative {
		return "₹-" + string(result)
	}
	return "₹" + string(result)
}
