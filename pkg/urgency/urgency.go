// Package urgency turns a minutes-until-response value into the text shown to agents.
//
// Two rules exist. Format is used by the heuristic analyzer and collapses anything
// of a day or more into "1 business day". FormatDays is used for model output and
// rounds to whole days instead. Both use the same "Respond within N minutes/hours"
// phrasing so results from either strategy read the same.
package urgency

import (
	"fmt"
	"math"
)

const (
	prefix = "Respond within "

	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour

	// MinMinutes and MaxMinutes bound the value accepted from model output
	MinMinutes = 5
	MaxMinutes = 7 * minutesPerDay
)

// Format renders minutes using the heuristic rule
func Format(minutes int) string {
	if s, ok := formatShort(minutes); ok {
		return s
	}
	return prefix + "1 business day"
}

// FormatDays renders minutes using the model-output rule. The value is clamped to
// [MinMinutes, MaxMinutes] first.
func FormatDays(minutes int) string {
	m := min(max(minutes, MinMinutes), MaxMinutes)
	if m < minutesPerHour {
		return fmt.Sprintf("%s%d minutes", prefix, m)
	}

	hours := roundDiv(m, minutesPerHour)
	if hours < 24 {
		return fmt.Sprintf("%s%d hours", prefix, hours)
	}
	return fmt.Sprintf("%s%d day(s)", prefix, roundDiv(hours, 24))
}

func formatShort(minutes int) (string, bool) {
	switch {
	case minutes < minutesPerHour:
		return fmt.Sprintf("%s%d minutes", prefix, minutes), true
	case minutes < minutesPerDay:
		return fmt.Sprintf("%s%d hours", prefix, roundDiv(minutes, minutesPerHour)), true
	default:
		return "", false
	}
}

func roundDiv(n, d int) int {
	return int(math.Round(float64(n) / float64(d)))
}
