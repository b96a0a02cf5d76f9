package render

import "strings"

// DateClass is the pill category of a task's due token.
type DateClass string

// Pill categories.
const (
	ClassToday    DateClass = "today"
	ClassTomorrow DateClass = "tomorrow"
	ClassWeek     DateClass = "week"
)

// Classify buckets a due token by substring match, not date arithmetic:
// a token containing today's ISO date is "today", one containing the word
// "tomorrow" is "tomorrow", and anything else is "week".
func Classify(due, today string) DateClass {
	switch {
	case today != "" && strings.Contains(due, today):
		return ClassToday
	case strings.Contains(due, "tomorrow"):
		return ClassTomorrow
	default:
		return ClassWeek
	}
}
