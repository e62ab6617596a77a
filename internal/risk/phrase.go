package risk

import "fmt"

// DeadlinePhrase describes days remaining in words.
func DeadlinePhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %d day(s)", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d day(s)", days)
	}
}
