package risk

import "strings"

// DoneKeywords returns the keywords that mark a status as finished.
func DoneKeywords() []string {
	return []string{"done", "completed", "finished", "closed", "deployed"}
}

// IsDoneStatus reports whether a status name contains a done-family keyword.
func IsDoneStatus(name string) bool {
	name = strings.ToLower(name)
	for _, kw := range DoneKeywords() {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
