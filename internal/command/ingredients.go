package command

import "strings"

// ParseIngredients splits comma-separated text into trimmed, non-empty
// ingredient entries.
func ParseIngredients(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
