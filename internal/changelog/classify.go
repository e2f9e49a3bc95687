package changelog

import (
	"fmt"
	"strings"
)

type rule struct {
	prefix   string
	category Category
}

// rules are evaluated top to bottom, the first matching prefix wins
var rules = []rule{
	{prefix: "feat", category: CategoryFeature},
	{prefix: "fix", category: CategoryFix},
	{prefix: "config", category: CategoryConfiguration},
	{prefix: "chore", category: CategoryChore},
}

// Classify returns the category of a commit message.
// Matching is a case-insensitive prefix test on the whole message; anything unmatched is CategoryOther.
func Classify(message string) Category {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if strings.HasPrefix(lower, r.prefix) {
			return r.category
		}
	}
	return CategoryOther
}

// TypePrefix returns the text before the first colon, or an empty string when there is none
func TypePrefix(message string) string {
	idx := strings.Index(message, ":")
	if idx == -1 {
		return ""
	}
	return message[:idx]
}

// Description strips the first "<prefix>:" occurrence from the message and trims it
func Description(message string) string {
	if !strings.Contains(message, ":") {
		return strings.TrimSpace(message)
	}
	return strings.TrimSpace(strings.Replace(message, TypePrefix(message)+":", "", 1))
}

// FormatLine renders a commit as a Markdown list item
func FormatLine(commit *Commit) string {
	return fmt.Sprintf("- ([%s](%s)) - <%s> - %s",
		commit.ShortSHA(),
		commit.URL,
		commit.AuthorName,
		Description(commit.Message))
}
