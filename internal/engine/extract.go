package engine

import (
	"regexp"
	"strings"
	"unicode"
)

// actionPhrases mark a sentence as actionable enough to surface as a task.
var actionPhrases = []string{
	"need to", "have to", "must", "should",
	"prepare", "finish", "complete", "write",
	"call", "email", "buy", "schedule",
	"book", "review", "update",
}

var (
	pronounModalPrefix = regexp.MustCompile(`(?i)^(i |we |you )(need to |have to |must |should )`)
	bareModalPrefix    = regexp.MustCompile(`(?i)^(need to |have to |must |should )`)
)

// ExtractTasks pulls up to three task-like sentences out of free text.
// A sentence qualifies when it contains an action phrase and its trimmed
// length is between 10 and 100 characters exclusive.
func ExtractTasks(content string) []string {
	sentences := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var tasks []string
	for _, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= 10 || len(trimmed) >= 100 {
			continue
		}
		if !containsAny(strings.ToLower(trimmed), actionPhrases) {
			continue
		}

		task := pronounModalPrefix.ReplaceAllString(trimmed, "")
		task = bareModalPrefix.ReplaceAllString(task, "")
		tasks = append(tasks, capitalize(task))

		if len(tasks) == 3 {
			break
		}
	}
	return tasks
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
