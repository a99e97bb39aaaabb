package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Context-entry insight rules. Every rule is checked independently, in
// this order; each fires at most once per entry.
var contextInsightRules = []struct {
	keywords []string
	insight  string
}{
	{[]string{"meeting", "appointment"}, "Meeting or appointment mentioned"},
	{[]string{"deadline", "due"}, "Deadline identified"},
	{[]string{"urgent", "important"}, "High priority item detected"},
	{[]string{"tomorrow", "today"}, "Time-sensitive item"},
	{[]string{"project", "work"}, "Work-related content"},
}

// ContextInsights labels a context entry's content.
func ContextInsights(content string) []string {
	lowered := strings.ToLower(content)
	var insights []string
	for _, rule := range contextInsightRules {
		if containsAny(lowered, rule.keywords) {
			insights = append(insights, rule.insight)
		}
	}
	return insights
}

// AggregateInsights combines recent context text and the current task list
// into at most five observations. The context-driven checks, including the
// time-of-day one, only run when there is context text to look at.
func AggregateInsights(recentContext string, tasks []TaskFacts, now time.Time) []string {
	var insights []string

	if recentContext != "" {
		lowered := strings.ToLower(recentContext)

		if containsAny(lowered, []string{"meeting", "call"}) {
			insights = append(insights, "Multiple meetings detected in recent context. Consider blocking focus time.")
		}
		if containsAny(lowered, []string{"deadline", "due"}) {
			insights = append(insights, "Deadline pressure identified. Prioritize time-sensitive tasks.")
		}
		if containsAny(lowered, []string{"project", "work"}) {
			insights = append(insights, "Work-heavy period detected. Consider work-life balance.")
		}

		switch hour := now.Hour(); {
		case hour < 9:
			insights = append(insights, "Early morning detected. Great time for important tasks.")
		case hour > 18:
			insights = append(insights, "Evening detected. Consider lighter tasks or planning for tomorrow.")
		}
	}

	if len(tasks) > 0 {
		overdue := 0
		highPriority := 0
		for _, t := range tasks {
			if t.Status == StatusCompleted {
				continue
			}
			if t.Deadline != nil && t.Deadline.Before(now) {
				overdue++
			}
			if t.Priority == PriorityHigh || t.Priority == PriorityUrgent {
				highPriority++
			}
		}

		if overdue > 0 {
			insights = append(insights, fmt.Sprintf("%d overdue task(s) detected. Consider rescheduling or prioritizing.", overdue))
		}
		if highPriority > 3 {
			insights = append(insights, "Many high-priority tasks detected. Consider focusing on 2-3 key items.")
		}
	}

	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}

var priorityMultiplier = map[Priority]float64{
	PriorityUrgent: 2.0,
	PriorityHigh:   1.5,
	PriorityMedium: 1.0,
	PriorityLow:    0.7,
}

// PriorityScores rates each task 0..100 by priority weight, deadline
// pressure and overlap with recent context, keyed by task id.
func PriorityScores(tasks []TaskFacts, recentContext string, now time.Time) map[string]int {
	scores := make(map[string]int, len(tasks))
	lowered := strings.ToLower(recentContext)

	for _, t := range tasks {
		score := 50.0

		if m, ok := priorityMultiplier[t.Priority]; ok {
			score *= m
		}

		if t.Deadline != nil {
			switch days := daysUntil(*t.Deadline, now); {
			case days <= 0:
				score *= 2.5
			case days <= 1:
				score *= 2.0
			case days <= 3:
				score *= 1.5
			case days <= 7:
				score *= 1.2
			}
		}

		if lowered != "" && contextOverlap(t, lowered) {
			score *= 1.3
		}

		rounded := int(math.Round(score))
		if rounded > 100 {
			rounded = 100
		}
		scores[t.ID] = rounded
	}
	return scores
}

// contextOverlap reports whether any word of the task's own text longer
// than three characters appears in the recent context.
func contextOverlap(t TaskFacts, loweredContext string) bool {
	parts := []string{t.Title, t.Description, t.Category}
	parts = append(parts, t.Tags...)
	words := strings.Fields(strings.ToLower(strings.Join(parts, " ")))

	for _, word := range words {
		if len(word) > 3 && strings.Contains(loweredContext, word) {
			return true
		}
	}
	return false
}
