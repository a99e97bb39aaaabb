package engine

import (
	"strings"
	"time"
)

// Suggestion is the full enrichment record produced by Classify.
type Suggestion struct {
	SuggestedTitle       string     `json:"suggestedTitle"`
	SuggestedDescription string     `json:"suggestedDescription,omitempty"`
	SuggestedCategory    string     `json:"suggestedCategory"`
	SuggestedPriority    Priority   `json:"suggestedPriority"`
	SuggestedDeadline    *time.Time `json:"suggestedDeadline,omitempty"`
	SuggestedTags        []string   `json:"suggestedTags"`
	Confidence           float64    `json:"confidence"`
	Reasoning            string     `json:"reasoning"`
}

// Classification rules are ordered; the first rule whose keyword matches
// wins its bucket.

type categoryRule struct {
	keywords []string
	category string
	tags     []string
	bump     float64
}

var categoryRules = []categoryRule{
	{[]string{"meeting", "call", "presentation"}, "Work", []string{"meeting", "communication"}, 0.1},
	{[]string{"learn", "study", "course"}, "Learning", []string{"education", "skill-development"}, 0.1},
	{[]string{"buy", "shop", "purchase"}, "Shopping", []string{"shopping", "purchase"}, 0},
	{[]string{"doctor", "health", "gym"}, "Health", []string{"health", "wellness"}, 0.1},
}

type priorityRule struct {
	keywords []string
	priority Priority
	bump     float64
	note     string
}

var priorityRules = []priorityRule{
	{[]string{"urgent", "asap", "emergency", "critical"}, PriorityUrgent, 0.2, ". Urgency keywords detected"},
	{[]string{"important", "deadline", "meeting", "presentation"}, PriorityHigh, 0.1, ". High importance indicators found"},
	{[]string{"review", "update", "plan"}, PriorityMedium, 0, ""},
	{[]string{"someday", "maybe", "optional"}, PriorityLow, 0, ". Low priority indicators found"},
}

var categoryDescriptions = map[string]string{
	"Work":     "Work-related task requiring professional attention and timely completion.",
	"Learning": "Educational activity to enhance knowledge and skills.",
	"Health":   "Health-related activity important for well-being.",
	"Shopping": "Purchase or shopping task to acquire needed items.",
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Classify derives category, priority, tags, an optional deadline and a
// confidence from free task text. recentContext carries the contents of up
// to the five most recent context entries, newest first, and is only used
// for deadline inference.
func Classify(title, description string, recentContext []string, now time.Time) Suggestion {
	content := strings.ToLower(title + " " + description)

	s := Suggestion{
		SuggestedTitle:       title,
		SuggestedDescription: description,
		SuggestedCategory:    "Personal",
		SuggestedPriority:    PriorityMedium,
		Confidence:           0.7,
		Reasoning:            "Based on task content analysis",
	}

	var tags []string
	for _, rule := range categoryRules {
		if containsAny(content, rule.keywords) {
			s.SuggestedCategory = rule.category
			tags = append(tags, rule.tags...)
			s.Confidence += rule.bump
			break
		}
	}

	for _, rule := range priorityRules {
		if containsAny(content, rule.keywords) {
			s.SuggestedPriority = rule.priority
			s.Confidence += rule.bump
			s.Reasoning += rule.note
			break
		}
	}

	if deadline, note := inferDeadline(recentContext, now); deadline != nil {
		s.SuggestedDeadline = deadline
		s.Reasoning += note
	}

	if s.SuggestedDescription == "" {
		s.SuggestedDescription = categoryDescriptions[s.SuggestedCategory]
	}

	tags = append(tags, timeOfDayTag(now))
	s.SuggestedTags = dedupe(tags)

	if s.Confidence > 1 {
		s.Confidence = 1
	}
	return s
}

// inferDeadline scans recent context text for time references. First match
// wins: tomorrow, next week, then friday/end of week.
func inferDeadline(recentContext []string, now time.Time) (*time.Time, string) {
	if len(recentContext) == 0 {
		return nil, ""
	}
	if len(recentContext) > 5 {
		recentContext = recentContext[:5]
	}
	text := strings.ToLower(strings.Join(recentContext, " "))

	switch {
	case strings.Contains(text, "tomorrow"):
		d := now.Add(24 * time.Hour)
		return &d, ". Tomorrow deadline inferred from context"
	case strings.Contains(text, "next week"):
		d := now.Add(7 * 24 * time.Hour)
		return &d, ". Next week deadline inferred from context"
	case strings.Contains(text, "friday"), strings.Contains(text, "end of week"):
		d := now.AddDate(0, 0, 5-int(now.Weekday()))
		return &d, ". End of week deadline inferred"
	}
	return nil, ""
}

func timeOfDayTag(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
