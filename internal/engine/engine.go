// Package engine holds the rule-based enrichment logic behind the app's
// "AI" features. Everything here is a pure function over task and context
// fields plus a caller-supplied clock; the stores own all mutable state.
package engine

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// TaskFacts is the read-only view of a task the engine works from.
type TaskFacts struct {
	ID          string
	Title       string
	Description string
	Category    string
	Priority    Priority
	Status      Status
	Deadline    *time.Time
	Tags        []string
}

// PriorityRank orders priorities for sorting (urgent=4 ... low=1).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

var priorityBonus = map[Priority]int{
	PriorityUrgent: 40,
	PriorityHigh:   30,
	PriorityMedium: 20,
	PriorityLow:    10,
}

var categoryBonus = map[string]int{
	"Work":     15,
	"Health":   10,
	"Learning": 8,
	"Personal": 5,
	"Shopping": 3,
}

// Score rates a task 0..100 from its current priority, deadline urgency
// and category.
func Score(t TaskFacts, now time.Time) int {
	score := 50

	if b, ok := priorityBonus[t.Priority]; ok {
		score += b
	} else {
		score += 20
	}

	if t.Deadline != nil {
		switch days := daysUntil(*t.Deadline, now); {
		case days <= 1:
			score += 20
		case days <= 3:
			score += 15
		case days <= 7:
			score += 10
		}
	}

	if b, ok := categoryBonus[t.Category]; ok {
		score += b
	} else {
		score += 5
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// PriorityFromScore maps a score back onto a priority tier. The >=80 branch
// is checked before >=90, so scores of 90+ land on "high" and the urgent
// tier is unreachable. That matches the shipped behavior and the tests pin
// it; flip the first two branches if urgent should ever win.
func PriorityFromScore(score int) Priority {
	switch {
	case score >= 80:
		return PriorityHigh
	case score >= 90:
		return PriorityUrgent
	case score >= 60:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Suggestions returns up to three short recommendations for a task. The
// result is never nil so the field always serializes as an array.
func Suggestions(t TaskFacts, now time.Time) []string {
	out := []string{}

	if t.Priority == PriorityUrgent || t.Priority == PriorityHigh {
		out = append(out,
			"Consider focusing on this task first",
			"Break down into smaller, manageable steps",
		)
	}

	if t.Deadline != nil {
		switch days := daysUntil(*t.Deadline, now); {
		case days <= 1:
			out = append(out, "This task is due soon - prioritize today")
		case days <= 3:
			out = append(out, "Schedule time for this task this week")
		}
	}

	switch t.Category {
	case "Work":
		out = append(out, "Schedule focused work time")
	case "Learning":
		out = append(out, "Allocate regular study sessions")
	case "Health":
		out = append(out, "Don't postpone health-related tasks")
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// daysUntil is the ceiling of the distance to the deadline in days.
// Past deadlines come back zero or negative.
func daysUntil(deadline, now time.Time) int {
	hours := deadline.Sub(now).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}
