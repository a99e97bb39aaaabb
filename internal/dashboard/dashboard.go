// Package dashboard aggregates summary statistics over the task store.
package dashboard

import (
	"math"
	"math/rand"
	"time"

	"smart-todo-backend/internal/engine"
	"smart-todo-backend/internal/tasks"
)

type DayProgress struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Created   int    `json:"created"`
}

type Stats struct {
	TotalTasks        int           `json:"totalTasks"`
	CompletedTasks    int           `json:"completedTasks"`
	PendingTasks      int           `json:"pendingTasks"`
	OverdueTasks      int           `json:"overdueTasks"`
	ProductivityScore int           `json:"productivityScore"`
	WeeklyProgress    []DayProgress `json:"weeklyProgress"`
}

// Productivity score inputs. These are fixed illustrative rates, not live
// aggregates; the counts above are the live part.
const (
	completionRate  = 0.75
	timelinessScore = 0.85
)

// Compute derives the task counts from the live task list. The weekly
// series is illustrative only: seven days, randomized non-negative counts.
func Compute(all []tasks.Task, now time.Time) Stats {
	s := Stats{
		TotalTasks:        len(all),
		ProductivityScore: int(math.Round(((completionRate + timelinessScore) / 2) * 100)),
	}

	for _, t := range all {
		if t.Status == engine.StatusCompleted {
			s.CompletedTasks++
			continue
		}
		s.PendingTasks++
		if t.Deadline != nil && t.Deadline.Before(now) {
			s.OverdueTasks++
		}
	}

	for i := 6; i >= 0; i-- {
		s.WeeklyProgress = append(s.WeeklyProgress, DayProgress{
			Date:      now.AddDate(0, 0, -i).Format("2006-01-02"),
			Completed: rand.Intn(5) + 1,
			Created:   rand.Intn(3) + 1,
		})
	}
	return s
}
