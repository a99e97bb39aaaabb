package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"smart-todo-backend/internal/tasks"
)

func StatsHandler(store tasks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.List()
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Compute(all, time.Now()))
	}
}

type trend struct {
	Metric      string `json:"metric"`
	Value       string `json:"value"`
	Change      string `json:"change"`
	Trend       string `json:"trend"`
	Description string `json:"description"`
}

type insightsPayload struct {
	Trends          []trend  `json:"trends"`
	Recommendations []string `json:"recommendations"`
	AIInsights      []string `json:"aiInsights"`
}

// InsightsHandler serves the canned productivity insights panel.
func InsightsHandler() http.HandlerFunc {
	payload := insightsPayload{
		Trends: []trend{
			{
				Metric:      "Task Completion Rate",
				Value:       "75%",
				Change:      "+12%",
				Trend:       "up",
				Description: "You've improved your completion rate this week",
			},
			{
				Metric:      "Average Task Priority",
				Value:       "High",
				Change:      "+1 level",
				Trend:       "up",
				Description: "You're focusing on more important tasks",
			},
			{
				Metric:      "Context Utilization",
				Value:       "85%",
				Change:      "+5%",
				Trend:       "up",
				Description: "AI suggestions are being used more effectively",
			},
		},
		Recommendations: []string{
			"Consider time-blocking for high-priority tasks",
			"Review overdue items and reschedule if needed",
			"Your productivity is highest in the morning - schedule important tasks then",
			"Context analysis shows meeting-heavy periods - block focus time",
		},
		AIInsights: []string{
			"Your task completion pattern shows strong consistency",
			"Work-related tasks are prioritized effectively",
			"Health and personal tasks could use more attention",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}
