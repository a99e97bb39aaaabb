// Package ai exposes the rule-engine-backed analysis endpoints. There is
// no model behind these; everything is deterministic keyword matching in
// internal/engine.
package ai

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"smart-todo-backend/internal/contexts"
	"smart-todo-backend/internal/engine"
	"smart-todo-backend/internal/tasks"
)

type TaskDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AnalysisRequest struct {
	TaskDetails    *TaskDetails     `json:"taskDetails"`
	ContextEntries []contexts.Entry `json:"contextEntries"`
}

type AnalysisResponse struct {
	Suggestions        []engine.Suggestion `json:"suggestions"`
	PriorityScores     map[string]int      `json:"priorityScores"`
	Insights           []string            `json:"insights"`
	RecommendedActions []string            `json:"recommendedActions"`
}

// contextTexts returns entry contents for deadline inference, falling back
// to the store's recent entries when the request didn't carry any.
func contextTexts(body []contexts.Entry, store contexts.Store, limit int) []string {
	entries := body
	if len(entries) == 0 && store != nil {
		recent, err := store.Recent(limit)
		if err != nil {
			log.Printf("[WARN] recent context lookup failed: %v", err)
		} else {
			entries = recent
		}
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Content)
	}
	return texts
}

func SuggestionsHandler(ctxStore contexts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var suggestions []engine.Suggestion
		if body.TaskDetails != nil && body.TaskDetails.Title != "" {
			texts := contextTexts(body.ContextEntries, ctxStore, 5)
			suggestions = append(suggestions, engine.Classify(
				body.TaskDetails.Title, body.TaskDetails.Description, texts, time.Now(),
			))
		}
		if suggestions == nil {
			suggestions = []engine.Suggestion{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AnalysisResponse{
			Suggestions:        suggestions,
			PriorityScores:     map[string]int{},
			Insights:           []string{},
			RecommendedActions: []string{},
		})
	}
}

func AnalyzeContextHandler(ctxStore contexts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recent := strings.Join(contextTexts(body.ContextEntries, ctxStore, 10), " ")
		insights := engine.AggregateInsights(recent, nil, time.Now())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AnalysisResponse{
			Suggestions:    []engine.Suggestion{},
			PriorityScores: map[string]int{},
			Insights:       insights,
			RecommendedActions: []string{
				"Review and organize recent context entries",
				"Update task priorities based on new information",
				"Schedule time for context-related tasks",
			},
		})
	}
}

func FullAnalysisHandler(taskStore tasks.Store, ctxStore contexts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		now := time.Now()
		texts := contextTexts(body.ContextEntries, ctxStore, 10)
		recent := strings.Join(texts, " ")

		var suggestions []engine.Suggestion
		if body.TaskDetails != nil && body.TaskDetails.Title != "" {
			suggestions = append(suggestions, engine.Classify(
				body.TaskDetails.Title, body.TaskDetails.Description, texts, now,
			))
		}
		if suggestions == nil {
			suggestions = []engine.Suggestion{}
		}

		var facts []engine.TaskFacts
		all, err := taskStore.List()
		if err != nil {
			log.Printf("[WARN] task list failed during analysis: %v", err)
		}
		for _, t := range all {
			facts = append(facts, t.Facts())
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AnalysisResponse{
			Suggestions:    suggestions,
			PriorityScores: engine.PriorityScores(facts, recent, now),
			Insights:       engine.AggregateInsights(recent, facts, now),
			RecommendedActions: []string{
				"Focus on high-priority, context-relevant tasks",
				"Break down complex tasks into smaller steps",
				"Schedule regular context review sessions",
				"Use AI suggestions to optimize task planning",
			},
		})
	}
}
