// Package contexts stores the free-text "daily context" entries (messages,
// emails, notes) the engine mines for insights and task candidates.
package contexts

import "time"

type Entry struct {
	ID                string    `json:"id"`
	Content           string    `json:"content"`
	Source            string    `json:"source"`
	Type              string    `json:"type"`
	CreatedAt         time.Time `json:"createdAt"`
	ProcessedInsights []string  `json:"processedInsights,omitempty"`
	ExtractedTasks    []string  `json:"extractedTasks,omitempty"`
}

type CreateEntryRequest struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Type    string `json:"type"`
}

type EntriesResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}
