package contexts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"smart-todo-backend/internal/analytics"
)

func writeStoreError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "context entry not found", http.StatusNotFound)
	default:
		http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
	}
}

func ListHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.List()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if entries == nil {
			entries = []Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EntriesResponse{Entries: entries, Total: len(entries)})
	}
}

func RecentHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		entries, err := store.Recent(limit)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if entries == nil {
			entries = []Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EntriesResponse{Entries: entries, Total: len(entries)})
	}
}

func GetHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(e)
	}
}

func CreateHandler(store Store, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := store.Create(body)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		rec.Log(r.Context(), analytics.FromRequest(r), "context_added", map[string]any{
			"entry_id":        e.ID,
			"source":          e.Source,
			"type":            e.Type,
			"content_len":     len(e.Content),
			"insights":        len(e.ProcessedInsights),
			"extracted_tasks": len(e.ExtractedTasks),
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	}
}

func DeleteHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
