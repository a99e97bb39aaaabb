package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"smart-todo-backend/internal/ai"
	"smart-todo-backend/internal/analytics"
	"smart-todo-backend/internal/config"
	"smart-todo-backend/internal/contexts"
	"smart-todo-backend/internal/dashboard"
	"smart-todo-backend/internal/db"
	"smart-todo-backend/internal/tasks"
)

func main() {
	cfg := config.Load()

	var (
		taskStore tasks.Store
		ctxStore  contexts.Store
		database  *db.DB
	)

	switch cfg.StoreDriver {
	case "memory":
		taskStore = tasks.NewMemoryStore()
		ctxStore = contexts.NewMemoryStore()
	case "postgres":
		var err error
		database, err = db.Open(db.DriverPostgres, cfg.ConnString())
		if err != nil {
			log.Fatal("failed to connect postgres: ", err)
		}
		defer database.Close()
		taskStore = tasks.NewSQLStore(database)
		ctxStore = contexts.NewSQLStore(database)
	case "sqlite":
		var err error
		database, err = db.Open(db.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			log.Fatal("failed to open sqlite: ", err)
		}
		defer database.Close()
		taskStore = tasks.NewSQLStore(database)
		ctxStore = contexts.NewSQLStore(database)
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.SeedDemoData {
		tasks.SeedDemo(taskStore)
		contexts.SeedDemo(ctxStore)
		log.Println("demo data seeded")
	}

	rec := analytics.NewRecorder(database)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":   "pong",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// ----- TASKS API -----
	mux.HandleFunc("GET /api/tasks", tasks.ListHandler(taskStore))
	mux.HandleFunc("POST /api/tasks", tasks.CreateHandler(taskStore, rec))
	mux.HandleFunc("GET /api/tasks/{id}", tasks.GetHandler(taskStore))
	mux.HandleFunc("PATCH /api/tasks/{id}", tasks.UpdateHandler(taskStore, rec))
	mux.HandleFunc("DELETE /api/tasks/{id}", tasks.DeleteHandler(taskStore))

	// ----- CONTEXT API -----
	mux.HandleFunc("GET /api/context", contexts.ListHandler(ctxStore))
	mux.HandleFunc("POST /api/context", contexts.CreateHandler(ctxStore, rec))
	mux.HandleFunc("GET /api/context/recent", contexts.RecentHandler(ctxStore))
	mux.HandleFunc("GET /api/context/{id}", contexts.GetHandler(ctxStore))
	mux.HandleFunc("DELETE /api/context/{id}", contexts.DeleteHandler(ctxStore))

	// ----- AI API -----
	mux.HandleFunc("POST /api/ai/suggestions", ai.SuggestionsHandler(ctxStore))
	mux.HandleFunc("POST /api/ai/analyze-context", ai.AnalyzeContextHandler(ctxStore))
	mux.HandleFunc("POST /api/ai/full-analysis", ai.FullAnalysisHandler(taskStore, ctxStore))

	// ----- DASHBOARD API -----
	mux.HandleFunc("GET /api/dashboard/stats", dashboard.StatsHandler(taskStore))
	mux.HandleFunc("GET /api/dashboard/insights", dashboard.InsightsHandler())

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Idempotency-Key", "X-Session-Id", "X-Platform", "X-App-Version"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	log.Printf("store driver: %s", cfg.StoreDriver)
	log.Printf("API server is running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), handler))
}
