package server

import (
	"net/http"
	"time"
)

// Register wires every API route onto the mux.
func Register(mux *http.ServeMux, app *App) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "moneydeck",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("POST /api/games", app.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", app.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/play", app.handlePlayYear)
	mux.HandleFunc("POST /api/games/{id}/restart", app.handleRestart)
	mux.HandleFunc("GET /api/games/{id}/history", app.handleHistory)

	mux.HandleFunc("POST /api/simulate", app.handleSimulate)
	mux.HandleFunc("GET /api/runs", app.handleRuns)
}
