// Package server exposes the simulator over a JSON API: interactive game
// sessions, autonomous simulations, and the run history. All rendering is
// the client's problem; this layer only moves engine data.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"moneydeck/internal/card"
	"moneydeck/internal/config"
	"moneydeck/internal/engine"
	"moneydeck/internal/state"
	"moneydeck/internal/store"
)

// App holds the server's live sessions and repositories. Handlers hang off
// it so their dependencies are obvious.
type App struct {
	mu    sync.Mutex
	games map[string]*engine.Game

	Sessions *store.FileRepo
	Runs     *store.RunRepo
	Balance  config.Balance
	Logger   *log.Logger
}

func NewApp(balance config.Balance, sessions *store.FileRepo, runs *store.RunRepo, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		games:    map[string]*engine.Game{},
		Sessions: sessions,
		Runs:     runs,
		Balance:  balance,
		Logger:   logger,
	}
}

func (a *App) drawOptions() card.DrawOptions {
	return card.DrawOptions{
		RareChance: a.Balance.RareChance,
		WildChance: a.Balance.WildChance,
		MaxHand:    a.Balance.MaxHand,
	}
}

func (a *App) initialState() state.Config {
	b := a.Balance
	return state.Config{
		Cash:     state.F(b.StartCash),
		Debt:     state.F(b.StartDebt),
		Income:   state.F(b.StartIncome),
		Expenses: state.F(b.StartExpenses),
		Stress:   state.F(b.StartStress),
		Burnout:  state.F(b.StartBurnout),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

type cardDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Rarity string   `json:"rarity"`
	Tags   []string `json:"tags"`
	Desc   string   `json:"desc"`
}

func handDTO(hand []*card.Card) []cardDTO {
	out := make([]cardDTO, len(hand))
	for i, c := range hand {
		out[i] = cardDTO{
			ID:     c.ID,
			Name:   c.Name,
			Type:   string(c.Type),
			Rarity: string(c.Rarity),
			Tags:   c.Tags,
			Desc:   c.Desc,
		}
	}
	return out
}

type gameDTO struct {
	ID       string    `json:"id"`
	Seed     string    `json:"seed"`
	Year     int       `json:"year"`
	NetWorth float64   `json:"netWorth"`
	Hand     []cardDTO `json:"hand"`
	Ending   string    `json:"ending,omitempty"`
	Over     bool      `json:"over"`
}

func (a *App) gameDTO(id string, g *engine.Game) gameDTO {
	ending, over := g.Over()
	return gameDTO{
		ID:       id,
		Seed:     seedString(g.Seed()),
		Year:     g.State().Year,
		NetWorth: g.State().NetWorth(),
		Hand:     handDTO(g.Hand()),
		Ending:   ending,
		Over:     over,
	}
}

func seedString(seed any) string {
	if s, isStr := seed.(string); isStr {
		return s
	}
	b, _ := json.Marshal(seed)
	return string(b)
}

// game looks a live session up, falling back to the session store so the
// server can resume games across restarts.
func (a *App) game(id string) (*engine.Game, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if g, found := a.games[id]; found {
		return g, true
	}
	if a.Sessions == nil {
		return nil, false
	}
	sess, found := a.Sessions.Get(id)
	if !found {
		return nil, false
	}
	g := engine.ResumeGame(engine.GameParams{
		Seed:    sess.Seed,
		Years:   sess.Years,
		Initial: a.initialState(),
		Draw:    a.drawOptions(),
	}, sess.State, sess.RngCalls, sess.HandIDs, sess.Ending)
	a.games[id] = g
	return g, true
}

func (a *App) persist(id string, g *engine.Game) {
	if a.Sessions == nil {
		return
	}
	ending, _ := g.Over()
	handIDs := []string{}
	for _, c := range g.Hand() {
		handIDs = append(handIDs, c.ID)
	}
	sess := store.Session{
		ID:       id,
		Seed:     seedString(g.Seed()),
		Years:    g.Years(),
		RngCalls: g.RngCalls(),
		HandIDs:  handIDs,
		Ending:   ending,
		State:    g.State(),
	}
	if err := a.Sessions.Put(sess); err != nil {
		a.Logger.Printf("persist session %s: %v", id, err)
	}
}

type createGameRequest struct {
	Seed  string `json:"seed"`
	Years int    `json:"years"`
}

func (a *App) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Seed == "" {
		req.Seed = uuid.NewString()
	}
	years := req.Years
	if years <= 0 {
		years = a.Balance.Years
	}

	g := engine.NewGame(engine.GameParams{
		Seed:    req.Seed,
		Years:   years,
		Initial: a.initialState(),
		Draw:    a.drawOptions(),
	})
	id := uuid.NewString()

	a.mu.Lock()
	a.games[id] = g
	a.mu.Unlock()
	a.persist(id, g)

	writeJSON(w, http.StatusCreated, a.gameDTO(id, g))
}

func (a *App) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, found := a.game(id)
	if !found {
		writeErr(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, a.gameDTO(id, g))
}

type playRequest struct {
	Cards []string `json:"cards"`
}

type playResponse struct {
	Snapshot state.Snapshot `json:"snapshot"`
	Game     gameDTO        `json:"game"`
}

func (a *App) handlePlayYear(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, found := a.game(id)
	if !found {
		writeErr(w, http.StatusNotFound, "game not found")
		return
	}
	var req playRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res := g.PlayYear(req.Cards)
	a.persist(id, g)
	if res.Over {
		a.recordRun(r, seedString(g.Seed()), res.Ending, g)
	}

	writeJSON(w, http.StatusOK, playResponse{Snapshot: res.Snapshot, Game: a.gameDTO(id, g)})
}

type restartRequest struct {
	Seed string `json:"seed"`
}

func (a *App) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, found := a.game(id)
	if !found {
		writeErr(w, http.StatusNotFound, "game not found")
		return
	}
	var req restartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Seed == "" {
		req.Seed = uuid.NewString()
	}
	g.Restart(req.Seed)
	a.persist(id, g)
	writeJSON(w, http.StatusOK, a.gameDTO(id, g))
}

func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, found := a.game(id)
	if !found {
		writeErr(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": g.History()})
}

type simulateRequest struct {
	Seed  string `json:"seed"`
	Years int    `json:"years"`
}

func (a *App) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Seed == "" {
		req.Seed = uuid.NewString()
	}
	years := req.Years
	if years <= 0 {
		years = a.Balance.Years
	}

	out := engine.Run(engine.Params{
		Seed:    req.Seed,
		Years:   years,
		Initial: a.initialState(),
		Draw:    a.drawOptions(),
	})

	if a.Runs != nil {
		rec := store.RunRecord{
			ID:       uuid.NewString(),
			Seed:     req.Seed,
			Years:    len(out.History),
			Ending:   out.Ending,
			NetWorth: out.Final.NetWorth,
		}
		if err := a.Runs.Add(r.Context(), rec); err != nil {
			a.Logger.Printf("record run: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (a *App) recordRun(r *http.Request, seed, ending string, g *engine.Game) {
	if a.Runs == nil {
		return
	}
	history := g.History()
	netWorth := 0.0
	if n := len(history); n > 0 {
		netWorth = history[n-1].NetWorth
	}
	rec := store.RunRecord{
		ID:       uuid.NewString(),
		Seed:     seed,
		Years:    len(history),
		Ending:   ending,
		NetWorth: netWorth,
	}
	if err := a.Runs.Add(r.Context(), rec); err != nil {
		a.Logger.Printf("record run: %v", err)
	}
}

func (a *App) handleRuns(w http.ResponseWriter, r *http.Request) {
	if a.Runs == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []store.RunRecord{}})
		return
	}
	runs, err := a.Runs.Recent(r.Context(), 50)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "query runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
