// Package store persists game sessions to a JSON file and finished runs to
// SQLite. The engine itself never touches storage; these repositories are
// the caller-side round-trip the run ledger's plain serialized form was
// designed for.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"moneydeck/internal/state"
)

// Session is the plain serialized form of one interactive game. State
// carries the run ledger through its own JSON schema (sorted id arrays plus
// a cooldown object); loading re-materializes the set/map semantics.
type Session struct {
	ID       string       `json:"id"`
	Seed     string       `json:"seed"`
	Years    int          `json:"years"`
	RngCalls int64        `json:"rngCalls"`
	HandIDs  []string     `json:"handIds"`
	Ending   string       `json:"ending,omitempty"`
	State    *state.State `json:"state"`
}

type fileState struct {
	Sessions map[string]Session `json:"sessions"`
}

// FileRepo is a persistent session repository backed by a single JSON file.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	repo := &FileRepo{
		path: filepath.Join(dataDir, "sessions.json"),
		s:    fileState{Sessions: map[string]Session{}},
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Sessions == nil {
		loaded.Sessions = map[string]Session{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) save() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Put inserts or replaces a session and persists immediately. The state is
// stored as a detached copy, so later mutations of the caller's live state
// cannot drift away from the RngCalls recorded alongside it.
func (r *FileRepo) Put(sess Session) error {
	if sess.State != nil {
		b, err := json.Marshal(sess.State)
		if err != nil {
			return err
		}
		detached := &state.State{}
		if err := json.Unmarshal(b, detached); err != nil {
			return err
		}
		sess.State = detached
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Sessions[sess.ID] = sess
	return r.save()
}

// Get returns a stored session. The contained State already has its ledger
// rehydrated by the JSON layer; EnsureMeta on attach covers older payloads
// saved without one.
func (r *FileRepo) Get(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, found := r.s.Sessions[id]
	return sess, found
}

// Delete removes a session. Unknown ids are a no-op.
func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.s.Sessions[id]; !found {
		return nil
	}
	delete(r.s.Sessions, id)
	return r.save()
}

// List returns every stored session id.
func (r *FileRepo) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.s.Sessions))
	for id := range r.s.Sessions {
		ids = append(ids, id)
	}
	return ids
}
