package session

import (
	"sync"

	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/model"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/google/uuid"
)

// Session holds one editor's draft and its catalog snapshot. The draft has a
// single writer by contract; the mutex only guards against the same draft
// being driven from concurrent HTTP requests.
type Session struct {
	mu         sync.Mutex
	draft      model.OrderDraft
	index      *catalog.Index
	catalogGen uint64
}

// Snapshot returns the current draft and catalog index.
func (s *Session) Snapshot() (model.OrderDraft, *catalog.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.index
}

// Update applies a draft operation under the session lock. The stored draft
// is replaced only when fn succeeds.
func (s *Session) Update(fn func(d model.OrderDraft, ix *catalog.Index) (model.OrderDraft, error)) (model.OrderDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.draft, s.index)
	if err != nil {
		return s.draft, err
	}
	s.draft = next
	return s.draft, nil
}

// BeginCatalogLoad drops the current index and returns a generation token for
// the load about to start. A later call supersedes earlier ones: a stale
// response must present its token to be applied.
func (s *Session) BeginCatalogLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = nil
	s.catalogGen++
	return s.catalogGen
}

// CompleteCatalogLoad installs a loaded index if gen is still current.
// Returns false when the load was superseded and discarded.
func (s *Session) CompleteCatalogLoad(gen uint64, ix *catalog.Index) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.catalogGen {
		return false
	}
	s.index = ix
	return true
}

// Store keeps draft sessions in memory, one per open editor.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create registers a new session for the given draft.
func (st *Store) Create(d model.OrderDraft) *Session {
	s := &Session{draft: d}
	st.mu.Lock()
	st.sessions[d.DraftID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session owning draftID.
func (st *Store) Get(draftID uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[draftID]
	st.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrDraftNotFound
	}
	return s, nil
}

// Delete discards a session. Discarded drafts are never persisted.
func (st *Store) Delete(draftID uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, draftID)
	st.mu.Unlock()
}
