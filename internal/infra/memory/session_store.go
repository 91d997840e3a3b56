package memory

import (
	"sync"

	"classquiz-service/internal/domain"
)

// SessionStore keeps the daily session snapshot in memory. It is the
// default when no Redis is configured; state then lives only as long as the
// process.
type SessionStore struct {
	mu   sync.Mutex
	snap *domain.SessionSnapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(snapshot domain.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := cloneSnapshot(snapshot)
	s.snap = &copied
	return nil
}

func (s *SessionStore) Load() (domain.SessionSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.SessionSnapshot{}, false, nil
	}
	return cloneSnapshot(*s.snap), true, nil
}

func cloneSnapshot(snapshot domain.SessionSnapshot) domain.SessionSnapshot {
	copied := snapshot
	copied.Teams = make(map[domain.TeamID]*domain.TeamState, len(snapshot.Teams))
	for id, team := range snapshot.Teams {
		t := *team
		copied.Teams[id] = &t
	}
	copied.History = append([]domain.MatchRecord(nil), snapshot.History...)
	return copied
}
