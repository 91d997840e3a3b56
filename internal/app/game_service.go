package app

import (
	"context"
	"log"
	"sync"
	"time"

	"classquiz-service/internal/content"
	"classquiz-service/internal/domain"
	"classquiz-service/internal/game"
)

// SessionStore persists the daily session snapshot (in-memory, Redis, etc).
type SessionStore interface {
	Save(snapshot domain.SessionSnapshot) error
	Load() (domain.SessionSnapshot, bool, error)
}

// ContentSource supplies the question pools (from cache/backing store).
type ContentSource interface {
	Content(ctx context.Context) (domain.ContentSet, error)
}

// MatchRecorder is an optional archive for completed matches.
type MatchRecorder interface {
	Append(ctx context.Context, record domain.MatchRecord) error
}

// GameService owns the daily session (team names, cumulative scores, win
// tallies, match history) and the lifecycle of the single active match.
type GameService struct {
	source   ContentSource
	store    SessionStore
	recorder MatchRecorder
	tuning   game.Tuning
	sched    game.Scheduler
	sound    game.SoundEngine
	now      func() time.Time

	mu          sync.Mutex
	session     domain.SessionSnapshot
	baseSeconds int
	startedAt   time.Time
	match       *game.Match
	matchActive bool
}

// Params configures a GameService. Store and Content are required; the rest
// default sensibly.
type Params struct {
	Store     SessionStore
	Content   ContentSource
	Recorder  MatchRecorder
	Tuning    game.Tuning
	Scheduler game.Scheduler
	Sound     game.SoundEngine
	Now       func() time.Time
}

// NewGameService restores the persisted session when its date matches the
// current calendar date; anything else (missing, stale, corrupt) silently
// falls back to fresh defaults.
func NewGameService(p Params) *GameService {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Scheduler == nil {
		p.Scheduler = game.WallClockScheduler{}
	}
	if p.Sound == nil {
		p.Sound = game.NopSoundEngine{}
	}
	if p.Tuning == (game.Tuning{}) {
		p.Tuning = game.DefaultTuning()
	}

	today := p.Now().Format(domain.DateLayout)
	session := domain.NewSessionSnapshot(today)
	if snap, ok, err := p.Store.Load(); err != nil {
		log.Printf("load session: %v", err)
	} else if ok && snap.Date == today && snap.Teams[domain.TeamA] != nil && snap.Teams[domain.TeamB] != nil {
		session = snap
	}

	return &GameService{
		source:      p.Content,
		store:       p.Store,
		recorder:    p.Recorder,
		tuning:      p.Tuning,
		sched:       p.Scheduler,
		sound:       p.Sound,
		now:         p.Now,
		session:     session,
		baseSeconds: session.SessionSeconds,
		startedAt:   p.Now(),
	}
}

// Activities lists the playable game modes.
func (s *GameService) Activities() []domain.Activity {
	return content.Activities()
}

// Session returns a copy of the current daily snapshot with the running
// session clock applied.
func (s *GameService) Session() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetTeamName renames a team and persists the session.
func (s *GameService) SetTeamName(team domain.TeamID, name string) {
	if !team.Valid() || name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Teams[team].Name = name
	s.saveLocked()
}

// StartMatch creates the match for an activity. The previous match must have
// ended or been exited first.
func (s *GameService) StartMatch(ctx context.Context, activityID string) (*game.Match, error) {
	activity, ok := content.ActivityByID(activityID)
	if !ok {
		return nil, domain.ErrUnknownActivity
	}

	// Reserve the slot before loading content, so a second caller fails fast
	// instead of racing past the guard while the load is in flight.
	s.mu.Lock()
	if s.matchActive {
		s.mu.Unlock()
		return nil, domain.ErrMatchInProgress
	}
	s.matchActive = true
	s.mu.Unlock()

	set, err := s.source.Content(ctx)
	if err != nil {
		s.mu.Lock()
		s.matchActive = false
		s.mu.Unlock()
		return nil, err
	}

	m := game.NewMatch(game.MatchParams{
		Activity:  activity,
		Bank:      content.NewBank(set, nil),
		Scheduler: s.sched,
		Sound:     s.sound,
		Tuning:    s.tuning,
		Now:       s.now,
		Hooks: game.Hooks{
			OnScore: s.onScore,
			OnEnded: s.onEnded,
		},
	})

	s.mu.Lock()
	s.match = m
	s.matchActive = true
	s.mu.Unlock()
	return m, nil
}

// Match returns the current match.
func (s *GameService) Match() (*game.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match == nil {
		return nil, domain.ErrNoActiveMatch
	}
	return s.match, nil
}

// ExitMatch abandons the current match (timers cancelled, no record).
func (s *GameService) ExitMatch() {
	s.mu.Lock()
	m := s.match
	s.match = nil
	s.matchActive = false
	s.mu.Unlock()

	if m != nil {
		m.Stop()
	}

	s.mu.Lock()
	s.saveLocked()
	s.mu.Unlock()
}

// onScore folds a per-round delta into the cumulative team score.
func (s *GameService) onScore(team domain.TeamID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Teams[team].Score += delta
	s.saveLocked()
}

// onEnded appends the match record, bumps the winner's cross-match win tally
// (no-op for a draw) and archives the record.
func (s *GameService) onEnded(record domain.MatchRecord) {
	s.mu.Lock()
	s.session.History = append(s.session.History, record)
	if record.Winner != domain.WinnerDraw {
		s.session.Teams[domain.TeamID(record.Winner)].Wins++
	}
	s.matchActive = false
	s.saveLocked()
	s.mu.Unlock()

	if s.recorder != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.recorder.Append(ctx, record); err != nil {
				log.Printf("archive match record: %v", err)
			}
		}()
	}
}

func (s *GameService) snapshotLocked() domain.SessionSnapshot {
	snap := s.session
	snap.SessionSeconds = s.baseSeconds + int(s.now().Sub(s.startedAt).Seconds())
	snap.Teams = make(map[domain.TeamID]*domain.TeamState, len(s.session.Teams))
	for id, team := range s.session.Teams {
		t := *team
		snap.Teams[id] = &t
	}
	snap.History = append([]domain.MatchRecord(nil), s.session.History...)
	return snap
}

// saveLocked persists best-effort; a failed write never interrupts play.
func (s *GameService) saveLocked() {
	if err := s.store.Save(s.snapshotLocked()); err != nil {
		log.Printf("save session: %v", err)
	}
}
