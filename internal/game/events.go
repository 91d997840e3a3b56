package game

import "classquiz-service/internal/domain"

// EventType enumerates the upward notifications a match emits. They are
// consumed for display only and never feed back into the match.
type EventType string

const (
	EventPhase    EventType = "phase"
	EventRound    EventType = "round"
	EventScore    EventType = "score"
	EventSound    EventType = "sound"
	EventShowdown EventType = "showdown"
	EventMatchEnd EventType = "matchEnd"
)

// Event is one upward notification. Fields are populated per Type.
type Event struct {
	Type       EventType           `json:"type"`
	Phase      Phase               `json:"phase,omitempty"`
	Round      int                 `json:"round,omitempty"`
	ActiveTeam domain.TeamID       `json:"activeTeam,omitempty"`
	Team       domain.TeamID       `json:"team,omitempty"`
	Delta      int                 `json:"delta,omitempty"`
	Sound      string              `json:"sound,omitempty"`
	Record     *domain.MatchRecord `json:"record,omitempty"`
}

// SoundEngine plays a named effect. Implementations must never block or
// fail; silence is an acceptable implementation.
type SoundEngine interface {
	Play(event string)
}

// Sound event names understood by the engine.
const (
	SoundCorrect   = "correct"
	SoundWrong     = "wrong"
	SoundStreak    = "streak"
	SoundSteal     = "steal"
	SoundTick      = "tick"
	SoundBuzzer    = "buzzer"
	SoundShowdown  = "showdown"
	SoundVictory   = "victory"
	SoundCountdown = "countdown"
)

// NopSoundEngine discards every effect.
type NopSoundEngine struct{}

func (NopSoundEngine) Play(string) {}

// subscribe registers an event channel. Must be called without m.mu held.
func (m *Match) subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// emitLocked fans an event out to subscribers, dropping the oldest queued
// event for a slow consumer rather than blocking the match.
func (m *Match) emitLocked(ev Event) {
	for ch := range m.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func (m *Match) playLocked(sound string) {
	m.sound.Play(sound)
	m.emitLocked(Event{Type: EventSound, Sound: sound})
}
