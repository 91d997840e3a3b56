package game

import (
	"sort"
	"strings"

	"classquiz-service/internal/domain"
)

// QuestionView is the display side of a question: no answer fields until
// feedback reveals them.
type QuestionView struct {
	Prompt  string              `json:"prompt"`
	Options []string            `json:"options,omitempty"`
	Kind    domain.QuestionKind `json:"kind"`
}

// StealView describes an open steal window.
type StealView struct {
	Team      domain.TeamID `json:"team"`
	Remaining int           `json:"remaining"`
}

// HangmanView is the letter-guess progress for a guess-the-country round.
type HangmanView struct {
	Display         string   `json:"display"`
	Guessed         []string `json:"guessed"`
	WrongGuesses    int      `json:"wrongGuesses"`
	MaxWrongGuesses int      `json:"maxWrongGuesses"`
	Hint            string   `json:"hint,omitempty"`
}

// View is a consistent snapshot of the match for the presenter display.
type View struct {
	ActivityID   string                `json:"activityId"`
	ActivityType domain.ActivityType   `json:"activityType"`
	Phase        Phase                 `json:"phase"`
	Paused       bool                  `json:"paused"`
	Round        int                   `json:"round"`
	TotalRounds  int                   `json:"totalRounds"`
	Remaining    int                   `json:"remaining"`
	ActiveTeam   domain.TeamID         `json:"activeTeam"`
	BuzzedTeam   domain.TeamID         `json:"buzzedTeam,omitempty"`
	Scores       map[domain.TeamID]int `json:"scores"`
	Streaks      map[domain.TeamID]int `json:"streaks"`
	Showdown     bool                  `json:"showdown"`
	Question     *QuestionView         `json:"question,omitempty"`
	Steal        *StealView            `json:"steal,omitempty"`
	Feedback     *Feedback             `json:"feedback,omitempty"`
	Hangman      *HangmanView          `json:"hangman,omitempty"`
	Record       *domain.MatchRecord   `json:"record,omitempty"`
}

// View captures the current match state under the lock.
func (m *Match) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		ActivityID:   m.activity.ID,
		ActivityType: m.activity.Type,
		Phase:        m.phase,
		Paused:       m.paused,
		Round:        m.round,
		TotalRounds:  m.rules.TotalRounds,
		Remaining:    m.remaining,
		ActiveTeam:   m.activeTeam,
		BuzzedTeam:   m.buzzedTeam,
		Scores:       map[domain.TeamID]int{domain.TeamA: m.scores[domain.TeamA], domain.TeamB: m.scores[domain.TeamB]},
		Streaks:      map[domain.TeamID]int{domain.TeamA: m.streaks[domain.TeamA], domain.TeamB: m.streaks[domain.TeamB]},
		Showdown:     m.round > 0 && m.tuning.IsShowdown(m.round, m.rules.TotalRounds),
		Record:       m.record,
	}
	if m.phase == PhaseCountdown || m.phase == PhaseSteal || m.phase == PhaseFeedback {
		v.Question = &QuestionView{Prompt: m.question.Prompt, Options: m.question.Options, Kind: m.question.Kind}
	}
	if m.steal != nil {
		v.Steal = &StealView{Team: m.steal.team, Remaining: m.steal.remaining}
	}
	if m.phase == PhaseFeedback || m.phase == PhaseEnded {
		v.Feedback = m.feedback
	}
	if m.hangman != nil {
		v.Hangman = &HangmanView{
			Display:         m.hangman.display(),
			Guessed:         m.hangman.guessedLetters(),
			WrongGuesses:    m.hangman.wrong,
			MaxWrongGuesses: m.rules.MaxWrongGuesses,
			Hint:            m.hangman.hint,
		}
	}
	return v
}

// display masks unguessed letters. Anything that is not a guessable letter,
// like spaces, hyphens and apostrophes, shows as-is.
func (h *hangmanRound) display() string {
	parts := make([]string, 0, len(h.target))
	for _, r := range h.target {
		switch {
		case r < 'A' || r > 'Z':
			parts = append(parts, string(r))
		case h.guessed[r]:
			parts = append(parts, string(r))
		default:
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func (h *hangmanRound) guessedLetters() []string {
	letters := make([]string, 0, len(h.guessed))
	for r := range h.guessed {
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters
}
