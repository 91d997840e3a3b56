package domain

import (
	"strconv"
	"time"
)

// TeamID identifies one of the two fixed teams.
type TeamID string

const (
	TeamA TeamID = "team-a"
	TeamB TeamID = "team-b"
)

// Opponent returns the other team.
func (t TeamID) Opponent() TeamID {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Valid reports whether t is one of the two known teams.
func (t TeamID) Valid() bool {
	return t == TeamA || t == TeamB
}

// QuestionKind tells the controller how to compare a submitted answer.
type QuestionKind string

const (
	KindText    QuestionKind = "text"
	KindChoice  QuestionKind = "choice"
	KindBoolean QuestionKind = "boolean"
	KindNumeric QuestionKind = "numeric"
)

// Question is immutable once loaded into a round. The answer lives in the
// typed field selected by Kind.
type Question struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"prompt"`
	Options     []string     `json:"options,omitempty"`
	Kind        QuestionKind `json:"kind"`
	AnswerText  string       `json:"answerText,omitempty"`
	AnswerNum   int          `json:"answerNum,omitempty"`
	AnswerBool  bool         `json:"answerBool,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}

// DisplayAnswer renders the correct answer for the feedback screen.
func (q Question) DisplayAnswer() string {
	switch q.Kind {
	case KindBoolean:
		if q.AnswerBool {
			return "TRUE"
		}
		return "FALSE"
	case KindNumeric:
		return strconv.Itoa(q.AnswerNum)
	default:
		return q.AnswerText
	}
}

// ActivityType selects the gameplay variant for a match.
type ActivityType string

const (
	ActivityQuiz     ActivityType = "quiz"     // idiom/proverb MCQ
	ActivityMath     ActivityType = "math"     // buzzer quick-fire arithmetic
	ActivityScramble ActivityType = "scramble" // unscramble-the-word
	ActivityScience  ActivityType = "science"  // true/false facts
	ActivityHangman  ActivityType = "hangman"  // guess-the-country letters
)

// Difficulty scales math operand ranges.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Activity describes one playable game mode.
type Activity struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ActivityType `json:"type"`
	Difficulty  Difficulty   `json:"difficulty"`
	Description string       `json:"description,omitempty"`
}

// Winner is a team ID or WinnerDraw.
type Winner string

const WinnerDraw Winner = "draw"

// MatchRecord is emitted exactly once per completed match.
type MatchRecord struct {
	ActivityID  string    `json:"activityId"`
	Winner      Winner    `json:"winner"`
	ScoreA      int       `json:"scoreA"`
	ScoreB      int       `json:"scoreB"`
	CompletedAt time.Time `json:"completedAt"`
}

// TeamState is the cross-match session view of one team.
type TeamState struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Wins  int    `json:"wins"`
}

// SessionSnapshot is the daily persisted state. A loaded snapshot is only
// applied when its Date matches the current calendar date.
type SessionSnapshot struct {
	Date           string                `json:"date"`
	Teams          map[TeamID]*TeamState `json:"teams"`
	History        []MatchRecord         `json:"history"`
	SessionSeconds int                   `json:"sessionSeconds"`
}

// DateLayout is the calendar-day granularity for session snapshots.
const DateLayout = "2006-01-02"

// NewSessionSnapshot returns a fresh snapshot for the given day with default
// team names and zeroed tallies.
func NewSessionSnapshot(date string) SessionSnapshot {
	return SessionSnapshot{
		Date: date,
		Teams: map[TeamID]*TeamState{
			TeamA: {Name: "TEAM A"},
			TeamB: {Name: "TEAM B"},
		},
	}
}

// IdiomEntry is one idiom or proverb with its meaning and a usage example.
type IdiomEntry struct {
	Idiom   string `json:"idiom"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// ScienceFact is a true/false statement with an explanation.
type ScienceFact struct {
	Statement   string `json:"statement"`
	Truth       bool   `json:"truth"`
	Explanation string `json:"explanation"`
}

// CountryEntry backs the guess-the-country activity.
type CountryEntry struct {
	Name      string `json:"name"`
	Continent string `json:"continent"`
	Hint      string `json:"hint,omitempty"`
}

// ScrambleEntry backs the word-scramble activity.
type ScrambleEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint,omitempty"`
}

// ContentSet groups every finite question pool. Idiom pools are keyed by
// activity ID so the idiom and proverb quizzes draw from separate banks.
type ContentSet struct {
	Idioms    map[string][]IdiomEntry `json:"idioms"`
	Science   []ScienceFact           `json:"science"`
	Countries []CountryEntry          `json:"countries"`
	Scramble  []ScrambleEntry         `json:"scramble"`
}
