package game

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"classquiz-service/internal/domain"
)

// Phase is the round lifecycle state. Paused is an orthogonal flag on the
// countdown phase, not a phase of its own.
type Phase string

const (
	PhaseIntro     Phase = "intro"
	PhaseCountdown Phase = "countdown"
	PhaseSteal     Phase = "steal"
	PhaseFeedback  Phase = "feedback"
	PhaseEnded     Phase = "ended"
)

// QuestionSource supplies the next question for a round. Implementations
// never fail; exhausted pools reset and repeats become possible.
type QuestionSource interface {
	Next(activity domain.Activity, round int) domain.Question
}

// Hooks are fire-and-forget callbacks into the host. They are invoked with
// the match lock held and must not call back into the match.
type Hooks struct {
	OnScore func(team domain.TeamID, delta int)
	OnEnded func(record domain.MatchRecord)
}

// Feedback describes the scored outcome shown between rounds.
type Feedback struct {
	Correct     bool          `json:"correct"`
	Team        domain.TeamID `json:"team"`
	Points      int           `json:"points"`
	Flags       AwardFlags    `json:"flags"`
	Answer      string        `json:"answer"`
	Explanation string        `json:"explanation,omitempty"`
}

type stealWindow struct {
	team      domain.TeamID
	remaining int
}

type hangmanRound struct {
	target  string // uppercase country name
	hint    string
	guessed map[rune]bool
	wrong   int
}

func (h *hangmanRound) complete() bool {
	for _, r := range h.target {
		if r >= 'A' && r <= 'Z' && !h.guessed[r] {
			return false
		}
	}
	return true
}

// Match drives one activity session: question sequencing, the per-round
// countdown, answer evaluation, the steal sub-protocol and final scoring.
// All mutation happens under one mutex; the transport goroutine and timer
// callbacks are the only entrants.
type Match struct {
	mu sync.Mutex

	activity domain.Activity
	rules    Rules
	tuning   Tuning
	bank     QuestionSource
	sched    Scheduler
	sound    SoundEngine
	hooks    Hooks
	now      func() time.Time

	phase      Phase
	paused     bool
	round      int
	activeTeam domain.TeamID
	question   domain.Question
	remaining  int
	buzzedTeam domain.TeamID
	scores     map[domain.TeamID]int
	streaks    map[domain.TeamID]int
	steal      *stealWindow
	feedback   *Feedback
	hangman    *hangmanRound

	showdownAnnounced bool
	record            *domain.MatchRecord

	// gen tags the single in-flight tick; bumping it makes any stale
	// callback provably inert.
	gen        uint64
	cancelTick func()

	subscribers map[chan Event]struct{}
}

// MatchParams configures a new match. Zero-value fields get safe defaults.
type MatchParams struct {
	Activity  domain.Activity
	Bank      QuestionSource
	Scheduler Scheduler
	Sound     SoundEngine
	Tuning    Tuning
	Hooks     Hooks
	Now       func() time.Time
}

// NewMatch builds a match in the intro phase. Start begins round one.
func NewMatch(p MatchParams) *Match {
	if p.Scheduler == nil {
		p.Scheduler = WallClockScheduler{}
	}
	if p.Sound == nil {
		p.Sound = NopSoundEngine{}
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Tuning == (Tuning{}) {
		p.Tuning = DefaultTuning()
	}
	return &Match{
		activity:    p.Activity,
		rules:       RulesFor(p.Activity),
		tuning:      p.Tuning,
		bank:        p.Bank,
		sched:       p.Scheduler,
		sound:       p.Sound,
		hooks:       p.Hooks,
		now:         p.Now,
		phase:       PhaseIntro,
		activeTeam:  domain.TeamA,
		scores:      map[domain.TeamID]int{domain.TeamA: 0, domain.TeamB: 0},
		streaks:     map[domain.TeamID]int{domain.TeamA: 0, domain.TeamB: 0},
		subscribers: make(map[chan Event]struct{}),
	}
}

// Rules exposes the per-activity gameplay rules selected for this match.
func (m *Match) Rules() Rules { return m.rules }

// Subscribe returns a channel of upward notifications. The caller must
// invoke the cancel function to avoid leaks.
func (m *Match) Subscribe() (<-chan Event, func()) {
	return m.subscribe()
}

// Start leaves the intro phase and loads the first question.
func (m *Match) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseIntro {
		return
	}
	m.round = 1
	m.loadQuestionLocked()
}

// Pause freezes the countdown without losing the remaining time.
func (m *Match) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.paused || m.phase != PhaseCountdown {
		return
	}
	m.paused = true
	m.bumpGenLocked()
}

// Resume restarts a paused countdown.
func (m *Match) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.paused {
		return
	}
	m.paused = false
	if m.phase == PhaseCountdown && m.buzzedTeam == "" {
		m.bumpGenLocked()
		m.scheduleTickLocked()
	}
}

// BuzzIn claims the current math question for a team and suspends the
// countdown while they compose an answer.
func (m *Match) BuzzIn(team domain.TeamID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCountdown || !m.rules.SupportsBuzzIn || m.buzzedTeam != "" || !team.Valid() {
		return
	}
	m.buzzedTeam = team
	m.playLocked(SoundBuzzer)
	m.bumpGenLocked()
}

// CancelBuzz releases a buzz-in and resumes the countdown.
func (m *Match) CancelBuzz() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCountdown || m.buzzedTeam == "" {
		return
	}
	m.buzzedTeam = ""
	if !m.paused {
		m.bumpGenLocked()
		m.scheduleTickLocked()
	}
}

// SubmitAnswer evaluates a raw answer for the team. An empty team means the
// team currently expected to answer. Empty or unparseable input is ignored
// without penalty; submissions outside an accepting phase are ignored.
func (m *Match) SubmitAnswer(team domain.TeamID, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseSteal:
		if team != "" && team != m.steal.team {
			return
		}
		correct, ok := m.checkAnswerLocked(raw)
		if !ok {
			return
		}
		m.playLocked(SoundBuzzer)
		m.resolveAnswerLocked(correct, m.steal.team, true)
	case PhaseCountdown:
		if m.rules.SupportsBuzzIn && m.buzzedTeam == "" {
			return // must buzz in first
		}
		answering := m.answeringTeamLocked()
		if team != "" && team != answering {
			return
		}
		correct, ok := m.checkAnswerLocked(raw)
		if !ok {
			return
		}
		m.resolveAnswerLocked(correct, answering, false)
	}
}

// DeclineSteal closes an open steal window without an attempt.
func (m *Match) DeclineSteal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseSteal {
		return
	}
	m.closeStealLocked()
}

// GuessLetter plays one letter in a guess-the-country round. Already-tried
// letters are ignored.
func (m *Match) GuessLetter(letter string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseCountdown || m.hangman == nil {
		return
	}
	runes := []rune(strings.TrimSpace(letter))
	if len(runes) != 1 {
		return
	}
	r := unicode.ToUpper(runes[0])
	if r < 'A' || r > 'Z' || m.hangman.guessed[r] {
		return
	}
	m.hangman.guessed[r] = true

	if strings.ContainsRune(m.hangman.target, r) {
		m.playLocked(SoundCorrect)
		if m.hangman.complete() {
			m.resolveAnswerLocked(true, m.activeTeam, false)
		}
		return
	}
	m.playLocked(SoundWrong)
	m.hangman.wrong++
	if m.hangman.wrong >= m.rules.MaxWrongGuesses {
		m.resolveAnswerLocked(false, m.activeTeam, false)
	}
}

// Next dismisses the feedback screen: either the next round begins or, after
// the final round, the match ends.
func (m *Match) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseFeedback {
		return
	}
	if m.round >= m.rules.TotalRounds {
		m.endLocked()
		return
	}
	m.round++
	if m.rules.AlternatesTurns {
		m.activeTeam = m.activeTeam.Opponent()
	}
	m.loadQuestionLocked()
}

// Stop abandons the match. All pending timers are cancelled; no record is
// emitted.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bumpGenLocked()
	if m.phase != PhaseEnded {
		m.phase = PhaseEnded
	}
}

// --- internals, all called with m.mu held ---

func (m *Match) loadQuestionLocked() {
	if !m.showdownAnnounced && m.tuning.IsShowdown(m.round, m.rules.TotalRounds) {
		m.showdownAnnounced = true
		m.playLocked(SoundShowdown)
		m.emitLocked(Event{Type: EventShowdown, Round: m.round})
	}

	m.question = m.bank.Next(m.activity, m.round)
	m.buzzedTeam = ""
	m.steal = nil
	m.feedback = nil
	m.hangman = nil
	if m.activity.Type == domain.ActivityHangman {
		m.hangman = &hangmanRound{
			target:  strings.ToUpper(m.question.AnswerText),
			hint:    m.question.Explanation,
			guessed: make(map[rune]bool),
		}
	}
	m.remaining = m.rules.MaxTurnSeconds
	m.setPhaseLocked(PhaseCountdown)
	m.emitLocked(Event{Type: EventRound, Round: m.round, ActiveTeam: m.activeTeam})
	m.bumpGenLocked()
	if !m.paused {
		m.scheduleTickLocked()
	}
}

func (m *Match) setPhaseLocked(p Phase) {
	m.phase = p
	m.emitLocked(Event{Type: EventPhase, Phase: p})
}

func (m *Match) bumpGenLocked() {
	m.gen++
	if m.cancelTick != nil {
		m.cancelTick()
		m.cancelTick = nil
	}
}

func (m *Match) scheduleTickLocked() {
	gen := m.gen
	m.cancelTick = m.sched.Schedule(time.Second, func() { m.tick(gen) })
}

// tick drives whichever of the two clocks is live. A tick from a superseded
// generation is discarded: it belongs to a round or phase that has already
// moved on.
func (m *Match) tick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.cancelTick = nil

	switch m.phase {
	case PhaseCountdown:
		if m.remaining <= 10 && m.remaining > 0 {
			m.playLocked(SoundCountdown)
		}
		if m.remaining <= 1 {
			m.remaining = 0
			m.resolveAnswerLocked(false, m.answeringTeamLocked(), false)
			return
		}
		m.remaining--
		m.scheduleTickLocked()
	case PhaseSteal:
		m.playLocked(SoundTick)
		m.steal.remaining--
		if m.steal.remaining <= 0 {
			m.closeStealLocked()
			return
		}
		m.scheduleTickLocked()
	}
}

func (m *Match) answeringTeamLocked() domain.TeamID {
	if m.buzzedTeam != "" {
		return m.buzzedTeam
	}
	return m.activeTeam
}

// checkAnswerLocked normalizes raw input per question kind. ok is false when
// the input cannot be evaluated at all, in which case the submission is
// ignored without penalty.
func (m *Match) checkAnswerLocked(raw string) (correct, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	switch m.question.Kind {
	case domain.KindNumeric:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return false, false
		}
		return n == m.question.AnswerNum, true
	case domain.KindBoolean:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return false, false
		}
		return b == m.question.AnswerBool, true
	default:
		return normalizeAnswer(raw) == normalizeAnswer(m.question.AnswerText), true
	}
}

func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// resolveAnswerLocked is the single scoring entry point for answers,
// timeouts and steal attempts. At most one resolution per round or steal
// window reaches it; phase guards upstream drop the rest.
func (m *Match) resolveAnswerLocked(correct bool, team domain.TeamID, stealAttempt bool) {
	m.bumpGenLocked()
	m.steal = nil
	elapsed := m.rules.MaxTurnSeconds - m.remaining

	if correct {
		streakAfter := m.streaks[team] + 1
		m.streaks[team] = streakAfter
		points, flags := m.tuning.Award(AwardInput{
			ElapsedSeconds: elapsed,
			StreakAfter:    streakAfter,
			Round:          m.round,
			TotalRounds:    m.rules.TotalRounds,
			Steal:          stealAttempt,
			SpeedEligible:  m.rules.SpeedBonus,
		})
		m.scores[team] += points
		if streakAfter >= 3 {
			m.playLocked(SoundStreak)
		} else {
			m.playLocked(SoundCorrect)
		}
		if stealAttempt {
			m.playLocked(SoundSteal)
		}
		m.applyScoreLocked(team, points)
		m.feedback = &Feedback{
			Correct:     true,
			Team:        team,
			Points:      points,
			Flags:       flags,
			Answer:      m.question.DisplayAnswer(),
			Explanation: m.question.Explanation,
		}
		m.setPhaseLocked(PhaseFeedback)
		return
	}

	m.streaks[team] = 0
	penalty := m.tuning.Penalty()
	m.scores[team] -= penalty
	m.playLocked(SoundWrong)
	m.applyScoreLocked(team, -penalty)
	m.feedback = &Feedback{
		Correct:     false,
		Team:        team,
		Points:      -penalty,
		Answer:      m.question.DisplayAnswer(),
		Explanation: m.question.Explanation,
	}

	if !stealAttempt && m.rules.SupportsSteal {
		m.steal = &stealWindow{team: team.Opponent(), remaining: m.tuning.StealWindowSeconds}
		m.setPhaseLocked(PhaseSteal)
		m.scheduleTickLocked()
		return
	}
	m.setPhaseLocked(PhaseFeedback)
}

func (m *Match) applyScoreLocked(team domain.TeamID, delta int) {
	m.emitLocked(Event{Type: EventScore, Team: team, Delta: delta})
	if m.hooks.OnScore != nil {
		m.hooks.OnScore(team, delta)
	}
}

// closeStealLocked ends the steal window with no scoring and reveals the
// staged wrong-answer feedback.
func (m *Match) closeStealLocked() {
	m.bumpGenLocked()
	m.steal = nil
	m.setPhaseLocked(PhaseFeedback)
}

func (m *Match) endLocked() {
	m.bumpGenLocked()
	scoreA, scoreB := m.scores[domain.TeamA], m.scores[domain.TeamB]
	winner := domain.WinnerDraw
	if scoreA > scoreB {
		winner = domain.Winner(domain.TeamA)
	} else if scoreB > scoreA {
		winner = domain.Winner(domain.TeamB)
	}
	record := domain.MatchRecord{
		ActivityID:  m.activity.ID,
		Winner:      winner,
		ScoreA:      scoreA,
		ScoreB:      scoreB,
		CompletedAt: m.now(),
	}
	m.record = &record
	m.playLocked(SoundVictory)
	m.setPhaseLocked(PhaseEnded)
	m.emitLocked(Event{Type: EventMatchEnd, Record: &record})
	if m.hooks.OnEnded != nil {
		m.hooks.OnEnded(record)
	}
}
