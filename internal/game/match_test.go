package game_test

import (
	"testing"
	"time"

	"classquiz-service/internal/domain"
	"classquiz-service/internal/game"
	"classquiz-service/internal/sound"
)

// manualScheduler lets tests drive the per-second ticks by hand. Only one
// callback is ever pending, mirroring the match's single-timer contract.
type manualScheduler struct {
	fn  func()
	seq int
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	s.seq++
	id := s.seq
	s.fn = fn
	return func() {
		if s.seq == id {
			s.fn = nil
		}
	}
}

// Tick fires the pending callback, if any.
func (s *manualScheduler) Tick() {
	if s.fn == nil {
		return
	}
	fn := s.fn
	s.fn = nil
	fn()
}

type stubBank struct {
	q domain.Question
}

func (b stubBank) Next(domain.Activity, int) domain.Question { return b.q }

func textQuestion(answer string) domain.Question {
	return domain.Question{ID: "q", Prompt: "?", Kind: domain.KindText, AnswerText: answer}
}

func quizActivity() domain.Activity {
	return domain.Activity{ID: "quiz-test", Type: domain.ActivityQuiz}
}

func newTestMatch(activity domain.Activity, q domain.Question) (*game.Match, *manualScheduler, *sound.Recorder) {
	sched := &manualScheduler{}
	rec := &sound.Recorder{}
	m := game.NewMatch(game.MatchParams{
		Activity:  activity,
		Bank:      stubBank{q: q},
		Scheduler: sched,
		Sound:     rec,
	})
	return m, sched, rec
}

func TestCorrectAnswerScoresSpeedBonus(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "bintang ")

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback phase, got %s", v.Phase)
	}
	if v.Scores[domain.TeamA] != 150 {
		t.Fatalf("expected 150 points with speed bonus, got %d", v.Scores[domain.TeamA])
	}
	if v.Feedback == nil || !v.Feedback.Flags.SpeedBonus {
		t.Fatalf("expected speed bonus flag, got %+v", v.Feedback)
	}
	if v.Streaks[domain.TeamA] != 1 {
		t.Fatalf("expected streak 1, got %d", v.Streaks[domain.TeamA])
	}
}

func TestSlowCorrectAnswerSkipsSpeedBonus(t *testing.T) {
	m, sched, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	for i := 0; i < 6; i++ {
		sched.Tick()
	}
	m.SubmitAnswer("", "BINTANG")

	v := m.View()
	if v.Scores[domain.TeamA] != 100 {
		t.Fatalf("expected 100 points without speed bonus, got %d", v.Scores[domain.TeamA])
	}
}

func TestWrongAnswerPenaltyAndStealWindow(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")

	v := m.View()
	if v.Phase != game.PhaseSteal {
		t.Fatalf("expected steal phase, got %s", v.Phase)
	}
	if v.Scores[domain.TeamA] != -50 {
		t.Fatalf("expected -50 after penalty, got %d", v.Scores[domain.TeamA])
	}
	if v.Steal == nil || v.Steal.Team != domain.TeamB || v.Steal.Remaining != 5 {
		t.Fatalf("unexpected steal window %+v", v.Steal)
	}
}

func TestSuccessfulStealScoresStealPoints(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")
	m.SubmitAnswer(domain.TeamB, "BINTANG")

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback after steal, got %s", v.Phase)
	}
	if v.Scores[domain.TeamB] != 75 {
		t.Fatalf("expected 75 steal points, got %d", v.Scores[domain.TeamB])
	}
	if v.Feedback == nil || !v.Feedback.Flags.Stolen {
		t.Fatalf("expected stolen flag, got %+v", v.Feedback)
	}
}

func TestFailedStealPenalizesWithoutNewWindow(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")
	m.SubmitAnswer(domain.TeamB, "salah juga")

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback, not a second steal window, got %s", v.Phase)
	}
	if v.Scores[domain.TeamB] != -50 {
		t.Fatalf("expected -50 for failed steal, got %d", v.Scores[domain.TeamB])
	}
}

func TestStealWindowResolvedAtMostOnce(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")
	m.SubmitAnswer(domain.TeamB, "BINTANG")
	before := m.View().Scores

	// Late and duplicate resolutions must be inert.
	m.SubmitAnswer(domain.TeamB, "BINTANG")
	m.DeclineSteal()
	m.SubmitAnswer("", "BINTANG")

	after := m.View().Scores
	if before[domain.TeamA] != after[domain.TeamA] || before[domain.TeamB] != after[domain.TeamB] {
		t.Fatalf("scores changed after window closed: %v -> %v", before, after)
	}
}

func TestStealWindowExpiresSilently(t *testing.T) {
	m, sched, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")
	for i := 0; i < 5; i++ {
		sched.Tick()
	}

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback after expiry, got %s", v.Phase)
	}
	if v.Scores[domain.TeamB] != 0 {
		t.Fatalf("expiry must not score, got %d for the eligible team", v.Scores[domain.TeamB])
	}
}

func TestDeclineStealClosesWindow(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "salah")
	m.DeclineSteal()

	if v := m.View(); v.Phase != game.PhaseFeedback || v.Scores[domain.TeamB] != 0 {
		t.Fatalf("expected silent close, got phase=%s scores=%v", v.Phase, v.Scores)
	}
}

func TestTimeoutCountsAsWrongAnswer(t *testing.T) {
	m, sched, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	for i := 0; i < 45; i++ {
		sched.Tick()
	}

	v := m.View()
	if v.Scores[domain.TeamA] != -50 {
		t.Fatalf("expected timeout penalty, got %d", v.Scores[domain.TeamA])
	}
	if v.Phase != game.PhaseSteal {
		t.Fatalf("timeout should open a steal window, got %s", v.Phase)
	}
}

func TestEmptyAndDuplicateSubmissionsIgnored(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "   ")
	if v := m.View(); v.Phase != game.PhaseCountdown {
		t.Fatalf("empty input must not resolve the round, got %s", v.Phase)
	}

	m.SubmitAnswer("", "BINTANG")
	m.SubmitAnswer("", "BINTANG")
	if v := m.View(); v.Scores[domain.TeamA] != 150 {
		t.Fatalf("second submission must be ignored, got %d", v.Scores[domain.TeamA])
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	m, sched, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	sched.Tick()
	m.Pause()
	remaining := m.View().Remaining

	sched.Tick()
	sched.Tick()
	if got := m.View().Remaining; got != remaining {
		t.Fatalf("countdown moved while paused: %d -> %d", remaining, got)
	}

	m.Resume()
	sched.Tick()
	if got := m.View().Remaining; got != remaining-1 {
		t.Fatalf("expected countdown to resume at %d, got %d", remaining-1, got)
	}
}

func TestStaleTickIsInert(t *testing.T) {
	m, sched, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	// Capture the pending tick, then resolve the round so its generation is
	// superseded before it fires.
	stale := sched.fn
	m.SubmitAnswer("", "BINTANG")
	before := m.View()

	stale()

	after := m.View()
	if before.Remaining != after.Remaining || before.Phase != after.Phase ||
		before.Scores[domain.TeamA] != after.Scores[domain.TeamA] {
		t.Fatalf("stale tick mutated state: %+v -> %+v", before, after)
	}
}

func TestRoundBoundAndSingleMatchEnd(t *testing.T) {
	ended := 0
	var record domain.MatchRecord
	sched := &manualScheduler{}
	m := game.NewMatch(game.MatchParams{
		Activity:  quizActivity(),
		Bank:      stubBank{q: textQuestion("BINTANG")},
		Scheduler: sched,
		Hooks: game.Hooks{OnEnded: func(r domain.MatchRecord) {
			ended++
			record = r
		}},
	})
	m.Start()

	for round := 1; round <= 10; round++ {
		if v := m.View(); v.Round != round {
			t.Fatalf("expected round %d, got %d", round, v.Round)
		}
		m.SubmitAnswer("", "BINTANG")
		m.Next()
	}

	v := m.View()
	if v.Phase != game.PhaseEnded {
		t.Fatalf("expected match end after final feedback, got %s", v.Phase)
	}
	if ended != 1 {
		t.Fatalf("expected exactly one end callback, got %d", ended)
	}
	if v.Round != 10 {
		t.Fatalf("round exceeded total: %d", v.Round)
	}

	// Further actions are inert in the terminal state.
	m.Next()
	m.SubmitAnswer("", "BINTANG")
	if ended != 1 {
		t.Fatalf("end callback repeated")
	}
	if record.ActivityID != "quiz-test" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestDrawAndWinnerResolution(t *testing.T) {
	// Both teams answer nothing but wrong and decline every steal: the
	// deductions are symmetric and the match is a draw.
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()
	for round := 1; round <= 10; round++ {
		m.SubmitAnswer("", "salah")
		m.DeclineSteal()
		m.Next()
	}
	v := m.View()
	if v.Record == nil || v.Record.Winner != domain.WinnerDraw {
		t.Fatalf("expected draw, got %+v", v.Record)
	}
	if v.Record.ScoreA != -250 || v.Record.ScoreB != -250 {
		t.Fatalf("unexpected final scores %+v", v.Record)
	}
}

func TestStrictScoreComparisonPicksWinner(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	// Round 1: team A answers correctly; every later round is a declined
	// wrong answer, so A finishes ahead.
	m.SubmitAnswer("", "BINTANG")
	m.Next()
	for round := 2; round <= 10; round++ {
		m.SubmitAnswer("", "salah")
		m.DeclineSteal()
		m.Next()
	}

	v := m.View()
	if v.Record == nil || v.Record.Winner != domain.Winner(domain.TeamA) {
		t.Fatalf("expected team A win, got %+v", v.Record)
	}
	if v.Record.ScoreA <= v.Record.ScoreB {
		t.Fatalf("winner must be strictly ahead: %+v", v.Record)
	}
}

func TestActiveTeamAlternatesEachRound(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	if m.View().ActiveTeam != domain.TeamA {
		t.Fatalf("expected team A first")
	}
	m.SubmitAnswer("", "BINTANG")
	m.Next()
	if m.View().ActiveTeam != domain.TeamB {
		t.Fatalf("expected team B on round 2")
	}
}

func TestStreakResetsOnlyForTheMissingTeam(t *testing.T) {
	m, _, _ := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	m.SubmitAnswer("", "BINTANG") // A correct, streak 1
	m.Next()
	m.SubmitAnswer("", "salah") // B wrong, B streak reset
	m.DeclineSteal()

	v := m.View()
	if v.Streaks[domain.TeamA] != 1 {
		t.Fatalf("team A streak must survive team B's miss, got %d", v.Streaks[domain.TeamA])
	}
	if v.Streaks[domain.TeamB] != 0 {
		t.Fatalf("team B streak must reset, got %d", v.Streaks[domain.TeamB])
	}
}

func TestShowdownAnnouncedExactlyOnce(t *testing.T) {
	m, _, rec := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	for round := 1; round <= 9; round++ {
		m.SubmitAnswer("", "BINTANG")
		m.Next()
	}

	announced := 0
	for _, ev := range rec.Events {
		if ev == game.SoundShowdown {
			announced++
		}
	}
	if announced != 1 {
		t.Fatalf("expected exactly one showdown announcement, got %d", announced)
	}
}

func TestLowTimeCountdownAlert(t *testing.T) {
	m, sched, rec := newTestMatch(quizActivity(), textQuestion("BINTANG"))
	m.Start()

	for i := 0; i < 40; i++ {
		sched.Tick()
	}
	alerts := 0
	for _, ev := range rec.Events {
		if ev == game.SoundCountdown {
			alerts++
		}
	}
	// Remaining hits the (0,10] band for ticks at 10..6 seconds left.
	if alerts != 5 {
		t.Fatalf("expected 5 countdown alerts, got %d", alerts)
	}
}

func mathActivity() domain.Activity {
	return domain.Activity{ID: "math-test", Type: domain.ActivityMath}
}

func numericQuestion(answer int) domain.Question {
	return domain.Question{ID: "q", Prompt: "?", Kind: domain.KindNumeric, AnswerNum: answer}
}

func TestBuzzInRequiredForMathAnswers(t *testing.T) {
	m, _, _ := newTestMatch(mathActivity(), numericQuestion(42))
	m.Start()

	m.SubmitAnswer(domain.TeamA, "42")
	if v := m.View(); v.Phase != game.PhaseCountdown {
		t.Fatalf("answer without a buzz must be ignored, got %s", v.Phase)
	}

	m.BuzzIn(domain.TeamB)
	m.SubmitAnswer(domain.TeamB, "42")
	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback after buzzed answer, got %s", v.Phase)
	}
	if v.Scores[domain.TeamB] != 150 {
		t.Fatalf("expected 150 for the buzzing team, got %d", v.Scores[domain.TeamB])
	}
}

func TestBuzzInSuspendsCountdown(t *testing.T) {
	m, sched, _ := newTestMatch(mathActivity(), numericQuestion(42))
	m.Start()

	sched.Tick()
	m.BuzzIn(domain.TeamA)
	remaining := m.View().Remaining

	sched.Tick()
	if got := m.View().Remaining; got != remaining {
		t.Fatalf("countdown moved during a buzz: %d -> %d", remaining, got)
	}

	m.CancelBuzz()
	sched.Tick()
	if got := m.View().Remaining; got != remaining-1 {
		t.Fatalf("expected countdown to resume at %d, got %d", remaining-1, got)
	}
}

func TestWrongMathAnswerHasNoStealWindow(t *testing.T) {
	m, _, _ := newTestMatch(mathActivity(), numericQuestion(42))
	m.Start()

	m.BuzzIn(domain.TeamA)
	m.SubmitAnswer(domain.TeamA, "41")

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("math rounds must not open a steal window, got %s", v.Phase)
	}
	if v.Scores[domain.TeamA] != -50 {
		t.Fatalf("expected -50 for the wrong buzz, got %d", v.Scores[domain.TeamA])
	}
}

func TestOnlyFirstBuzzCounts(t *testing.T) {
	m, _, _ := newTestMatch(mathActivity(), numericQuestion(42))
	m.Start()

	m.BuzzIn(domain.TeamA)
	m.BuzzIn(domain.TeamB)
	if got := m.View().BuzzedTeam; got != domain.TeamA {
		t.Fatalf("expected team A to hold the buzz, got %s", got)
	}
}

func hangmanActivity() domain.Activity {
	return domain.Activity{ID: "hangman-test", Type: domain.ActivityHangman}
}

func countryQuestion(name string) domain.Question {
	return domain.Question{ID: "q", Prompt: "ASIA", Kind: domain.KindText, AnswerText: name, Explanation: "hint"}
}

func TestHangmanWinScoresBasePointsOnly(t *testing.T) {
	m, _, _ := newTestMatch(hangmanActivity(), countryQuestion("PERU"))
	m.Start()

	for _, l := range []string{"P", "E", "R", "U"} {
		m.GuessLetter(l)
	}

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback after the last letter, got %s", v.Phase)
	}
	// Guess-the-country rounds never pay a speed bonus.
	if v.Scores[domain.TeamA] != 100 {
		t.Fatalf("expected flat 100, got %d", v.Scores[domain.TeamA])
	}
}

func TestHangmanLossAfterSixWrongGuesses(t *testing.T) {
	m, _, _ := newTestMatch(hangmanActivity(), countryQuestion("PERU"))
	m.Start()

	for _, l := range []string{"A", "B", "C", "D", "F", "G"} {
		m.GuessLetter(l)
	}

	v := m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected feedback after the sixth miss, got %s", v.Phase)
	}
	if v.Scores[domain.TeamA] != -50 {
		t.Fatalf("expected -50 on the loss, got %d", v.Scores[domain.TeamA])
	}
}

func TestHangmanRepeatedLetterIgnored(t *testing.T) {
	m, _, _ := newTestMatch(hangmanActivity(), countryQuestion("PERU"))
	m.Start()

	m.GuessLetter("z")
	m.GuessLetter("Z")
	m.GuessLetter("zz")

	v := m.View()
	if v.Hangman == nil || v.Hangman.WrongGuesses != 1 {
		t.Fatalf("repeat and malformed guesses must not count, got %+v", v.Hangman)
	}
}

func TestHangmanDisplayMasksUnguessedLetters(t *testing.T) {
	m, _, _ := newTestMatch(hangmanActivity(), countryQuestion("NEW ZEALAND"))
	m.Start()

	m.GuessLetter("N")
	m.GuessLetter("E")

	v := m.View()
	if v.Hangman == nil {
		t.Fatalf("expected hangman view")
	}
	want := "N E _   _ E _ _ _ N _"
	if v.Hangman.Display != want {
		t.Fatalf("display = %q, want %q", v.Hangman.Display, want)
	}
}

func TestHangmanPunctuationShowsLiterallyAndStaysWinnable(t *testing.T) {
	m, _, _ := newTestMatch(hangmanActivity(), countryQuestion("GUINEA-BISSAU"))
	m.Start()

	v := m.View()
	if v.Hangman == nil {
		t.Fatalf("expected hangman view")
	}
	want := "_ _ _ _ _ _ - _ _ _ _ _ _"
	if v.Hangman.Display != want {
		t.Fatalf("display = %q, want %q", v.Hangman.Display, want)
	}

	// The hyphen is never guessable, so the letters alone win the round.
	for _, l := range []string{"G", "U", "I", "N", "E", "A", "B", "S"} {
		m.GuessLetter(l)
	}
	v = m.View()
	if v.Phase != game.PhaseFeedback {
		t.Fatalf("expected a win from letters alone, got phase %s", v.Phase)
	}
	if v.Scores[domain.TeamA] != 100 {
		t.Fatalf("expected 100 for the win, got %d", v.Scores[domain.TeamA])
	}
}

func TestStopCancelsWithoutRecord(t *testing.T) {
	ended := 0
	sched := &manualScheduler{}
	m := game.NewMatch(game.MatchParams{
		Activity:  quizActivity(),
		Bank:      stubBank{q: textQuestion("BINTANG")},
		Scheduler: sched,
		Hooks:     game.Hooks{OnEnded: func(domain.MatchRecord) { ended++ }},
	})
	m.Start()
	m.Stop()

	v := m.View()
	if v.Phase != game.PhaseEnded {
		t.Fatalf("expected ended phase, got %s", v.Phase)
	}
	if v.Record != nil || ended != 0 {
		t.Fatalf("an abandoned match must not emit a record")
	}
	sched.Tick()
	if got := m.View().Remaining; got != 45 {
		t.Fatalf("tick after stop mutated state: remaining=%d", got)
	}
}
