package game

import "math"

// Tuning holds the point values and pacing constants. The defaults match
// classroom pacing; everything is adjustable through the config file.
type Tuning struct {
	BasePoints            int `yaml:"basePoints"`
	SpeedBonus            int `yaml:"speedBonus"`
	SpeedThresholdSeconds int `yaml:"speedThresholdSeconds"`
	StealPoints           int `yaml:"stealPoints"`
	StealWindowSeconds    int `yaml:"stealWindowSeconds"`
	WrongPenalty          int `yaml:"wrongPenalty"`
	ShowdownRounds        int `yaml:"showdownRounds"`
}

// DefaultTuning returns the standard scoring constants.
func DefaultTuning() Tuning {
	return Tuning{
		BasePoints:            100,
		SpeedBonus:            50,
		SpeedThresholdSeconds: 5,
		StealPoints:           75,
		StealWindowSeconds:    5,
		WrongPenalty:          50,
		ShowdownRounds:        5,
	}
}

// AwardInput is the round context a correct answer is scored against.
// StreakAfter is the scoring team's streak including this answer.
type AwardInput struct {
	ElapsedSeconds int
	StreakAfter    int
	Round          int
	TotalRounds    int
	Steal          bool
	SpeedEligible  bool
}

// AwardFlags report which bonuses contributed to an award.
type AwardFlags struct {
	SpeedBonus  bool `json:"speedBonus"`
	StreakBonus bool `json:"streakBonus"`
	Stolen      bool `json:"stolen"`
}

// Award computes the points for a correct answer:
// base (steal points, or base points plus an optional speed bonus) scaled by
// the streak and showdown multipliers, rounded half-up.
func (t Tuning) Award(in AwardInput) (int, AwardFlags) {
	var flags AwardFlags

	base := t.BasePoints
	if in.Steal {
		base = t.StealPoints
		flags.Stolen = true
	} else if in.SpeedEligible && in.ElapsedSeconds <= t.SpeedThresholdSeconds {
		base += t.SpeedBonus
		flags.SpeedBonus = true
	}

	streakMult := StreakMultiplier(in.StreakAfter)
	if streakMult > 1 {
		flags.StreakBonus = true
	}

	points := float64(base) * streakMult * t.ShowdownMultiplier(in.Round, in.TotalRounds)
	return int(math.Floor(points + 0.5)), flags
}

// Penalty is the flat deduction for a wrong answer or timeout. No
// multipliers apply and totals are allowed to go negative.
func (t Tuning) Penalty() int {
	return t.WrongPenalty
}

// StreakMultiplier maps a consecutive-correct count to its score multiplier.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 5:
		return 2.0
	case streak >= 3:
		return 1.5
	default:
		return 1.0
	}
}

// ShowdownMultiplier doubles points inside the final-rounds window.
func (t Tuning) ShowdownMultiplier(round, totalRounds int) float64 {
	if t.IsShowdown(round, totalRounds) {
		return 2.0
	}
	return 1.0
}

// IsShowdown reports whether round falls in the final showdown window.
func (t Tuning) IsShowdown(round, totalRounds int) bool {
	return round > totalRounds-t.ShowdownRounds
}
