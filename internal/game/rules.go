package game

import "classquiz-service/internal/domain"

// Rules captures the per-activity-type gameplay variation. A Rules value is
// selected once when a match starts instead of branching on the activity
// type throughout the round logic.
type Rules struct {
	MaxTurnSeconds  int
	TotalRounds     int
	SupportsSteal   bool
	SupportsBuzzIn  bool
	AlternatesTurns bool
	SpeedBonus      bool
	MaxWrongGuesses int // hangman only
}

// marqueeActivities play the long 30-round format.
var marqueeActivities = map[string]bool{
	"idiom-dash":        true,
	"proverb-challenge": true,
	"math-quickfire":    true,
	"science-factcheck": true,
}

// RulesFor derives the gameplay rules for an activity.
func RulesFor(activity domain.Activity) Rules {
	r := Rules{
		MaxTurnSeconds:  45,
		TotalRounds:     10,
		SupportsSteal:   true,
		AlternatesTurns: true,
		SpeedBonus:      true,
	}

	switch activity.Type {
	case domain.ActivityMath:
		// Buzzer style: whoever buzzes answers, no turn order, no stealing.
		r.MaxTurnSeconds = 60
		r.SupportsSteal = false
		r.SupportsBuzzIn = true
		r.AlternatesTurns = false
	case domain.ActivityHangman:
		// Letter guessing is self-contained: no steal window and the speed
		// bonus only applies to direct text/choice answers.
		r.MaxTurnSeconds = 90
		r.TotalRounds = 15
		r.SupportsSteal = false
		r.SpeedBonus = false
		r.MaxWrongGuesses = 6
	}

	if marqueeActivities[activity.ID] {
		r.TotalRounds = 30
	}
	return r
}
