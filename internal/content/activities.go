package content

import "classquiz-service/internal/domain"

// activities is the fixed catalogue of playable game modes.
var activities = []domain.Activity{
	{ID: "idiom-dash", Title: "Idiom Dash", Type: domain.ActivityQuiz, Difficulty: domain.DifficultyMedium, Description: "Pick the meaning of the idiom"},
	{ID: "proverb-challenge", Title: "Proverb Challenge", Type: domain.ActivityQuiz, Difficulty: domain.DifficultyHard, Description: "Pick the meaning of the proverb"},
	{ID: "math-quickfire", Title: "Math Quick-Fire", Type: domain.ActivityMath, Difficulty: domain.DifficultyHard, Description: "Buzz in and solve"},
	{ID: "science-factcheck", Title: "Science Fact Check", Type: domain.ActivityScience, Difficulty: domain.DifficultyMedium, Description: "True or false?"},
	{ID: "word-scramble", Title: "Word Scramble", Type: domain.ActivityScramble, Difficulty: domain.DifficultyEasy, Description: "Unscramble the word"},
	{ID: "country-hunt", Title: "Country Hunt", Type: domain.ActivityHangman, Difficulty: domain.DifficultyMedium, Description: "Guess the country letter by letter"},
}

// Activities lists every activity in catalogue order.
func Activities() []domain.Activity {
	out := make([]domain.Activity, len(activities))
	copy(out, activities)
	return out
}

// ActivityByID looks up one activity.
func ActivityByID(id string) (domain.Activity, bool) {
	for _, a := range activities {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Activity{}, false
}
