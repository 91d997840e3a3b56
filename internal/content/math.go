package content

import (
	"fmt"
	"math/rand"

	"classquiz-service/internal/domain"
)

// GenerateMathQuestion builds a fresh arithmetic question. The operator is
// uniform over add/subtract/multiply; add and subtract operand ranges follow
// the difficulty, while multiply keeps both operands in 2..13 so products
// stay presentable. Subtraction operands are ordered so the result is never
// negative.
func GenerateMathQuestion(difficulty domain.Difficulty, rnd *rand.Rand) domain.Question {
	var a, b int
	if difficulty == domain.DifficultyEasy {
		a = rnd.Intn(50) + 1
		b = rnd.Intn(50) + 1
	} else {
		a = rnd.Intn(100) + 10
		b = rnd.Intn(50) + 5
	}

	var symbol string
	var answer int
	switch rnd.Intn(3) {
	case 0:
		symbol = "+"
		answer = a + b
	case 1:
		symbol = "-"
		if a < b {
			a, b = b, a
		}
		answer = a - b
	default:
		symbol = "×"
		a = rnd.Intn(12) + 2
		b = rnd.Intn(12) + 2
		answer = a * b
	}

	return domain.Question{
		Prompt:    fmt.Sprintf("%d %s %d = ?", a, symbol, b),
		Kind:      domain.KindNumeric,
		AnswerNum: answer,
	}
}
