package content

import "math/rand"

// Scramble permutes the letters of word. For words longer than one letter
// the result is never identical to the original.
func Scramble(word string, rnd *rand.Rand) string {
	letters := []rune(word)
	if len(letters) < 2 || allSame(letters) {
		return word
	}
	for {
		for i := len(letters) - 1; i > 0; i-- {
			j := rnd.Intn(i + 1)
			letters[i], letters[j] = letters[j], letters[i]
		}
		if string(letters) != word {
			return string(letters)
		}
	}
}

func allSame(letters []rune) bool {
	for _, r := range letters[1:] {
		if r != letters[0] {
			return false
		}
	}
	return true
}
