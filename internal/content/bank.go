// Package content turns the raw question pools into per-round questions with
// no-repeat-until-exhausted ordering.
package content

import (
	"fmt"
	"math/rand"
	"time"

	"classquiz-service/internal/domain"
)

// mcqOptions is the option count for idiom/proverb multiple choice.
const mcqOptions = 4

// Bank hands out questions for one match. Used-index tracking is match
// scoped: a new bank starts with every pool untouched.
type Bank struct {
	set  domain.ContentSet
	rnd  *rand.Rand
	used map[string]map[int]bool
}

// NewBank builds a match-scoped question bank. A nil rnd gets a time-seeded
// source.
func NewBank(set domain.ContentSet, rnd *rand.Rand) *Bank {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bank{set: set, rnd: rnd, used: make(map[string]map[int]bool)}
}

// Next returns the question for the given round. It never fails: exhausted
// pools reset their used set and repeats become possible.
func (b *Bank) Next(activity domain.Activity, round int) domain.Question {
	switch activity.Type {
	case domain.ActivityMath:
		q := GenerateMathQuestion(activity.Difficulty, b.rnd)
		q.ID = fmt.Sprintf("math-%d", round)
		return q
	case domain.ActivityScramble:
		return b.nextScramble(round)
	case domain.ActivityScience:
		return b.nextScience()
	case domain.ActivityHangman:
		return b.nextCountry()
	default:
		return b.nextIdiom(activity.ID)
	}
}

// draw picks a uniform-random unused index for the pool, resetting the used
// set first when every index has been seen.
func (b *Bank) draw(pool string, size int) int {
	used := b.used[pool]
	if used == nil {
		used = make(map[int]bool)
		b.used[pool] = used
	}
	if len(used) >= size {
		for idx := range used {
			delete(used, idx)
		}
	}
	available := make([]int, 0, size-len(used))
	for i := 0; i < size; i++ {
		if !used[i] {
			available = append(available, i)
		}
	}
	idx := available[b.rnd.Intn(len(available))]
	used[idx] = true
	return idx
}

func (b *Bank) nextIdiom(activityID string) domain.Question {
	pool := b.set.Idioms[activityID]
	if len(pool) == 0 {
		return domain.Question{Kind: domain.KindChoice}
	}
	idx := b.draw("idiom:"+activityID, len(pool))
	entry := pool[idx]

	// Distractors are meanings of other entries from the same pool.
	others := make([]int, 0, len(pool)-1)
	for i := range pool {
		if i != idx {
			others = append(others, i)
		}
	}
	b.rnd.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	options := []string{entry.Meaning}
	for _, i := range others {
		if len(options) == mcqOptions {
			break
		}
		options = append(options, pool[i].Meaning)
	}
	b.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return domain.Question{
		ID:          fmt.Sprintf("%s-%d", activityID, idx),
		Prompt:      fmt.Sprintf("What does %q mean?", entry.Idiom),
		Options:     options,
		Kind:        domain.KindChoice,
		AnswerText:  entry.Meaning,
		Explanation: fmt.Sprintf("Example: %q", entry.Example),
	}
}

func (b *Bank) nextScience() domain.Question {
	pool := b.set.Science
	if len(pool) == 0 {
		return domain.Question{Kind: domain.KindBoolean}
	}
	idx := b.draw("science", len(pool))
	fact := pool[idx]
	return domain.Question{
		ID:          fmt.Sprintf("science-%d", idx),
		Prompt:      fact.Statement,
		Kind:        domain.KindBoolean,
		AnswerBool:  fact.Truth,
		Explanation: fact.Explanation,
	}
}

func (b *Bank) nextCountry() domain.Question {
	pool := b.set.Countries
	if len(pool) == 0 {
		return domain.Question{Kind: domain.KindText}
	}
	idx := b.draw("countries", len(pool))
	country := pool[idx]
	hint := country.Hint
	if hint == "" {
		hint = country.Continent
	}
	return domain.Question{
		ID:          fmt.Sprintf("country-%d", idx),
		Prompt:      country.Continent,
		Kind:        domain.KindText,
		AnswerText:  country.Name,
		Explanation: hint,
	}
}

// nextScramble draws in fixed cyclic order by round number, and the prompt
// is the target word with its letters permuted.
func (b *Bank) nextScramble(round int) domain.Question {
	pool := b.set.Scramble
	if len(pool) == 0 {
		return domain.Question{Kind: domain.KindText}
	}
	idx := (round - 1) % len(pool)
	entry := pool[idx]
	return domain.Question{
		ID:          fmt.Sprintf("scramble-%d", idx),
		Prompt:      Scramble(entry.Word, b.rnd),
		Kind:        domain.KindText,
		AnswerText:  entry.Word,
		Explanation: entry.Hint,
	}
}
