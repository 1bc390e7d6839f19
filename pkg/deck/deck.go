// Package deck assembles session decks and reward options from a
// vocabulary list, balancing spaced-repetition bounties against new and
// filler words.
package deck

import (
	"math/rand"
	"sort"
	"time"

	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// SessionDeckSize is the fixed card count of a starting deck.
const SessionDeckSize = 12

// Type distribution over the 12 deck slots before the final shuffle.
var typePattern = []card.Type{
	card.TypeAttack, card.TypeAttack, card.TypeAttack, card.TypeAttack, card.TypeAttack,
	card.TypeDefense, card.TypeDefense, card.TypeDefense, card.TypeDefense,
	card.TypeUtility, card.TypeUtility,
	card.TypeHeal,
}

type pick struct {
	vocab    vocab.Vocabulary
	isReview bool
}

// GenerateSessionDeck builds a 12-card deck. Words due for review fill
// first (retests ahead of overdue reviews), but at least 3 slots are
// held for brand-new words when any exist. Remaining slots take shuffled
// leftovers, repeating picks if the list is smaller than the deck.
func GenerateSessionDeck(list []vocab.Vocabulary, now time.Time, r *rand.Rand) []card.Card {
	if len(list) == 0 {
		return nil
	}

	var bounty, newWords, filler []vocab.Vocabulary
	for _, v := range list {
		switch {
		case v.IsDue(now):
			bounty = append(bounty, v)
		case v.Proficiency == 0:
			newWords = append(newWords, v)
		default:
			filler = append(filler, v)
		}
	}

	var selected []pick

	sort.SliceStable(bounty, func(i, j int) bool {
		if bounty[i].IsRetest != bounty[j].IsRetest {
			return bounty[i].IsRetest
		}
		return bounty[i].NextReview < bounty[j].NextReview
	})
	maxBounty := SessionDeckSize
	if len(newWords) > 0 {
		maxBounty -= 3
	}
	for len(selected) < maxBounty && len(bounty) > 0 {
		selected = append(selected, pick{vocab: bounty[0], isReview: true})
		bounty = bounty[1:]
	}

	r.Shuffle(len(newWords), func(i, j int) { newWords[i], newWords[j] = newWords[j], newWords[i] })
	for len(selected) < SessionDeckSize && len(newWords) > 0 {
		selected = append(selected, pick{vocab: newWords[0]})
		newWords = newWords[1:]
	}

	leftovers := append(append([]vocab.Vocabulary(nil), bounty...), filler...)
	r.Shuffle(len(leftovers), func(i, j int) { leftovers[i], leftovers[j] = leftovers[j], leftovers[i] })
	for len(selected) < SessionDeckSize && len(leftovers) > 0 {
		v := leftovers[0]
		leftovers = leftovers[1:]
		selected = append(selected, pick{vocab: v, isReview: v.IsDue(now)})
	}

	// Small lists repeat words until the deck is full.
	for len(selected) < SessionDeckSize && len(selected) > 0 {
		selected = append(selected, selected[r.Intn(len(selected))])
	}

	// Randomize which word lands on which type, keeping the 5/4/2/1
	// attack/defense/utility/heal split exact.
	r.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	deck := make([]card.Card, 0, len(selected))
	for i, p := range selected {
		deck = append(deck, card.New(typePattern[i%len(typePattern)], p.vocab, p.isReview))
	}

	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// RandomRewardOptions returns 3 independent (random type, random word)
// draws for the post-combat reward screen.
func RandomRewardOptions(list []vocab.Vocabulary, r *rand.Rand) []card.Card {
	if len(list) == 0 {
		return nil
	}
	types := []card.Type{card.TypeAttack, card.TypeDefense, card.TypeUtility, card.TypeHeal}
	rewards := make([]card.Card, 0, 3)
	for i := 0; i < 3; i++ {
		t := types[r.Intn(len(types))]
		v := list[r.Intn(len(list))]
		rewards = append(rewards, card.New(t, v, false))
	}
	return rewards
}

// ReplacementVocab picks a word not already in the deck, for card-remove
// and transform services. Falls back to the first list entry when every
// word is in use.
func ReplacementVocab(currentIDs []string, list []vocab.Vocabulary, r *rand.Rand) vocab.Vocabulary {
	var candidates []vocab.Vocabulary
	for _, v := range list {
		inUse := false
		for _, id := range currentIDs {
			if v.ID == id {
				inUse = true
				break
			}
		}
		if !inUse {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return list[0]
	}
	return candidates[r.Intn(len(candidates))]
}
