// Package event holds the narrative event catalog and the stateless
// resolver that maps a player's choice to a structured outcome. The
// resolver never mutates the player; callers apply the returned deltas.
package event

import (
	"fmt"
	"math/rand"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// ChoiceType labels the risk profile shown to the player.
type ChoiceType string

const (
	ChoiceSafe  ChoiceType = "SAFE"
	ChoiceRisky ChoiceType = "RISKY"
	ChoiceTrade ChoiceType = "TRADE"
	ChoiceRoll  ChoiceType = "ROLL"
)

// Choice is one option within an event. ROLL choices carry a d20
// difficulty class; the roll itself is supplied by the caller.
type Choice struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Description string     `json:"description,omitempty"`
	Type        ChoiceType `json:"type"`
	Requirement string     `json:"requirement,omitempty"`
	RollDC      int        `json:"rollDC,omitempty"`
}

// Event is a narrative encounter on an EVENT map node.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices"`
}

// Outcome classifies a result for presentation.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
	OutcomeNeutral Outcome = "NEUTRAL"
)

// Result is the structured delta of a resolved choice. The caller
// applies gold, damage, healing, and card changes to the run.
type Result struct {
	Message      string      `json:"message"`
	Outcome      Outcome     `json:"outcome"`
	GoldChange   int         `json:"goldChange,omitempty"`
	DamageTaken  int         `json:"damageTaken,omitempty"`
	Healed       int         `json:"healed,omitempty"`
	CardsRemoved int         `json:"cardsRemoved,omitempty"`
	CardsAdded   []card.Card `json:"cardsAdded,omitempty"`
}

// Catalog is every event a run can roll.
var Catalog = []Event{
	{
		ID:          "fountain",
		Title:       "The Mysterious Fountain",
		Description: "You stumble upon a fountain of clear water in the middle of a dark chamber. It shimmers with a faint blue light. The water looks refreshing, but you notice coins glittering at the bottom.",
		Choices: []Choice{
			{ID: "drink", Text: "Drink", Description: "Heal 20 HP.", Type: ChoiceSafe},
			{ID: "coin", Text: "Toss a Coin", Description: "Lose 10 Gold. Remove a Card.", Type: ChoiceTrade, Requirement: "10 Gold"},
			{ID: "leave", Text: "Leave", Type: ChoiceSafe},
		},
	},
	{
		ID:          "dice_goblin",
		Title:       "The Dice Goblin",
		Description: "A small, manic goblin blocks your path. He holds a giant 20-sided die. \"Roll for it!\" he screeches. \"High you win shiny! Low... I take shiny!\"",
		Choices: []Choice{
			{ID: "roll", Text: "Roll the Die", Description: "DC 10. Success: Gain 50 Gold. Fail: Lose 20 Gold.", Type: ChoiceRoll, RollDC: 10},
			{ID: "attack", Text: "Attack", Description: "Lose 5 HP. Gain 20 Gold.", Type: ChoiceRisky},
			{ID: "leave", Text: "Ignore", Type: ChoiceSafe},
		},
	},
	{
		ID:          "cursed_book",
		Title:       "The Cursed Tome",
		Description: "An ancient book floats on a pedestal. It whispers to you in a language you shouldn't know but somehow understand. It offers power, but the pages are stained with blood.",
		Choices: []Choice{
			{ID: "read", Text: "Read", Description: "Lose 10 HP. Obtain a random Power card.", Type: ChoiceRisky},
			{ID: "take", Text: "Take the Book", Description: "Sell it later for 50 Gold.", Type: ChoiceSafe},
			{ID: "leave", Text: "Leave", Type: ChoiceSafe},
		},
	},
	{
		ID:          "beggar",
		Title:       "The Old Beggar",
		Description: "A ragged figure sits in the shadows. \"Alms for the poor?\" he rasps. \"Or perhaps you seek to lighten your burden?\"",
		Choices: []Choice{
			{ID: "give", Text: "Give Gold", Description: "Lose 25 Gold. Heal 30 HP.", Type: ChoiceTrade, Requirement: "25 Gold"},
			{ID: "purge", Text: "Purge", Description: "Remove a card from your deck.", Type: ChoiceSafe},
			{ID: "rob", Text: "Rob", Description: "Gain 20 Gold. Lose 5 HP to shame.", Type: ChoiceRisky},
		},
	},
	{
		ID:          "mirror",
		Title:       "The Mirror of Truth",
		Description: "A pristine mirror stands before you. When you look into it, you see not your reflection, but a stronger version of yourself... or is it?",
		Choices: []Choice{
			{ID: "duplicate", Text: "Duplicate", Description: "Duplicate a random card in your deck.", Type: ChoiceSafe},
			{ID: "smash", Text: "Smash", Description: "Search for loot. DC 12 check.", Type: ChoiceRoll, RollDC: 12},
			{ID: "leave", Text: "Leave", Type: ChoiceSafe},
		},
	},
}

// ByID returns the event with the given id.
func ByID(id string) (Event, bool) {
	for _, e := range Catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Resolve maps a choice to its outcome. For ROLL choices, roll is the
// caller's d20 result. vocabList feeds card rewards; r picks which word.
// Unknown event or choice ids resolve to a neutral error result.
func Resolve(eventID, choiceID string, player *actor.Player, vocabList []vocab.Vocabulary, roll int, r *rand.Rand) Result {
	ev, ok := ByID(eventID)
	if !ok {
		return Result{Message: "Error", Outcome: OutcomeNeutral}
	}
	var choice *Choice
	for i := range ev.Choices {
		if ev.Choices[i].ID == choiceID {
			choice = &ev.Choices[i]
			break
		}
	}
	if choice == nil {
		return Result{Message: "Error", Outcome: OutcomeNeutral}
	}

	switch eventID {
	case "dice_goblin":
		switch choiceID {
		case "roll":
			if roll >= choice.RollDC {
				return Result{Message: fmt.Sprintf("You rolled a %d! The goblin cheers and throws coins at you.", roll), Outcome: OutcomeSuccess, GoldChange: 50}
			}
			return Result{Message: fmt.Sprintf("You rolled a %d... The goblin cackles and swipes your purse!", roll), Outcome: OutcomeFailure, GoldChange: -20}
		case "attack":
			return Result{Message: "You smack the goblin and take his lunch money, but he bites you.", Outcome: OutcomeNeutral, DamageTaken: 5, GoldChange: 20}
		}

	case "fountain":
		switch choiceID {
		case "drink":
			return Result{Message: "The water is cool and refreshing.", Outcome: OutcomeSuccess, Healed: 20}
		case "coin":
			return Result{Message: "You toss a coin. You feel lighter.", Outcome: OutcomeSuccess, GoldChange: -10, CardsRemoved: 1}
		}

	case "cursed_book":
		switch choiceID {
		case "read":
			if len(vocabList) > 0 {
				v := vocabList[r.Intn(len(vocabList))]
				power := card.New(card.TypeUtility, v, false)
				return Result{Message: "The words burn your eyes, but knowledge flows into you.", Outcome: OutcomeSuccess, DamageTaken: 10, CardsAdded: []card.Card{power}}
			}
			return Result{Message: "The pages are blank.", Outcome: OutcomeNeutral, DamageTaken: 5}
		case "take":
			return Result{Message: "You take the book to sell later.", Outcome: OutcomeSuccess, GoldChange: 50}
		}

	case "beggar":
		switch choiceID {
		case "give":
			return Result{Message: "The beggar blesses you.", Outcome: OutcomeSuccess, GoldChange: -25, Healed: 30}
		case "purge":
			return Result{Message: "The beggar teaches you to let go.", Outcome: OutcomeSuccess, CardsRemoved: 1}
		case "rob":
			return Result{Message: "You steal his coins. You feel ashamed.", Outcome: OutcomeFailure, GoldChange: 20, DamageTaken: 5}
		}

	case "mirror":
		switch choiceID {
		case "duplicate":
			// The caller duplicates a card; an empty CardsAdded slice
			// signals the duplication without choosing the card here.
			return Result{Message: "The reflection steps out and joins you.", Outcome: OutcomeSuccess, CardsAdded: []card.Card{}}
		case "smash":
			if roll >= choice.RollDC {
				return Result{Message: fmt.Sprintf("Rolled %d! You find a hidden stash behind the glass.", roll), Outcome: OutcomeSuccess, GoldChange: 75}
			}
			return Result{Message: fmt.Sprintf("Rolled %d... You cut your hand on the shards.", roll), Outcome: OutcomeFailure, DamageTaken: 10}
		}
	}

	return Result{Message: "You leave the area.", Outcome: OutcomeNeutral}
}

// Pick returns a random event from the catalog.
func Pick(r *rand.Rand) Event {
	return Catalog[r.Intn(len(Catalog))]
}
