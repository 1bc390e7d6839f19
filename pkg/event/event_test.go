package event

import (
	"math/rand"
	"testing"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func testWords() []vocab.Vocabulary {
	return []vocab.Vocabulary{
		vocab.New("Logic", "", "", vocab.DifficultyEasy),
		vocab.New("Theory", "", "", vocab.DifficultyMedium),
	}
}

func TestDiceGoblinRoll(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)

	win := Resolve("dice_goblin", "roll", p, testWords(), 15, r)
	if win.Outcome != OutcomeSuccess || win.GoldChange != 50 {
		t.Errorf("winning roll: %+v", win)
	}

	// DC 10 is met on an exact 10.
	exact := Resolve("dice_goblin", "roll", p, testWords(), 10, r)
	if exact.Outcome != OutcomeSuccess {
		t.Errorf("exact DC roll should succeed: %+v", exact)
	}

	lose := Resolve("dice_goblin", "roll", p, testWords(), 4, r)
	if lose.Outcome != OutcomeFailure || lose.GoldChange != -20 {
		t.Errorf("losing roll: %+v", lose)
	}
}

func TestFountain(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)

	drink := Resolve("fountain", "drink", p, testWords(), 0, r)
	if drink.Healed != 20 || drink.Outcome != OutcomeSuccess {
		t.Errorf("drink: %+v", drink)
	}
	coin := Resolve("fountain", "coin", p, testWords(), 0, r)
	if coin.GoldChange != -10 || coin.CardsRemoved != 1 {
		t.Errorf("coin: %+v", coin)
	}
}

func TestCursedBook(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)

	read := Resolve("cursed_book", "read", p, testWords(), 0, r)
	if read.DamageTaken != 10 || len(read.CardsAdded) != 1 {
		t.Errorf("read: %+v", read)
	}

	// Empty vocabulary downgrades the outcome.
	blank := Resolve("cursed_book", "read", p, nil, 0, r)
	if blank.Outcome != OutcomeNeutral || blank.DamageTaken != 5 || len(blank.CardsAdded) != 0 {
		t.Errorf("blank read: %+v", blank)
	}
}

func TestMirrorSmash(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)

	hit := Resolve("mirror", "smash", p, testWords(), 12, r)
	if hit.Outcome != OutcomeSuccess || hit.GoldChange != 75 {
		t.Errorf("smash success: %+v", hit)
	}
	miss := Resolve("mirror", "smash", p, testWords(), 11, r)
	if miss.Outcome != OutcomeFailure || miss.DamageTaken != 10 {
		t.Errorf("smash failure: %+v", miss)
	}
}

func TestLeaveIsNeutral(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)
	for _, ev := range Catalog {
		for _, c := range ev.Choices {
			if c.ID != "leave" {
				continue
			}
			res := Resolve(ev.ID, "leave", p, testWords(), 0, r)
			if res.Outcome != OutcomeNeutral {
				t.Errorf("%s leave: %+v", ev.ID, res)
			}
		}
	}
}

func TestUnknownIDs(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)
	if res := Resolve("nope", "x", p, nil, 0, r); res.Message != "Error" {
		t.Errorf("unknown event: %+v", res)
	}
	if res := Resolve("fountain", "nope", p, nil, 0, r); res.Message != "Error" {
		t.Errorf("unknown choice: %+v", res)
	}
}

func TestResolveNeverMutatesPlayer(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)
	before := *p
	Resolve("beggar", "rob", p, testWords(), 0, r)
	Resolve("fountain", "drink", p, testWords(), 0, r)
	if p.HP != before.HP || p.Gold != before.Gold {
		t.Error("resolver mutated player state")
	}
}
