package dungeon

import (
	"math/rand"
	"testing"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/vocab"
	"github.com/jwebster45206/spellspire/pkg/worldmap"
)

func TestSlimeIntentCycle(t *testing.T) {
	slime := &actor.Enemy{ID: "slime"}
	want := []actor.Intent{
		{Type: actor.IntentAttack, Value: 8},
		{Type: actor.IntentDebuff, Value: 3, Description: "Poison"},
		{Type: actor.IntentDefend, Value: 8},
		{Type: actor.IntentAttack, Value: 8},
	}
	for i, w := range want {
		got := NextIntent(slime, i+1)
		if got != w {
			t.Errorf("turn %d: got %+v, want %+v", i+1, got, w)
		}
	}
}

func TestCultistIntent(t *testing.T) {
	cultist := &actor.Enemy{ID: "cultist"}
	first := NextIntent(cultist, 1)
	if first.Type != actor.IntentBuff || first.Value != 3 || first.Description != "Ritual" {
		t.Errorf("turn 1: %+v", first)
	}
	for turn := 2; turn <= 5; turn++ {
		got := NextIntent(cultist, turn)
		if got.Type != actor.IntentAttack || got.Value != 6 {
			t.Errorf("turn %d: %+v", turn, got)
		}
	}
}

func TestGuardianIntentCycle(t *testing.T) {
	boss := &actor.Enemy{ID: "guardian"}
	if got := NextIntent(boss, 1); got.Type != actor.IntentBuff || got.Value != 2 {
		t.Errorf("turn 1: %+v", got)
	}
	if got := NextIntent(boss, 2); got.Type != actor.IntentAttack || got.Value != 15 {
		t.Errorf("turn 2: %+v", got)
	}
	if got := NextIntent(boss, 3); got.Type != actor.IntentDefend || got.Value != 20 {
		t.Errorf("turn 3: %+v", got)
	}
}

func TestUnknownEnemyIntent(t *testing.T) {
	got := NextIntent(&actor.Enemy{ID: "mystery"}, 7)
	if got.Type != actor.IntentAttack || got.Value != 5 {
		t.Errorf("default intent: %+v", got)
	}
}

func TestBossSpawnDeterministicPerAct(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	wantIDs := []string{"guardian", "hexaghost", "automaton"}
	for act := 1; act <= 3; act++ {
		e := SpawnForFloor(act, 15, worldmap.NodeBoss, r)
		if e.ID != wantIDs[act-1] {
			t.Errorf("act %d boss = %s, want %s", act, e.ID, wantIDs[act-1])
		}
		if e.Tier != actor.TierBoss || e.Type != actor.EnemyBoss {
			t.Errorf("act %d boss tier/type: %+v", act, e)
		}
		if e.Intent.Type == actor.IntentUnknown {
			t.Errorf("act %d boss has no initial intent", act)
		}
	}
}

func TestSpawnFloorTiers(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		low := SpawnForFloor(1, 2, worldmap.NodeMonster, r)
		if low.Tier != actor.TierWeak {
			t.Fatalf("floor 2 spawned %s tier", low.Tier)
		}
		high := SpawnForFloor(1, 12, worldmap.NodeMonster, r)
		if high.Tier != actor.TierStrong {
			t.Fatalf("floor 12 spawned %s tier", high.Tier)
		}
		elite := SpawnForFloor(1, 7, worldmap.NodeElite, r)
		if elite.Tier != actor.TierElite || elite.Type != actor.EnemyElite {
			t.Fatalf("elite node spawned %+v", elite)
		}
	}
}

func TestSpawnMidFloorsMixTiers(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	sawWeak, sawStrong := false, false
	for i := 0; i < 200; i++ {
		e := SpawnForFloor(1, 6, worldmap.NodeMonster, r)
		switch e.Tier {
		case actor.TierWeak:
			sawWeak = true
		case actor.TierStrong:
			sawStrong = true
		}
	}
	if !sawWeak || !sawStrong {
		t.Errorf("mid floors should mix tiers: weak=%v strong=%v", sawWeak, sawStrong)
	}
}

func TestSpawnActScaling(t *testing.T) {
	// Boss HP is a fixed roll, so act multipliers are directly checkable.
	r := rand.New(rand.NewSource(3))
	act1 := SpawnForFloor(1, 15, worldmap.NodeBoss, r)
	if act1.HP != 200 {
		t.Errorf("act 1 guardian hp = %d, want 200", act1.HP)
	}
	// Act 2 boss is hexaghost: 180 base, 1.4 multiplier, +1 act strength.
	act2 := SpawnForFloor(2, 15, worldmap.NodeBoss, r)
	if act2.HP != 252 {
		t.Errorf("act 2 boss hp = %d, want 252", act2.HP)
	}
	baseStr := float64(3)
	wantStr := int(baseStr*1.2) + 1
	if act2.Status.Strength != wantStr {
		t.Errorf("act 2 boss strength = %d, want %d", act2.Status.Strength, wantStr)
	}
}

func TestBalanceDeckPreservesShape(t *testing.T) {
	words := []vocab.Vocabulary{
		vocab.New("Cat", "", "", vocab.DifficultyEasy),
		vocab.New("Logic", "", "", vocab.DifficultyEasy),
		vocab.New("Theory", "", "", vocab.DifficultyMedium),
		vocab.New("Concept", "", "", vocab.DifficultyEasy),
		vocab.New("Research", "", "", vocab.DifficultyMedium),
		vocab.New("Hypothesis", "", "", vocab.DifficultyLong),
	}
	deck := []card.Card{
		card.New(card.TypeAttack, words[0], true),
		card.New(card.TypeDefense, words[1], false),
		card.New(card.TypeUtility, words[2], false),
	}

	r := rand.New(rand.NewSource(5))
	balanced := BalanceDeck(deck, words, actor.TierElite, r)

	if len(balanced) != len(deck) {
		t.Fatalf("deck size changed: %d", len(balanced))
	}
	for i := range deck {
		if balanced[i].Type != deck[i].Type {
			t.Errorf("card %d type changed: %s -> %s", i, deck[i].Type, balanced[i].Type)
		}
		if balanced[i].UniqueID != deck[i].UniqueID {
			t.Errorf("card %d instance id changed", i)
		}
		if balanced[i].IsReview != deck[i].IsReview {
			t.Errorf("card %d review flag changed", i)
		}
	}
}

func TestBalanceDeckEmptyVocab(t *testing.T) {
	deck := []card.Card{card.New(card.TypeAttack, vocab.New("Cat", "", "", vocab.DifficultyEasy), false)}
	r := rand.New(rand.NewSource(1))
	out := BalanceDeck(deck, nil, actor.TierWeak, r)
	if len(out) != 1 || out[0].UniqueID != deck[0].UniqueID {
		t.Errorf("empty vocab list should return deck unchanged")
	}
}

func TestActFor(t *testing.T) {
	if ActFor(2).Name != "The City of Tears" {
		t.Error("act 2 lookup")
	}
	if ActFor(99).Index != 1 {
		t.Error("out of range should fall back to act 1")
	}
}
