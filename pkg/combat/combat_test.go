package combat

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func testVocabList() []vocab.Vocabulary {
	return []vocab.Vocabulary{
		vocab.New("Cat", "/kat/", "a small feline", vocab.DifficultyEasy),
		vocab.New("Logic", "", "reasoning", vocab.DifficultyEasy),
		vocab.New("Hypothesis", "", "a proposed explanation", vocab.DifficultyHard),
		vocab.New("Extraordinary", "", "beyond the usual", vocab.DifficultyLong),
	}
}

func testEnemy() *actor.Enemy {
	return &actor.Enemy{
		ID:    "slime",
		Name:  "Acid Slime",
		Type:  actor.EnemyNormal,
		Tier:  actor.TierWeak,
		HP:    30,
		MaxHP: 30,
		Intent: actor.Intent{
			Type:  actor.IntentAttack,
			Value: 6,
		},
	}
}

func testEncounter() (*Encounter, *actor.Player) {
	p := actor.NewPlayer(nil)
	e := &Encounter{
		Enemy:        testEnemy(),
		Hand:         []card.Card{},
		DiscardPile:  []card.Card{},
		IsPlayerTurn: true,
		TurnCount:    1,
	}
	return e, p
}

func TestStartResetsPlayerCombatState(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)
	p.Energy = 0
	p.Block = 12
	p.Status.Weak = 2
	p.Status.Vulnerable = 3
	p.Combo = 9
	p.NextTurnEnergy = 2

	var deck []card.Card
	for _, v := range testVocabList() {
		deck = append(deck, card.New(card.TypeAttack, v, false))
	}

	enc, balanced := Start(p, testEnemy(), deck, testVocabList(), r)

	if p.Energy != p.MaxEnergy || p.Block != 0 || p.Combo != 0 || p.NextTurnEnergy != 0 {
		t.Errorf("player combat state not reset: %+v", p)
	}
	if p.Status.Weak != 0 || p.Status.Vulnerable != 0 {
		t.Errorf("debuffs not cleared: %+v", p.Status)
	}
	if len(enc.Hand)+len(enc.DrawPile) != len(balanced) {
		t.Errorf("cards lost: hand %d + draw %d != deck %d",
			len(enc.Hand), len(enc.DrawPile), len(balanced))
	}
	if len(enc.Hand) != 4 { // deck smaller than the opening draw
		t.Errorf("opening hand = %d, want 4", len(enc.Hand))
	}
	if enc.TurnCount != 1 || !enc.IsPlayerTurn {
		t.Errorf("turn state = %d/%v", enc.TurnCount, enc.IsPlayerTurn)
	}
}

func TestStartAppliesCombatStartRelics(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	p := actor.NewPlayer(nil)
	for _, id := range []string{"vajra", "anchor", "bag_of_prep"} {
		relic, ok := actor.RelicByID(id)
		if !ok {
			t.Fatalf("missing relic %s", id)
		}
		p.AddRelic(relic)
	}

	var deck []card.Card
	for i := 0; i < 3; i++ {
		for _, v := range testVocabList() {
			deck = append(deck, card.New(card.TypeDefense, v, false))
		}
	}

	enc, _ := Start(p, testEnemy(), deck, testVocabList(), r)

	if p.Status.Strength != 1 {
		t.Errorf("vajra strength = %d, want 1", p.Status.Strength)
	}
	if p.Block != 10 {
		t.Errorf("anchor block = %d, want 10", p.Block)
	}
	if len(enc.Hand) != 7 {
		t.Errorf("opening hand with bag of prep = %d, want 7", len(enc.Hand))
	}
}

func TestPlaySuccessAttack(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	c := card.New(card.TypeAttack, vocab.New("Hypothesis", "", "", vocab.DifficultyHard), false)
	enc.Hand = []card.Card{c}
	list := testVocabList()

	res, err := enc.PlaySuccess(p, c.UniqueID, false, list, time.Now(), r)
	if err != nil {
		t.Fatalf("PlaySuccess: %v", err)
	}
	// Tier 2 attack deals 18 and costs 2.
	if res.DamageDealt != 18 {
		t.Errorf("damage = %d, want 18", res.DamageDealt)
	}
	if enc.Enemy.HP != 12 {
		t.Errorf("enemy hp = %d, want 12", enc.Enemy.HP)
	}
	if p.Energy != p.MaxEnergy-2 {
		t.Errorf("energy = %d, want %d", p.Energy, p.MaxEnergy-2)
	}
	if p.Combo != 1 {
		t.Errorf("combo = %d, want 1", p.Combo)
	}
	if len(enc.Hand) != 0 || len(enc.DiscardPile) != 1 {
		t.Errorf("piles: hand %d discard %d", len(enc.Hand), len(enc.DiscardPile))
	}
}

func TestPlaySuccessHintHalvesValueAndSkipsGrading(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	v := vocab.New("Cat", "", "", vocab.DifficultyEasy)
	c := card.New(card.TypeAttack, v, false)
	enc.Hand = []card.Card{c}
	list := testVocabList()

	res, err := enc.PlaySuccess(p, c.UniqueID, true, list, time.Now(), r)
	if err != nil {
		t.Fatalf("PlaySuccess: %v", err)
	}
	// Base 4 halves to 2.
	if res.DamageDealt != 2 {
		t.Errorf("hinted damage = %d, want 2", res.DamageDealt)
	}
	if enc.Stats.Hints != 1 {
		t.Errorf("hints = %d, want 1", enc.Stats.Hints)
	}
	for _, w := range list {
		if w.Proficiency != 0 {
			t.Errorf("hinted play graded word %s", w.Word)
		}
	}
}

func TestPlaySuccessReviewDoublesAndGrades(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	list := testVocabList()
	list[0].Proficiency = 2
	list[0].IsRetest = true
	c := card.New(card.TypeAttack, list[0], true)
	enc.Hand = []card.Card{c}

	res, err := enc.PlaySuccess(p, c.UniqueID, false, list, time.Now(), r)
	if err != nil {
		t.Fatalf("PlaySuccess: %v", err)
	}
	// Proficiency 2 scales 4 to 5, bounty doubles to 10.
	if res.DamageDealt != 10 {
		t.Errorf("bounty damage = %d, want 10", res.DamageDealt)
	}
	if enc.Stats.BountyPlayed != 1 {
		t.Errorf("bountyPlayed = %d, want 1", enc.Stats.BountyPlayed)
	}
	if list[0].Proficiency != 3 {
		t.Errorf("proficiency = %d, want 3", list[0].Proficiency)
	}
	if list[0].IsRetest {
		t.Error("retest flag not cleared")
	}
}

func TestPlaySuccessMasterySignal(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	list := testVocabList()
	list[0].Proficiency = 4
	list[0].IsRetest = true
	c := card.New(card.TypeAttack, list[0], true)
	enc.Hand = []card.Card{c}

	res, err := enc.PlaySuccess(p, c.UniqueID, false, list, time.Now(), r)
	if err != nil {
		t.Fatalf("PlaySuccess: %v", err)
	}
	if !res.Mastered {
		t.Error("crossing the proficiency cap should signal mastery")
	}
	if list[0].Proficiency != vocab.MaxProficiency {
		t.Errorf("proficiency = %d, want %d", list[0].Proficiency, vocab.MaxProficiency)
	}
}

func TestPlaySuccessEnergyPrecondition(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	c := card.New(card.TypeAttack, vocab.New("Extraordinary", "", "", vocab.DifficultyLong), false)
	enc.Hand = []card.Card{c}
	p.Energy = 1 // tier 3 costs 3

	_, err := enc.PlaySuccess(p, c.UniqueID, false, testVocabList(), time.Now(), r)
	if err != ErrNotEnoughEnergy {
		t.Fatalf("err = %v, want ErrNotEnoughEnergy", err)
	}
	if len(enc.Hand) != 1 || p.Energy != 1 || p.Combo != 0 {
		t.Error("rejected play mutated state")
	}
}

func TestPlayFailEnergyPrecondition(t *testing.T) {
	enc, p := testEncounter()
	p.Combo = 4
	c := card.New(card.TypeAttack, vocab.New("Extraordinary", "", "", vocab.DifficultyLong), false)
	enc.Hand = []card.Card{c}
	p.Energy = 1 // tier 3 costs 3

	if err := enc.PlayFail(p, c.UniqueID); err != ErrNotEnoughEnergy {
		t.Fatalf("err = %v, want ErrNotEnoughEnergy", err)
	}
	if len(enc.Hand) != 1 || len(enc.DrawPile) != 0 {
		t.Error("rejected play moved the card")
	}
	if enc.Stats.Mistakes != 0 || len(enc.WrongAnswers) != 0 || p.Combo != 4 {
		t.Error("rejected play mutated combat state")
	}
}

func TestPlayFailStickyCard(t *testing.T) {
	enc, p := testEncounter()
	p.Combo = 4
	v := vocab.New("Logic", "", "", vocab.DifficultyEasy)
	c := card.New(card.TypeAttack, v, false)
	enc.Hand = []card.Card{c}
	enc.DrawPile = []card.Card{card.New(card.TypeDefense, v, false)}

	if err := enc.PlayFail(p, c.UniqueID); err != nil {
		t.Fatalf("PlayFail: %v", err)
	}
	if p.Combo != 0 {
		t.Errorf("combo = %d, want 0", p.Combo)
	}
	if enc.Stats.Mistakes != 1 {
		t.Errorf("mistakes = %d, want 1", enc.Stats.Mistakes)
	}
	if len(enc.DrawPile) != 2 || enc.DrawPile[0].UniqueID != c.UniqueID {
		t.Error("failed card should go to the top of the draw pile")
	}
	if len(enc.WrongAnswers) != 1 {
		t.Fatalf("wrongAnswers = %d, want 1", len(enc.WrongAnswers))
	}

	// A second miss on the same word is not recorded twice.
	enc.Hand = []card.Card{c}
	if err := enc.PlayFail(p, c.UniqueID); err != nil {
		t.Fatalf("PlayFail: %v", err)
	}
	if len(enc.WrongAnswers) != 1 {
		t.Errorf("wrongAnswers = %d after repeat miss, want 1", len(enc.WrongAnswers))
	}
}

func TestDiscardFlow(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	v := vocab.New("Cat", "", "", vocab.DifficultyEasy)
	cantrip := card.New(card.TypeUtility, v, false) // tier 0: draw 1, discard 1
	other := card.New(card.TypeAttack, v, false)
	enc.Hand = []card.Card{cantrip, other}
	enc.DrawPile = []card.Card{card.New(card.TypeDefense, v, false)}

	if _, err := enc.PlaySuccess(p, cantrip.UniqueID, false, testVocabList(), time.Now(), r); err != nil {
		t.Fatalf("PlaySuccess: %v", err)
	}
	if enc.PendingDiscards != 1 {
		t.Fatalf("pendingDiscards = %d, want 1", enc.PendingDiscards)
	}

	if _, err := enc.PlaySuccess(p, other.UniqueID, false, testVocabList(), time.Now(), r); err != ErrDiscardPending {
		t.Fatalf("play during pending discard: err = %v", err)
	}

	if err := enc.DiscardSelect(other.UniqueID); err != nil {
		t.Fatalf("DiscardSelect: %v", err)
	}
	if enc.PendingDiscards != 0 {
		t.Errorf("pendingDiscards = %d, want 0", enc.PendingDiscards)
	}
	if err := enc.DiscardSelect(other.UniqueID); err != ErrNoDiscardNeeded {
		t.Errorf("extra discard: err = %v", err)
	}
}

func TestEndTurnRetainAndEnemyAttack(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	enc.Enemy.Tier = actor.TierWeak

	v := vocab.New("Logic", "", "", vocab.DifficultyEasy)
	v.Proficiency = 2 // retain perk
	kept := card.New(card.TypeAttack, v, false)
	dropped := card.New(card.TypeDefense, vocab.New("Cat", "", "", vocab.DifficultyEasy), false)
	dropped.Debuff = card.DebuffBlind
	enc.Hand = []card.Card{kept, dropped}
	for i := 0; i < 6; i++ {
		enc.DrawPile = append(enc.DrawPile, card.New(card.TypeAttack, v, false))
	}

	p.Block = 2
	p.NextTurnEnergy = 2
	hpBefore := p.HP

	down, err := enc.EndTurn(p, r)
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if down {
		t.Fatal("player should survive a 6 damage hit")
	}
	// Intent 6 through 2 block.
	if got := hpBefore - p.HP; got != 4 {
		t.Errorf("hp lost = %d, want 4", got)
	}
	if enc.Stats.DamageTaken != 4 {
		t.Errorf("damageTaken = %d, want 4", enc.Stats.DamageTaken)
	}
	if p.Block != 0 {
		t.Errorf("block = %d, want 0", p.Block)
	}
	if p.Energy != p.MaxEnergy+2 || p.NextTurnEnergy != 0 {
		t.Errorf("energy = %d (banked %d)", p.Energy, p.NextTurnEnergy)
	}
	if enc.TurnCount != 2 || !enc.IsPlayerTurn {
		t.Errorf("turn = %d/%v", enc.TurnCount, enc.IsPlayerTurn)
	}

	// The retained card survives in hand alongside the fresh draw.
	foundKept := false
	for _, c := range enc.Hand {
		if c.UniqueID == kept.UniqueID {
			foundKept = true
		}
		if c.UniqueID == dropped.UniqueID {
			t.Error("non-retain card stayed in hand")
		}
	}
	if !foundKept {
		t.Error("retain card was discarded")
	}
	if len(enc.DiscardPile) != 1 || enc.DiscardPile[0].Debuff != "" {
		t.Error("discarded card should have its debuff cleared")
	}
}

func TestEnemyAttackMemoryShield(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	p.Status.MemoryShield = 1
	hpBefore := p.HP

	if _, err := enc.EndTurn(p, r); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if p.HP != hpBefore {
		t.Errorf("shielded hit cost %d hp", hpBefore-p.HP)
	}
	if p.Status.MemoryShield != 0 {
		t.Errorf("memoryShield = %d, want 0", p.Status.MemoryShield)
	}
}

func TestEnemyAttackConsumesRevival(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	p.HP = 1
	p.Revivals = 1

	down, err := enc.EndTurn(p, r)
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if down {
		t.Fatal("revival should keep the player up")
	}
	if p.HP != p.MaxHP/2 {
		t.Errorf("revived hp = %d, want %d", p.HP, p.MaxHP/2)
	}
	if p.Revivals != 0 {
		t.Errorf("revivals = %d, want 0", p.Revivals)
	}
}

func TestEnemyBuffAndPoison(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	enc.Enemy.Intent = actor.Intent{Type: actor.IntentBuff, Value: 3, Description: "Ritual"}
	enc.Enemy.Status.Poison = 5
	enc.Enemy.HP = 20

	if _, err := enc.EndTurn(p, r); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if enc.Enemy.Status.Ritual != 3 {
		t.Errorf("ritual = %d, want 3", enc.Enemy.Status.Ritual)
	}
	if enc.Enemy.HP != 15 {
		t.Errorf("hp after poison = %d, want 15", enc.Enemy.HP)
	}
	if enc.Enemy.Status.Poison != 4 {
		t.Errorf("poison = %d, want 4", enc.Enemy.Status.Poison)
	}
}

func TestPoisonFinishesEnemy(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	enc.Enemy.Intent = actor.Intent{Type: actor.IntentDefend, Value: 5}
	enc.Enemy.Status.Poison = 8
	enc.Enemy.HP = 6

	if _, err := enc.EndTurn(p, r); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if enc.Enemy.HP != 0 {
		t.Errorf("hp = %d, want 0", enc.Enemy.HP)
	}
	if !enc.Enemy.IsDefeated() {
		t.Error("poisoned out enemy should be defeated")
	}
}

func TestDrawReshufflesDiscard(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, _ := testEncounter()
	v := vocab.New("Cat", "", "", vocab.DifficultyEasy)
	for i := 0; i < 3; i++ {
		enc.DiscardPile = append(enc.DiscardPile, card.New(card.TypeAttack, v, false))
	}

	enc.Draw(2, r)
	if len(enc.Hand) != 2 {
		t.Errorf("hand = %d, want 2", len(enc.Hand))
	}
	if len(enc.DiscardPile) != 0 {
		t.Errorf("discard = %d, want 0", len(enc.DiscardPile))
	}
	if len(enc.DrawPile) != 1 {
		t.Errorf("draw = %d, want 1", len(enc.DrawPile))
	}
}

func TestDrawRespectsHandCap(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, _ := testEncounter()
	v := vocab.New("Cat", "", "", vocab.DifficultyEasy)
	for i := 0; i < 12; i++ {
		enc.DrawPile = append(enc.DrawPile, card.New(card.TypeAttack, v, false))
	}

	enc.Draw(12, r)
	if len(enc.Hand) != MaxHandSize {
		t.Errorf("hand = %d, want %d", len(enc.Hand), MaxHandSize)
	}
	if len(enc.DrawPile) != 2 {
		t.Errorf("draw = %d, want 2", len(enc.DrawPile))
	}
}

func TestLastStandWords(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	missed := vocab.New("Hypothesis", "", "", vocab.DifficultyHard)
	enc.WrongAnswers = []vocab.Vocabulary{missed}

	words := enc.LastStandWords(testVocabList(), r)
	if len(words) != LastStandCount {
		t.Fatalf("gauntlet = %d words, want %d", len(words), LastStandCount)
	}
	found := false
	for _, w := range words {
		if w.ID == missed.ID {
			found = true
		}
	}
	if !found {
		t.Error("missed word should be in the gauntlet")
	}

	p.HP = 0
	enc.IsPlayerTurn = false
	enc.SurviveLastStand(p, r)
	if p.HP != int(float64(p.MaxHP)*0.3) {
		t.Errorf("revived hp = %d, want %d", p.HP, int(float64(p.MaxHP)*0.3))
	}
	if !enc.IsPlayerTurn {
		t.Error("survivor should get their turn back")
	}
}

func TestVictoryGold(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	enc.Stats.BountyPlayed = 2
	enc.Stats.DamageTaken = 5 // not perfect

	rw := enc.Victory(p, 1, 5, false, r)
	g := rw.Gold
	if g.Base < 16 || g.Base > 21 {
		t.Errorf("act 1 base gold = %d, want 16-21", g.Base)
	}
	if g.Bounty != 30 || g.BountyCount != 2 {
		t.Errorf("bounty gold = %d (%d cards)", g.Bounty, g.BountyCount)
	}
	if g.IsPerfect || g.Perfect != 0 {
		t.Errorf("perfect bonus on an imperfect fight: %+v", g)
	}
	if g.Multiplier != 1 || g.Total != g.Base+g.Bounty {
		t.Errorf("total = %d, want %d", g.Total, g.Base+g.Bounty)
	}
	if p.Gold != g.Total {
		t.Errorf("player gold = %d, want %d", p.Gold, g.Total)
	}
}

func TestVictoryEarlyBirdAndPerfect(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()

	rw := enc.Victory(p, 1, 0, false, r)
	g := rw.Gold
	if !g.IsPerfect || g.Perfect != 30 {
		t.Errorf("flawless fight should pay the perfect bonus: %+v", g)
	}
	if g.Multiplier != 2 || g.Total != (g.Base+g.Perfect)*2 {
		t.Errorf("early fights in act 1 pay double: %+v", g)
	}
}

func TestVictoryBossRewards(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	enc.Enemy.Type = actor.EnemyBoss

	rw := enc.Victory(p, 2, 10, true, r)
	if rw.Shards != 230 {
		t.Errorf("first clear shards = %d, want 230", rw.Shards)
	}
	if rw.Relic == nil {
		t.Fatal("boss kill should drop a relic")
	}
	// bag_of_prep is the only rare relic, so it drops first.
	if rw.Relic.ID != "bag_of_prep" {
		t.Errorf("drop = %s, want the rare relic", rw.Relic.ID)
	}
	if !p.HasRelic(rw.Relic.ID) {
		t.Error("dropped relic not granted")
	}

	rw = enc.Victory(p, 2, 11, false, r)
	if rw.Shards != 30 {
		t.Errorf("repeat clear shards = %d, want 30", rw.Shards)
	}
}

func TestVictoryBurningBlood(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	enc, p := testEncounter()
	relic, _ := actor.RelicByID("burning_blood")
	p.AddRelic(relic)
	p.HP = 50

	rw := enc.Victory(p, 1, 5, false, r)
	if rw.HealedOnClear != 6 || p.HP != 56 {
		t.Errorf("burning blood healed %d, hp %d", rw.HealedOnClear, p.HP)
	}
}
