// Package combat runs one encounter turn by turn: card plays on spelling
// success, sticky cards on failure, enemy intents, and the last-stand
// sequence when the player drops to zero HP.
package combat

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// MaxHandSize caps the hand; extra draws are lost.
const MaxHandSize = 10

// DrawPerTurn is the normal draw at the start of each player turn.
const DrawPerTurn = 5

var (
	ErrNotPlayerTurn   = errors.New("not the player's turn")
	ErrNoSuchCard      = errors.New("card not in hand")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrDiscardPending  = errors.New("a discard selection is pending")
	ErrNoDiscardNeeded = errors.New("no discard selection is pending")
)

// Stats tracks per-combat performance for reward calculation.
type Stats struct {
	DamageTaken  int `json:"damageTaken"`
	Mistakes     int `json:"mistakes"`
	Hints        int `json:"hints"`
	BountyPlayed int `json:"bountyPlayed"`
}

// Encounter is the live combat state. It embeds into the run state so
// the piles and enemy persist across save and load.
type Encounter struct {
	Enemy           *actor.Enemy       `json:"currentEnemy,omitempty"`
	Hand            []card.Card        `json:"hand"`
	DrawPile        []card.Card        `json:"drawPile"`
	DiscardPile     []card.Card        `json:"discardPile"`
	IsPlayerTurn    bool               `json:"isPlayerTurn"`
	TurnCount       int                `json:"turnCount"`
	Stats           Stats              `json:"combatStats"`
	WrongAnswers    []vocab.Vocabulary `json:"wrongAnswers,omitempty"`
	PendingDiscards int                `json:"pendingDiscards,omitempty"`
}

// PlayResult reports what one successful card play did.
type PlayResult struct {
	DamageDealt int
	Healed      int
	Mastered    bool // the word just crossed the proficiency cap
	Defeated    bool
}

// Start opens an encounter: the session deck is rebalanced against the
// enemy tier, shuffled into the draw pile, and the player's transient
// combat state is reset. Combat-start relics apply here. The returned
// deck is the rebalanced one and replaces the run's session deck.
func Start(p *actor.Player, enemy *actor.Enemy, sessionDeck []card.Card, vocabList []vocab.Vocabulary, r *rand.Rand) (*Encounter, []card.Card) {
	balanced := dungeon.BalanceDeck(sessionDeck, vocabList, enemy.Tier, r)

	e := &Encounter{
		Enemy:        enemy,
		Hand:         []card.Card{},
		DiscardPile:  []card.Card{},
		IsPlayerTurn: true,
		TurnCount:    1,
	}
	e.DrawPile = append([]card.Card(nil), balanced...)
	r.Shuffle(len(e.DrawPile), func(i, j int) {
		e.DrawPile[i], e.DrawPile[j] = e.DrawPile[j], e.DrawPile[i]
	})

	p.Energy = p.MaxEnergy
	p.Block = 0
	p.Status.Weak = 0
	p.Status.Vulnerable = 0
	p.Combo = 0
	p.NextTurnEnergy = 0

	draw := DrawPerTurn
	for _, relic := range p.Relics {
		if relic.EffectType != actor.EffectOnCombatStart {
			continue
		}
		switch relic.ID {
		case "vajra":
			p.Status.Strength += relic.Value
		case "anchor":
			p.Block += relic.Value
		case "bag_of_prep":
			draw += 2
		}
	}

	e.Draw(draw, r)
	return e, balanced
}

// Draw moves up to n cards from the draw pile to the hand. An empty draw
// pile is refilled by shuffling the discard pile; drawing stops at the
// hand cap or when both piles are empty.
func (e *Encounter) Draw(n int, r *rand.Rand) {
	for i := 0; i < n; i++ {
		if len(e.Hand) >= MaxHandSize {
			break
		}
		if len(e.DrawPile) == 0 {
			if len(e.DiscardPile) == 0 {
				break
			}
			e.DrawPile = e.DiscardPile
			e.DiscardPile = []card.Card{}
			r.Shuffle(len(e.DrawPile), func(i, j int) {
				e.DrawPile[i], e.DrawPile[j] = e.DrawPile[j], e.DrawPile[i]
			})
		}
		e.Hand = append(e.Hand, e.DrawPile[0])
		e.DrawPile = e.DrawPile[1:]
	}
}

func (e *Encounter) handIndex(uniqueID string) int {
	for i := range e.Hand {
		if e.Hand[i].UniqueID == uniqueID {
			return i
		}
	}
	return -1
}

// PlaySuccess resolves a card whose word was spelled correctly. The
// vocabulary list is updated in place when the attempt counts toward
// proficiency (no hint, and the word was a bounty or brand new).
func (e *Encounter) PlaySuccess(p *actor.Player, uniqueID string, usedHint bool, vocabList []vocab.Vocabulary, now time.Time, r *rand.Rand) (PlayResult, error) {
	var res PlayResult
	if e.PendingDiscards > 0 {
		return res, ErrDiscardPending
	}
	if !e.IsPlayerTurn {
		return res, ErrNotPlayerTurn
	}
	idx := e.handIndex(uniqueID)
	if idx < 0 {
		return res, ErrNoSuchCard
	}
	c := e.Hand[idx]
	if p.Energy < c.EnergyCost {
		return res, ErrNotEnoughEnergy
	}

	if usedHint {
		e.Stats.Hints++
	}
	if c.IsReview {
		e.Stats.BountyPlayed++
	}

	p.Energy -= c.EnergyCost
	if p.Energy < 0 {
		p.Energy = 0
	}
	p.Combo++

	e.Hand = append(e.Hand[:idx], e.Hand[idx+1:]...)

	multiplier := 1.0
	if usedHint {
		multiplier *= 0.5
	}
	if c.IsReview {
		multiplier *= 2
	}

	// Hinted plays never move the learning schedule. Unhinted bounty or
	// first-sight plays grade as a success.
	if !usedHint && (c.IsReview || c.Vocab.Proficiency == 0) {
		for i := range vocabList {
			if vocabList[i].ID != c.Vocab.ID {
				continue
			}
			before := vocabList[i].Proficiency
			vocabList[i] = vocab.UpdateProficiency(vocabList[i], true, now)
			if before < vocab.MaxProficiency && vocabList[i].Proficiency >= vocab.MaxProficiency {
				res.Mastered = true
			}
			break
		}
	}

	casts := 1
	if c.DoubleCast {
		casts = 2
	}
	for i := 0; i < casts; i++ {
		dealt, healed := e.applyCardEffect(p, c, multiplier, r)
		res.DamageDealt += dealt
		res.Healed += healed
	}

	if !c.IsExhaust {
		c.Debuff = ""
		e.DiscardPile = append(e.DiscardPile, c)
	}

	res.Defeated = e.Enemy != nil && e.Enemy.IsDefeated()
	return res, nil
}

// PlayFail resolves a misspelled card: the combo breaks, the word is
// recorded for the last stand, and the card goes to the top of the draw
// pile so it comes right back.
func (e *Encounter) PlayFail(p *actor.Player, uniqueID string) error {
	if e.PendingDiscards > 0 {
		return ErrDiscardPending
	}
	if !e.IsPlayerTurn {
		return ErrNotPlayerTurn
	}
	idx := e.handIndex(uniqueID)
	if idx < 0 {
		return ErrNoSuchCard
	}
	c := e.Hand[idx]
	if p.Energy < c.EnergyCost {
		return ErrNotEnoughEnergy
	}

	e.Stats.Mistakes++
	recorded := false
	for _, w := range e.WrongAnswers {
		if w.ID == c.Vocab.ID {
			recorded = true
			break
		}
	}
	if !recorded {
		e.WrongAnswers = append(e.WrongAnswers, c.Vocab)
	}

	p.Combo = 0
	e.Hand = append(e.Hand[:idx], e.Hand[idx+1:]...)
	e.DrawPile = append([]card.Card{c}, e.DrawPile...)
	return nil
}

// DiscardSelect consumes one pending discard by moving the chosen card
// to the discard pile.
func (e *Encounter) DiscardSelect(uniqueID string) error {
	if e.PendingDiscards <= 0 {
		return ErrNoDiscardNeeded
	}
	idx := e.handIndex(uniqueID)
	if idx < 0 {
		return ErrNoSuchCard
	}
	c := e.Hand[idx]
	e.Hand = append(e.Hand[:idx], e.Hand[idx+1:]...)
	e.DiscardPile = append(e.DiscardPile, c)
	e.PendingDiscards--
	return nil
}

// applyCardEffect resolves one cast. Effect order is fixed: proc, then
// damage or block, then draws, then banked energy, then healing, then
// cleanse, then any discard requirement.
func (e *Encounter) applyCardEffect(p *actor.Player, c card.Card, multiplier float64, r *rand.Rand) (dealt, healed int) {
	if c.ProcChance > 0 && r.Float64() < c.ProcChance {
		p.Status.MemoryShield++
	}

	val := int(math.Floor(float64(c.Value) * multiplier))

	switch c.Type {
	case card.TypeAttack:
		dmg := val + p.Status.Strength
		if p.Status.Weak > 0 {
			dmg = int(math.Floor(float64(dmg) * 0.75))
		}
		if e.Enemy.Status.Vulnerable > 0 {
			dmg = int(math.Floor(float64(dmg) * 1.5))
		}
		dealt = e.Enemy.TakeDamage(dmg)
		if c.ApplyDebuff {
			e.Enemy.Status.Vulnerable++
		}
	case card.TypeDefense:
		p.Block += val
	}

	if c.DrawEffect > 0 {
		e.Draw(c.DrawEffect, r)
	}
	if c.EnergyNext > 0 {
		p.NextTurnEnergy += c.EnergyNext
	}

	if c.HealValue > 0 || c.Lifesteal {
		heal := c.HealValue
		if c.Type == card.TypeHeal && c.Name == "Rebirth" {
			heal = int(math.Floor(float64(p.MaxHP) * 0.5))
		}
		if c.Lifesteal {
			heal += int(math.Ceil(float64(val) * 0.5))
		}
		healed = p.Heal(heal)
	}

	if c.Cleanse {
		p.Status.Cleanse()
	}

	if c.DiscardCount > 0 {
		e.PendingDiscards += c.DiscardCount
	}
	return dealt, healed
}

// EndTurn closes the player turn and runs the enemy action. Retained
// cards stay in hand; everything else is discarded with debuffs cleared.
// Returns true when the player is out of HP and must face a last stand.
func (e *Encounter) EndTurn(p *actor.Player, r *rand.Rand) (playerDown bool, err error) {
	if !e.IsPlayerTurn {
		return false, ErrNotPlayerTurn
	}
	e.IsPlayerTurn = false
	e.PendingDiscards = 0

	var retained []card.Card
	for _, c := range e.Hand {
		if c.Retain {
			retained = append(retained, c)
			continue
		}
		c.Debuff = ""
		e.DiscardPile = append(e.DiscardPile, c)
	}
	e.Hand = retained

	e.enemyTurn(p, r)
	p.Block = 0

	playerDown = p.HP <= 0
	if playerDown {
		return true, nil
	}

	e.TurnCount++
	e.IsPlayerTurn = true
	p.Energy = p.MaxEnergy + p.NextTurnEnergy
	p.NextTurnEnergy = 0
	e.Enemy.Block = 0
	e.Enemy.Intent = dungeon.NextIntent(e.Enemy, e.TurnCount)
	e.Draw(DrawPerTurn, r)
	return false, nil
}

// enemyTurn resolves the telegraphed intent. Elite and boss enemies also
// have a chance to stamp a handicap onto a card still in hand; a Silence
// prefers the first expensive card and otherwise lands randomly.
func (e *Encounter) enemyTurn(p *actor.Player, r *rand.Rand) {
	enemy := e.Enemy
	intent := enemy.Intent

	if enemy.Tier == actor.TierBoss || enemy.Tier == actor.TierElite {
		if r.Float64() < 0.3 && len(e.Hand) > 0 {
			debuffs := []card.Debuff{card.DebuffBlind, card.DebuffRush, card.DebuffSilence}
			chosen := debuffs[r.Intn(len(debuffs))]
			idx := r.Intn(len(e.Hand))
			if chosen == card.DebuffSilence {
				for i := range e.Hand {
					if e.Hand[i].EnergyCost >= 3 {
						idx = i
						break
					}
				}
			}
			e.Hand[idx].Debuff = chosen
		}
	}

	switch intent.Type {
	case actor.IntentAttack:
		dmg := intent.Value + enemy.Status.Strength
		if enemy.Status.Weak > 0 {
			dmg = int(math.Floor(float64(dmg) * 0.75))
		}
		if p.Status.Vulnerable > 0 {
			dmg = int(math.Floor(float64(dmg) * 1.5))
		}
		if p.Status.MemoryShield > 0 {
			p.Status.MemoryShield--
			dmg = 0
		}
		e.Stats.DamageTaken += p.TakeDamage(dmg)
	case actor.IntentDefend:
		enemy.Block += intent.Value
	case actor.IntentBuff:
		if intent.Description == "Ritual" {
			enemy.Status.Ritual += intent.Value
		} else {
			enemy.Status.Strength += intent.Value
		}
	case actor.IntentDebuff:
		p.Status.Vulnerable += 2
	}

	if enemy.Status.Poison > 0 {
		poison := enemy.Status.Poison
		if enemy.HP-poison <= 0 {
			enemy.HP = 0
			return
		}
		enemy.HP -= poison
		enemy.Status.Poison = poison - 1
	}
}
