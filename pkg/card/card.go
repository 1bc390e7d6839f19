// Package card derives playable spell cards from vocabulary entries.
// All stats are a pure function of the card type and the word's current
// learning state, so cards are rebuilt rather than persisted wholesale.
package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// Type is the card's combat role.
type Type string

const (
	TypeAttack  Type = "ATTACK"
	TypeDefense Type = "DEFENSE"
	TypeUtility Type = "UTILITY"
	TypeHeal    Type = "HEAL"
	TypeCurse   Type = "CURSE"
)

// Debuff is a handicap an enemy can stamp onto a card in hand. It changes
// how the spelling challenge is presented, not the card's stats.
type Debuff string

const (
	DebuffBlind   Debuff = "BLIND"   // word hidden during the challenge
	DebuffRush    Debuff = "RUSH"    // timed challenge
	DebuffSilence Debuff = "SILENCE" // no audio playback
)

// VisualTag drives client-side effects for keyword words.
type VisualTag string

const (
	VisualDefault VisualTag = "DEFAULT"
	VisualFire    VisualTag = "FIRE"
	VisualIce     VisualTag = "ICE"
)

// Card is one playable spell. ID is stable per word; UniqueID identifies
// the instance within a deck (a word can appear on several cards).
type Card struct {
	ID           string           `json:"id"`
	UniqueID     string           `json:"uniqueId"`
	Vocab        vocab.Vocabulary `json:"vocab"`
	Type         Type             `json:"type"`
	Name         string           `json:"name"`
	EnergyCost   int              `json:"energyCost"`
	Value        int              `json:"value"`
	Description  string           `json:"description"`
	Retain       bool             `json:"retain"`
	ApplyDebuff  bool             `json:"applyDebuff"`
	DoubleCast   bool             `json:"doubleCast"`
	DrawEffect   int              `json:"drawEffect,omitempty"`
	DiscardCount int              `json:"discardEffect,omitempty"`
	EnergyNext   int              `json:"energyNextTurn,omitempty"`
	HealValue    int              `json:"healValue,omitempty"`
	Lifesteal    bool             `json:"lifesteal,omitempty"`
	Cleanse      bool             `json:"cleanseDebuff,omitempty"`
	VisualTag    VisualTag        `json:"visualTag,omitempty"`
	IsReview     bool             `json:"isReview"`
	IsExhaust    bool             `json:"isExhaust,omitempty"`
	IsUnplayable bool             `json:"isUnplayable,omitempty"`
	Debuff       Debuff           `json:"debuff,omitempty"`
	ProcChance   float64          `json:"procChance,omitempty"`
}

var (
	attackValues  = [4]int{4, 9, 18, 30}
	attackNames   = [4]string{"Dagger", "Sword", "Hammer", "Nuke"}
	defenseValues = [4]int{3, 8, 16, 20}
	defenseNames  = [4]string{"Parry", "Shield", "Fortress", "Invincible"}
)

// Tier buckets word length into power levels 0-3.
func Tier(word string) int {
	switch l := len(word); {
	case l >= 12:
		return 3
	case l >= 9:
		return 2
	case l >= 5:
		return 1
	default:
		return 0
	}
}

// New derives a card instance from a word. isReview marks bounty cards,
// which pay out extra gold and grant a scoring multiplier in combat.
func New(t Type, v vocab.Vocabulary, isReview bool) Card {
	c := derive(t, v)
	c.ID = "card_" + v.ID
	c.UniqueID = uuid.NewString()
	c.Vocab = v
	c.IsReview = isReview
	return c
}

// derive computes every stat except identity. Split out so tests can
// check the pure derivation without uuid noise.
func derive(t Type, v vocab.Vocabulary) Card {
	tier := Tier(v.Word)
	p := v.Proficiency

	cost := tier
	if p >= 4 && cost > 0 {
		cost--
	}

	c := Card{
		Type:       t,
		Name:       "Spell",
		EnergyCost: cost,
		VisualTag:  VisualDefault,
	}
	suffix := ""

	switch t {
	case TypeAttack:
		c.Value = attackValues[tier]
		c.Name = attackNames[tier]
	case TypeDefense:
		c.Value = defenseValues[tier]
		c.Name = defenseNames[tier]
	case TypeUtility:
		switch tier {
		case 0:
			c.Name = "Cantrip"
			c.DrawEffect = 1
			c.DiscardCount = 1
			suffix += " Draw 1, Discard 1."
		case 1:
			c.Name = "Wisdom"
			c.DrawEffect = 2
			suffix += " Draw 2."
		case 2:
			c.Name = "Energize"
			c.EnergyNext = 2
			suffix += " Next Turn Energy +2."
		case 3:
			c.Name = "Omniscience"
			c.DrawEffect = 3
			suffix += " Draw 3."
		}
	case TypeHeal:
		switch tier {
		case 0:
			c.Name = "Bandage"
			c.Cleanse = true
			suffix += " Remove 1 Debuff."
		case 1:
			c.Name = "Nap"
			c.HealValue = 3
			suffix += " Heal 3 HP."
		case 2:
			c.Name = "Vampiric Touch"
			c.Value = 10
			c.HealValue = 10
			suffix += " Deal 10, Heal 10."
		case 3:
			c.Name = "Rebirth"
			c.HealValue = 50 // percent of max HP, resolved at play time
			suffix += " Heal 50% HP. Exhaust."
			c.IsExhaust = true
		}
	}

	// Mastery scaling from level 1. Rebirth's percentage heal is exempt.
	if p >= 1 {
		c.Value = int(math.Floor(float64(c.Value) * 1.3))
		if c.HealValue > 0 && tier != 3 {
			c.HealValue = int(math.Floor(float64(c.HealValue) * 1.3))
		}
	}

	// Keyword bonuses from the word itself.
	lower := strings.ToLower(v.Word)
	if t == TypeAttack && containsAny(lower, "fire", "burn", "hot", "sun") {
		c.VisualTag = VisualFire
		suffix += " (Fire FX)"
	}
	if t == TypeDefense && containsAny(lower, "ice", "cold", "snow", "freeze") {
		c.VisualTag = VisualIce
		suffix += " (Ice FX)"
	}
	if containsAny(lower, "fast", "speed", "quick") {
		c.DrawEffect++
		suffix += " Draw +1."
	}
	if t == TypeAttack && containsAny(lower, "blood", "life", "heal") {
		c.Lifesteal = true
		suffix += " Lifesteal."
	}

	// Evolution perks by proficiency level.
	c.Retain = p >= 2
	c.ApplyDebuff = p >= 3 && t == TypeAttack
	if p >= 3 && t == TypeDefense {
		c.Value += 3
	}
	c.DoubleCast = p >= 5

	desc := suffix
	switch t {
	case TypeAttack:
		desc = fmt.Sprintf("Deal %d Damage.%s", c.Value, suffix)
	case TypeDefense:
		desc = fmt.Sprintf("Gain %d Block.%s", c.Value, suffix)
	default:
		desc = strings.TrimPrefix(desc, " ")
	}
	if c.Retain {
		desc = "Retain. " + desc
	}
	if c.DoubleCast {
		desc += " Double Cast."
	}
	c.Description = desc

	return c
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
