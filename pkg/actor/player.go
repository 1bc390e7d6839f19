// Package actor holds the combatant types and the relic catalog. The
// combat engine mutates these through small methods so HP, block, and
// status bounds are enforced in one place.
package actor

import "math"

// Base player stats before sanctum unlock bonuses.
const (
	BasePlayerHP     = 70
	BasePlayerEnergy = 3
)

// Sanctum unlock ids and their effects on a fresh run.
const (
	UnlockBonusHP      = "bonus_hp"      // +15 max HP
	UnlockBonusGold    = "bonus_gold"    // +100 starting gold
	UnlockBonusStr     = "bonus_str"     // +1 starting strength
	UnlockBonusRevive  = "bonus_revive"  // +1 revival
	UnlockBonusEnergy  = "bonus_energy"  // +1 max energy
	UnlockShopDiscount = "shop_discount" // 20% off shop prices
)

// Player is the run-long hero state. Block, energy, combo, and
// nextTurnEnergy are combat-transient; the rest persists across fights.
type Player struct {
	HP             int     `json:"hp"`
	MaxHP          int     `json:"maxHp"`
	Block          int     `json:"block"`
	Gold           int     `json:"gold"`
	Energy         int     `json:"energy"`
	MaxEnergy      int     `json:"maxEnergy"`
	Status         Status  `json:"status"`
	Relics         []Relic `json:"relics"`
	Revivals       int     `json:"revivals"`
	ShopDiscount   float64 `json:"shopDiscount"`
	Combo          int     `json:"combo"`
	NextTurnEnergy int     `json:"nextTurnEnergy"`
}

// NewPlayer builds a fresh hero, applying any sanctum unlocks the
// profile has purchased.
func NewPlayer(unlocks []string) *Player {
	p := &Player{
		HP:        BasePlayerHP,
		MaxHP:     BasePlayerHP,
		Energy:    BasePlayerEnergy,
		MaxEnergy: BasePlayerEnergy,
		Relics:    []Relic{},
	}
	for _, u := range unlocks {
		switch u {
		case UnlockBonusHP:
			p.MaxHP += 15
			p.HP += 15
		case UnlockBonusGold:
			p.Gold += 100
		case UnlockBonusStr:
			p.Status.Strength++
		case UnlockBonusRevive:
			p.Revivals++
		case UnlockBonusEnergy:
			p.MaxEnergy++
			p.Energy++
		case UnlockShopDiscount:
			p.ShopDiscount = 0.2
		}
	}
	return p
}

// Heal restores HP up to the max and returns the amount actually healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 || p.HP >= p.MaxHP {
		return 0
	}
	healed := amount
	if p.HP+healed > p.MaxHP {
		healed = p.MaxHP - p.HP
	}
	p.HP += healed
	return healed
}

// TakeDamage applies post-mitigation damage through block, then HP. A
// lethal hit consumes a revival if one remains, restoring the player to
// half max HP. Returns the HP actually lost.
func (p *Player) TakeDamage(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	actual := dmg - p.Block
	if actual < 0 {
		actual = 0
	}
	blocked := dmg
	if blocked > p.Block {
		blocked = p.Block
	}
	p.Block -= blocked

	p.HP -= actual
	if p.HP <= 0 && p.Revivals > 0 {
		p.HP = int(math.Floor(float64(p.MaxHP) * 0.5))
		p.Revivals--
	}
	return actual
}

// HasRelic reports whether the player owns the relic with the given id.
func (p *Player) HasRelic(id string) bool {
	for _, r := range p.Relics {
		if r.ID == id {
			return true
		}
	}
	return false
}

// AddRelic grants a relic if not already owned.
func (p *Player) AddRelic(r Relic) bool {
	if p.HasRelic(r.ID) {
		return false
	}
	p.Relics = append(p.Relics, r)
	return true
}
