package combat

import (
	"math"
	"math/rand"

	"github.com/jwebster45206/spellspire/pkg/actor"
)

// GoldBreakdown itemizes a victory payout for the reward screen.
type GoldBreakdown struct {
	Base        int  `json:"base"`
	Bounty      int  `json:"bounty"`
	BountyCount int  `json:"bountyCount"`
	Perfect     int  `json:"perfect"`
	IsPerfect   bool `json:"isPerfect"`
	Multiplier  int  `json:"multiplier"`
	Total       int  `json:"total"`
}

// Rewards is everything a won fight pays out. Shards and the relic drop
// are applied to the profile and player by the caller.
type Rewards struct {
	Gold          GoldBreakdown `json:"gold"`
	Relic         *actor.Relic  `json:"relic,omitempty"`
	Shards        int           `json:"shards"`
	HealedOnClear int           `json:"healedOnClear,omitempty"`
}

// Victory settles a won encounter. Gold scales with the act and bounty
// cards played, a flawless fight pays a bonus, and the first two fights
// of act 1 pay double. Elite and boss kills roll a relic the player does
// not own, preferring rare ones. Boss kills pay shards, with a large
// bonus the first time that act is ever cleared.
func (e *Encounter) Victory(p *actor.Player, actIndex, battlesWon int, firstActClear bool, r *rand.Rand) Rewards {
	var rw Rewards

	for _, relic := range p.Relics {
		if relic.ID == "burning_blood" {
			rw.HealedOnClear = p.Heal(relic.Value)
		}
	}

	g := GoldBreakdown{
		Base:        int(math.Floor(r.Float64()*6)) + 15 + actIndex,
		BountyCount: e.Stats.BountyPlayed,
		Bounty:      e.Stats.BountyPlayed * 15,
		Multiplier:  1,
	}
	if e.Stats.DamageTaken == 0 && e.Stats.Mistakes == 0 && e.Stats.Hints == 0 {
		g.IsPerfect = true
		g.Perfect = 30
	}
	g.Total = g.Base + g.Bounty + g.Perfect
	if actIndex == 1 && battlesWon < 3 {
		g.Multiplier = 2
		g.Total *= 2
	}
	p.Gold += g.Total
	rw.Gold = g

	if e.Enemy.Type == actor.EnemyElite || e.Enemy.Type == actor.EnemyBoss {
		if relic := rollRelicDrop(p, r); relic != nil {
			p.AddRelic(*relic)
			rw.Relic = relic
		}
	}

	if e.Enemy.Type == actor.EnemyBoss {
		rw.Shards = 30
		if firstActClear {
			rw.Shards += 200
		}
	}
	return rw
}

// rollRelicDrop picks an unowned relic, preferring the rare subset when
// any rare relic remains unowned. Returns nil when everything is owned.
func rollRelicDrop(p *actor.Player, r *rand.Rand) *actor.Relic {
	var candidates, rare []actor.Relic
	for _, relic := range actor.AllRelics {
		if p.HasRelic(relic.ID) {
			continue
		}
		candidates = append(candidates, relic)
		if relic.Rarity == actor.RarityRare {
			rare = append(rare, relic)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	pool := candidates
	if len(rare) > 0 {
		pool = rare
	}
	drop := pool[r.Intn(len(pool))]
	return &drop
}
