package dungeon

import (
	"math"
	"math/rand"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/vocab"
	"github.com/jwebster45206/spellspire/pkg/worldmap"
)

type enemyTemplate struct {
	id            string
	name          string
	baseHPMin     int
	baseHPMax     int
	baseStr       int
	innateAffixes []card.Debuff
}

var weakPool = []enemyTemplate{
	{id: "cultist", name: "Cultist", baseHPMin: 30, baseHPMax: 45},
	{id: "slime", name: "Acid Slime", baseHPMin: 25, baseHPMax: 40},
	{id: "louse", name: "Spire Louse", baseHPMin: 20, baseHPMax: 35, baseStr: 1},
}

var strongPool = []enemyTemplate{
	{id: "looter", name: "Looter", baseHPMin: 45, baseHPMax: 60, baseStr: 2, innateAffixes: []card.Debuff{card.DebuffRush}},
	{id: "fungi", name: "Fungi Beast", baseHPMin: 50, baseHPMax: 65, baseStr: 3},
	{id: "knight", name: "Centurion", baseHPMin: 60, baseHPMax: 75, baseStr: 1},
}

var elitePool = []enemyTemplate{
	{id: "gremlin_nob", name: "Gremlin Nob", baseHPMin: 80, baseHPMax: 100, baseStr: 4, innateAffixes: []card.Debuff{card.DebuffRush}},
	{id: "sentry", name: "Sentry", baseHPMin: 70, baseHPMax: 80, baseStr: 2, innateAffixes: []card.Debuff{card.DebuffBlind}},
	{id: "lagavulin", name: "Lagavulin", baseHPMin: 90, baseHPMax: 110, baseStr: 5, innateAffixes: []card.Debuff{card.DebuffSilence}},
}

var bossPool = []enemyTemplate{
	{id: "guardian", name: "The Guardian", baseHPMin: 200, baseHPMax: 200, baseStr: 2, innateAffixes: []card.Debuff{card.DebuffBlind, card.DebuffSilence}},
	{id: "hexaghost", name: "Hexaghost", baseHPMin: 180, baseHPMax: 180, baseStr: 3, innateAffixes: []card.Debuff{card.DebuffRush, card.DebuffBlind}},
	{id: "automaton", name: "Bronze Automaton", baseHPMin: 240, baseHPMax: 240, baseStr: 4, innateAffixes: []card.Debuff{card.DebuffSilence, card.DebuffRush}},
}

// SpawnForFloor generates a scaled enemy for a map node. Boss picks are
// deterministic per act; everything else rolls from the tier pool that
// matches the floor. The rand source is injected so tests can pin rolls.
func SpawnForFloor(actIndex, floorY int, nodeType worldmap.NodeType, r *rand.Rand) *actor.Enemy {
	act := ActFor(actIndex)

	var tmpl enemyTemplate
	var tier actor.EnemyTier

	switch {
	case nodeType == worldmap.NodeBoss:
		tmpl = bossPool[(actIndex-1)%len(bossPool)]
		tier = actor.TierBoss
	case nodeType == worldmap.NodeElite:
		tmpl = elitePool[r.Intn(len(elitePool))]
		tier = actor.TierElite
	case floorY <= 3:
		tmpl = weakPool[r.Intn(len(weakPool))]
		tier = actor.TierWeak
	case floorY <= 8:
		if r.Float64() < 0.3 {
			tmpl = strongPool[r.Intn(len(strongPool))]
			tier = actor.TierStrong
		} else {
			tmpl = weakPool[r.Intn(len(weakPool))]
			tier = actor.TierWeak
		}
	default:
		tmpl = strongPool[r.Intn(len(strongPool))]
		tier = actor.TierStrong
	}

	hpRoll := r.Intn(tmpl.baseHPMax-tmpl.baseHPMin+1) + tmpl.baseHPMin
	hp := int(math.Floor(float64(hpRoll) * act.EnemyHPMult))
	str := int(math.Floor(float64(tmpl.baseStr)*act.EnemyDmgMult)) + (actIndex - 1)

	enemyType := actor.EnemyNormal
	switch nodeType {
	case worldmap.NodeElite:
		enemyType = actor.EnemyElite
	case worldmap.NodeBoss:
		enemyType = actor.EnemyBoss
	}

	e := &actor.Enemy{
		ID:     tmpl.id,
		Name:   tmpl.name,
		Type:   enemyType,
		Tier:   tier,
		HP:     hp,
		MaxHP:  hp,
		Status: actor.Status{Strength: str},
	}
	for _, a := range tmpl.innateAffixes {
		e.InnateAffixes = append(e.InnateAffixes, string(a))
	}

	// Strong enemies can roll one extra affix in later acts.
	if tier == actor.TierStrong && r.Float64() < act.AffixChanceBonus {
		affixes := []card.Debuff{card.DebuffBlind, card.DebuffRush, card.DebuffSilence}
		pick := string(affixes[r.Intn(len(affixes))])
		if !containsStr(e.InnateAffixes, pick) {
			e.InnateAffixes = append(e.InnateAffixes, pick)
		}
	}

	e.Intent = NextIntent(e, 1)
	return e
}

// BalanceDeck re-derives every card against a word pool tuned to the
// encounter. Hard fights prefer well-known or short words; weak fights
// push unpracticed or long words. Card type, review flag, and instance
// id are preserved so deck composition stays stable.
func BalanceDeck(deck []card.Card, vocabList []vocab.Vocabulary, tier actor.EnemyTier, r *rand.Rand) []card.Card {
	if len(vocabList) == 0 {
		return deck
	}

	var pool []vocab.Vocabulary
	switch tier {
	case actor.TierBoss, actor.TierElite:
		for _, v := range vocabList {
			if v.Proficiency >= 3 || len(v.Word) <= 7 {
				pool = append(pool, v)
			}
		}
	case actor.TierWeak:
		for _, v := range vocabList {
			if v.Proficiency < 3 || len(v.Word) > 6 {
				pool = append(pool, v)
			}
		}
	default:
		pool = append(pool, vocabList...)
	}
	if len(pool) < 5 {
		pool = append([]vocab.Vocabulary(nil), vocabList...)
	}

	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]card.Card, len(deck))
	for i, c := range deck {
		v := pool[i%len(pool)]
		nc := card.New(c.Type, v, c.IsReview)
		nc.UniqueID = c.UniqueID
		out[i] = nc
	}
	return out
}

func containsStr(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
