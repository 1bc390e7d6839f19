package combat

import (
	"math"
	"math/rand"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// LastStandCount is how many words must be spelled to survive a defeat.
const LastStandCount = 3

// LastStandWords builds the survival gauntlet: the words missed this
// combat, padded first with long words and then with anything from the
// active list, shuffled and cut to three.
func (e *Encounter) LastStandWords(vocabList []vocab.Vocabulary, r *rand.Rand) []vocab.Vocabulary {
	pool := append([]vocab.Vocabulary(nil), e.WrongAnswers...)
	if len(pool) < LastStandCount {
		var hard []vocab.Vocabulary
		for _, v := range vocabList {
			if len(v.Word) > 7 {
				hard = append(hard, v)
			}
		}
		for len(pool) < LastStandCount && len(hard) > 0 {
			pool = append(pool, hard[r.Intn(len(hard))])
		}
		for len(pool) < LastStandCount && len(vocabList) > 0 {
			pool = append(pool, vocabList[r.Intn(len(vocabList))])
		}
	}
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > LastStandCount {
		pool = pool[:LastStandCount]
	}
	return pool
}

// SurviveLastStand revives the player after all gauntlet words were
// spelled correctly and starts their next turn.
func (e *Encounter) SurviveLastStand(p *actor.Player, r *rand.Rand) {
	p.HP = int(math.Floor(float64(p.MaxHP) * 0.3))

	e.TurnCount++
	e.IsPlayerTurn = true
	p.Energy = p.MaxEnergy + p.NextTurnEnergy
	p.NextTurnEnergy = 0
	e.Enemy.Block = 0
	e.Enemy.Intent = dungeon.NextIntent(e.Enemy, e.TurnCount)
	e.Draw(DrawPerTurn, r)
}
