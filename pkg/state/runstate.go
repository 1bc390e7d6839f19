// Package state holds the persistent shapes: the run state saved into
// profile slots and the profile itself with its mastery record.
package state

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/combat"
	"github.com/jwebster45206/spellspire/pkg/deck"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/shop"
	"github.com/jwebster45206/spellspire/pkg/vocab"
	"github.com/jwebster45206/spellspire/pkg/worldmap"
)

// GamePhase is where the run currently sits in the game loop.
type GamePhase string

const (
	PhaseMenu          GamePhase = "MENU"
	PhaseStoryIntro    GamePhase = "STORY_INTRO"
	PhaseMap           GamePhase = "MAP"
	PhaseCombat        GamePhase = "COMBAT"
	PhaseReward        GamePhase = "REWARD"
	PhaseCampfire      GamePhase = "CAMPFIRE"
	PhaseEvent         GamePhase = "EVENT"
	PhaseShop          GamePhase = "SHOP"
	PhaseLastStand     GamePhase = "LAST_STAND"
	PhaseActTransition GamePhase = "ACT_TRANSITION"
	PhaseGameOver      GamePhase = "GAME_OVER"
)

// RunState is one playthrough. The embedded encounter contributes the
// combat piles and enemy; everything is JSON-serializable as a single
// blob for slot saves and the run cache.
type RunState struct {
	ID        uuid.UUID `json:"id"`
	ProfileID string    `json:"profileId,omitempty"`
	SaveName  string    `json:"saveName"`
	SavedAt   int64     `json:"savedAt"`

	Player *actor.Player    `json:"player"`
	Deck   []card.Card      `json:"deck"`
	Map    []*worldmap.Node `json:"gameMap"`

	MapSeed        int64     `json:"mapSeed"`
	VisitedNodeIDs []string  `json:"visitedNodeIds"`
	CurrentNodeID  string    `json:"currentMapNodeId,omitempty"`
	Phase          GamePhase `json:"phase"`
	BattlesWon     int       `json:"battlesWon"`
	Act            int       `json:"act"`

	combat.Encounter

	VocabPackID     string             `json:"vocabPackId,omitempty"`
	CustomVocabList []vocab.Vocabulary `json:"customVocabList,omitempty"`
	ActiveEventID   string             `json:"activeEventId,omitempty"`
	ShopState       *shop.State        `json:"shopState,omitempty"`

	// Reward screen contents, generated when the phase flips to REWARD
	// so a reload shows the same offer.
	RewardOptions []card.Card     `json:"rewardOptions,omitempty"`
	LastRewards   *combat.Rewards `json:"lastRewards,omitempty"`

	// An in-progress death gauntlet, kept across save and load.
	LastStandWords []vocab.Vocabulary `json:"lastStandWords,omitempty"`
	LastStandIndex int                `json:"lastStandIndex,omitempty"`
}

// NewRun starts a fresh playthrough for a profile: new hero with the
// profile's unlocks, a 12-card session deck, and an act 1 map from the
// given seed.
func NewRun(p *Profile, packID, saveName string, list []vocab.Vocabulary, now time.Time, seed int64, r *rand.Rand) *RunState {
	rs := &RunState{
		ID:        uuid.New(),
		ProfileID: p.ID,
		SaveName:  saveName,
		SavedAt:   now.UnixMilli(),
		Player:    actor.NewPlayer(p.Unlocks),
		Deck:      deck.GenerateSessionDeck(list, now, r),
		Map:       worldmap.Generate(seed),
		MapSeed:   seed,
		Phase:     PhaseMap,
		Act:       1,

		VocabPackID: packID,
	}
	rs.IsPlayerTurn = true
	rs.Hand = []card.Card{}
	rs.DrawPile = []card.Card{}
	rs.DiscardPile = []card.Card{}
	return rs
}

// FindNode looks a node up on the run's map.
func (rs *RunState) FindNode(id string) *worldmap.Node {
	return worldmap.FindNode(rs.Map, id)
}

// CompleteCurrentNode marks the node the player is standing on as
// completed and unlocks its exits.
func (rs *RunState) CompleteCurrentNode() {
	node := rs.FindNode(rs.CurrentNodeID)
	if node == nil {
		return
	}
	node.Status = worldmap.StatusCompleted
	for _, id := range rs.VisitedNodeIDs {
		if id == node.ID {
			return
		}
	}
	rs.VisitedNodeIDs = append(rs.VisitedNodeIDs, node.ID)
	for _, nextID := range node.Next {
		if next := rs.FindNode(nextID); next != nil && next.Status == worldmap.StatusLocked {
			next.Status = worldmap.StatusAvailable
		}
	}
}

// AdvanceAct moves the run into the next act: half the player's max HP
// is restored and a fresh map is generated from the new seed. Past the
// final act the run is over.
func (rs *RunState) AdvanceAct(seed int64) {
	next := rs.Act + 1
	if next > dungeon.FinalAct {
		rs.Phase = PhaseGameOver
		return
	}
	rs.Act = next
	rs.Player.Heal(int(math.Floor(float64(rs.Player.MaxHP) * 0.5)))
	rs.MapSeed = seed
	rs.Map = worldmap.Generate(seed)
	rs.VisitedNodeIDs = nil
	rs.CurrentNodeID = ""
	rs.Phase = PhaseMap
}

// Rehydrate restores map node statuses after a load, which only
// persists the seed, visited ids, and current node.
func (rs *RunState) Rehydrate() {
	worldmap.Rehydrate(rs.Map, rs.VisitedNodeIDs, rs.CurrentNodeID)
}
