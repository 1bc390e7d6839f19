package handlers

import (
	"encoding/json"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/card"
	"github.com/jwebster45206/spellspire/pkg/combat"
	"github.com/jwebster45206/spellspire/pkg/deck"
	"github.com/jwebster45206/spellspire/pkg/dungeon"
	"github.com/jwebster45206/spellspire/pkg/event"
	"github.com/jwebster45206/spellspire/pkg/shop"
	"github.com/jwebster45206/spellspire/pkg/spell"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/vocab"
	"github.com/jwebster45206/spellspire/pkg/worldmap"
)

// ActionRequest is the single envelope for all in-run actions. Type
// selects the action; the other fields apply per type.
type ActionRequest struct {
	Type           string `json:"type"`
	NodeID         string `json:"nodeId,omitempty"`
	UniqueID       string `json:"uniqueId,omitempty"`
	Attempt        string `json:"attempt,omitempty"`
	UsedHint       bool   `json:"usedHint,omitempty"`
	ChoiceID       string `json:"choiceId,omitempty"`
	ItemID         string `json:"itemId,omitempty"`
	RemoveUniqueID string `json:"removeUniqueId,omitempty"`
}

// ActionResponse returns the updated run plus any per-action detail.
type ActionResponse struct {
	Run     *state.RunState    `json:"run"`
	Play    *combat.PlayResult `json:"play,omitempty"`
	Event   *event.Result      `json:"event,omitempty"`
	Message string             `json:"message,omitempty"`
}

type actionResult struct {
	play    *combat.PlayResult
	event   *event.Result
	message string
}

// handleAction loads the run, applies one action, and persists the
// result. A rejected action returns 400 and persists nothing, so the
// cached run is unchanged.
func (h *RunHandler) handleAction(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid run id")
		return
	}
	run, err := h.storage.LoadRunState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load run state", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load run")
		return
	}
	if run == nil {
		writeError(w, h.logger, http.StatusNotFound, "Run not found")
		return
	}
	run.Rehydrate()

	p, err := h.loadRunProfile(r.Context(), run)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	list, err := h.vocabList(r.Context(), run, p)
	if err != nil {
		h.logger.Error("Failed to resolve vocabulary", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load vocabulary")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var res actionResult
	var actionErr string
	switch req.Type {
	case "select_node":
		actionErr = actSelectNode(run, list, req.NodeID, rng)
	case "play_card":
		res, actionErr = actPlayCard(run, p, list, req, rng)
	case "discard_select":
		if run.Phase != state.PhaseCombat {
			actionErr = "Not in combat"
		} else if err := run.DiscardSelect(req.UniqueID); err != nil {
			actionErr = err.Error()
		}
	case "end_turn":
		actionErr = actEndTurn(run, p, list, rng)
	case "event_choice":
		res, actionErr = actEventChoice(run, list, req.ChoiceID, rng)
	case "rest_sleep":
		actionErr = actRestSleep(run)
	case "rest_smith":
		actionErr = actRestSmith(run, req.UniqueID)
	case "shop_buy":
		actionErr = actShopBuy(run, req)
	case "shop_leave":
		actionErr = actShopLeave(run)
	case "reward_pick":
		actionErr = actRewardPick(run, req.UniqueID)
	case "reward_skip":
		actionErr = actRewardSkip(run)
	case "next_act":
		actionErr = actNextAct(run, p, rng)
	case "last_stand":
		res, actionErr = actLastStand(run, p, list, req.Attempt, rng)
	default:
		actionErr = "Unknown action type: " + req.Type
	}
	if actionErr != "" {
		h.logger.Debug("Action rejected", "run_id", id, "type", req.Type, "reason", actionErr)
		writeError(w, h.logger, http.StatusBadRequest, actionErr)
		return
	}

	now := time.Now()
	p.SaveRun(run, state.AutoSaveSlot, now)
	if err := h.storage.SaveRunState(r.Context(), run.ID, run); err != nil {
		h.logger.Error("Failed to cache run state", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save run")
		return
	}
	if err := h.storage.SaveProfile(r.Context(), p); err != nil {
		h.logger.Error("Failed to save profile", "error", err, "id", p.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ActionResponse{
		Run:     run,
		Play:    res.play,
		Event:   res.event,
		Message: res.message,
	})
}

// syncVocab writes graded word state back to where it lives: custom
// runs keep the list on the run itself, pack runs persist into the
// profile's mastery record.
func syncVocab(run *state.RunState, p *state.Profile, list []vocab.Vocabulary) {
	if run.VocabPackID == vocab.CustomPackID {
		run.CustomVocabList = list
		return
	}
	p.SyncMastery(list)
}

func deckIndex(cards []card.Card, uniqueID string) int {
	for i := range cards {
		if cards[i].UniqueID == uniqueID {
			return i
		}
	}
	return -1
}

func actSelectNode(run *state.RunState, list []vocab.Vocabulary, nodeID string, rng *rand.Rand) string {
	if run.Phase != state.PhaseMap {
		return "Not on the map"
	}
	node := run.FindNode(nodeID)
	if node == nil {
		return "Node not found"
	}
	if node.Status != worldmap.StatusAvailable {
		return "Node is not reachable"
	}
	run.CurrentNodeID = node.ID

	switch node.Type {
	case worldmap.NodeMonster, worldmap.NodeElite, worldmap.NodeBoss:
		enemy := dungeon.SpawnForFloor(run.Act, node.Y, node.Type, rng)
		enc, balanced := combat.Start(run.Player, enemy, run.Deck, list, rng)
		run.Deck = balanced
		run.Encounter = *enc
		run.Phase = state.PhaseCombat
	case worldmap.NodeTreasure:
		run.Player.Gold += 50
		run.LastRewards = &combat.Rewards{
			Gold: combat.GoldBreakdown{Base: 50, Multiplier: 1, Total: 50},
		}
		run.RewardOptions = deck.RandomRewardOptions(list, rng)
		run.Phase = state.PhaseReward
		run.CompleteCurrentNode()
	case worldmap.NodeCampfire:
		run.Phase = state.PhaseCampfire
		run.CompleteCurrentNode()
	case worldmap.NodeShop:
		run.ShopState = shop.Generate(dungeon.ActFor(run.Act), run.Player, list, rng)
		run.Phase = state.PhaseShop
		run.CompleteCurrentNode()
	case worldmap.NodeEvent:
		run.ActiveEventID = event.Pick(rng).ID
		run.Phase = state.PhaseEvent
		run.CompleteCurrentNode()
	default:
		return "Unknown node type"
	}
	return ""
}

func actPlayCard(run *state.RunState, p *state.Profile, list []vocab.Vocabulary, req ActionRequest, rng *rand.Rand) (actionResult, string) {
	var res actionResult
	if run.Phase != state.PhaseCombat {
		return res, "Not in combat"
	}
	idx := deckIndex(run.Hand, req.UniqueID)
	if idx < 0 {
		return res, "Card not in hand"
	}
	c := run.Hand[idx]
	now := time.Now()

	if spell.Check(req.Attempt, c.Vocab.Word) {
		play, err := run.PlaySuccess(run.Player, req.UniqueID, req.UsedHint, list, now, rng)
		if err != nil {
			return res, err.Error()
		}
		if play.Mastered {
			p.Currency++
		}
		syncVocab(run, p, list)
		if play.Defeated {
			settleVictory(run, p, list, rng)
		}
		res.play = &play
		return res, ""
	}

	if err := run.PlayFail(run.Player, req.UniqueID); err != nil {
		return res, err.Error()
	}
	for i := range list {
		if list[i].ID == c.Vocab.ID {
			list[i] = vocab.UpdateProficiency(list[i], false, now)
			break
		}
	}
	syncVocab(run, p, list)
	res.play = &combat.PlayResult{}
	return res, ""
}

func actEndTurn(run *state.RunState, p *state.Profile, list []vocab.Vocabulary, rng *rand.Rand) string {
	if run.Phase != state.PhaseCombat {
		return "Not in combat"
	}
	playerDown, err := run.EndTurn(run.Player, rng)
	if err != nil {
		return err.Error()
	}
	if playerDown {
		run.LastStandWords = run.Encounter.LastStandWords(list, rng)
		run.LastStandIndex = 0
		run.Phase = state.PhaseLastStand
		return ""
	}
	// Poison ticks during the enemy turn and can finish the fight.
	if run.Enemy != nil && run.Enemy.IsDefeated() {
		settleVictory(run, p, list, rng)
	}
	return ""
}

// settleVictory applies everything a won fight pays out and moves the
// run to the reward screen, or the act transition after a boss.
func settleVictory(run *state.RunState, p *state.Profile, list []vocab.Vocabulary, rng *rand.Rand) {
	boss := run.Enemy.Type == actor.EnemyBoss
	firstClear := boss && !p.HasClearedAct(run.Act)

	rw := run.Victory(run.Player, run.Act, run.BattlesWon, firstClear, rng)
	p.Currency += rw.Shards
	if boss {
		p.MarkActCleared(run.Act)
	}

	run.BattlesWon++
	run.CompleteCurrentNode()
	run.LastRewards = &rw
	run.Enemy = nil
	run.Hand = []card.Card{}
	run.DrawPile = []card.Card{}
	run.DiscardPile = []card.Card{}
	run.WrongAnswers = nil
	run.PendingDiscards = 0

	if boss {
		run.Phase = state.PhaseActTransition
		return
	}
	run.RewardOptions = deck.RandomRewardOptions(list, rng)
	run.Phase = state.PhaseReward
}

func actEventChoice(run *state.RunState, list []vocab.Vocabulary, choiceID string, rng *rand.Rand) (actionResult, string) {
	var res actionResult
	if run.Phase != state.PhaseEvent || run.ActiveEventID == "" {
		return res, "No active event"
	}
	ev, ok := event.ByID(run.ActiveEventID)
	if !ok {
		return res, "No active event"
	}
	found := false
	for _, choice := range ev.Choices {
		if choice.ID == choiceID {
			found = true
			break
		}
	}
	if !found {
		return res, "Unknown choice: " + choiceID
	}

	roll := rng.Intn(20) + 1
	outcome := event.Resolve(run.ActiveEventID, choiceID, run.Player, list, roll, rng)

	run.Player.Gold += outcome.GoldChange
	if run.Player.Gold < 0 {
		run.Player.Gold = 0
	}
	if outcome.DamageTaken > 0 {
		// Events hurt but never kill.
		run.Player.HP -= outcome.DamageTaken
		if run.Player.HP < 1 {
			run.Player.HP = 1
		}
	}
	if outcome.Healed > 0 {
		run.Player.Heal(outcome.Healed)
	}
	if outcome.CardsAdded != nil {
		if len(outcome.CardsAdded) == 0 && len(run.Deck) > 0 {
			// Empty non-nil slice means duplicate a random deck card.
			src := run.Deck[rng.Intn(len(run.Deck))]
			run.Deck = append(run.Deck, card.New(src.Type, src.Vocab, src.IsReview))
		} else {
			run.Deck = append(run.Deck, outcome.CardsAdded...)
		}
	}
	for i := 0; i < outcome.CardsRemoved && len(run.Deck) > 1; i++ {
		idx := rng.Intn(len(run.Deck))
		run.Deck = append(run.Deck[:idx], run.Deck[idx+1:]...)
	}

	run.ActiveEventID = ""
	run.Phase = state.PhaseMap
	res.event = &outcome
	return res, ""
}

func actRestSleep(run *state.RunState) string {
	if run.Phase != state.PhaseCampfire {
		return "Not at a campfire"
	}
	run.Player.Heal(int(math.Floor(float64(run.Player.MaxHP) * 0.3)))
	run.Phase = state.PhaseMap
	return ""
}

func actRestSmith(run *state.RunState, uniqueID string) string {
	if run.Phase != state.PhaseCampfire {
		return "Not at a campfire"
	}
	idx := deckIndex(run.Deck, uniqueID)
	if idx < 0 {
		return "Card not in deck"
	}
	run.Deck = append(run.Deck[:idx], run.Deck[idx+1:]...)
	run.Phase = state.PhaseMap
	return ""
}

func actShopBuy(run *state.RunState, req ActionRequest) string {
	if run.Phase != state.PhaseShop || run.ShopState == nil {
		return "Not at a shop"
	}
	var item *shop.Item
	for i := range run.ShopState.Items {
		if run.ShopState.Items[i].ID == req.ItemID {
			item = &run.ShopState.Items[i]
			break
		}
	}
	if item == nil {
		return "Item not found"
	}

	if item.Type == shop.ItemRemove {
		idx := deckIndex(run.Deck, req.RemoveUniqueID)
		if idx < 0 {
			return "Card not in deck"
		}
		if !run.ShopState.Purchase(req.ItemID, run.Player, nil) {
			return "Cannot purchase item"
		}
		run.Deck = append(run.Deck[:idx], run.Deck[idx+1:]...)
		return ""
	}

	ok := run.ShopState.Purchase(req.ItemID, run.Player, func(c card.Card) {
		run.Deck = append(run.Deck, c)
	})
	if !ok {
		return "Cannot purchase item"
	}
	return ""
}

func actShopLeave(run *state.RunState) string {
	if run.Phase != state.PhaseShop {
		return "Not at a shop"
	}
	run.ShopState = nil
	run.Phase = state.PhaseMap
	return ""
}

func actRewardPick(run *state.RunState, uniqueID string) string {
	if run.Phase != state.PhaseReward {
		return "No reward pending"
	}
	idx := deckIndex(run.RewardOptions, uniqueID)
	if idx < 0 {
		return "Reward not offered"
	}
	run.Deck = append(run.Deck, run.RewardOptions[idx])
	run.RewardOptions = nil
	run.LastRewards = nil
	run.Phase = state.PhaseMap
	return ""
}

func actRewardSkip(run *state.RunState) string {
	if run.Phase != state.PhaseReward {
		return "No reward pending"
	}
	run.RewardOptions = nil
	run.LastRewards = nil
	run.Phase = state.PhaseMap
	return ""
}

func actNextAct(run *state.RunState, p *state.Profile, rng *rand.Rand) string {
	if run.Phase != state.PhaseActTransition {
		return "No act transition pending"
	}
	run.LastRewards = nil
	if run.Act >= dungeon.FinalAct {
		p.Stats.Wins++
		run.Phase = state.PhaseGameOver
		return ""
	}
	run.AdvanceAct(rng.Int63())
	return ""
}

func actLastStand(run *state.RunState, p *state.Profile, list []vocab.Vocabulary, attempt string, rng *rand.Rand) (actionResult, string) {
	var res actionResult
	if run.Phase != state.PhaseLastStand || len(run.LastStandWords) == 0 {
		return res, "No last stand in progress"
	}
	if run.LastStandIndex >= len(run.LastStandWords) {
		return res, "No last stand in progress"
	}
	word := run.LastStandWords[run.LastStandIndex]

	if spell.Check(attempt, word.Word) {
		run.LastStandIndex++
		if run.LastStandIndex >= len(run.LastStandWords) {
			run.SurviveLastStand(run.Player, rng)
			run.LastStandWords = nil
			run.LastStandIndex = 0
			run.Phase = state.PhaseCombat
			res.message = "You claw your way back from the brink."
		}
		return res, ""
	}

	// The miss that ends the run still feeds the mastery record.
	now := time.Now()
	for i := range list {
		if list[i].ID == word.ID {
			list[i] = vocab.UpdateProficiency(list[i], false, now)
			break
		}
	}
	run.Phase = state.PhaseGameOver
	syncVocab(run, p, list)
	res.message = "The spire claims you."
	return res, ""
}
