package state

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// MaxProfiles caps how many profiles an installation can hold.
const MaxProfiles = 3

// Save slot layout: slot 0 is the autosave, 1-4 are manual.
const (
	AutoSaveSlot = 0
	MaxSaveSlot  = 4
)

// ProfileStats is the lifetime scoreboard.
type ProfileStats struct {
	RunsStarted   int `json:"runsStarted"`
	Wins          int `json:"wins"`
	WordsMastered int `json:"wordsMastered"`
}

// Profile is a player account: currency, sanctum unlocks, per-word
// mastery that persists across runs, and up to five saved runs.
type Profile struct {
	ID                   string                      `json:"id"`
	Name                 string                      `json:"name"`
	CreatedAt            int64                       `json:"createdAt"`
	LastPlayed           int64                       `json:"lastPlayed"`
	Stats                ProfileStats                `json:"stats"`
	Currency             int                         `json:"currency"`
	Unlocks              []string                    `json:"unlocks"`
	ActsCleared          []int                       `json:"actsCleared"`
	MasteryProgress      map[string]vocab.Vocabulary `json:"masteryProgress"`
	SaveSlots            map[int]*RunState           `json:"saveSlots"`
	HasCompletedTutorial bool                        `json:"hasCompletedTutorial,omitempty"`
}

// NewProfile creates a blank profile. An empty name defaults to
// "Traveler".
func NewProfile(name string, now time.Time) *Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Traveler"
	}
	return &Profile{
		ID:              uuid.NewString(),
		Name:            name,
		CreatedAt:       now.UnixMilli(),
		LastPlayed:      now.UnixMilli(),
		Unlocks:         []string{},
		ActsCleared:     []int{},
		MasteryProgress: map[string]vocab.Vocabulary{},
		SaveSlots:       map[int]*RunState{},
	}
}

// Migrate backfills fields missing from older saved profiles. Returns
// true when anything changed so callers can persist the upgrade.
func (p *Profile) Migrate() bool {
	changed := false
	if p.SaveSlots == nil {
		p.SaveSlots = map[int]*RunState{}
		changed = true
	}
	if p.Unlocks == nil {
		p.Unlocks = []string{}
		changed = true
	}
	if p.ActsCleared == nil {
		p.ActsCleared = []int{}
		changed = true
	}
	if p.MasteryProgress == nil {
		p.MasteryProgress = map[string]vocab.Vocabulary{}
		changed = true
	}
	return changed
}

// SaveRun stores a run into a slot. Out-of-range slots are ignored.
func (p *Profile) SaveRun(rs *RunState, slot int, now time.Time) {
	if slot < AutoSaveSlot || slot > MaxSaveSlot {
		return
	}
	if p.SaveSlots == nil {
		p.SaveSlots = map[int]*RunState{}
	}
	p.SaveSlots[slot] = rs
	p.LastPlayed = now.UnixMilli()
}

// DeleteRun clears a save slot.
func (p *Profile) DeleteRun(slot int) {
	delete(p.SaveSlots, slot)
}

// SyncMastery writes the current per-word learning state back into the
// profile and recounts mastered words.
func (p *Profile) SyncMastery(list []vocab.Vocabulary) {
	if p.MasteryProgress == nil {
		p.MasteryProgress = map[string]vocab.Vocabulary{}
	}
	mastered := 0
	for _, v := range list {
		p.MasteryProgress[v.ID] = v
		if v.Proficiency >= vocab.MaxProficiency {
			mastered++
		}
	}
	p.Stats.WordsMastered = mastered
}

// ApplyMastery overlays saved word progress onto a fresh pack list.
func (p *Profile) ApplyMastery(list []vocab.Vocabulary) []vocab.Vocabulary {
	return vocab.ApplyMastery(list, p.MasteryProgress)
}

// HasClearedAct reports whether the profile has ever beaten an act's
// boss, which gates the first-clear shard bonus.
func (p *Profile) HasClearedAct(act int) bool {
	for _, a := range p.ActsCleared {
		if a == act {
			return true
		}
	}
	return false
}

// MarkActCleared records a first act clear.
func (p *Profile) MarkActCleared(act int) {
	if !p.HasClearedAct(act) {
		p.ActsCleared = append(p.ActsCleared, act)
	}
}
