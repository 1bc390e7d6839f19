package actor

// RelicRarity orders relic drop preference. RARE relics are preferred by
// elite and boss drops.
type RelicRarity string

const (
	RarityCommon   RelicRarity = "COMMON"
	RarityUncommon RelicRarity = "UNCOMMON"
	RarityRare     RelicRarity = "RARE"
	RarityBoss     RelicRarity = "BOSS"
	RarityShop     RelicRarity = "SHOP"
)

// Relic effect trigger points.
const (
	EffectOnVictory     = "ON_VICTORY"
	EffectOnCombatStart = "ON_COMBAT_START"
)

// Relic is a passive run-long item. Players hold at most one of each id.
type Relic struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Rarity      RelicRarity `json:"rarity"`
	EffectType  string      `json:"effectType"`
	Value       int         `json:"value"`
}

// AllRelics is the full drop and shop pool.
var AllRelics = []Relic{
	{
		ID:          "burning_blood",
		Name:        "Burning Blood",
		Description: "Heal 6 HP at the end of combat.",
		Icon:        "fa-droplet",
		Rarity:      RarityCommon,
		EffectType:  EffectOnVictory,
		Value:       6,
	},
	{
		ID:          "vajra",
		Name:        "Vajra",
		Description: "Start each combat with 1 Strength.",
		Icon:        "fa-gavel",
		Rarity:      RarityCommon,
		EffectType:  EffectOnCombatStart,
		Value:       1,
	},
	{
		ID:          "anchor",
		Name:        "Anchor",
		Description: "Start each combat with 10 Block.",
		Icon:        "fa-anchor",
		Rarity:      RarityCommon,
		EffectType:  EffectOnCombatStart,
		Value:       10,
	},
	{
		ID:          "bag_of_prep",
		Name:        "Bag of Prep",
		Description: "Draw 2 extra cards on turn 1.",
		Icon:        "fa-suitcase",
		Rarity:      RarityRare,
		EffectType:  EffectOnCombatStart,
		Value:       0,
	},
}

// RelicByID looks a relic up in the catalog.
func RelicByID(id string) (Relic, bool) {
	for _, r := range AllRelics {
		if r.ID == id {
			return r, true
		}
	}
	return Relic{}, false
}
