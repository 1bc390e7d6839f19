package actor

// EnemyType distinguishes encounter kinds; tier drives scaling and deck
// rebalancing difficulty.
type EnemyType string

const (
	EnemyNormal EnemyType = "NORMAL"
	EnemyElite  EnemyType = "ELITE"
	EnemyBoss   EnemyType = "BOSS"
)

// EnemyTier buckets enemies by threat for spawn pools and cognitive deck
// balancing.
type EnemyTier string

const (
	TierWeak   EnemyTier = "WEAK"
	TierStrong EnemyTier = "STRONG"
	TierElite  EnemyTier = "ELITE"
	TierBoss   EnemyTier = "BOSS"
)

// IntentType is the category of an enemy's next action.
type IntentType string

const (
	IntentAttack  IntentType = "ATTACK"
	IntentDefend  IntentType = "DEFEND"
	IntentBuff    IntentType = "BUFF"
	IntentDebuff  IntentType = "DEBUFF"
	IntentUnknown IntentType = "UNKNOWN"
)

// Intent is the enemy's telegraphed next action, recomputed each turn
// from a pure function of enemy id and turn number.
type Intent struct {
	Type        IntentType `json:"type"`
	Value       int        `json:"value"`
	Description string     `json:"description,omitempty"`
}

// Enemy is the current opponent in a combat.
type Enemy struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          EnemyType `json:"type"`
	Tier          EnemyTier `json:"tier"`
	HP            int       `json:"hp"`
	MaxHP         int       `json:"maxHp"`
	Block         int       `json:"block"`
	Status        Status    `json:"status"`
	Intent        Intent    `json:"intent"`
	Image         string    `json:"image,omitempty"`
	InnateAffixes []string  `json:"innateAffixes,omitempty"`
}

// TakeDamage applies damage through block and returns the HP actually
// lost. Damage here is already fully modified (strength, weak,
// vulnerable applied by the caller).
func (e *Enemy) TakeDamage(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	actual := dmg - e.Block
	if actual < 0 {
		actual = 0
	}
	blocked := dmg
	if blocked > e.Block {
		blocked = e.Block
	}
	e.Block -= blocked
	e.HP -= actual
	return actual
}

// IsDefeated reports whether the enemy is out of HP.
func (e *Enemy) IsDefeated() bool {
	return e.HP <= 0
}
