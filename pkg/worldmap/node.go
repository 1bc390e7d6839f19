package worldmap

// NodeType identifies what a map node resolves to when entered.
type NodeType string

const (
	NodeMonster  NodeType = "MONSTER"
	NodeElite    NodeType = "ELITE"
	NodeShop     NodeType = "SHOP"
	NodeCampfire NodeType = "CAMPFIRE"
	NodeEvent    NodeType = "EVENT"
	NodeTreasure NodeType = "TREASURE"
	NodeBoss     NodeType = "BOSS"
)

// NodeStatus tracks reachability from the player's position.
type NodeStatus string

const (
	StatusLocked    NodeStatus = "LOCKED"
	StatusAvailable NodeStatus = "AVAILABLE"
	StatusCompleted NodeStatus = "COMPLETED"
	// StatusUnreachable exists in the save schema for pruned branches;
	// generation and rehydration never assign it today.
	StatusUnreachable NodeStatus = "UNREACHABLE"
)

// Node is one room on the run map. X is a render hint in percent of map
// width; Y is the floor number (0 at the bottom, boss on top).
type Node struct {
	ID      string     `json:"id"`
	X       float64    `json:"x"`
	Y       int        `json:"y"`
	Type    NodeType   `json:"type"`
	Status  NodeStatus `json:"status"`
	Next    []string   `json:"next"`
	Parents []string   `json:"parents"`
}

// BossNodeID is the fixed id of the final node on every map.
const BossNodeID = "BOSS_NODE"
