// Package worldmap generates the branching run map. Generation is fully
// deterministic per seed so a saved run can store only the seed plus the
// visit history and rebuild the same map on load.
package worldmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/spellspire/pkg/rng"
)

const (
	mapHeight = 15
	mapWidth  = 7
)

// Generate builds the full node graph for a run from seed. Floors 0
// through 14 are laid out on a 7-lane grid; the boss sits alone on floor
// 15 and every floor-14 node feeds into it.
func Generate(seed int64) []*Node {
	r := rng.NewSeeded(seed)

	nodes := make([]*Node, 0, mapHeight*4)
	grid := make([][mapWidth]*Node, mapHeight)

	// Starting points on floor 0. Either 3 or 4 lanes open the run.
	startCount := 3
	if r.Next() <= 0.5 {
		startCount = 4
	}
	startLanes := make([]int, 0, startCount)
	for len(startLanes) < startCount {
		lane := r.Intn(mapWidth)
		if !containsInt(startLanes, lane) {
			startLanes = append(startLanes, lane)
		}
	}
	for _, x := range startLanes {
		nodes = createNode(0, x, grid, nodes, r)
	}

	// Propagate paths upward one floor at a time. Each node branches into
	// 1-3 of its adjacent lanes on the next floor.
	for y := 0; y < mapHeight-1; y++ {
		rowNodes := gridRow(grid, y)

		for _, parent := range rowNodes {
			px := laneIndex(parent.ID)

			moves := []int{px}
			if px > 0 {
				moves = append(moves, px-1)
			}
			if px < mapWidth-1 {
				moves = append(moves, px+1)
			}

			branchCount := 1
			rand := r.Next()
			if rand > 0.7 {
				branchCount = 2
			}
			if rand > 0.95 {
				branchCount = 3
			}

			r.Shuffle(len(moves), func(i, j int) {
				moves[i], moves[j] = moves[j], moves[i]
			})
			if branchCount > len(moves) {
				branchCount = len(moves)
			}

			for _, tx := range moves[:branchCount] {
				child := grid[y+1][tx]
				if child == nil {
					nodes = createNode(y+1, tx, grid, nodes, r)
					child = grid[y+1][tx]
				}
				if !containsString(parent.Next, child.ID) {
					parent.Next = append(parent.Next, child.ID)
					child.Parents = append(child.Parents, parent.ID)
				}
			}
		}

		// Cleanup: a node with no exits gets one, reusing an adjacent
		// child on the next floor before creating a new one.
		for _, n := range rowNodes {
			if len(n.Next) > 0 {
				continue
			}
			tx := laneIndex(n.ID)
			child := grid[y+1][tx]
			if child == nil && tx > 0 {
				child = grid[y+1][tx-1]
			}
			if child == nil && tx < mapWidth-1 {
				child = grid[y+1][tx+1]
			}
			if child == nil {
				nodes = createNode(y+1, tx, grid, nodes, r)
				child = grid[y+1][tx]
			}
			n.Next = append(n.Next, child.ID)
			child.Parents = append(child.Parents, n.ID)
		}
	}

	boss := &Node{
		ID:     BossNodeID,
		X:      50,
		Y:      mapHeight,
		Type:   NodeBoss,
		Status: StatusLocked,
	}
	nodes = append(nodes, boss)
	for _, n := range gridRow(grid, mapHeight-1) {
		n.Next = append(n.Next, boss.ID)
		boss.Parents = append(boss.Parents, n.ID)
	}

	assignTypes(nodes, r)
	return nodes
}

// Rehydrate recomputes node statuses from visit history. The topology is
// untouched; only Status changes. Used after regenerating a map from its
// seed on save load.
func Rehydrate(nodes []*Node, visitedIDs []string, currentNodeID string) {
	var current *Node
	if currentNodeID != "" {
		for _, n := range nodes {
			if n.ID == currentNodeID {
				current = n
				break
			}
		}
	}

	for _, n := range nodes {
		switch {
		case containsString(visitedIDs, n.ID):
			n.Status = StatusCompleted
		case current != nil && containsString(current.Next, n.ID):
			n.Status = StatusAvailable
		case current != nil && n.ID == currentNodeID:
			n.Status = StatusCompleted
		case current == nil && n.Y == 0:
			n.Status = StatusAvailable
		default:
			n.Status = StatusLocked
		}
	}
}

// FindNode returns the node with the given id, or nil.
func FindNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func createNode(y, xIndex int, grid [][mapWidth]*Node, list []*Node, r *rng.Seeded) []*Node {
	step := 80.0 / (mapWidth - 1)
	jitter := r.Next()*4 - 2

	n := &Node{
		ID:     fmt.Sprintf("node_%d_%d", y, xIndex),
		X:      10 + float64(xIndex)*step + jitter,
		Y:      y,
		Type:   NodeMonster,
		Status: StatusLocked,
	}
	grid[y][xIndex] = n
	return append(list, n)
}

func laneIndex(id string) int {
	parts := strings.Split(id, "_")
	if len(parts) < 3 {
		return 0
	}
	x, _ := strconv.Atoi(parts[2])
	return x
}

func gridRow(grid [][mapWidth]*Node, y int) []*Node {
	row := make([]*Node, 0, mapWidth)
	for x := 0; x < mapWidth; x++ {
		if grid[y][x] != nil {
			row = append(row, grid[y][x])
		}
	}
	return row
}

// assignTypes stamps a type on every node in creation order. Fixed rules
// first (floor 0 fights, floor 8 treasure, floor 14 campfires), then a
// weighted roll with floor-gated eligibility.
func assignTypes(nodes []*Node, r *rng.Seeded) {
	for _, n := range nodes {
		if n.Type == NodeBoss {
			continue
		}

		switch n.Y {
		case 0:
			n.Type = NodeMonster
			n.Status = StatusAvailable
			continue
		case 8:
			n.Type = NodeTreasure
			continue
		case 14:
			n.Type = NodeCampfire
			continue
		}

		rand := r.Next()
		canElite := n.Y >= 6
		canShop := n.Y >= 2
		canRest := n.Y >= 6 && n.Y != 8 && n.Y != 13

		switch {
		case canElite && rand < 0.15:
			n.Type = NodeElite
		case canShop && rand < 0.20:
			n.Type = NodeShop
		case canRest && rand < 0.28:
			n.Type = NodeCampfire
		case rand < 0.50:
			n.Type = NodeEvent
		default:
			n.Type = NodeMonster
		}
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
