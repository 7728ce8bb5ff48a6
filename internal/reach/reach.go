// Package reach computes which track cells the robot can reach from the start
// and picks the goal: the reachable cell farthest away by hop count.
package reach

import "github.com/specialistvlad/robotrack/internal/track"

// directions is the neighbour enumeration order: North, East, South, West.
// Ties between equally distant cells are resolved by discovery order, so this
// order is part of the goal's definition.
var directions = [...][2]int{
	{-1, 0},
	{0, 1},
	{1, 0},
	{0, -1},
}

type visit struct {
	cell track.Cell
	dist int
}

// walk runs a breadth-first search from start over path cells and calls fn for
// every dequeued cell in BFS order. It does nothing if start is not on path.
func walk(t track.Track, start track.Cell, fn func(track.Cell, int)) {
	if !t.OnPath(start) {
		return
	}
	var seen [track.Rows][track.Cols]bool
	seen[start.Row][start.Col] = true

	queue := []visit{{cell: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		fn(cur.cell, cur.dist)

		for _, d := range directions {
			next := cur.cell.Add(d[0], d[1])
			if !t.OnPath(next) || seen[next.Row][next.Col] {
				continue
			}
			seen[next.Row][next.Col] = true
			queue = append(queue, visit{cell: next, dist: cur.dist + 1})
		}
	}
}

// Farthest returns the reachable cell with the greatest hop distance from
// start. The first cell discovered at the maximum distance wins. The boolean
// is false when start is not on the path, in which case there is no goal.
func Farthest(t track.Track, start track.Cell) (track.Cell, bool) {
	goal, _, ok := FarthestWithDistance(t, start)
	return goal, ok
}

// FarthestWithDistance is Farthest that also reports the goal's hop distance.
func FarthestWithDistance(t track.Track, start track.Cell) (track.Cell, int, bool) {
	if !t.OnPath(start) {
		return track.Cell{}, 0, false
	}
	best, bestDist := start, 0
	walk(t, start, func(c track.Cell, d int) {
		if d > bestDist {
			best, bestDist = c, d
		}
	})
	return best, bestDist, true
}
