package scene

import (
	"math"
	"sort"
)

// LaneFront is the frontmost active vehicle of one lane and direction.
type LaneFront struct {
	Lane    float64
	Dir     int
	Vehicle *Vehicle
}

type laneGroup struct {
	lane     float64
	dir      int
	vehicles []*Vehicle
}

// groupLanes buckets active vehicles by lane (within LaneMatchDelta) and
// direction, each bucket sorted front to back.
func groupLanes(vehicles []*Vehicle, t *Tuning) []laneGroup {
	var groups []laneGroup
	for _, v := range vehicles {
		if !v.active {
			continue
		}
		idx := -1
		for i := range groups {
			if groups[i].dir == v.Dir && math.Abs(groups[i].lane-v.Lane) < t.LaneMatchDelta {
				idx = i
				break
			}
		}
		if idx < 0 {
			groups = append(groups, laneGroup{lane: v.Lane, dir: v.Dir})
			idx = len(groups) - 1
		}
		groups[idx].vehicles = append(groups[idx].vehicles, v)
	}
	for _, g := range groups {
		vs, dir := g.vehicles, g.dir
		sort.SliceStable(vs, func(i, j int) bool {
			if dir > 0 {
				return vs[i].X() > vs[j].X()
			}
			return vs[i].X() < vs[j].X()
		})
	}
	return groups
}

// LaneFronts returns the front vehicle of every non-empty lane group.
func LaneFronts(vehicles []*Vehicle, t Tuning) []LaneFront {
	groups := groupLanes(vehicles, &t)
	out := make([]LaneFront, 0, len(groups))
	for _, g := range groups {
		out = append(out, LaneFront{Lane: g.lane, Dir: g.dir, Vehicle: g.vehicles[0]})
	}
	return out
}

// MinGap is the smallest allowed centre distance between two vehicles in
// the same lane.
func MinGap(front, back *Vehicle, t Tuning) float64 {
	return math.Max(0.5*(front.Length+back.Length)+t.SpacingBuffer, t.MinVehicleGap)
}

// EnforceSpacing pulls trailing vehicles back so no pair in a lane is
// closer than MinGap. Leaders are never pushed forward. Applying it twice
// gives the same result as applying it once.
func EnforceSpacing(vehicles []*Vehicle, t Tuning) {
	for _, g := range groupLanes(vehicles, &t) {
		for i := 1; i < len(g.vehicles); i++ {
			front, back := g.vehicles[i-1], g.vehicles[i]
			gap := MinGap(front, back, t)
			if g.dir > 0 {
				if limit := front.X() - gap; back.X() > limit {
					back.Position[0] = limit
				}
			} else {
				if limit := front.X() + gap; back.X() < limit {
					back.Position[0] = limit
				}
			}
		}
	}
}
