package region

import (
	"sort"

	"github.com/paulmach/orb"
)

// RegionID addresses a region in the arena. IDs are never reused within one
// computation.
type RegionID int

// Region is a set of instances (by space index) with its centroid.
type Region struct {
	ID       RegionID
	Members  []int     // ascending instance indices
	Centroid orb.Point // mean of the member positions
	Good     int       // number of good members
}

// arena owns every region created during one computation. Dead regions keep
// their slot so that IDs stay stable.
type arena struct {
	regions []Region
	alive   []bool
	order   []RegionID // live IDs in creation order
}

func (a *arena) add(members []int, centroid orb.Point, good int) RegionID {
	id := RegionID(len(a.regions))
	m := append([]int(nil), members...)
	sort.Ints(m)
	a.regions = append(a.regions, Region{ID: id, Members: m, Centroid: centroid, Good: good})
	a.alive = append(a.alive, true)
	a.order = append(a.order, id)
	return id
}

func (a *arena) remove(id RegionID) {
	if !a.alive[id] {
		return
	}
	a.alive[id] = false
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *arena) get(id RegionID) *Region { return &a.regions[id] }

func (a *arena) len() int { return len(a.order) }

// live returns a copy of the live IDs in creation order.
func (a *arena) live() []RegionID {
	return append([]RegionID(nil), a.order...)
}

// mergeMembers returns the sorted union of two disjoint sorted member lists.
func mergeMembers(x, y []int) []int {
	out := make([]int, 0, len(x)+len(y))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		if x[i] < y[j] {
			out = append(out, x[i])
			i++
		} else {
			out = append(out, y[j])
			j++
		}
	}
	out = append(out, x[i:]...)
	return append(out, y[j:]...)
}
