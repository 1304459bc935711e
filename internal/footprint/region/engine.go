package region

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/banshee-data/footprint/internal/footprint/geom"
	"github.com/banshee-data/footprint/internal/footprint/space"
)

// defaultSeed is used when no random source is supplied.
const defaultSeed int64 = 1

// EventKind classifies engine events.
type EventKind int

const (
	EventGrown       EventKind = iota // a triangle was formed
	EventMerged                       // two regions were merged
	EventMergeFailed                  // a merge candidate had a degenerate hull
)

// Event is emitted to an Observer while a footprint is computed.
type Event struct {
	Kind     EventKind
	Region   RegionID    // the grown or newly merged region
	Absorbed [2]RegionID // the candidate pair (EventMerged, EventMergeFailed)
	Live     int         // number of live regions after the event
	Regions  []Region    // snapshot of live regions after the event
}

// Observer receives engine events. It must not retain Event.Regions beyond
// the call.
type Observer func(Event)

// Engine computes footprints over one instance space. It is not safe for
// concurrent use because it owns its random source; use one Engine per
// goroutine.
type Engine struct {
	// Name identifies the configuration in log output.
	Name string

	space    *space.Space
	rng      *rand.Rand
	observer Observer
}

// NewEngine returns an engine drawing randomness from rng. A nil rng is
// replaced by a deterministic default stream.
func NewEngine(sp *space.Space, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(defaultSeed))
	}
	return &Engine{space: sp, rng: rng}
}

// SetObserver installs o; nil removes the observer.
func (e *Engine) SetObserver(o Observer) { e.observer = o }

// Stats describes how a footprint was reached.
type Stats struct {
	Instances      int
	GoodInstances  int
	InitialRegions int // regions after the growing stage
	FinalRegions   int
	Unassigned     int // instances left outside every region after growing
	Merges         int
	Passes         int // merge scans, counting every restart
	HullFailures   int // degenerate hulls while merging or measuring
}

// Summary is one surviving region in a Result.
type Summary struct {
	ID         RegionID
	Instances  []string
	Centroid   orb.Point
	Good       int
	Area       float64
	Degenerate bool // hull could not be built; Area is 0
}

// Result is the outcome of one footprint computation.
type Result struct {
	Area    float64
	Regions []Summary
	Stats   Stats
}

// Run computes the footprint for labels (aligned with the space order).
//
// Fewer than MinGood good instances yield a zero area without building any
// region. Degenerate hulls never cause an error: merge candidates with a flat
// hull are skipped and flat final regions contribute zero area.
func (e *Engine) Run(labels []space.Label, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := e.space.Len()
	if len(labels) != n {
		opsf("%s: got %d labels for %d instances", e.name(), len(labels), n)
		return nil, fmt.Errorf("%d labels for %d instances: %w", len(labels), n, space.ErrInvalidInput)
	}

	res := &Result{Stats: Stats{Instances: n}}
	for _, l := range labels {
		if l == space.Good {
			res.Stats.GoodInstances++
		}
	}
	if res.Stats.GoodInstances < MinGood {
		diagf("%s: %d good instances, footprint not calculated", e.name(), res.Stats.GoodInstances)
		return res, nil
	}

	var a arena
	res.Stats.Unassigned = e.grow(&a, labels, p.Fallback)
	res.Stats.InitialRegions = a.len()
	e.merge(&a, p, &res.Stats)
	e.measure(&a, res)

	diagf("%s: area %f (%d hull failures, %d/%d good instances, %d regions, %d merges)",
		e.name(), res.Area, res.Stats.HullFailures, res.Stats.GoodInstances, n,
		res.Stats.FinalRegions, res.Stats.Merges)
	return res, nil
}

func (e *Engine) name() string {
	if e.Name == "" {
		return "footprint"
	}
	return e.Name
}

// grow partitions instances into disjoint triangles and returns how many
// instances were left unassigned.
func (e *Engine) grow(a *arena, labels []space.Label, fallback FallbackPolicy) int {
	pool := make([]int, e.space.Len())
	for i := range pool {
		pool[i] = i
	}

	candidates := make([]int, 0, len(pool))
	for len(pool) >= 3 {
		candidates = candidates[:0]
		for k, i := range pool {
			if labels[i] == space.Good {
				candidates = append(candidates, k)
			}
		}

		var pick int
		switch {
		case len(candidates) > 0:
			pick = candidates[e.rng.Intn(len(candidates))]
		case fallback == FallbackStopGrowing:
			tracef("%s: no good instance left among %d unassigned, growing stops", e.name(), len(pool))
			return len(pool)
		default:
			pick = e.rng.Intn(len(pool))
		}

		seed := pool[pick]
		pool = removeAt(pool, pick)

		first, second, _ := geom.NearestTwo(e.space.Point(seed), e.space.PointsOf(pool))
		members := []int{seed, pool[first], pool[second]}
		if first > second {
			first, second = second, first
		}
		pool = removeAt(pool, second)
		pool = removeAt(pool, first)

		id := a.add(members, geom.Mean(e.space.PointsOf(members)), countGood(labels, members))
		tracef("%s: grew region %d from %s", e.name(), id, e.space.Name(seed))
		e.emit(a, Event{Kind: EventGrown, Region: id})
	}
	return len(pool)
}

// merge runs merge passes until a full scan commits nothing. Every commit
// restarts the scan with a fresh shuffle. Each commit removes one region, so
// the stage ends after at most InitialRegions-1 commits.
func (e *Engine) merge(a *arena, p Params, st *Stats) {
	if a.len() < 2 {
		return
	}
	for {
		st.Passes++
		order := a.live()
		e.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		committed := false
		for _, id := range order {
			r := a.get(id)
			nid, ok := e.nearestOther(a, id)
			if !ok {
				continue
			}
			near := a.get(nid)

			union := mergeMembers(r.Members, near.Members)
			pts := e.space.PointsOf(union)
			area, err := geom.HullArea(pts)
			if err != nil {
				st.HullFailures++
				tracef("%s: skip merge %d+%d: %v", e.name(), id, nid, err)
				e.emit(a, Event{Kind: EventMergeFailed, Region: id, Absorbed: [2]RegionID{id, nid}})
				continue
			}

			density := float64(len(union)) / area
			purity := float64(r.Good+near.Good) / float64(len(union))
			if density > p.DensityThreshold && purity > p.PurityThreshold {
				tracef("%s: merge %d+%d purity %f density %f", e.name(), id, nid, purity, density)
				good := r.Good + near.Good
				a.remove(id)
				a.remove(nid)
				merged := a.add(union, geom.Mean(pts), good)
				st.Merges++
				e.emit(a, Event{Kind: EventMerged, Region: merged, Absorbed: [2]RegionID{id, nid}})
				committed = true
				break
			}
		}
		if !committed {
			return
		}
	}
}

// nearestOther finds the live region whose centroid is closest to id's.
// Ties go to the earliest-created region.
func (e *Engine) nearestOther(a *arena, id RegionID) (RegionID, bool) {
	live := a.live()
	others := make([]RegionID, 0, len(live))
	centroids := make([]orb.Point, 0, len(live))
	for _, o := range live {
		if o == id {
			continue
		}
		others = append(others, o)
		centroids = append(centroids, a.get(o).Centroid)
	}
	k, ok := geom.Nearest(a.get(id).Centroid, centroids)
	if !ok {
		return 0, false
	}
	return others[k], true
}

// measure sums the hull areas of the live regions into res.
func (e *Engine) measure(a *arena, res *Result) {
	for _, id := range a.live() {
		r := a.get(id)
		s := Summary{ID: id, Centroid: r.Centroid, Good: r.Good, Instances: e.names(r.Members)}
		area, err := geom.HullArea(e.space.PointsOf(r.Members))
		if err != nil {
			res.Stats.HullFailures++
			s.Degenerate = true
			tracef("%s: region %d has no area: %v", e.name(), id, err)
		} else {
			s.Area = area
			res.Area += area
		}
		res.Regions = append(res.Regions, s)
	}
	res.Stats.FinalRegions = len(res.Regions)
}

func (e *Engine) emit(a *arena, ev Event) {
	if e.observer == nil {
		return
	}
	ev.Live = a.len()
	ev.Regions = make([]Region, 0, a.len())
	for _, id := range a.order {
		ev.Regions = append(ev.Regions, *a.get(id))
	}
	e.observer(ev)
}

func (e *Engine) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = e.space.Name(i)
	}
	return out
}

func countGood(labels []space.Label, members []int) int {
	n := 0
	for _, i := range members {
		if labels[i] == space.Good {
			n++
		}
	}
	return n
}

func removeAt(s []int, k int) []int {
	return append(s[:k], s[k+1:]...)
}
