package space

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ConfigID identifies one solver configuration under comparison. Equality
// must be stable for the lifetime of a run.
type ConfigID string

// Label is the per-instance verdict for one configuration.
type Label uint8

const (
	Bad  Label = 0 // not competitive
	Good Label = 1 // within epsilon of the best cost and not timed out
)

func (l Label) String() string {
	if l == Good {
		return "good"
	}
	return "bad"
}

// LabelSet maps instance names to labels for one configuration.
type LabelSet map[string]Label

// CountGood returns the number of Good entries.
func (ls LabelSet) CountGood() int {
	n := 0
	for _, l := range ls {
		if l == Good {
			n++
		}
	}
	return n
}

// Space is the immutable instance space: an ordered list of instance names
// and their reduced 2-D positions. Index i of Names and Points refer to the
// same instance.
type Space struct {
	names  []string
	points []orb.Point
	index  map[string]int
}

// NewSpace builds a Space. Names must be unique and non-empty, the two slices
// must have equal length, and every coordinate must be finite.
func NewSpace(names []string, points []orb.Point) (*Space, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("empty instance set: %w", ErrInvalidInput)
	}
	if len(names) != len(points) {
		return nil, fmt.Errorf("%d names but %d positions: %w", len(names), len(points), ErrInvalidInput)
	}

	s := &Space{
		names:  make([]string, len(names)),
		points: make([]orb.Point, len(points)),
		index:  make(map[string]int, len(names)),
	}
	copy(s.names, names)
	copy(s.points, points)

	for i, name := range s.names {
		if name == "" {
			return nil, fmt.Errorf("instance %d has an empty name: %w", i, ErrInvalidInput)
		}
		if _, dup := s.index[name]; dup {
			return nil, fmt.Errorf("duplicate instance %q: %w", name, ErrInvalidInput)
		}
		p := s.points[i]
		if !finite(p[0]) || !finite(p[1]) {
			return nil, fmt.Errorf("instance %q has non-finite position %v: %w", name, p, ErrInvalidInput)
		}
		s.index[name] = i
	}
	if err := CheckSpan(s.points); err != nil {
		return nil, err
	}
	return s, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// CheckSpan returns ErrInvalidInput when a coordinate is not finite or the
// squared diagonal of the bounding box overflows, so that every squared
// distance between two of the points is finite.
func CheckSpan(points []orb.Point) error {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0], points[0]
	for i, p := range points {
		if !finite(p[0]) || !finite(p[1]) {
			return fmt.Errorf("point %d is %v: %w", i, p, ErrInvalidInput)
		}
		lo[0], lo[1] = math.Min(lo[0], p[0]), math.Min(lo[1], p[1])
		hi[0], hi[1] = math.Max(hi[0], p[0]), math.Max(hi[1], p[1])
	}
	dx, dy := hi[0]-lo[0], hi[1]-lo[1]
	if !finite(dx*dx + dy*dy) {
		return fmt.Errorf("positions span %gx%g, squared distances overflow: %w", dx, dy, ErrInvalidInput)
	}
	return nil
}

// Len returns the number of instances.
func (s *Space) Len() int { return len(s.names) }

// Name returns the name of instance i.
func (s *Space) Name(i int) string { return s.names[i] }

// Point returns the position of instance i.
func (s *Space) Point(i int) orb.Point { return s.points[i] }

// Index returns the position index of the named instance.
func (s *Space) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns a copy of the instance names in space order.
func (s *Space) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Points returns a copy of the positions in space order.
func (s *Space) Points() []orb.Point {
	out := make([]orb.Point, len(s.points))
	copy(out, s.points)
	return out
}

// PointsOf gathers the positions of the given instance indices.
func (s *Space) PointsOf(idx []int) []orb.Point {
	out := make([]orb.Point, len(idx))
	for k, i := range idx {
		out[k] = s.points[i]
	}
	return out
}

// Positions returns a name → position map for renderers.
func (s *Space) Positions() map[string]orb.Point {
	out := make(map[string]orb.Point, len(s.names))
	for i, name := range s.names {
		out[name] = s.points[i]
	}
	return out
}

// Indexed converts a LabelSet into a slice aligned with the space order.
// Every instance of the space must be present.
func (s *Space) Indexed(cfg ConfigID, labels LabelSet) ([]Label, error) {
	out := make([]Label, len(s.names))
	for i, name := range s.names {
		l, ok := labels[name]
		if !ok {
			return nil, &MissingDataError{Config: cfg, Instance: name}
		}
		out[i] = l
	}
	return out, nil
}
