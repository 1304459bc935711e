// Package geom holds the planar geometry used by the footprint engine:
// convex hulls, hull areas, centroids and nearest-neighbour lookups on
// orb.Point values.
//
// Dependency rule: geom may depend on space only.
package geom
