// Package region computes the footprint of one configuration: the area of
// instance space in which it is competitive.
//
// The engine first grows disjoint triangles around randomly drawn good
// instances, then repeatedly merges each region with its nearest neighbour
// when the merged convex hull is dense and pure enough, and finally sums the
// hull areas of the surviving regions.
//
// Regions live in an arena and are addressed by RegionID; centroids are
// plain attributes and never act as identities, so coinciding centroids are
// harmless.
//
// Dependency rule: region may depend on space and geom only.
package region
