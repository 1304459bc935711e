// Package reduce projects instance feature vectors onto the plane.
//
// Feature sets with more than two dimensions are standardized column by
// column and reduced to their first two principal components. Sets with at
// most two dimensions pass through unchanged.
//
// Dependency rule: reduce may depend on space only.
package reduce
