// Package cluster partitions the reduced instance space for stratified
// reporting.
//
// The number of clusters is chosen automatically: every k in
// [MinClusters, MaxClusters] is tried with k-means and the partition with the
// highest silhouette score wins (the lowest k wins ties).
//
// Dependency rule: cluster may depend on space and geom only.
package cluster
