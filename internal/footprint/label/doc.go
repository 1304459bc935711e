// Package label derives per-instance good/bad labels from configuration
// costs.
//
// An instance is good for a configuration when that configuration solved it
// at zero cost, or when its cost is within a ratio epsilon of the best cost
// any compared configuration achieved on the instance and it did not hit the
// cutoff. Labels are relative: adding or removing a configuration can change
// the labels of the others.
//
// Dependency rule: label may depend on space only.
package label
