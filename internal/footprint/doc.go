// Package footprint computes algorithm footprints: for every compared
// configuration, the area of instance space on which it is competitive.
//
// A Footprint is built once from instance features, a cost lookup and the
// set of configurations. Construction reduces the features to two
// dimensions and clusters the instances; labels are computed lazily on the
// first footprint request at the current epsilon and are only replaced by an
// explicit LabelInstances call.
//
//	fp, err := footprint.New(costs, features, algorithms, footprint.WithCutoff(300))
//	area, err := fp.Footprint("sat-default", 0.5, 0.75)
//
// Every footprint computation draws from its own random stream, seeded from
// the facade seed and a hash of the configuration id, so results do not
// depend on call order and ComputeAll may run configurations concurrently.
//
// Dependency rule: footprint may depend on its subpackages, config and
// monitoring. Nothing below it imports this package.
package footprint
