// Package space owns the instance-space data model shared by every stage of
// the footprint engine.
//
// Responsibilities: mapping instance names to their reduced 2-D positions,
// configuration identifiers, good/bad labels, and the error taxonomy.
// Key types: Space, ConfigID, Label, MissingDataError.
//
// Dependency rule: space is a leaf. It must not import any other footprint
// package.
package space
