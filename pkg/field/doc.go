// Package field holds the graviton field data model: the sampled tensor
// grid supplied by an external field generator, the energy density kernel
// derived from it, and the metrics snapshot consumed by the monitor and the
// status reporter.
//
// # Data model
//
// A Configuration is a 3D grid of N^3 sample points, each holding a 4x4
// tensor describing the local metric perturbation. Configurations are owned
// by whoever created them; the controller clones before retaining one.
//
// Energy density at a point is a fixed quadratic form in the local tensor
// components, using the Lorentzian contraction (signature -+++): time-time
// and space-space components contribute positively, time-space mixing
// components negatively. Mixing-dominated points therefore carry negative
// energy density, which is exactly what the constraint enforcer corrects.
//
// # Snapshots
//
// Metrics is a plain value struct. The controller publishes complete copies
// of it; readers never hold a reference into a structure that is still being
// updated.
package field
