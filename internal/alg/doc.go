// Package alg implements the algorithm registry at the heart of nusim.
//
// Every physics and numeric model in the toolkit is an interchangeable
// [Algorithm]: constructible by name, configured from a named parameter set,
// and re-configurable in place. The package provides:
//
//   - [ID]: the (name, config label) value identifying one configured
//     algorithm, e.g. "xsec::QELDipole/Tuned"
//   - [Factory]: resolves a name to its registered constructor, builds the
//     instance and feeds it its parameter set
//   - [Registry]: the pool of built algorithms keyed by ID, with pooled
//     lookup ([Registry.GetPooled]), caller-owned construction
//     ([Registry.Adopt]) and bulk forced reconfiguration
//     ([Registry.ForceReconfigure])
//
// # Ownership
//
// Pooled instances belong to the registry; GetPooled hands out shared,
// read-only references and repeated calls with an equal ID return the same
// instance. Adopted instances never enter the pool, are never reconfigured by
// the registry, and belong entirely to the caller.
//
// # Thread Safety
//
// Registry methods are safe for concurrent use. A build in progress for some
// ID is never duplicated: concurrent callers block until the first build
// publishes its result. The registry is an injected instance, not a package
// singleton; create one per run context and Close it at shutdown.
package alg
