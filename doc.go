// Package ns provides a hierarchical, path-addressable configuration
// container with deep-merge semantics and an invocation model that resolves
// a reserved "call_target" key down to a callable.
//
// A Namespace maps string keys to scalars, callables or further namespaces.
// Values are addressed by flat path keys using the "__" separator from the
// keypath package, so New(Pair{"a__b", 1}) and a nested namespace holding
// b=1 under "a" are the same thing. Construction, Merge and SetDefaults all
// share one recursive rule set covering string promotion, callable wrapping
// and shortcut precedence; Flatten inverts construction and is safe against
// reference cycles.
//
// The dispatch subpackage builds call-time default injection on top of
// these primitives, order provides constraint-based ordering of named
// items, and source/yaml and nsfx connect namespaces to YAML documents and
// Fx dependency graphs.
package ns
