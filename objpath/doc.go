// Package objpath reads and writes nested members of arbitrary objects
// (structs, maps, namespaces) addressed by the same "__"-separated path
// convention the namespace engine uses. It complements the ns package for
// values that live outside a namespace.
package objpath
