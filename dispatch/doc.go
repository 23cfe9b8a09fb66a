// Package dispatch attaches default keyword-argument namespaces to
// functions. A wrapped function carries its defaults as inspectable
// metadata; at call time the call-site arguments are merged over them
// (call site wins) and the function receives the merged nested namespace.
// Defaults compose with call-target resolution in the ns package, so a
// default can itself be an invocable namespace.
package dispatch
