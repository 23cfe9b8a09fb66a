// Package order produces a deterministic total order for named items
// carrying relative-position constraints: "after this index", "after the
// item with this name", or "after everything" via the Last sentinel.
// Sorting is stable, resolves chained name references transitively and
// fails loudly when a referenced name does not exist.
package order
