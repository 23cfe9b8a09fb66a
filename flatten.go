package ns

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-ns/keypath"
)

// Flatten walks the namespace depth-first and returns a single-level
// mapping from separator-joined path keys to leaf values. Empty nested
// namespaces appear as empty-namespace leaves.
//
// Flattening is safe against reference cycles: a namespace already being
// expanded along the current path is skipped instead of recursed into.
// Cycle detection is by object identity, so the same namespace reachable
// through two distinct keys expands under both.
func Flatten(n *Namespace) map[string]any {
	flat := make(map[string]any)

	n.walk("", map[*Namespace]bool{n: true}, func(path string, value any) {
		flat[path] = value
	})

	return flat
}

// FlatPairs is Flatten with the insertion order preserved: the leaves come
// back as ordered path/value pairs, suitable for feeding straight into New.
func FlatPairs(n *Namespace) []Pair {
	var pairs []Pair

	n.walk("", map[*Namespace]bool{n: true}, func(path string, value any) {
		pairs = append(pairs, Pair{Path: path, Value: value})
	})

	return pairs
}

// walk visits the leaves depth-first in key order, tracking the identity of
// namespaces on the current containment path in onPath.
func (n *Namespace) walk(prefix string, onPath map[*Namespace]bool, visit func(path string, value any)) {
	for _, key := range n.keys {
		value := n.values[key]

		path := key
		if prefix != "" {
			path = keypath.Join(prefix, key)
		}

		child, ok := value.(*Namespace)
		if !ok {
			visit(path, value)

			continue
		}

		if onPath[child] {
			continue
		}

		if child.Len() == 0 {
			visit(path, child)

			continue
		}

		onPath[child] = true
		child.walk(path, onPath, visit)
		delete(onPath, child)
	}
}

// String renders the namespace in flattened form, e.g.
// "Namespace(a=4, c__d=2, c__e__f=1)". Shortcuts render with a "Shortcut"
// prefix and empty nested namespaces as "Namespace()". The rendering is
// cycle-safe like Flatten.
func (n *Namespace) String() string {
	prefix := "Namespace"
	if n.shortcut {
		prefix = "Shortcut"
	}

	var parts []string

	n.walk("", map[*Namespace]bool{n: true}, func(path string, value any) {
		if child, ok := value.(*Namespace); ok && child.Len() == 0 {
			parts = append(parts, path+"=Namespace()")

			return
		}

		parts = append(parts, fmt.Sprintf("%s=%v", path, value))
	})

	return prefix + "(" + strings.Join(parts, ", ") + ")"
}
