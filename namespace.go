package ns

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/0xalexb/hjarta-ns/keypath"
)

// Callable is the function shape a namespace can dispatch to. The resolved
// arguments are handed over as a single nested namespace, not flattened.
type Callable func(args *Namespace) (any, error)

// Pair is an ordered flat path/value source element for New. Path may
// contain separators, in which case intermediate namespaces are created.
type Pair struct {
	Path  string
	Value any
}

// Namespace is an ordered, path-addressable hierarchical key/value
// container. Values may be scalars, nested namespaces or callables.
// Insertion order is preserved for iteration and formatting; it is
// irrelevant to merge results.
type Namespace struct {
	keys     []string
	values   map[string]any
	shortcut bool
	frozen   bool
}

// Empty is the process-wide frozen empty namespace. It requests "default to
// an empty namespace" without permitting mutation: writing to it fails with
// ErrImmutable, and inserting it as a value stores a mutable copy so that
// later writes never leak back into the sentinel.
//
//nolint:gochecknoglobals // process-wide immutable sentinel.
var Empty = &Namespace{frozen: true}

// Reserved keys recognized during invocation. CallTargetKey marks a
// namespace as invocable; ClsKey and AttributeKey are call-resolution
// control keys consumed by the resolver and never forwarded to the callable.
const (
	CallTargetKey = "call_target"
	ClsKey        = "cls"
	AttributeKey  = "attribute"
)

// New builds a namespace by merging the given sources left to right, later
// sources winning. Each source is one of:
//
//   - *Namespace
//   - Pair or []Pair (ordered flat path/value bindings)
//   - map[string]any with flat path keys, applied in sorted key order
//   - nil, which is skipped
//
// Any other source type is a programming error and panics.
func New(sources ...any) *Namespace {
	n := &Namespace{}
	for _, source := range sources {
		n.apply(source)
	}

	return n
}

// NewShortcut builds a shortcut: a namespace tagged as an atomic named
// preset. During merge an incoming shortcut replaces the existing value at
// its key wholesale instead of merging into it.
func NewShortcut(sources ...any) *Namespace {
	n := New(sources...)
	n.shortcut = true

	return n
}

func (n *Namespace) apply(source any) {
	var err error

	switch src := source.(type) {
	case nil:
	case *Namespace:
		for _, key := range src.keys {
			err = n.setItem(key, src.values[key])
			if err != nil {
				break
			}
		}
	case Pair:
		err = n.setPath(src.Path, src.Value)
	case []Pair:
		for _, pair := range src {
			err = n.setPath(pair.Path, pair.Value)
			if err != nil {
				break
			}
		}
	case map[string]any:
		paths := make([]string, 0, len(src))
		for path := range src {
			paths = append(paths, path)
		}

		sort.Strings(paths)

		for _, path := range paths {
			err = n.setPath(path, src[path])
			if err != nil {
				break
			}
		}
	default:
		panic(fmt.Sprintf("ns: unsupported source type %T", source))
	}

	if err != nil {
		panic(fmt.Sprintf("ns: building namespace: %v", err))
	}
}

// IsShortcut reports whether the namespace is tagged as a shortcut.
func (n *Namespace) IsShortcut() bool {
	return n.shortcut
}

// Len returns the number of keys at the top level.
func (n *Namespace) Len() int {
	return len(n.keys)
}

// Keys returns the top-level keys in insertion order.
func (n *Namespace) Keys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)

	return keys
}

// Get walks the namespace along the given path and returns the value at its
// leaf. The second return value reports whether the full path exists.
func (n *Namespace) Get(path string) (any, bool) {
	head, rest, found := keypath.Cut(path)
	if !found {
		value, ok := n.values[path]

		return value, ok
	}

	child, ok := n.values[head].(*Namespace)
	if !ok {
		return nil, false
	}

	return child.Get(rest)
}

// GetNamespace walks the namespace along the given path and returns the
// nested namespace at its leaf; ok is false when the path does not exist or
// holds a non-namespace value.
func (n *Namespace) GetNamespace(path string) (*Namespace, bool) {
	value, ok := n.Get(path)
	if !ok {
		return nil, false
	}

	child, ok := value.(*Namespace)

	return child, ok
}

// Put inserts a value under a single-level key with no merge rules applied.
// It is the raw escape hatch mirroring direct attribute assignment; unlike
// Set it never splits the key, never promotes and never copies, so it can
// create aliased or even self-referential containment (Flatten stays safe).
func (n *Namespace) Put(key string, value any) error {
	if n.frozen {
		return ErrImmutable
	}

	n.rawPut(key, value)

	return nil
}

// Set binds a value at the given path, creating intermediate namespaces as
// needed and applying the merge rules for the leaf key: sibling keys are
// preserved, strings promote, bare callables are wrapped under
// "call_target". See Merge for the full rule set.
func (n *Namespace) Set(path string, value any) error {
	return n.setPath(path, value)
}

func (n *Namespace) rawPut(key string, value any) {
	if n.values == nil {
		n.values = make(map[string]any)
	}

	if _, exists := n.values[key]; !exists {
		n.keys = append(n.keys, key)
	}

	n.values[key] = value
}

func (n *Namespace) remove(key string) (any, bool) {
	value, exists := n.values[key]
	if !exists {
		return nil, false
	}

	delete(n.values, key)

	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)

			break
		}
	}

	return value, true
}

// clone copies the namespace spine; nested namespaces are cloned
// recursively, scalar and callable values are shared. Reference cycles are
// preserved: a namespace already copied during the walk maps to its one
// copy, identity-based like the Flatten walk. The frozen flag is dropped so
// that copies of the Empty sentinel are writable.
func (n *Namespace) clone() *Namespace {
	return n.cloneSeen(map[*Namespace]*Namespace{})
}

func (n *Namespace) cloneSeen(seen map[*Namespace]*Namespace) *Namespace {
	if copied, ok := seen[n]; ok {
		return copied
	}

	c := &Namespace{
		keys:     make([]string, len(n.keys)),
		values:   make(map[string]any, len(n.keys)),
		shortcut: n.shortcut,
	}
	seen[n] = c
	copy(c.keys, n.keys)

	for key, value := range n.values {
		if child, ok := value.(*Namespace); ok {
			c.values[key] = child.cloneSeen(seen)
		} else {
			c.values[key] = value
		}
	}

	return c
}

// Equal reports deep equality of two namespaces, ignoring key order and the
// shortcut tag. Callable values compare by function identity. Comparison is
// cycle-safe: a pair of namespaces already under comparison along the
// current path compares equal.
func (n *Namespace) Equal(other *Namespace) bool {
	return n.equal(other, map[namespacePair]bool{})
}

type namespacePair struct {
	a, b *Namespace
}

func (n *Namespace) equal(other *Namespace, onPath map[namespacePair]bool) bool {
	if n == nil || other == nil {
		return n == other
	}

	if len(n.keys) != len(other.keys) {
		return false
	}

	pair := namespacePair{a: n, b: other}
	if onPath[pair] {
		return true
	}

	onPath[pair] = true
	defer delete(onPath, pair)

	for key, value := range n.values {
		otherValue, ok := other.values[key]
		if !ok || !valueEqual(value, otherValue, onPath) {
			return false
		}
	}

	return true
}

func valueEqual(a, b any, onPath map[namespacePair]bool) bool {
	if an, ok := a.(*Namespace); ok {
		bn, ok := b.(*Namespace)

		return ok && an.equal(bn, onPath)
	}

	if isCallableValue(a) || isCallableValue(b) {
		if !isCallableValue(a) || !isCallableValue(b) {
			return false
		}

		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}

	return reflect.DeepEqual(a, b)
}

func isCallableValue(value any) bool {
	if value == nil {
		return false
	}

	return reflect.TypeOf(value).Kind() == reflect.Func
}
