package ns

import (
	"log/slog"

	"github.com/0xalexb/hjarta-ns/keypath"
)

// Merge builds a new namespace holding existing merged with incoming,
// incoming winning. The merge is recursive and key by key:
//
//   - keys absent on one side are inserted as-is;
//   - two namespaces merge recursively;
//   - a string on either side of a namespace is promoted to
//     Namespace(<string>=true) and merged, with a deprecation diagnostic;
//   - a bare callable gaining nested keys is wrapped under "call_target";
//   - a callable written over a namespace that already holds a call target
//     replaces the whole value, arguments included;
//   - an incoming shortcut replaces the existing value wholesale, while a
//     plain namespace written over a shortcut merges normally and the result
//     keeps the shortcut tag only on sub-values that carry it themselves;
//   - anything else is replaced by the incoming value.
//
// Neither input is modified.
func Merge(existing, incoming *Namespace) *Namespace {
	return New(existing, incoming)
}

// SetDefaults fills missing keys of target from the given default sources
// without clobbering anything target already declares, recursively: nested
// keys absent from target are supplied by the defaults, earlier defaults
// winning over later ones. A new namespace is returned; target is not
// modified.
func SetDefaults(target *Namespace, defaults ...any) *Namespace {
	sources := make([]any, 0, len(defaults)+1)
	for i := len(defaults) - 1; i >= 0; i-- {
		sources = append(sources, defaults[i])
	}

	sources = append(sources, target)

	return New(sources...)
}

func (n *Namespace) setPath(path string, value any) error {
	if n.frozen {
		return ErrImmutable
	}

	head, rest, found := keypath.Cut(path)
	if !found {
		return n.setItem(path, value)
	}

	switch existing := n.values[head].(type) {
	case *Namespace:
		return existing.setPath(rest, value)
	case string:
		promoted := &Namespace{}
		promoted.rawPut(existing, true)

		err := promoted.setPath(rest, value)
		if err != nil {
			return err
		}

		n.rawPut(head, promoted)
		diagPromotion(diagPrevious, existing)

		return nil
	default:
		child := &Namespace{}

		if isCallableValue(existing) {
			child.rawPut(CallTargetKey, existing)
		}

		err := child.setPath(rest, value)
		if err != nil {
			return err
		}

		n.rawPut(head, child)

		return nil
	}
}

// setItem applies the single-key merge rules for a leaf assignment.
func (n *Namespace) setItem(key string, value any) error {
	if n.frozen {
		return ErrImmutable
	}

	if m, ok := value.(map[string]any); ok {
		value = New(m)
	}

	existing, exists := n.values[key]

	if incoming, ok := value.(*Namespace); ok {
		return n.setItemNamespace(key, incoming, existing, exists)
	}

	if incoming, ok := value.(string); ok && exists {
		if target, ok := existing.(*Namespace); ok {
			promoted := &Namespace{}
			promoted.rawPut(incoming, true)

			err := mergeInto(target, promoted)
			if err != nil {
				return err
			}

			diagPromotion(diagWritten, incoming)

			return nil
		}
	}

	if isCallableValue(value) && exists {
		if target, ok := existing.(*Namespace); ok {
			if _, hasTarget := target.values[CallTargetKey]; !hasTarget {
				// A callable written over plain arguments becomes their
				// call target; over an existing call target it replaces
				// the whole value, arguments included.
				target.rawPut(CallTargetKey, value)

				return nil
			}
		}
	}

	n.rawPut(key, value)

	return nil
}

func (n *Namespace) setItemNamespace(key string, incoming *Namespace, existing any, exists bool) error {
	if incoming.shortcut {
		// Shortcuts are atomic presets: replace, never merge.
		n.rawPut(key, incoming.clone())

		return nil
	}

	if !exists {
		n.rawPut(key, incoming.clone())

		return nil
	}

	switch target := existing.(type) {
	case *Namespace:
		if target.shortcut {
			merged := target.clone()
			merged.shortcut = false

			err := mergeInto(merged, incoming)
			if err != nil {
				return err
			}

			n.rawPut(key, merged)

			return nil
		}

		return mergeInto(target, incoming)
	case string:
		promoted := &Namespace{}
		promoted.rawPut(target, true)

		err := mergeInto(promoted, incoming)
		if err != nil {
			return err
		}

		n.rawPut(key, promoted)
		diagPromotion(diagPrevious, target)

		return nil
	default:
		if isCallableValue(existing) {
			wrapped := &Namespace{}
			wrapped.rawPut(CallTargetKey, existing)

			err := mergeInto(wrapped, incoming)
			if err != nil {
				return err
			}

			n.rawPut(key, wrapped)

			return nil
		}

		n.rawPut(key, incoming.clone())

		return nil
	}
}

func mergeInto(dst, src *Namespace) error {
	if dst.frozen {
		return ErrImmutable
	}

	for _, key := range src.keys {
		err := dst.setItem(key, src.values[key])
		if err != nil {
			return err
		}
	}

	return nil
}

const (
	diagPrevious = "previous"
	diagWritten  = "written"
)

// diagPromotion emits the non-fatal deprecation diagnostic for a
// string-to-namespace promotion. Callers observe it by installing a slog
// handler; control flow is never affected.
func diagPromotion(kind, value string) {
	slog.Warn("deprecated promotion of "+kind+" string value to namespace",
		slog.String("value", value),
	)
}
