package declare

import (
	"sort"

	ns "github.com/0xalexb/hjarta-ns"
)

// Registry holds the named presets attached to a type. A registry may have
// a parent, modelling inheritance: lookups see the parent's presets unless
// the child registers the same name.
type Registry struct {
	parent  *Registry
	presets map[string]*ns.Namespace
}

// NewRegistry creates a registry, optionally chained to a parent. A nil
// parent means a root registry.
func NewRegistry(parent *Registry) *Registry {
	return &Registry{
		parent:  parent,
		presets: make(map[string]*ns.Namespace),
	}
}

// Register attaches a preset under the given name, shadowing any preset of
// the same name in the parent chain.
func (r *Registry) Register(name string, preset *ns.Namespace) {
	r.presets[name] = preset
}

// Lookup returns the preset registered under name, consulting the parent
// chain.
func (r *Registry) Lookup(name string) (*ns.Namespace, bool) {
	if preset, ok := r.presets[name]; ok {
		return preset, true
	}

	if r.parent != nil {
		return r.parent.Lookup(name)
	}

	return nil, false
}

// ShortcutsByName returns all shortcut-tagged presets visible from this
// registry, parents included, keyed by name. Non-shortcut namespaces are
// registrable but are not enumerated here.
func (r *Registry) ShortcutsByName() map[string]*ns.Namespace {
	shortcuts := make(map[string]*ns.Namespace)
	r.collect(shortcuts)

	return shortcuts
}

// Names returns the sorted names of all visible shortcut presets.
func (r *Registry) Names() []string {
	shortcuts := r.ShortcutsByName()

	names := make([]string, 0, len(shortcuts))
	for name := range shortcuts {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) collect(into map[string]*ns.Namespace) {
	if r.parent != nil {
		r.parent.collect(into)
	}

	for name, preset := range r.presets {
		if preset.IsShortcut() {
			into[name] = preset
		} else {
			// A child may shadow an inherited shortcut with a plain
			// namespace, hiding it from enumeration.
			delete(into, name)
		}
	}
}
