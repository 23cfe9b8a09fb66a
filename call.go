package ns

import (
	"fmt"
	"reflect"
)

// maxCallDepth bounds the unwinding of chained call targets.
const maxCallDepth = 100

// Call invokes the namespace. The overrides are merged over the namespace's
// own keys (overrides win), the reserved "call_target" key is resolved down
// to a callable, and the callable receives the remaining keys as its nested
// argument namespace. A namespace without a call target fails with
// NoCallTargetError.
//
// A call target may itself be a namespace: either a nested invocable
// (a shortcut calling a shortcut), whose own argument defaults are merged
// under the outer ones link by link, or a member selection carrying the
// control keys "cls" and "attribute". Control keys are consumed during
// resolution and never reach the callable.
func (n *Namespace) Call(overrides ...any) (any, error) {
	sources := make([]any, 0, len(overrides)+1)
	sources = append(sources, n)
	sources = append(sources, overrides...)

	params := New(sources...)

	target, ok := params.remove(CallTargetKey)
	if !ok {
		return nil, &NoCallTargetError{Namespace: n}
	}

	return resolveCall(target, params, 0)
}

func resolveCall(target any, params *Namespace, depth int) (any, error) {
	if depth > maxCallDepth {
		return nil, ErrCallDepthExceeded
	}

	if fn, ok := asCallable(target); ok {
		return fn(params)
	}

	spec, ok := target.(*Namespace)
	if !ok {
		return nil, &NotCallableError{Value: target}
	}

	link := spec.clone()
	cls, _ := link.remove(ClsKey)
	attribute, _ := link.remove(AttributeKey)

	if inner, ok := link.remove(CallTargetKey); ok {
		// Chained target: the link's own keys are defaults under the
		// arguments accumulated so far.
		return resolveCall(inner, New(link, params), depth+1)
	}

	if attribute != nil {
		name, ok := attribute.(string)
		if !ok {
			return nil, fmt.Errorf("attribute key must be a string, got %T", attribute)
		}

		member, err := memberByName(cls, name)
		if err != nil {
			return nil, err
		}

		return resolveCall(member, New(link, params), depth+1)
	}

	if cls != nil {
		return resolveCall(cls, New(link, params), depth+1)
	}

	return nil, &NoCallTargetError{Namespace: spec}
}

// memberByName selects the named member off the context established by the
// "cls" key: a key lookup for namespaces, a method lookup via reflection
// for anything else.
func memberByName(context any, name string) (any, error) {
	if context == nil {
		return nil, fmt.Errorf("attribute %q requires a cls key to select from", name)
	}

	if container, ok := context.(*Namespace); ok {
		member, ok := container.values[name]
		if !ok {
			return nil, fmt.Errorf("namespace has no member %q", name)
		}

		return member, nil
	}

	method := reflect.ValueOf(context).MethodByName(name)
	if !method.IsValid() {
		return nil, fmt.Errorf("%T has no method %q", context, name)
	}

	return method.Interface(), nil
}

func asCallable(value any) (Callable, bool) {
	switch fn := value.(type) {
	case Callable:
		return fn, true
	case func(*Namespace) (any, error):
		return fn, true
	default:
		return nil, false
	}
}
