package dispatch

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	ns "github.com/0xalexb/hjarta-ns"
)

// Func wraps a callable together with a namespace of default keyword
// arguments. At call time the call-site overrides are merged over the
// defaults and the callable receives the merged, still nested, namespace.
type Func struct {
	fn       ns.Callable
	defaults *ns.Namespace
	required []string
	name     string
	doc      string
}

// Option configures a wrapped function.
type Option func(*Func)

// WithDefaults adds default argument sources, built with the same source
// forms as ns.New. Repeated options accumulate left to right.
func WithDefaults(sources ...any) Option {
	return func(f *Func) {
		f.apply(sources)
	}
}

// WithRequired names arguments that must be present in the effective
// namespace at call time; a missing one fails with MissingArgumentError.
func WithRequired(names ...string) Option {
	return func(f *Func) {
		f.required = append(f.required, names...)
	}
}

// WithName overrides the introspection name of the wrapped function.
func WithName(name string) Option {
	return func(f *Func) {
		f.name = name
	}
}

// WithDoc attaches documentation to the wrapped function, readable back via
// Doc.
func WithDoc(doc string) Option {
	return func(f *Func) {
		f.doc = doc
	}
}

func (f *Func) apply(sources []any) {
	merged := make([]any, 0, len(sources)+1)
	merged = append(merged, f.defaults)
	merged = append(merged, sources...)
	f.defaults = ns.New(merged...)
}

// New wraps fn with the given options. New(fn) with no options behaves
// identically to New(fn, WithDefaults()).
func New(fn ns.Callable, opts ...Option) *Func {
	f := &Func{
		fn:       fn,
		defaults: ns.New(),
		name:     FullFunctionName(fn),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Defaults returns the captured default namespace verbatim.
func (f *Func) Defaults() *ns.Namespace {
	return f.defaults
}

// Name returns the function's introspection name.
func (f *Func) Name() string {
	return f.name
}

// Doc returns the attached documentation.
func (f *Func) Doc() string {
	return f.doc
}

// Call merges the call-site override sources over the captured defaults,
// checks required arguments and invokes the wrapped function with the
// merged nested namespace.
func (f *Func) Call(overrides ...any) (any, error) {
	sources := make([]any, 0, len(overrides)+1)
	sources = append(sources, f.defaults)
	sources = append(sources, overrides...)

	effective := ns.New(sources...)

	var missing []string

	for _, name := range f.required {
		if _, ok := effective.Get(name); !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingArgumentError{Func: f.name, Names: missing}
	}

	return f.fn(effective)
}

// Callable adapts the wrapped function to ns.Callable so it can serve as a
// call target inside another namespace.
func (f *Func) Callable() ns.Callable {
	return func(args *ns.Namespace) (any, error) {
		return f.Call(args)
	}
}

// MissingArgumentError reports required arguments absent from the merged
// namespace at call time.
type MissingArgumentError struct {
	Func  string
	Names []string
}

func (e *MissingArgumentError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, name := range e.Names {
		quoted[i] = "'" + name + "'"
	}

	return fmt.Sprintf("%s() missing required argument(s): %s", e.Func, strings.Join(quoted, ", "))
}

// FullFunctionName returns the package-qualified name of a function value,
// e.g. "dispatch.FullFunctionName". It returns an empty string for
// non-function values.
func FullFunctionName(fn any) string {
	value := reflect.ValueOf(fn)
	if !value.IsValid() || value.Kind() != reflect.Func {
		return ""
	}

	runtimeFunc := runtime.FuncForPC(value.Pointer())
	if runtimeFunc == nil {
		return ""
	}

	name := runtimeFunc.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}
