package nsfx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ns "github.com/0xalexb/hjarta-ns"
	yamlsource "github.com/0xalexb/hjarta-ns/source/yaml"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when a module is created with an empty name.
var ErrEmptyName = errors.New("module name must not be empty")

// Module creates an Fx module supplying a namespace built from the given
// sources (the source forms of ns.New). The name is used as both the module
// name and the DI named tag for the *ns.Namespace, so several configuration
// namespaces can coexist in one graph.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(name string, sources ...any) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	namespace := ns.New(sources...)

	return fx.Module(name, fx.Supply(
		fx.Annotate(namespace, fx.ResultTags(fmt.Sprintf(`name:%q`, name))),
	))
}

// FileModule creates an Fx module providing a namespace parsed from a YAML
// file. The file is read when the DI container instantiates the namespace,
// not when the module is declared. yamlPath selects a sub-document using
// colon (:) as separator; empty means the entire document.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func FileModule(name, filename, yamlPath string) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	provide := func() (*ns.Namespace, error) {
		cleanPath := filepath.Clean(filename)

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and caller-controlled
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		namespace, err := yamlsource.Parse(data, yamlPath)
		if err != nil {
			return nil, fmt.Errorf("parsing file %q: %w", cleanPath, err)
		}

		return namespace, nil
	}

	return fx.Module(name, fx.Provide(
		fx.Annotate(provide, fx.ResultTags(fmt.Sprintf(`name:%q`, name))),
	))
}
