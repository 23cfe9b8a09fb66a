package yaml

import (
	"errors"
	"fmt"
	"strings"

	ns "github.com/0xalexb/hjarta-ns"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotMapping is returned when the value at the specified path is not a mapping.
var ErrNotMapping = errors.New("value is not a mapping")

// Parse decodes a YAML document into a namespace, preserving the document's
// key order. The path parameter selects a sub-document using colon (:) as
// separator, e.g. "database:connection"; an empty path parses the entire
// document. Keys are inserted literally, so a YAML key containing "__" is a
// single key, not a nested path.
func Parse(data []byte, path string) (*ns.Namespace, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var document any

	err := yaml.UnmarshalWithOptions(data, &document, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	if path != "" {
		document, err = navigate(document, path)
		if err != nil {
			return nil, err
		}
	}

	mapping, ok := document.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: path %q holds %T", ErrNotMapping, path, document)
	}

	return toNamespace(mapping)
}

func navigate(document any, path string) (any, error) {
	current := document

	for _, segment := range strings.Split(path, ":") {
		mapping, ok := current.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		found := false

		for _, item := range mapping {
			if fmt.Sprintf("%v", item.Key) == segment {
				current = item.Value
				found = true

				break
			}
		}

		if !found {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	return current, nil
}

func toNamespace(mapping yaml.MapSlice) (*ns.Namespace, error) {
	n := ns.New()

	for _, item := range mapping {
		value, err := convertValue(item.Value)
		if err != nil {
			return nil, err
		}

		err = n.Put(fmt.Sprintf("%v", item.Key), value)
		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

func convertValue(value any) (any, error) {
	switch val := value.(type) {
	case yaml.MapSlice:
		return toNamespace(val)
	case []any:
		converted := make([]any, len(val))

		for i, element := range val {
			elementValue, err := convertValue(element)
			if err != nil {
				return nil, err
			}

			converted[i] = elementValue
		}

		return converted, nil
	default:
		return val, nil
	}
}
