package objpath

import (
	"fmt"
	"reflect"

	ns "github.com/0xalexb/hjarta-ns"
	"github.com/0xalexb/hjarta-ns/keypath"
)

// Get traverses obj along the path and returns the value at its leaf.
// Each segment names an exported struct field, a map key, or a namespace
// key; pointers are dereferenced along the way.
func Get(obj any, path string) (any, error) {
	current := obj

	for _, segment := range keypath.Split(path) {
		value, err := member(current, segment)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}

		current = value
	}

	return current, nil
}

// Set traverses obj along the path and assigns value at its leaf. The
// containers on the path must be addressable: struct segments require a
// pointer to the struct.
func Set(obj any, path string, value any) error {
	segments := keypath.Split(path)
	current := obj

	for _, segment := range segments[:len(segments)-1] {
		next, err := member(current, segment)
		if err != nil {
			return fmt.Errorf("path %q: %w", path, err)
		}

		current = next
	}

	err := setMember(current, segments[len(segments)-1], value)
	if err != nil {
		return fmt.Errorf("path %q: %w", path, err)
	}

	return nil
}

func member(obj any, name string) (any, error) {
	switch container := obj.(type) {
	case nil:
		return nil, fmt.Errorf("cannot read %q from nil", name)
	case *ns.Namespace:
		value, ok := container.Get(name)
		if !ok {
			return nil, fmt.Errorf("namespace has no key %q", name)
		}

		return value, nil
	case map[string]any:
		value, ok := container[name]
		if !ok {
			return nil, fmt.Errorf("map has no key %q", name)
		}

		return value, nil
	}

	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("cannot read %q from nil pointer", name)
		}

		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot read %q from %T", name, obj)
	}

	field := value.FieldByName(name)
	if !field.IsValid() {
		return nil, fmt.Errorf("%T has no field %q", obj, name)
	}

	return field.Interface(), nil
}

func setMember(obj any, name string, value any) error {
	switch container := obj.(type) {
	case nil:
		return fmt.Errorf("cannot write %q to nil", name)
	case *ns.Namespace:
		return container.Put(name, value)
	case map[string]any:
		container[name] = value

		return nil
	}

	target := reflect.ValueOf(obj)
	for target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return fmt.Errorf("cannot write %q to nil pointer", name)
		}

		target = target.Elem()
	}

	if target.Kind() != reflect.Struct {
		return fmt.Errorf("cannot write %q to %T", name, obj)
	}

	field := target.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("%T has no field %q", obj, name)
	}

	if !field.CanSet() {
		return fmt.Errorf("field %q of %T is not settable", name, obj)
	}

	if value == nil {
		field.Set(reflect.Zero(field.Type()))

		return nil
	}

	supplied := reflect.ValueOf(value)
	if !supplied.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("cannot assign %T to field %q of %T", value, name, obj)
	}

	field.Set(supplied)

	return nil
}
