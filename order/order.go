package order

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type afterKind int

const (
	afterNone afterKind = iota
	afterIndex
	afterName
	afterLast
)

// After expresses a relative-position constraint for an orderable item: no
// constraint (the zero value), a 0-based position index, the name of
// another item, or the Last sentinel.
type After struct {
	kind  afterKind
	index int
	name  string
}

// Last is the ordering sentinel placing an item after everything else.
// Items constrained by Last keep their original relative order among
// themselves and always land strictly at the end.
//
//nolint:gochecknoglobals // process-wide immutable sentinel.
var Last = After{kind: afterLast}

// AfterIndex constrains an item to the given 0-based position, counted
// against the order before any index-constrained items have been placed.
// Negative indexes mean the very front.
func AfterIndex(index int) After {
	return After{kind: afterIndex, index: index}
}

// AfterName constrains an item to come immediately after the named item.
func AfterName(name string) After {
	return After{kind: afterName, name: name}
}

// IsZero reports whether the constraint is absent.
func (a After) IsZero() bool {
	return a.kind == afterNone
}

// Orderable is an item SortAfter can place: it has a name, usable as a
// reference target, and an optional After constraint.
type Orderable interface {
	OrderName() string
	OrderAfter() After
}

// MissingReferenceError reports name constraints whose target does not
// exist among the sorted items. Names are listed in the order they were
// first encountered in the input.
type MissingReferenceError struct {
	Names []string
}

func (e *MissingReferenceError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("Tried to order after %s but that key does not exist", e.Names[0])
	}

	return fmt.Sprintf("Tried to order after %s but those keys do not exist", strings.Join(e.Names, ", "))
}

// SortAfter produces a total order of items consistent with their After
// constraints. Unconstrained items keep their original relative order;
// index-constrained items are placed at their position counted against the
// running result; name-constrained items land immediately after their
// target, transitively, grouped stably when several reference the same
// target; Last-constrained items go strictly at the end. The input slice is
// not modified.
//
// A name constraint whose target does not exist fails with
// MissingReferenceError.
func SortAfter[T Orderable](items []T) ([]T, error) {
	var (
		unmoved []T
		byIndex []T
		last    []T
	)

	byName := make(map[string][]T)

	var nameOrder []string

	for _, item := range items {
		after := item.OrderAfter()

		switch after.kind {
		case afterNone:
			unmoved = append(unmoved, item)
		case afterLast:
			last = append(last, item)
		case afterIndex:
			byIndex = append(byIndex, item)
		case afterName:
			if _, seen := byName[after.name]; !seen {
				nameOrder = append(nameOrder, after.name)
			}

			byName[after.name] = append(byName[after.name], item)
		}
	}

	slices.SortStableFunc(byIndex, func(a, b T) int {
		return cmp.Compare(a.OrderAfter().index, b.OrderAfter().index)
	})

	result := make([]T, 0, len(items))

	// place appends an item followed, transitively, by everything ordered
	// after it by name.
	var place func(item T)
	place = func(item T) {
		result = append(result, item)

		followers, ok := byName[item.OrderName()]
		if ok {
			delete(byName, item.OrderName())

			for _, follower := range followers {
				place(follower)
			}
		}
	}

	next := 0

	for _, item := range unmoved {
		for next < len(byIndex) && len(result) >= byIndex[next].OrderAfter().index {
			place(byIndex[next])
			next++
		}

		place(item)
	}

	for ; next < len(byIndex); next++ {
		place(byIndex[next])
	}

	for _, item := range last {
		place(item)
	}

	if len(byName) > 0 {
		missing := make([]string, 0, len(byName))

		for _, name := range nameOrder {
			if _, stillMissing := byName[name]; stillMissing {
				missing = append(missing, name)
			}
		}

		return nil, &MissingReferenceError{Names: missing}
	}

	return result, nil
}
