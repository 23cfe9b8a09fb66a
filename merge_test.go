package ns_test

import (
	"log/slog"
	"testing"

	ns "github.com/0xalexb/hjarta-ns"
	"github.com/0xalexb/hjarta-ns/nslog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(args *ns.Namespace) (any, error) {
	return args, nil
}

func TestMerge(t *testing.T) {
	t.Parallel()

	fn := ns.Callable(identity)

	testCases := []struct {
		name     string
		a        *ns.Namespace
		b        *ns.Namespace
		expected *ns.Namespace
	}{
		{
			name:     "empty with empty",
			a:        ns.New(),
			b:        ns.New(),
			expected: ns.New(),
		},
		{
			name:     "disjoint keys",
			a:        ns.New(ns.Pair{Path: "a", Value: 1}),
			b:        ns.New(ns.Pair{Path: "b", Value: 2}),
			expected: ns.New(ns.Pair{Path: "a", Value: 1}, ns.Pair{Path: "b", Value: 2}),
		},
		{
			name:     "disjoint nested keys",
			a:        ns.New(ns.Pair{Path: "a__b", Value: 1}),
			b:        ns.New(ns.Pair{Path: "a__c", Value: 2}),
			expected: ns.New(ns.Pair{Path: "a__b", Value: 1}, ns.Pair{Path: "a__c", Value: 2}),
		},
		{
			name:     "string promotes under namespace",
			a:        ns.New(ns.Pair{Path: "x", Value: "foo"}),
			b:        ns.New(ns.Pair{Path: "x__bar", Value: true}),
			expected: ns.New(ns.Pair{Path: "x__foo", Value: true}, ns.Pair{Path: "x__bar", Value: true}),
		},
		{
			name:     "callable gains call target wrapper",
			a:        ns.New(ns.Pair{Path: "x", Value: fn}),
			b:        ns.New(ns.Pair{Path: "x__y", Value: 1}),
			expected: ns.New(ns.Pair{Path: "x__" + ns.CallTargetKey, Value: fn}, ns.Pair{Path: "x__y", Value: 1}),
		},
		{
			name:     "map value merges like a namespace",
			a:        ns.New(ns.Pair{Path: "x", Value: map[string]any{"y": 1}}),
			b:        ns.New(ns.Pair{Path: "x__z", Value: 2}),
			expected: ns.New(ns.Pair{Path: "x__y", Value: 1}, ns.Pair{Path: "x__z", Value: 2}),
		},
		{
			name:     "deep disjoint trees",
			a:        ns.New(ns.Pair{Path: "x__y__z", Value: 1}),
			b:        ns.New(ns.Pair{Path: "a__b__c", Value: 2}),
			expected: ns.New(ns.Pair{Path: "x__y__z", Value: 1}, ns.Pair{Path: "a__b__c", Value: 2}),
		},
		{
			name:     "deep string promotion",
			a:        ns.New(ns.Pair{Path: "y__z", Value: "foo"}),
			b:        ns.New(ns.Pair{Path: "y__z__c", Value: true}),
			expected: ns.New(ns.Pair{Path: "y__z__foo", Value: true}, ns.Pair{Path: "y__z__c", Value: true}),
		},
		{
			name:     "sibling of deeper tree survives",
			a:        ns.New(ns.Pair{Path: "bar__a", Value: 1}),
			b:        ns.New(ns.Pair{Path: "bar__quux__title", Value: "hi"}),
			expected: ns.New(ns.Pair{Path: "bar__a", Value: 1}, ns.Pair{Path: "bar__quux__title", Value: "hi"}),
		},
		{
			name:     "empty key is an ordinary sibling",
			a:        ns.New(ns.Pair{Path: "bar__", Value: "foo"}),
			b:        ns.New(ns.Pair{Path: "bar__fisk", Value: "hi"}),
			expected: ns.New(ns.Pair{Path: "bar__", Value: "foo"}, ns.Pair{Path: "bar__fisk", Value: "hi"}),
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			forward := ns.Merge(testCase.a, testCase.b)
			assert.True(t, forward.Equal(testCase.expected), "forward: got %s, want %s", forward, testCase.expected)

			backward := ns.Merge(testCase.b, testCase.a)
			assert.True(t, backward.Equal(testCase.expected), "backward: got %s, want %s", backward, testCase.expected)
		})
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	a := ns.New(ns.Pair{Path: "x__y", Value: 1})
	b := ns.New(ns.Pair{Path: "x__z", Value: 2})

	merged := ns.Merge(a, b)
	require.NoError(t, merged.Set("x__w", 3))

	assert.True(t, a.Equal(ns.New(ns.Pair{Path: "x__y", Value: 1})))
	assert.True(t, b.Equal(ns.New(ns.Pair{Path: "x__z", Value: 2})))
}

func TestMergeCyclicSource(t *testing.T) {
	t.Parallel()

	inner := ns.New(ns.Pair{Path: "bar", Value: "baz"})
	require.NoError(t, inner.Put("foo", inner))

	outer := ns.New()
	require.NoError(t, outer.Put("buzz", inner))

	merged := ns.Merge(ns.New(), outer)
	assert.Equal(t, map[string]any{"buzz__bar": "baz"}, ns.Flatten(merged))

	// The copy keeps the cycle shape without aliasing the source.
	buzz, ok := merged.GetNamespace("buzz")
	require.True(t, ok)
	assert.NotSame(t, inner, buzz)

	foo, ok := buzz.GetNamespace("foo")
	require.True(t, ok)
	assert.Same(t, buzz, foo)

	require.NoError(t, buzz.Set("extra", 1))

	_, ok = inner.Get("extra")
	assert.False(t, ok, "mutating the copy must not reach the source")
}

func TestMergeIncomingShortcutReplacesWholesale(t *testing.T) {
	t.Parallel()

	a := ns.New(ns.Pair{Path: "x", Value: ns.New(ns.Pair{Path: "y__z", Value: 1}, ns.Pair{Path: "y__zz", Value: 2})})
	b := ns.New(ns.Pair{Path: "x", Value: ns.NewShortcut(ns.Pair{Path: "a__b", Value: 3})})

	actual := ns.Merge(a, b)
	assert.True(t, actual.Equal(ns.New(ns.Pair{Path: "x__a__b", Value: 3})), "got %s", actual)

	x, ok := actual.Get("x")
	require.True(t, ok)
	assert.True(t, x.(*ns.Namespace).IsShortcut())
}

func TestMergeOverExistingShortcutMergesAndDropsTag(t *testing.T) {
	t.Parallel()

	a := ns.New(ns.Pair{Path: "x", Value: ns.NewShortcut(ns.Pair{Path: "y__z", Value: 1}, ns.Pair{Path: "y__zz", Value: 2})}) //nolint:lll
	b := ns.New(ns.Pair{Path: "x", Value: ns.New(ns.Pair{Path: "a__b", Value: 3})})

	actual := ns.Merge(a, b)
	expected := ns.New(
		ns.Pair{Path: "x__y__z", Value: 1},
		ns.Pair{Path: "x__y__zz", Value: 2},
		ns.Pair{Path: "x__a__b", Value: 3},
	)
	assert.True(t, actual.Equal(expected), "got %s", actual)

	x, ok := actual.Get("x")
	require.True(t, ok)
	assert.False(t, x.(*ns.Namespace).IsShortcut())
}

// Merging left to right is associative for plain trees, but shortcut-atomic
// replacement breaks it: once a shortcut has been overwritten by a plain
// namespace the shortcut's atomicity is no longer visible to sources merged
// later.
func TestMergeAssociativityAndShortcutException(t *testing.T) {
	t.Parallel()

	t.Run("plain trees associate", func(t *testing.T) {
		t.Parallel()

		a := ns.New(ns.Pair{Path: "n__x", Value: 1}, ns.Pair{Path: "s", Value: 1})
		b := ns.New(ns.Pair{Path: "n__y", Value: 2}, ns.Pair{Path: "s", Value: 2})
		c := ns.New(ns.Pair{Path: "n__x", Value: 3}, ns.Pair{Path: "t", Value: 3})

		left := ns.Merge(ns.Merge(a, b), c)
		right := ns.Merge(a, ns.Merge(b, c))
		assert.True(t, left.Equal(right), "left %s, right %s", left, right)
	})

	t.Run("shortcut replacement breaks associativity", func(t *testing.T) {
		t.Parallel()

		a := ns.New(ns.Pair{Path: "x", Value: ns.New(ns.Pair{Path: "y", Value: 1})})
		b := ns.New(ns.Pair{Path: "x", Value: ns.NewShortcut(ns.Pair{Path: "z", Value: 2})})
		c := ns.New(ns.Pair{Path: "x", Value: ns.New(ns.Pair{Path: "w", Value: 3})})

		left := ns.Merge(ns.Merge(a, b), c)
		assert.True(t, left.Equal(ns.New(ns.Pair{Path: "x__z", Value: 2}, ns.Pair{Path: "x__w", Value: 3})))

		right := ns.Merge(a, ns.Merge(b, c))
		assert.True(t, right.Equal(ns.New(
			ns.Pair{Path: "x__y", Value: 1},
			ns.Pair{Path: "x__z", Value: 2},
			ns.Pair{Path: "x__w", Value: 3},
		)))

		assert.False(t, left.Equal(right))
	})
}

func TestSetDefaultsFillsMissingKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		target   *ns.Namespace
		defaults []any
		expected *ns.Namespace
	}{
		{
			name:     "single key into empty target",
			target:   ns.New(),
			defaults: []any{ns.Pair{Path: "x", Value: 17}},
			expected: ns.New(ns.Pair{Path: "x", Value: 17}),
		},
		{
			name:     "nested key into existing namespace",
			target:   ns.New(ns.Pair{Path: "x", Value: ns.New()}),
			defaults: []any{ns.Pair{Path: "x__y", Value: 17}},
			expected: ns.New(ns.Pair{Path: "x__y", Value: 17}),
		},
		{
			name:     "nested key creates intermediate namespaces",
			target:   ns.New(),
			defaults: []any{ns.Pair{Path: "x__y", Value: 17}},
			expected: ns.New(ns.Pair{Path: "x__y", Value: 17}),
		},
		{
			name:   "target keys win, missing nested keys fill in",
			target: ns.New(ns.Pair{Path: "x", Value: 1}, ns.Pair{Path: "y__z", Value: 2}),
			defaults: []any{map[string]any{
				"a":    3,
				"x":    4,
				"y__b": 5,
				"y__z": 6,
			}},
			expected: ns.New(
				ns.Pair{Path: "x", Value: 1},
				ns.Pair{Path: "a", Value: 3},
				ns.Pair{Path: "y__z", Value: 2},
				ns.Pair{Path: "y__b", Value: 5},
			),
		},
		{
			name:   "earlier defaults win over later ones",
			target: ns.New(),
			defaults: []any{
				ns.New(ns.Pair{Path: "a", Value: 17}, ns.Pair{Path: "b", Value: 42}),
				ns.New(ns.Pair{Path: "a", Value: 19}, ns.Pair{Path: "c", Value: 4711}),
			},
			expected: ns.New(
				ns.Pair{Path: "a", Value: 17},
				ns.Pair{Path: "b", Value: 42},
				ns.Pair{Path: "c", Value: 4711},
			),
		},
		{
			name:   "no side effects between sources",
			target: ns.New(ns.Pair{Path: "a__b", Value: 1}, ns.Pair{Path: "a__c", Value: 2}),
			defaults: []any{
				ns.Pair{Path: "a", Value: ns.New(ns.Pair{Path: "d", Value: 3})},
				ns.Pair{Path: "a__e", Value: 4},
			},
			expected: ns.New(
				ns.Pair{Path: "a__b", Value: 1},
				ns.Pair{Path: "a__c", Value: 2},
				ns.Pair{Path: "a__d", Value: 3},
				ns.Pair{Path: "a__e", Value: 4},
			),
		},
		{
			name:     "empty markers become empty namespaces",
			target:   ns.New(),
			defaults: []any{ns.Pair{Path: "foo", Value: ns.Empty}, ns.Pair{Path: "bar__boink", Value: ns.Empty}},
			expected: ns.New(
				ns.Pair{Path: "foo", Value: ns.New()},
				ns.Pair{Path: "bar__boink", Value: ns.New()},
			),
		},
		{
			name:     "empty namespaces are retained",
			target:   ns.New(ns.Pair{Path: "a", Value: ns.New()}),
			defaults: []any{ns.Pair{Path: "a__b", Value: ns.New()}},
			expected: ns.New(ns.Pair{Path: "a__b", Value: ns.New()}),
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actual := ns.SetDefaults(testCase.target, testCase.defaults...)
			assert.True(t, actual.Equal(testCase.expected), "got %s, want %s", actual, testCase.expected)
		})
	}
}

func TestSetDefaultsOrderingOfFlatSources(t *testing.T) {
	t.Parallel()

	expected := ns.New(ns.Pair{Path: "x__y", Value: 17}, ns.Pair{Path: "x__z", Value: 42})

	forward := ns.SetDefaults(ns.New(), []ns.Pair{
		{Path: "x", Value: map[string]any{"z": 42}},
		{Path: "x__y", Value: 17},
	})
	assert.True(t, forward.Equal(expected), "got %s", forward)

	backward := ns.SetDefaults(ns.New(), []ns.Pair{
		{Path: "x__y", Value: 17},
		{Path: "x", Value: map[string]any{"z": 42}},
	})
	assert.True(t, backward.Equal(expected), "got %s", backward)
}

func TestCallableGainsArgumentsAndStaysCallable(t *testing.T) {
	t.Parallel()

	actual := ns.New(ns.Pair{Path: "foo", Value: ns.Callable(callableFixture)}, ns.Pair{Path: "foo__x", Value: 17})

	foo, ok := actual.Get("foo")
	require.True(t, ok)

	result, err := foo.(*ns.Namespace).Call()
	require.NoError(t, err)
	assert.Equal(t, 17, result)
}

func TestSetDefaultsCallableTarget(t *testing.T) {
	t.Parallel()

	actual := ns.SetDefaults(
		ns.New(ns.Pair{Path: "foo__x", Value: 17}),
		ns.Pair{Path: "foo", Value: ns.Callable(callableFixture)},
	)

	foo, ok := actual.Get("foo")
	require.True(t, ok)

	result, err := foo.(*ns.Namespace).Call()
	require.NoError(t, err)
	assert.Equal(t, 17, result)
}

func TestSetDefaultsEmptyMarkerDoesNotAdoptCallTarget(t *testing.T) {
	t.Parallel()

	actual := ns.SetDefaults(
		ns.New(ns.Pair{Path: "foo__x", Value: 17}),
		ns.Pair{Path: "foo", Value: ns.Empty},
	)
	assert.True(t, actual.Equal(ns.New(ns.Pair{Path: "foo__x", Value: 17})))
}

func TestSetDefaultsNeverOverwritesCallTarget(t *testing.T) {
	t.Parallel()

	first := ns.Callable(identity)
	second := ns.Callable(callableFixture)

	x := ns.SetDefaults(
		ns.New(ns.Pair{Path: "foo", Value: ns.New()}),
		ns.Pair{Path: "foo", Value: first},
	)
	assert.True(t, x.Equal(ns.New(ns.Pair{Path: "foo__" + ns.CallTargetKey, Value: first})))

	y := ns.SetDefaults(x, ns.Pair{Path: "foo", Value: second})
	assert.True(t, y.Equal(ns.New(ns.Pair{Path: "foo__" + ns.CallTargetKey, Value: first})),
		"a callable default must not displace an existing call target")
}

// Not parallel: swaps the default slog handler to count diagnostics.
func TestPromotionDiagnostics(t *testing.T) {
	recorder := nslog.NewRecorder()
	previous := slog.Default()
	slog.SetDefault(slog.New(recorder))

	t.Cleanup(func() { slog.SetDefault(previous) })

	actual := ns.New(map[string]any{"foo": "bar"}, map[string]any{"foo__baz": false})
	assert.True(t, actual.Equal(ns.New(
		ns.Pair{Path: "foo__bar", Value: true},
		ns.Pair{Path: "foo__baz", Value: false},
	)))

	promotions := recorder.Promotions()
	require.Len(t, promotions, 1)
	assert.Contains(t, promotions[0].Message, "previous")
	assert.Equal(t, "bar", promotions[0].Attrs["value"])
}

// Not parallel: swaps the default slog handler to count diagnostics.
func TestPromotionDiagnosticsWrittenValue(t *testing.T) {
	recorder := nslog.NewRecorder()
	previous := slog.Default()
	slog.SetDefault(slog.New(recorder))

	t.Cleanup(func() { slog.SetDefault(previous) })

	actual := ns.New(ns.New(ns.Pair{Path: "foo__bar", Value: true}), map[string]any{"foo": "foo"})
	assert.True(t, actual.Equal(ns.New(
		ns.Pair{Path: "foo__foo", Value: true},
		ns.Pair{Path: "foo__bar", Value: true},
	)))

	promotions := recorder.Promotions()
	require.Len(t, promotions, 1)
	assert.Contains(t, promotions[0].Message, "written")
	assert.Equal(t, "foo", promotions[0].Attrs["value"])
}
