package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sieveql/sieve/expr"
	"github.com/sieveql/sieve/schema"
)

func TestLookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		key  string
		want string
	}{
		{"id_eq", "eq"},
		{"name_not_eq", "not_eq"},
		{"title_cont", "cont"},
		{"title_not_cont", "not_cont"},
		{"title_cont_all", "cont_all"},
		{"title_cont_any", "cont_any"},
		{"age_gteq", "gteq"},
		{"tags_in", "in"},
		{"tags_not_in", "not_in"},
		{"body_does_not_match", "does_not_match"},
		{"deleted_at_null", "null"},
		{"deleted_at_not_null", "not_null"},
		{"name_present", "present"},
		{"active_not_true", "not_true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			name, err := registry.Lookup(tt.key, Filter{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestLookup_LongestSuffixWins(t *testing.T) {
	registry := NewRegistry()

	// cont, cont_all and eq_all... several names are suffixes of these
	// keys; the longest must win.
	name, err := registry.Lookup("title_cont_all", Filter{})
	require.NoError(t, err)
	assert.Equal(t, "cont_all", name)

	name, err = registry.Lookup("id_not_eq", Filter{})
	require.NoError(t, err)
	assert.Equal(t, "not_eq", name, "not_eq must beat its own suffix eq")

	name, err = registry.Lookup("body_not_cont_any", Filter{})
	require.NoError(t, err)
	assert.Equal(t, "not_cont_any", name)
}

func TestLookup_RequiresTokenBoundary(t *testing.T) {
	registry := NewRegistry()

	// "present" is a suffix of the raw string but not on an underscore
	// boundary, so it must not match.
	_, err := registry.Lookup("omnipresent", Filter{})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "omnipresent", notFound.Key)
}

func TestLookup_NotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Lookup("name", Filter{})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "name", notFound.Key)
}

func TestFilter(t *testing.T) {
	registry := NewRegistry()

	t.Run("only explicit names", func(t *testing.T) {
		filter := Filter{Only: []string{"eq", "cont"}}

		name, err := registry.Lookup("title_cont", filter)
		require.NoError(t, err)
		assert.Equal(t, "cont", name)

		_, err = registry.Lookup("title_cont_all", filter)
		assert.Error(t, err, "cont_all is outside the only set")
	})

	t.Run("only basic group", func(t *testing.T) {
		filter := Filter{Only: []string{GroupBasic}}

		name, err := registry.Lookup("title_cont", filter)
		require.NoError(t, err)
		assert.Equal(t, "cont", name)

		_, err = registry.Lookup("title_cont_all", filter)
		assert.Error(t, err, "no basic predicate is a suffix of the key")
	})

	t.Run("except composite group", func(t *testing.T) {
		filter := Filter{Except: []string{GroupComposite}}

		name, err := registry.Lookup("title_cont", filter)
		require.NoError(t, err)
		assert.Equal(t, "cont", name)

		_, err = registry.Lookup("title_cont_any", filter)
		assert.Error(t, err)
	})

	t.Run("except explicit name", func(t *testing.T) {
		filter := Filter{Except: []string{"cont"}}

		name, err := registry.Lookup("title_cont_all", filter)
		require.NoError(t, err)
		assert.Equal(t, "cont_all", name, "only the basic was removed")
	})

	t.Run("only and except conflict", func(t *testing.T) {
		filter := Filter{Only: []string{"eq"}, Except: []string{"cont"}}

		_, err := registry.Lookup("id_eq", filter)
		assert.ErrorIs(t, err, ErrConflictingFilter)
	})
}

func TestRegisterCustom(t *testing.T) {
	render := func(col expr.Column, values []any) (expr.Node, error) {
		return expr.Comparison{Col: col, Op: expr.OpEqual, Value: values[0]}, nil
	}

	t.Run("registered custom is matched", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.RegisterCustom("between", 2, render))

		name, err := registry.Lookup("age_between", Filter{})
		require.NoError(t, err)
		assert.Equal(t, "between", name)

		custom, ok := registry.Custom("between")
		require.True(t, ok)
		assert.Equal(t, 2, custom.Arity)
	})

	t.Run("duplicate name", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.RegisterCustom("between", 2, render))
		assert.Error(t, registry.RegisterCustom("between", 2, render))
	})

	t.Run("shadowing a basic", func(t *testing.T) {
		registry := NewRegistry()
		assert.Error(t, registry.RegisterCustom("eq", 1, render))
	})

	t.Run("shadowing a composite", func(t *testing.T) {
		registry := NewRegistry()
		assert.Error(t, registry.RegisterCustom("eq_all", 1, render))
		assert.Error(t, registry.RegisterCustom("cont_any", 1, render))

		// in is not composable, so in_all is free for custom use.
		assert.NoError(t, registry.RegisterCustom("in_all", 1, render))
	})

	t.Run("invalid arity", func(t *testing.T) {
		registry := NewRegistry()
		assert.Error(t, registry.RegisterCustom("between", 0, render))
	})

	t.Run("nil render hook", func(t *testing.T) {
		registry := NewRegistry()
		assert.Error(t, registry.RegisterCustom("between", 2, nil))
	})
}

func TestSplitComposite(t *testing.T) {
	base, suffix, ok := SplitComposite("cont_all")
	require.True(t, ok)
	assert.Equal(t, "cont", base)
	assert.Equal(t, "all", suffix)

	base, suffix, ok = SplitComposite("not_eq_any")
	require.True(t, ok)
	assert.Equal(t, "not_eq", base)
	assert.Equal(t, "any", suffix)

	_, _, ok = SplitComposite("cont")
	assert.False(t, ok)
}

func TestSpecConstraints(t *testing.T) {
	registry := NewRegistry()

	cont, ok := registry.Basic("cont")
	require.True(t, ok)
	assert.True(t, cont.AllowsType(schema.TypeString))
	assert.True(t, cont.AllowsType(schema.TypeText))
	assert.False(t, cont.AllowsType(schema.TypeInteger))

	gt, ok := registry.Basic("gt")
	require.True(t, ok)
	assert.True(t, gt.AllowsType(schema.TypeInteger))
	assert.True(t, gt.AllowsType(schema.TypeDateTime))
	assert.False(t, gt.AllowsType(schema.TypeString))

	eq, ok := registry.Basic("eq")
	require.True(t, ok)
	assert.True(t, eq.AllowsType(schema.TypeUUID), "eq is unrestricted")
	assert.True(t, eq.AllowsValue("anything"))

	truePred, ok := registry.Basic("true")
	require.True(t, ok)
	assert.True(t, truePred.AllowsType(schema.TypeBoolean))
	assert.False(t, truePred.AllowsType(schema.TypeString))
	assert.True(t, truePred.AllowsValue(true))
	assert.True(t, truePred.AllowsValue("1"))
	assert.False(t, truePred.AllowsValue("yes"))
}
