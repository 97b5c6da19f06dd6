package environ

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"variant.mleku.dev/value"
)

func TestOuterChain(t *testing.T) {
	reg := NewRegistry()
	global := reg.New(value.NoEnv)
	local := reg.New(global)
	g, ok := reg.Lookup(global)
	require.True(t, ok)
	l, ok := reg.Lookup(local)
	require.True(t, ok)
	require.Equal(t, global, l.Outer())
	require.Equal(t, local, l.ID())

	g.Set("pi", value.NewNumber(3.14))
	l.Set("x", value.Num(1))
	g.Set("x", value.Num(2))

	v, err := l.Get("x")
	require.NoError(t, err)
	require.Equal(t, value.Number(1), v)
	v, err = l.Get("pi")
	require.NoError(t, err)
	require.Equal(t, value.Number(3.14), v)
	require.False(t, l.Has("pi"))

	_, err = l.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "'missing': symbol not found")

	l.Delete("x")
	v, err = l.Get("x")
	require.NoError(t, err)
	require.Equal(t, value.Number(2), v)

	require.Equal(t, []string{"pi", "x"}, g.Names())
}

func TestReleaseIsNotOwnedByProcedures(t *testing.T) {
	reg := NewRegistry()
	id := reg.New(value.NoEnv)
	proc := value.MustProcedure(value.NewProcedure(nil, id))
	e, err := reg.Resolve(proc)
	require.NoError(t, err)
	require.Equal(t, id, e.ID())

	reg.Release(id)
	require.Equal(t, 0, reg.Len())
	_, err = reg.Resolve(proc)
	require.ErrorIs(t, err, ErrReleased)
	// the procedure itself is untouched
	require.Equal(t, id, proc.Env)

	_, ok := reg.Lookup(value.NoEnv)
	require.False(t, ok)
}

func TestReleasedOuter(t *testing.T) {
	reg := NewRegistry()
	outer := reg.New(value.NoEnv)
	inner := reg.New(outer)
	reg.Release(outer)
	e, _ := reg.Lookup(inner)
	_, err := e.Get("anything")
	require.ErrorIs(t, err, ErrReleased)
}

func TestConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	root := reg.New(value.NoEnv)
	e, _ := reg.Lookup(root)
	var wg sync.WaitGroup
	ids := make([]value.EnvID, 64)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = reg.New(root)
			e.Set(string(rune('a'+i%26)), value.Num(i))
		}(i)
	}
	wg.Wait()
	require.Equal(t, 65, reg.Len())
	seen := map[value.EnvID]bool{}
	for _, id := range ids {
		require.False(t, seen[id], "duplicate handle %d", id)
		seen[id] = true
	}
	require.Len(t, e.Names(), 26)
}
