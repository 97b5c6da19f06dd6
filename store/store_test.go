package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"variant.mleku.dev/context"
	"variant.mleku.dev/lol"
	"variant.mleku.dev/value"
)

func openMem(t *testing.T) *T {
	t.Helper()
	s, err := Open(Params{InMemory: true, LogLevel: lol.Warn})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestPutGet(t *testing.T) {
	s := openMem(t)
	v5 := value.NewMapping(
		value.KV("key1", value.Num(10)),
		value.KV("key2", value.NewString("value")),
		value.KV("list", value.NewList(value.NewBool(true), value.NewNull(),
			value.NewNumber(2.5))),
		value.KV("sym", value.NewSymbol("define")),
	)
	require.NoError(t, s.Put("v5", v5))
	got, err := s.Get("v5")
	require.NoError(t, err)
	require.True(t, value.Equal(v5, got))
	require.Equal(t, []string{"key1", "key2", "list", "sym"}, value.MustMapping(got).Keys())

	require.NoError(t, s.Put("v5", value.Num(1)))
	got, err = s.Get("v5")
	require.NoError(t, err)
	require.Equal(t, value.Number(1), got)
	require.Equal(t, "", s.Path())
}

func TestMissing(t *testing.T) {
	s := openMem(t)
	_, err := s.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete("nope"), ErrNotFound)
}

func TestRejects(t *testing.T) {
	s := openMem(t)
	require.ErrorIs(t, s.Put("", value.NewNull()), ErrEmptyName)
	_, err := s.Get("")
	require.ErrorIs(t, err, ErrEmptyName)
	require.ErrorIs(t, s.Delete(""), ErrEmptyName)
	err = s.Put("f", value.NewList(value.NewProcedure(nil, value.NoEnv)))
	require.ErrorIs(t, err, ErrUnrepresentable)
	_, err = s.Get("f")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNamesEachDelete(t *testing.T) {
	s := openMem(t)
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(name, value.NewString(name)))
	}
	names, err := s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, names)

	var seen []string
	require.NoError(t, s.Each(context.Bg(), func(name string, v value.T) error {
		require.Equal(t, name, value.MustString(v))
		seen = append(seen, name)
		return nil
	}))
	require.Equal(t, names, seen)

	stop := errors.New("stop")
	seen = nil
	err = s.Each(context.Bg(), func(name string, v value.T) error {
		seen = append(seen, name)
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []string{"a"}, seen)

	c, cancel := context.Cancel(context.Bg())
	cancel()
	require.ErrorIs(t, s.Each(c, func(string, value.T) error { return nil }),
		context.Canceled)

	require.NoError(t, s.Delete("b"))
	names, err = s.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, names)
}

func TestOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Params{Path: dir, LogLevel: lol.Warn})
	require.NoError(t, err)
	require.Equal(t, dir, s.Path())
	require.NoError(t, s.Put("x", value.NewList(value.Num(1), value.Num(2))))
	require.NoError(t, s.Close())

	s, err = Open(Params{Path: dir, LogLevel: lol.Warn})
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	v, err := s.Get("x")
	require.NoError(t, err)
	require.True(t, value.Equal(v, value.NewList(value.Num(1), value.Num(2))))
}
