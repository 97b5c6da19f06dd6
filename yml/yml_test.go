package yml

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"variant.mleku.dev/value"
)

func TestMarshalMapping(t *testing.T) {
	b, err := Marshal(value.NewMapping(
		value.KV("key1", value.Num(10)),
		value.KV("key2", value.NewString("value")),
	))
	require.NoError(t, err)
	require.Equal(t, "key1: 10\nkey2: value\n", string(b))
}

func TestNodeTags(t *testing.T) {
	for _, tc := range []struct {
		v        value.T
		tag, val string
	}{
		{value.Num(10), "!!int", "10"},
		{value.NewNumber(-3), "!!int", "-3"},
		{value.NewNumber(2.5), "!!float", "2.5"},
		{value.NewNumber(math.Copysign(0, -1)), "!!float", "-0"},
		{value.NewNumber(math.NaN()), "!!float", ".nan"},
		{value.NewNumber(math.Inf(-1)), "!!float", "-.inf"},
		{value.NewBool(false), "!!bool", "false"},
		{value.NewNull(), "!!null", "null"},
		{value.NewSymbol("sym"), "!!str", "sym"},
		{value.NewString("10"), "!!str", "10"},
		{value.NewProcedure(nil, value.NoEnv), "!!str", "<procedure>"},
	} {
		n := ToNode(tc.v)
		require.Equal(t, yaml.ScalarNode, n.Kind)
		require.Equal(t, tc.tag, n.Tag)
		require.Equal(t, tc.val, n.Value)
	}
	n := ToNode(value.NewList(value.Num(1)))
	require.Equal(t, yaml.SequenceNode, n.Kind)
	require.Len(t, n.Content, 1)
	n = ToNode(value.NewMapping(value.KV("a", value.Num(1))))
	require.Equal(t, yaml.MappingNode, n.Kind)
	require.Len(t, n.Content, 2)
}

func TestRoundTrip(t *testing.T) {
	v := value.NewMapping(
		value.KV("z", value.NewList(value.Num(1), value.NewNumber(2.5), value.NewNumber(-3))),
		value.KV("strings", value.NewList(
			value.NewString("true"),
			value.NewString("10"),
			value.NewString("null"),
			value.NewString(""),
			value.NewString("multi\nline"),
			value.NewString("quote \" and 'single'"),
			value.NewString("- dash"),
			value.NewString("tab\there"),
		)),
		value.KV("flags", value.NewList(value.NewBool(true), value.NewNull())),
		value.KV("empty", value.NewMapping()),
		value.KV("none", value.NewList()),
		value.KV("inf", value.NewNumber(math.Inf(1))),
		value.KV("big", value.NewNumber(1e300)),
		value.KV("tiny", value.NewNumber(1e-9)),
	)
	b, err := Marshal(v)
	require.NoError(t, err)
	back, err := Unmarshal(b)
	require.NoError(t, err)
	require.True(t, value.Equal(v, back), "round trip through\n%s", b)
	require.Equal(t, []string{"z", "strings", "flags", "empty", "none", "inf", "big", "tiny"},
		value.MustMapping(back).Keys())
}

func TestUnmarshal(t *testing.T) {
	v, err := Unmarshal([]byte(""))
	require.NoError(t, err)
	require.True(t, value.IsNull(v))

	v, err = Unmarshal([]byte("a: [1, two, true, ~]\nb: 0x1F\nc: 2001-12-14\nd: .NaN\n"))
	require.NoError(t, err)
	m := value.MustMapping(v)
	a, _ := m.Get("a")
	require.True(t, value.Equal(a, value.NewList(value.Num(1), value.NewString("two"),
		value.NewBool(true), value.NewNull())))
	b, _ := m.Get("b")
	require.Equal(t, value.Number(31), b)
	c, _ := m.Get("c")
	require.Equal(t, value.String("2001-12-14"), c)
	d, _ := m.Get("d")
	require.True(t, math.IsNaN(value.MustNumber(d)))
}

func TestAliases(t *testing.T) {
	v, err := Unmarshal([]byte("base: &b {x: 1}\nother: *b\n"))
	require.NoError(t, err)
	m := value.MustMapping(v)
	base, _ := m.Get("base")
	other, _ := m.Get("other")
	require.True(t, value.Equal(base, other))
	require.True(t, value.Equal(other, value.NewMapping(value.KV("x", value.Num(1)))))
}

func TestAliasExpansionBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("a: &a [x, x, x, x, x, x, x, x, x, x]\n")
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f", "g", "h", "i"} {
		sb.WriteString(name + ": &" + name + " [")
		for i := range 10 {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("*" + prev)
		}
		sb.WriteString("]\n")
		prev = name
	}
	_, err := Unmarshal([]byte(sb.String()))
	require.ErrorIs(t, err, ErrUnsupported)
	require.Contains(t, err.Error(), "aliases expand")

	// a few hundred expanded nodes are fine
	v, err := Unmarshal([]byte("a: &a [1, 2, 3]\nb: &b [*a, *a, *a]\nc: [*b, *b, *b]\n"))
	require.NoError(t, err)
	c, _ := value.MustMapping(v).Get("c")
	require.Equal(t, 3, value.MustList(c).Len())
}

func TestNilPointersAreNull(t *testing.T) {
	for _, v := range []value.T{(*value.List)(nil), (*value.Mapping)(nil),
		(*value.Procedure)(nil)} {
		n := ToNode(v)
		require.Equal(t, "!!null", n.Tag)
	}
	b, err := Marshal(value.NewList((*value.Mapping)(nil)))
	require.NoError(t, err)
	require.Equal(t, "- null\n", string(b))
}

func TestUnsupported(t *testing.T) {
	_, err := Unmarshal([]byte("? [1, 2]\n: x\n"))
	require.ErrorIs(t, err, ErrUnsupported)
	require.Contains(t, err.Error(), "line 1")

	_, err = Unmarshal([]byte("a: [1, 2"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnsupported)
}
