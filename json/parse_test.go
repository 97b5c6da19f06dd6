package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"variant.mleku.dev/printer"
	"variant.mleku.dev/value"
)

func TestParseMapping(t *testing.T) {
	v, err := ParseString(`{"key1": 10, "key2": "value"}`)
	if err != nil {
		t.Fatal(err)
	}
	m, err := value.AsMapping(v)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	if k1, _ := m.Get("key1"); !value.Equal(k1, value.Num(10)) {
		t.Fatalf("key1 = %#v", k1)
	}
	if k2, _ := m.Get("key2"); !value.Equal(k2, value.NewString("value")) {
		t.Fatalf("key2 = %#v", k2)
	}
	s, err := String(v)
	if err != nil {
		t.Fatal(err)
	}
	if s != `{"key1":10,"key2":"value"}` {
		t.Fatalf("re-render %s", s)
	}
}

func TestParseListRendersAsText(t *testing.T) {
	v, err := ParseString(`[1,2,3]`)
	if err != nil {
		t.Fatal(err)
	}
	l := value.MustList(v)
	if l.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", l.Len())
	}
	l.Each(func(i int, e value.T) bool {
		if e.Kind() != value.KindNumber {
			t.Fatalf("element %d is a %s", i, e.Kind())
		}
		return true
	})
	if got := printer.String(v); got != "(1 2 3)" {
		t.Fatalf("textual render %q", got)
	}
}

func TestParseScalars(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want value.T
	}{
		{`true`, value.NewBool(true)},
		{`false`, value.NewBool(false)},
		{`null`, value.NewNull()},
		{` "x" `, value.NewString("x")},
		{"\t\r\n-2.5e1\n", value.NewNumber(-25)},
		{`0`, value.Num(0)},
		{`"é\n\/"`, value.NewString("é\n/")},
		{`"<procedure>"`, value.NewString("<procedure>")},
		{`[]`, value.NewList()},
		{`{}`, value.NewMapping()},
		{`[ [ ] , { } ]`, value.NewList(value.NewList(), value.NewMapping())},
		{`{"a":{"b":[null,true]}}`, value.NewMapping(value.KV("a", value.NewMapping(
			value.KV("b", value.NewList(value.NewNull(), value.NewBool(true))))))},
	} {
		v, err := ParseString(tc.in)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", tc.in, err)
		}
		if !value.Equal(v, tc.want) {
			t.Errorf("ParseString(%q) = %#v, want %#v", tc.in, v, tc.want)
		}
	}
}

func TestParseKeepsKeyOrder(t *testing.T) {
	v, err := ParseString(`{"z":1,"a":2,"m":3}`)
	if err != nil {
		t.Fatal(err)
	}
	keys := value.MustMapping(v).Keys()
	if strings.Join(keys, ",") != "z,a,m" {
		t.Fatalf("key order %v", keys)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, tc := range []struct {
		in     string
		offset int
	}{
		{`{`, 1},
		{`[1,2`, 4},
		{`{"a":}`, 5},
		{`nul`, 3},
		{`nulL`, 3},
		{`[1,]`, 3},
		{`{"a":1,}`, 7},
		{`"abc`, 4},
		{`"\x"`, 1},
		{`01`, 1},
		{`1.`, 2},
		{`-`, 1},
		{`+1`, 0},
		{`NaN`, 0},
		{`Infinity`, 0},
		{`1e400`, 0},
		{`[1 2]`, 3},
		{`{"a" 1}`, 5},
		{`{1:2}`, 1},
		{`]`, 0},
		{``, 0},
		{`   `, 3},
		{`{"a":1}}`, 7},
		{`[[[`, 3},
		{"\"tab\there\"", 4},
		{"[\"\xff\"]", 2},
		{`{"a":1 "b":2}`, 7},
		{`truex`, 4},
	} {
		v, err := ParseString(tc.in)
		if err == nil {
			t.Fatalf("ParseString(%q) accepted malformed input as %#v", tc.in, v)
		}
		if v != nil {
			t.Errorf("ParseString(%q) returned a partial value %#v", tc.in, v)
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseString(%q) error is not ErrMalformed: %v", tc.in, err)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("ParseString(%q) error %T is not *SyntaxError", tc.in, err)
		}
		if se.Offset != tc.offset {
			t.Errorf("ParseString(%q) offset %d, want %d: %s", tc.in, se.Offset,
				tc.offset, se.Reason)
		}
	}
}

func TestSyntaxErrorLocation(t *testing.T) {
	_, err := ParseString("[\n  1,\n  ]")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("unexpected error %v", err)
	}
	if se.Offset != 9 || se.Line != 3 || se.Column != 3 {
		t.Fatalf("got offset %d line %d column %d", se.Offset, se.Line, se.Column)
	}
	want := "json: trailing comma in array at offset 9 (line 3, column 3)"
	if se.Error() != want {
		t.Fatalf("got %q want %q", se.Error(), want)
	}
}

func TestMaxDepth(t *testing.T) {
	if _, err := ParseString(`[[1]]`, WithMaxDepth(2)); err != nil {
		t.Fatal(err)
	}
	_, err := ParseString(`[[[1]]]`, WithMaxDepth(2))
	var se *SyntaxError
	if !errors.As(err, &se) || se.Offset != 2 {
		t.Fatalf("expected depth error at offset 2, got %v", err)
	}
	deep := strings.Repeat("[", DefaultMaxDepth) + strings.Repeat("]", DefaultMaxDepth)
	if _, err = ParseString(deep); err != nil {
		t.Fatalf("default depth: %v", err)
	}
	if _, err = ParseString("[" + deep + "]"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected depth error, got %v", err)
	}
	if _, err = ParseString(`{"a":{"b":{}}}`, WithMaxDepth(2)); err == nil {
		t.Fatal("objects must count toward depth")
	}
}

func TestDuplicateKeys(t *testing.T) {
	v, err := ParseString(`{"a":1,"b":2,"a":3}`)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := String(v); s != `{"a":3,"b":2}` {
		t.Fatalf("got %s", s)
	}
	_, err = ParseString(`{"a":1,"b":2,"a":3}`, DisallowDuplicateKeys())
	var se *SyntaxError
	if !errors.As(err, &se) || se.Offset != 13 {
		t.Fatalf("expected duplicate key error at 13, got %v", err)
	}
}

func TestUnmarshalSequence(t *testing.T) {
	rem := []byte(`1 [2] {"a":3}  `)
	var got []string
	for len(bytes.TrimSpace(rem)) > 0 {
		var v value.T
		var err error
		if v, rem, err = Unmarshal(rem); err != nil {
			t.Fatal(err)
		}
		got = append(got, printer.String(v))
	}
	if strings.Join(got, "|") != `1|(2)|{ "a": 3 }` {
		t.Fatalf("got %v", got)
	}
	in := []byte(`[1,`)
	v, r, err := Unmarshal(in)
	if err == nil || v != nil || !bytes.Equal(r, in) {
		t.Fatalf("failed Unmarshal returned %v %q %v", v, r, err)
	}
}

func TestRoundTripExact(t *testing.T) {
	v := value.NewMapping(
		value.KV("ints", value.NewList(value.Num(1), value.NewNumber(2.5),
			value.NewNumber(-3.0))),
		value.KV("text", value.NewString("quote \" slash \\ nl \n tab \t")),
		value.KV("flags", value.NewList(value.NewBool(true), value.NewNull())),
		value.KV("", value.NewMapping()),
	)
	b, err := Marshal(nil, v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(v, back) {
		t.Fatalf("round trip through %s changed the value", b)
	}
	if b, err = MarshalIndent(nil, v, "", "    "); err != nil {
		t.Fatal(err)
	}
	if back, err = Parse(b); err != nil {
		t.Fatal(err)
	}
	if !value.Equal(v, back) {
		t.Fatalf("round trip through indented %s changed the value", b)
	}
}

func TestProcedureIsOneWay(t *testing.T) {
	v := value.NewList(value.NewProcedure(nil, 1))
	b, err := Marshal(nil, v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(back, value.NewList(value.NewString(ProcedureSentinel))) {
		t.Fatalf("procedure came back as %#v", back)
	}
}

var specials = []string{`"`, `\`, "\n", "\t", "\r", "\b", "\f", "\x00", "/", "é", "☃", "😀",
	" "}

func randString() string {
	var sb strings.Builder
	for range frand.Intn(12) {
		if frand.Intn(2) == 0 {
			sb.WriteString(specials[frand.Intn(len(specials))])
		} else {
			sb.WriteByte(byte(frand.Intn(0x5f) + 0x20))
		}
	}
	return sb.String()
}

// randValue builds a procedure free tree.
func randValue(depth int) value.T {
	n := 6
	if depth > 3 {
		n = 4
	}
	switch frand.Intn(n) {
	case 0:
		if frand.Intn(3) == 0 {
			return value.NewSymbol(randString())
		}
		return value.NewString(randString())
	case 1:
		if frand.Intn(2) == 0 {
			return value.Num(frand.Intn(1<<20) - 1<<19)
		}
		return value.NewNumber(float64(frand.Intn(1<<30)) / 1024)
	case 2:
		return value.NewBool(frand.Intn(2) == 0)
	case 3:
		return value.NewNull()
	case 4:
		items := make([]value.T, frand.Intn(5))
		for i := range items {
			items[i] = randValue(depth + 1)
		}
		return value.NewList(items...)
	default:
		entries := make([]value.KeyValue, frand.Intn(5))
		for i := range entries {
			entries[i] = value.KV(randString(), randValue(depth+1))
		}
		return value.NewMapping(entries...)
	}
}

func TestRandomRoundTrip(t *testing.T) {
	for range 2000 {
		v := randValue(0)
		b, err := Marshal(nil, v)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range b {
			if c < 0x20 {
				t.Fatalf("raw control byte in %q", b)
			}
		}
		back, err := Parse(b)
		if err != nil {
			t.Fatalf("Parse(%s): %v", b, err)
		}
		if !value.Equal(v, back) {
			t.Fatalf("round trip changed value, rendered as %s", b)
		}
		again, err := Marshal(nil, back)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, again) {
			t.Fatalf("second render differs\n%s\n%s", b, again)
		}
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	v := value.NewList(value.NewSymbol("define"), value.Num(1),
		value.NewMapping(value.KV("op", value.NewSymbol("+"))))
	b, err := Marshal(nil, v)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["define",1,{"op":"+"}]` {
		t.Fatalf("got %s", b)
	}
	back, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(v, back) {
		t.Fatalf("symbols did not read back equal from %s", b)
	}
	first := value.MustList(back).Items()[0]
	if first.Kind() != value.KindString {
		t.Fatalf("symbol read back as %s", first.Kind())
	}
}

func TestDocumentCodec(t *testing.T) {
	doc := &Document{}
	rem, err := doc.Unmarshal([]byte(`{"k":[1,"two"]} tail`))
	if err != nil {
		t.Fatal(err)
	}
	if string(rem) != " tail" {
		t.Fatalf("remainder %q", rem)
	}
	b, err := doc.Marshal(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"k":[1,"two"]}` {
		t.Fatalf("marshal %s", b)
	}
	if got := string(doc.AppendText(nil)); got != `{ "k": (1 two) }` {
		t.Fatalf("text %s", got)
	}
	strict := &Document{Opts: []Option{DisallowDuplicateKeys()}}
	if _, err = strict.Unmarshal([]byte(`{"a":1,"a":2}`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if strict.V != nil {
		t.Fatal("failed Unmarshal set the document value")
	}
}
