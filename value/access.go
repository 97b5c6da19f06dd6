package value

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrWrongVariant is matched by every WrongVariantError.
var ErrWrongVariant = errors.New("wrong variant")

// WrongVariantError is returned when a payload is read under the wrong kind.
type WrongVariantError struct {
	Want []Kind
	Got  Kind
}

func (e *WrongVariantError) Error() string {
	want := ""
	for i, k := range e.Want {
		if i > 0 {
			want += " or "
		}
		want += k.String()
	}
	return fmt.Sprintf("value: expected %s, got %s", want, e.Got)
}

func (e *WrongVariantError) Is(target error) bool { return target == ErrWrongVariant }

func wrong(v T, want ...Kind) error {
	got := Kind(0)
	if v != nil {
		got = v.Kind()
	}
	return &WrongVariantError{Want: want, Got: got}
}

// Num makes a Number from any integer or float type.
func Num[N constraints.Integer | constraints.Float](n N) T { return Number(float64(n)) }

func AsSymbol(v T) (s string, err error) {
	if x, ok := v.(Symbol); ok {
		return string(x), nil
	}
	return "", wrong(v, KindSymbol)
}

func AsString(v T) (s string, err error) {
	if x, ok := v.(String); ok {
		return string(x), nil
	}
	return "", wrong(v, KindString)
}

// AsText returns the text of a Symbol or a String.
func AsText(v T) (s string, err error) {
	switch x := v.(type) {
	case Symbol:
		return string(x), nil
	case String:
		return string(x), nil
	}
	return "", wrong(v, KindSymbol, KindString)
}

func AsNumber(v T) (f float64, err error) {
	if x, ok := v.(Number); ok {
		return float64(x), nil
	}
	return 0, wrong(v, KindNumber)
}

func AsBool(v T) (b bool, err error) {
	if x, ok := v.(Bool); ok {
		return bool(x), nil
	}
	return false, wrong(v, KindBool)
}

func AsList(v T) (l *List, err error) {
	if x, ok := v.(*List); ok {
		return x, nil
	}
	return nil, wrong(v, KindList)
}

func AsMapping(v T) (m *Mapping, err error) {
	if x, ok := v.(*Mapping); ok {
		return x, nil
	}
	return nil, wrong(v, KindMapping)
}

func AsProcedure(v T) (p *Procedure, err error) {
	if x, ok := v.(*Procedure); ok {
		return x, nil
	}
	return nil, wrong(v, KindProcedure)
}

// IsNull reports whether v is Null, a nil T, or a nil *List, *Mapping or *Procedure. The
// renderers write all of them as null.
func IsNull(v T) bool {
	switch x := v.(type) {
	case nil, Null:
		return true
	case *List:
		return x == nil
	case *Mapping:
		return x == nil
	case *Procedure:
		return x == nil
	}
	return false
}

func must[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}

// The Must accessors panic with a *WrongVariantError instead of returning it.

func MustSymbol(v T) string        { return must[string](AsSymbol(v)) }
func MustString(v T) string        { return must[string](AsString(v)) }
func MustText(v T) string          { return must[string](AsText(v)) }
func MustNumber(v T) float64       { return must[float64](AsNumber(v)) }
func MustBool(v T) bool            { return must[bool](AsBool(v)) }
func MustList(v T) *List           { return must[*List](AsList(v)) }
func MustMapping(v T) *Mapping     { return must[*Mapping](AsMapping(v)) }
func MustProcedure(v T) *Procedure { return must[*Procedure](AsProcedure(v)) }
