// Package value is a dynamically tagged value: symbols, strings, numbers, booleans, null,
// ordered lists, ordered mappings and procedures.
//
// T is a sealed interface, every variant is its own Go type and only this package can add
// more, so a value always has exactly one kind and only the payload of that kind. Values
// are immutable once built: constructors copy what they are given and accessors hand out
// copies, so a tree never shares children with its caller.
package value

// Kind identifies the variant of a value.
type Kind uint8

const (
	KindSymbol Kind = iota + 1
	KindString
	KindNumber
	KindBool
	KindNull
	KindList
	KindMapping
	KindProcedure
)

var kindNames = map[Kind]string{
	KindSymbol:    "symbol",
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "bool",
	KindNull:      "null",
	KindList:      "list",
	KindMapping:   "mapping",
	KindProcedure: "procedure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// T is a value of any kind.
type T interface {
	// Kind reports which variant this is.
	Kind() Kind
	// sealed restricts implementations to this package.
	sealed()
}

// Symbol is an identifier or atom.
type Symbol string

// String is a textual literal.
type String string

// Number is a scalar quantity. Integers and fractions are not distinguished.
type Number float64

// Bool is true or false.
type Bool bool

// Null is the absence of a value.
type Null struct{}

func (Symbol) Kind() Kind { return KindSymbol }
func (String) Kind() Kind { return KindString }
func (Number) Kind() Kind { return KindNumber }
func (Bool) Kind() Kind   { return KindBool }
func (Null) Kind() Kind   { return KindNull }

func (Symbol) sealed() {}
func (String) sealed() {}
func (Number) sealed() {}
func (Bool) sealed()   {}
func (Null) sealed()   {}

func NewSymbol(s string) T  { return Symbol(s) }
func NewString(s string) T  { return String(s) }
func NewNumber(f float64) T { return Number(f) }
func NewBool(b bool) T      { return Bool(b) }
func NewNull() T            { return Null{} }
