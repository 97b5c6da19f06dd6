package printer_test

import (
	"fmt"

	"variant.mleku.dev/printer"
	"variant.mleku.dev/value"
)

func ExampleString() {
	fmt.Println(printer.String(value.Num(42)))
	fmt.Println(printer.String(value.NewNumber(3.14)))
	fmt.Println(printer.String(value.NewString("Hello, World!")))
	fmt.Println(printer.String(value.NewList(value.Num(1), value.Num(2), value.Num(3))))
	fmt.Println(printer.String(value.NewMapping(
		value.KV("key1", value.Num(10)),
		value.KV("key2", value.NewString("value")),
	)))
	// Output:
	// 42
	// 3.14
	// Hello, World!
	// (1 2 3)
	// { "key1": 10, "key2": value }
}
