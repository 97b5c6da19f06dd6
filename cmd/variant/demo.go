package main

import (
	"fmt"
	"io"

	"variant.mleku.dev/chk"
	"variant.mleku.dev/environ"
	"variant.mleku.dev/json"
	"variant.mleku.dev/printer"
	"variant.mleku.dev/value"
)

// examples are the values the demo prints, in order.
func examples() []value.T {
	return []value.T{
		value.Num(42),
		value.NewNumber(3.14),
		value.NewString("Hello, World!"),
		value.NewList(value.Num(1), value.Num(2), value.Num(3)),
		value.NewMapping(
			value.KV("key1", value.Num(10)),
			value.KV("key2", value.NewString("value")),
		),
	}
}

// sum adds its numeric arguments to the number bound to "offset" in its environment.
func sum(reg *environ.Registry) value.CallableFunc {
	return func(id value.EnvID, a ...value.T) (r value.T, err error) {
		var total float64
		if e, ok := reg.Lookup(id); ok {
			var off value.T
			if off, err = e.Get("offset"); chk.E(err) {
				return
			}
			if total, err = value.AsNumber(off); chk.E(err) {
				return
			}
		}
		for _, v := range a {
			var f float64
			if f, err = value.AsNumber(v); chk.E(err) {
				return
			}
			total += f
		}
		return value.NewNumber(total), nil
	}
}

func demo(out io.Writer) (err error) {
	vs := examples()
	for i, v := range vs {
		if _, err = fmt.Fprintf(out, "v%d: %s\n", i+1, printer.String(v)); err != nil {
			return
		}
	}
	var js string
	if js, err = json.String(vs[len(vs)-1]); chk.E(err) {
		return
	}
	if _, err = fmt.Fprintf(out, "v%d (JSON): %s\n", len(vs), js); err != nil {
		return
	}
	// a procedure closing over an environment it does not own
	reg := environ.NewRegistry()
	id := reg.New(value.NoEnv)
	defer reg.Release(id)
	var e *environ.T
	e, _ = reg.Lookup(id)
	e.Set("offset", value.Num(100))
	proc := value.NewProcedure(sum(reg), id)
	if js, err = json.String(proc); chk.E(err) {
		return
	}
	if _, err = fmt.Fprintf(out, "v6: %s\nv6 (JSON): %s\n", printer.String(proc), js); err != nil {
		return
	}
	var p *value.Procedure
	if p, err = value.AsProcedure(proc); chk.E(err) {
		return
	}
	list := vs[3].(*value.List)
	var r value.T
	if r, err = p.Fn.Call(p.Env, list.Items()...); chk.E(err) {
		return
	}
	_, err = fmt.Fprintf(out, "v6 %s: %s\n", printer.String(list), printer.String(r))
	return
}
