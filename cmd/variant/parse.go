package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"variant.mleku.dev/chk"
	"variant.mleku.dev/config"
	"variant.mleku.dev/context"
	"variant.mleku.dev/errorf"
	"variant.mleku.dev/json"
	"variant.mleku.dev/log"
	"variant.mleku.dev/printer"
	"variant.mleku.dev/units"
	"variant.mleku.dev/value"
	"variant.mleku.dev/yml"
)

// MaxInput is the largest input read from one file or standard input.
const MaxInput = 64 * units.Mb

// readLimited reads all of r, failing if it holds more than MaxInput bytes.
func readLimited(r io.Reader) (b []byte, err error) {
	if b, err = io.ReadAll(io.LimitReader(r, MaxInput+1)); err != nil {
		return
	}
	if len(b) > MaxInput {
		return nil, errorf.E("input is larger than %s", units.Format(MaxInput))
	}
	return
}

func readFile(name string) (b []byte, err error) {
	var f *os.File
	if f, err = os.Open(name); err != nil {
		return
	}
	defer f.Close()
	return readLimited(f)
}

type input struct {
	name   string
	values []value.T
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// parseAll reads every JSON value in b, which may hold several separated by whitespace.
// Values that touch, such as [1][2], are an error.
func parseAll(b []byte, opts ...json.Option) (vs []value.T, err error) {
	rem := bytes.TrimSpace(b)
	if len(rem) == 0 {
		return nil, errors.Wrap(json.ErrMalformed, "no value in input")
	}
	for len(rem) > 0 {
		var v value.T
		var next []byte
		if v, next, err = json.Unmarshal(rem, opts...); err != nil {
			return
		}
		if len(next) > 0 && !isSpace(next[0]) {
			return nil, errors.Wrapf(json.ErrMalformed,
				"no whitespace between values at offset %d", len(b)-len(next))
		}
		vs = append(vs, v)
		rem = bytes.TrimSpace(next)
	}
	return
}

// readInputs parses the named files concurrently, or in when there are none. The results
// keep the order of the names.
func readInputs(c context.T, files []string, in io.Reader, opts ...json.Option) (
	inputs []input, err error) {

	if len(files) == 0 {
		var b []byte
		if b, err = readLimited(in); chk.E(err) {
			return
		}
		var vs []value.T
		if vs, err = parseAll(b, opts...); err != nil {
			return nil, errors.Wrap(err, "stdin")
		}
		return []input{{name: "stdin", values: vs}}, nil
	}
	inputs = make([]input, len(files))
	g, ctx := errgroup.WithContext(c)
	for i, name := range files {
		g.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}
			var b []byte
			if b, err = readFile(name); err != nil {
				return
			}
			log.D.F("parsing %s from %s", units.Format(int64(len(b))), name)
			var vs []value.T
			if vs, err = parseAll(b, opts...); err != nil {
				return errors.Wrap(err, name)
			}
			inputs[i] = input{name: name, values: vs}
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}

func renderJSON(v value.T, indent string) (b []byte, err error) {
	if indent == "" {
		return json.Marshal(nil, v)
	}
	return json.MarshalIndent(nil, v, "", indent)
}

func parse(c context.T, p *parseCmd, cfg *config.C, in io.Reader, out io.Writer) (err error) {
	opts := []json.Option{json.WithMaxDepth(cfg.MaxDepth)}
	if p.Strict {
		opts = append(opts, json.DisallowDuplicateKeys())
	}
	indent := cfg.Indent
	if p.Indent != "" {
		indent = p.Indent
	}
	var inputs []input
	if inputs, err = readInputs(c, p.Files, in, opts...); err != nil {
		return
	}
	for _, inp := range inputs {
		for i, v := range inp.values {
			label := inp.name
			if len(inp.values) > 1 {
				label = fmt.Sprintf("%s[%d]", inp.name, i)
			}
			var b []byte
			if b, err = renderJSON(v, indent); chk.E(err) {
				return
			}
			if _, err = fmt.Fprintf(out, "%s: %s\n%s (JSON): %s\n", label,
				printer.String(v), label, b); err != nil {
				return
			}
			if !p.YAML {
				continue
			}
			if b, err = yml.Marshal(v); chk.E(err) {
				return
			}
			if _, err = fmt.Fprintf(out, "%s (YAML):\n%s", label, b); err != nil {
				return
			}
		}
	}
	return
}
