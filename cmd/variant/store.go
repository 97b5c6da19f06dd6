package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"variant.mleku.dev/chk"
	"variant.mleku.dev/config"
	"variant.mleku.dev/context"
	"variant.mleku.dev/json"
	"variant.mleku.dev/lol"
	"variant.mleku.dev/store"
	"variant.mleku.dev/value"
	"variant.mleku.dev/yml"
)

func openStore(cfg *config.C) (s *store.T, err error) {
	return store.Open(store.Params{
		Path:     cfg.StorePath(),
		LogLevel: lol.GetLogLevel(cfg.DBLogLevel),
	})
}

// withStore opens the store, runs fn and closes the store again.
func withStore(cfg *config.C, fn func(s *store.T) error) (err error) {
	var s *store.T
	if s, err = openStore(cfg); err != nil {
		return
	}
	defer func() {
		if cerr := s.Close(); chk.E(cerr) && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func put(p *putCmd, cfg *config.C, in io.Reader) (err error) {
	var b []byte
	if p.File == "" {
		b, err = readLimited(in)
	} else {
		b, err = readFile(p.File)
	}
	if chk.E(err) {
		return
	}
	var v value.T
	if p.YAML {
		v, err = yml.Unmarshal(b)
	} else {
		v, err = json.Parse(b, json.WithMaxDepth(cfg.MaxDepth))
	}
	if err != nil {
		return errors.Wrapf(err, "reading value for %s", p.Name)
	}
	return withStore(cfg, func(s *store.T) error { return s.Put(p.Name, v) })
}

func get(g *getCmd, cfg *config.C, out io.Writer) (err error) {
	return withStore(cfg, func(s *store.T) (err error) {
		var v value.T
		if v, err = s.Get(g.Name); err != nil {
			return
		}
		var b []byte
		if g.YAML {
			b, err = yml.Marshal(v)
		} else if b, err = renderJSON(v, cfg.Indent); err == nil {
			b = append(b, '\n')
		}
		if chk.E(err) {
			return
		}
		_, err = out.Write(b)
		return
	})
}

func list(c context.T, cfg *config.C, out io.Writer) (err error) {
	return withStore(cfg, func(s *store.T) error {
		return s.Each(c, func(name string, v value.T) (err error) {
			_, err = fmt.Fprintf(out, "%s\t%s\n", name, v.Kind())
			return
		})
	})
}

func del(d *delCmd, cfg *config.C) (err error) {
	return withStore(cfg, func(s *store.T) error { return s.Delete(d.Name) })
}
