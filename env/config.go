// Package env is an implementation of the env.Source interface from go-simpler.org that
// reads a .env file.
package env

import (
	"os"
	"strings"

	"variant.mleku.dev/chk"
)

// Env is a key/value map used to represent environment variables.
type Env map[string]string

// GetEnv reads a file of KEY=value lines in shell format. Blank lines and lines starting
// with # are skipped, an "export " prefix is allowed and a value wrapped in single or double
// quotes is unwrapped, so the output of keyvalue.PrintEnv reads back unchanged.
func GetEnv(path string) (env Env, err error) {
	var s []byte
	env = make(Env)
	if s, err = os.ReadFile(path); chk.T(err) {
		return
	}
	return Parse(string(s)), nil
}

// Parse reads KEY=value lines, see GetEnv.
func Parse(s string) (env Env) {
	env = make(Env)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		split := strings.SplitN(line, "=", 2)
		if len(split) != 2 {
			continue
		}
		env[strings.TrimSpace(split[0])] = unquote(strings.TrimSpace(split[1]))
	}
	return
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		inner := v[1 : len(v)-1]
		if v[0] == '\'' {
			return strings.ReplaceAll(inner, `'\''`, `'`)
		}
		return inner
	}
	return v
}

// LookupEnv returns the raw string value associated with a provided key name,
// used as a custom environment variable loader for go-simpler.org/env to enable
// .env file loading.
func (env Env) LookupEnv(key string) (value string, ok bool) {
	value, ok = env[key]
	return
}

// Source is what go-simpler.org/env reads variables from.
type Source interface {
	LookupEnv(key string) (value string, ok bool)
}

// Process reads the environment of the running process.
type Process struct{}

// LookupEnv is os.LookupEnv.
func (Process) LookupEnv(key string) (value string, ok bool) { return os.LookupEnv(key) }

// Layer looks a key up in Env first and falls back to Under.
type Layer struct {
	Env
	Under Source
}

// LookupEnv returns the value from the file if it sets key, otherwise from Under.
func (l Layer) LookupEnv(key string) (value string, ok bool) {
	if value, ok = l.Env.LookupEnv(key); ok {
		return
	}
	if l.Under == nil {
		return
	}
	return l.Under.LookupEnv(key)
}
