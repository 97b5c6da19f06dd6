// Package keyvalue converts a config struct tagged for go-simpler.org/env into a sortable
// slice of key/values, and prints them as a shell script that sets the variables.
package keyvalue

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// EnvKV turns a struct with `env` keys into a key/value list. Note you must dereference a
// pointer type to use this.
func EnvKV(cfg any) (m KVSlice) {
	t := reflect.TypeOf(cfg)
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		// this can happen with embedded structs
		if k == "" {
			continue
		}
		v := reflect.ValueOf(cfg).Field(i).Interface()
		var val string
		switch x := v.(type) {
		case string:
			val = x
		case int, int64, int32, uint64, uint32, bool, time.Duration:
			val = fmt.Sprint(x)
		case []string:
			val = strings.Join(x, ",")
		}
		m = append(m, KV{k, val})
	}
	return
}

// shellQuote wraps v in single quotes so any content survives the shell.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// PrintEnv renders the key/values of a config struct to a provided io.Writer.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, shellQuote(v.Value))
	}
}
