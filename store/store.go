// Package store is a badger database of named values. Each value is kept as its compact
// JSON rendering under the key "v:" + name.
package store

import (
	"bytes"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/pkg/errors"

	"variant.mleku.dev/context"
	"variant.mleku.dev/json"
	"variant.mleku.dev/lol"
	"variant.mleku.dev/units"
	"variant.mleku.dev/value"
)

var (
	// ErrNotFound is returned for a name that holds no value.
	ErrNotFound = errors.New("value not found")
	// ErrUnrepresentable is returned for a value holding a procedure, which would not
	// survive the trip through JSON.
	ErrUnrepresentable = errors.New("value holds a procedure")
	// ErrEmptyName is returned for an empty name.
	ErrEmptyName = errors.New("empty value name")
)

var prefix = []byte("v:")

func key(name string) (k []byte) {
	k = make([]byte, 0, len(prefix)+len(name))
	k = append(k, prefix...)
	return append(k, name...)
}

// Params configure Open.
type Params struct {
	// Path is the database directory, ignored when InMemory is set.
	Path string
	// InMemory keeps everything in memory, for tests and throwaway use.
	InMemory bool
	// LogLevel filters badger's own log output, one of the lol levels.
	LogLevel int
}

// T is an open value store. It is safe for concurrent use.
type T struct {
	*badger.DB
	path   string
	Logger *logger
}

// Open opens or creates the store described by p.
func Open(p Params) (s *T, err error) {
	s = &T{path: p.Path}
	label := p.Path
	if p.InMemory {
		label, s.path = "memory", ""
	}
	log.I.Ln("opening value store at", label)
	opts := badger.DefaultOptions(s.path).WithInMemory(p.InMemory)
	opts.Compression = options.None
	opts.BlockCacheSize = 16 * units.MiB
	opts.IndexCacheSize = 8 * units.MiB
	opts.MemTableSize = 16 * units.MiB
	s.Logger = NewLogger(p.LogLevel, label)
	opts.Logger = s.Logger
	if s.DB, err = badger.Open(opts); chk.E(err) {
		return nil, errors.Wrapf(err, "opening store %s", label)
	}
	return
}

// Path is the database directory, empty for an in memory store.
func (s *T) Path() string { return s.path }

// SetLogLevel changes the level of badger's log output.
func (s *T) SetLogLevel(level string) {
	s.Logger.SetLogLevel(lol.GetLogLevel(level))
}

// Put stores v under name, replacing what was there.
func (s *T) Put(name string, v value.T) (err error) {
	if name == "" {
		return ErrEmptyName
	}
	if value.ContainsProcedure(v) {
		return errors.Wrapf(ErrUnrepresentable, "'%s'", name)
	}
	var b []byte
	if b, err = json.Marshal(nil, v); chk.E(err) {
		return errors.Wrapf(err, "encoding '%s'", name)
	}
	log.T.F("put %s %s", name, b)
	return s.Update(func(txn *badger.Txn) error { return txn.Set(key(name), b) })
}

// Get loads the value stored under name.
func (s *T) Get(name string) (v value.T, err error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	var b []byte
	err = s.View(func(txn *badger.Txn) (err error) {
		var item *badger.Item
		if item, err = txn.Get(key(name)); err != nil {
			return
		}
		b, err = item.ValueCopy(nil)
		return
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "'%s'", name)
	}
	if chk.E(err) {
		return
	}
	if v, err = json.Parse(b); chk.E(err) {
		return nil, errors.Wrapf(err, "decoding '%s'", name)
	}
	return
}

// Delete removes name, it is an error if there was nothing to remove.
func (s *T) Delete(name string) (err error) {
	if name == "" {
		return ErrEmptyName
	}
	return s.Update(func(txn *badger.Txn) (err error) {
		if _, err = txn.Get(key(name)); errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrapf(ErrNotFound, "'%s'", name)
		} else if err != nil {
			return
		}
		return txn.Delete(key(name))
	})
}

// Names lists the stored names in key order.
func (s *T) Names() (names []string, err error) {
	err = s.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(bytes.TrimPrefix(it.Item().Key(), prefix)))
		}
		return nil
	})
	return
}

// Each calls fn with every stored value in name order. It stops at the first error from
// fn or when c is done.
func (s *T) Each(c context.T, fn func(name string, v value.T) error) (err error) {
	return s.View(func(txn *badger.Txn) (err error) {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         prefix,
		})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err = c.Err(); err != nil {
				return
			}
			item := it.Item()
			name := string(bytes.TrimPrefix(item.Key(), prefix))
			var v value.T
			if err = item.Value(func(val []byte) (err error) {
				v, err = json.Parse(val)
				return
			}); chk.E(err) {
				return errors.Wrapf(err, "decoding '%s'", name)
			}
			if err = fn(name, v); err != nil {
				return
			}
		}
		return
	})
}

// Close flushes and closes the database.
func (s *T) Close() (err error) {
	log.I.F("closing value store %s", s.path)
	if err = s.DB.Close(); chk.E(err) {
		return
	}
	log.D.F("value store closed")
	return
}
