// Package environ holds the symbol tables that procedures refer to by handle.
//
// A value.Procedure never owns its environment, it only carries a value.EnvID. The
// Registry owns the tables and is passed explicitly to whoever needs to resolve a handle;
// there is no process wide environment.
package environ

import (
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"variant.mleku.dev/value"
)

var (
	// ErrNotFound is matched by the error of a lookup of an unbound symbol.
	ErrNotFound = errors.New("symbol not found")
	// ErrReleased is returned when an environment handle no longer resolves.
	ErrReleased = errors.New("environment released")
)

// T is one symbol table with an optional outer table that lookups fall back to.
type T struct {
	id    value.EnvID
	outer value.EnvID
	reg   *Registry
	vars  *xsync.MapOf[string, value.T]
}

// ID is the handle of this environment.
func (e *T) ID() value.EnvID { return e.id }

// Outer is the handle of the enclosing environment, value.NoEnv at the top.
func (e *T) Outer() value.EnvID { return e.outer }

// Set binds name to v in this environment.
func (e *T) Set(name string, v value.T) {
	if v == nil {
		v = value.NewNull()
	}
	e.vars.Store(name, v)
}

// Get finds name in this environment or the nearest enclosing one that binds it.
func (e *T) Get(name string) (v value.T, err error) {
	for cur := e; ; {
		var ok bool
		if v, ok = cur.vars.Load(name); ok {
			return
		}
		if cur.outer == value.NoEnv {
			break
		}
		next, found := e.reg.Lookup(cur.outer)
		if !found {
			err = errors.Wrapf(ErrReleased, "outer environment %d of %d", cur.outer, e.id)
			return
		}
		cur = next
	}
	err = errors.Wrapf(ErrNotFound, "'%s'", name)
	return
}

// Has reports whether name is bound in this environment, ignoring outer ones.
func (e *T) Has(name string) bool {
	_, ok := e.vars.Load(name)
	return ok
}

// Delete unbinds name from this environment.
func (e *T) Delete(name string) { e.vars.Delete(name) }

// Names returns the names bound in this environment, sorted.
func (e *T) Names() (names []string) {
	e.vars.Range(func(k string, _ value.T) bool {
		names = append(names, k)
		return true
	})
	sort.Strings(names)
	return
}

// Registry owns environments and hands out handles to them. It is safe for concurrent use.
type Registry struct {
	next atomic.Uint64
	envs *xsync.MapOf[value.EnvID, *T]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{envs: xsync.NewMapOf[value.EnvID, *T]()}
}

// New creates an environment enclosed by outer, which may be value.NoEnv.
func (r *Registry) New(outer value.EnvID) value.EnvID {
	id := value.EnvID(r.next.Add(1))
	r.envs.Store(id, &T{
		id:    id,
		outer: outer,
		reg:   r,
		vars:  xsync.NewMapOf[string, value.T](),
	})
	log.T.F("created environment %d outer %d", id, outer)
	return id
}

// Lookup resolves a handle.
func (r *Registry) Lookup(id value.EnvID) (e *T, ok bool) {
	if id == value.NoEnv {
		return
	}
	return r.envs.Load(id)
}

// Resolve returns the environment a procedure refers to.
func (r *Registry) Resolve(p *value.Procedure) (e *T, err error) {
	var ok bool
	if e, ok = r.Lookup(p.Env); !ok {
		err = errors.Wrapf(ErrReleased, "environment %d", p.Env)
	}
	return
}

// Release drops an environment. Procedures that still refer to it will fail to resolve.
func (r *Registry) Release(id value.EnvID) {
	if _, ok := r.envs.LoadAndDelete(id); ok {
		log.T.F("released environment %d", id)
	}
}

// Len is the number of live environments.
func (r *Registry) Len() int { return r.envs.Size() }
