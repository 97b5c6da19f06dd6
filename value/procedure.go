package value

// EnvID is a handle to an environment owned outside of the value tree, see package environ.
// The zero EnvID means the procedure has no environment.
type EnvID uint64

// NoEnv is the EnvID of a procedure without an environment.
const NoEnv EnvID = 0

// Callable is the opaque code of a procedure. Rendering and parsing never call it.
type Callable interface {
	Call(env EnvID, args ...T) (T, error)
}

// CallableFunc adapts a function to Callable.
type CallableFunc func(env EnvID, args ...T) (T, error)

func (f CallableFunc) Call(env EnvID, args ...T) (T, error) { return f(env, args...) }

// Procedure is a first class function value. It refers to, but does not own, the
// environment it closes over.
type Procedure struct {
	Fn  Callable
	Env EnvID
}

func (*Procedure) Kind() Kind { return KindProcedure }
func (*Procedure) sealed()    {}

// NewProcedure wraps fn and the handle of its environment.
func NewProcedure(fn Callable, env EnvID) T { return &Procedure{Fn: fn, Env: env} }
