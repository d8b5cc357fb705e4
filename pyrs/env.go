package pyrs

import "sort"

// Function is a user-defined function captured by a def statement.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
	Pos    Position
	// Env is the frame in which the def ran. Calls use it as the parent
	// frame only under ScopeLexical.
	Env *Env
}

// Env is one scope frame: variable and function bindings plus a link to the
// enclosing frame. Lookups walk outward; definitions only touch this frame.
type Env struct {
	parent    *Env
	values    map[string]Value
	functions map[string]*Function
}

func newEnv(parent *Env) *Env {
	return &Env{
		parent:    parent,
		values:    make(map[string]Value),
		functions: make(map[string]*Function),
	}
}

func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Lookup is Get with the NameError a failed reference at pos produces.
func (e *Env) Lookup(name string, pos Position) (Value, error) {
	if val, ok := e.Get(name); ok {
		return val, nil
	}
	return Value{}, newError(NameError, pos, "name '%s' is not defined", name)
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Env) DefineFunction(fn *Function) {
	e.functions[fn.Name] = fn
}

func (e *Env) GetFunction(name string) (*Function, bool) {
	for env := e; env != nil; env = env.parent {
		if fn, ok := env.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// owner returns the nearest frame that binds the variable name.
func (e *Env) owner(name string) *Env {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env
		}
	}
	return nil
}

// Names lists every visible variable and function name, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.parent {
		for name := range env.values {
			seen[name] = struct{}{}
		}
		for name := range env.functions {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variables returns the variables visible from this frame, inner bindings
// shadowing outer ones.
func (e *Env) Variables() map[string]Value {
	out := make(map[string]Value)
	for env := e; env != nil; env = env.parent {
		for name, val := range env.values {
			if _, ok := out[name]; !ok {
				out[name] = val
			}
		}
	}
	return out
}
