package pyrs

func (exec *Execution) callFunction(call *CallExpr, env *Env) (Value, error) {
	fn, ok := env.GetFunction(call.Name)
	if !ok {
		return NewNone(), exec.errorAt(NameError, call.Pos(), "name '%s' is not defined", call.Name)
	}

	args := make([]Value, len(call.Args))
	for i, argExpr := range call.Args {
		val, err := exec.evalExpression(argExpr, env)
		if err != nil {
			return NewNone(), err
		}
		args[i] = val
	}
	if len(args) != len(fn.Params) {
		return NewNone(), exec.errorAt(TypeError, call.Pos(), "%s() takes %d positional %s but %d %s given",
			fn.Name, len(fn.Params), plural(len(fn.Params), "argument", "arguments"),
			len(args), plural(len(args), "was", "were"))
	}

	parent := env
	if exec.scoping == ScopeLexical && fn.Env != nil {
		parent = fn.Env
	}
	frame := newEnv(parent)
	for i, name := range fn.Params {
		frame.Define(name, args[i].Clone())
	}

	if err := exec.pushFrame(fn.Name, call.Pos()); err != nil {
		return NewNone(), err
	}
	defer exec.popFrame()
	exec.pushEnv(frame)
	defer exec.popEnv()

	sig, err := exec.evalStatements(fn.Body, frame)
	if err != nil {
		return NewNone(), err
	}
	if sig != nil {
		return sig.value, nil
	}
	return NewNone(), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
