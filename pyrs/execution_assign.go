package pyrs

func (exec *Execution) assignVariable(stmt *AssignStmt, env *Env) error {
	val, err := exec.evalExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	val = val.Clone()
	env.Define(stmt.Name, val)
	if val.Kind() == KindList {
		return exec.checkMemory(stmt.Pos())
	}
	return nil
}

// assignListElement evaluates the value, then the index, and stores into the
// list bound in the nearest frame that owns the name.
func (exec *Execution) assignListElement(stmt *ListAssignStmt, env *Env) error {
	val, err := exec.evalExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	index, err := exec.evalExpression(stmt.Index, env)
	if err != nil {
		return err
	}

	owner := env.owner(stmt.Name)
	if owner == nil {
		return exec.errorAt(NameError, stmt.Pos(), "name '%s' is not defined", stmt.Name)
	}
	target := owner.values[stmt.Name]
	i, err := exec.listIndex(target, index, stmt.Index.Pos(), "list assignment index")
	if err != nil {
		return err
	}

	val = val.Clone()
	target.List()[i] = val
	if val.Kind() == KindList {
		return exec.checkMemory(stmt.Pos())
	}
	return nil
}

func (exec *Execution) evalIndex(expr *IndexExpr, env *Env) (Value, error) {
	index, err := exec.evalExpression(expr.Index, env)
	if err != nil {
		return NewNone(), err
	}
	target, err := env.Lookup(expr.Name, expr.Pos())
	if err != nil {
		return NewNone(), exec.annotate(err)
	}
	i, err := exec.listIndex(target, index, expr.Index.Pos(), "list index")
	if err != nil {
		return NewNone(), err
	}
	return target.List()[i], nil
}

// listIndex validates index against target and returns it as a slice
// offset. Negative indexes are rejected rather than counted from the end.
func (exec *Execution) listIndex(target, index Value, pos Position, label string) (int, error) {
	if index.Kind() != KindInt {
		return 0, exec.errorAt(TypeError, pos, "list indices must be integers, not '%s'", index.TypeName())
	}
	if target.Kind() != KindList {
		return 0, exec.errorAt(TypeError, pos, "'%s' object is not subscriptable", target.TypeName())
	}
	n := index.bigInt()
	length := len(target.List())
	if n.Sign() < 0 {
		return 0, exec.errorAt(IndexError, pos, "%s %d is negative", label, n)
	}
	if !n.IsInt64() || n.Int64() >= int64(length) {
		return 0, exec.errorAt(IndexError, pos, "%s %d out of range (length %d)", label, n, length)
	}
	return int(n.Int64()), nil
}
