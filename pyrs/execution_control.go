package pyrs

// Blocks do not open a scope: if and while bodies run in the enclosing frame.

func (exec *Execution) evalIf(stmt *IfStmt, env *Env) (*returnSignal, error) {
	cond, err := exec.evalExpression(stmt.Condition, env)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return exec.evalStatements(stmt.Consequent, env)
	}
	if stmt.Alternate != nil {
		return exec.evalStatements(stmt.Alternate, env)
	}
	return nil, nil
}

func (exec *Execution) evalWhile(stmt *WhileStmt, env *Env) (*returnSignal, error) {
	for {
		if err := exec.step(); err != nil {
			return nil, err
		}
		cond, err := exec.evalExpression(stmt.Condition, env)
		if err != nil {
			return nil, err
		}
		if !cond.Truthy() {
			return nil, nil
		}
		sig, err := exec.evalStatements(stmt.Body, env)
		if err != nil || sig != nil {
			return sig, err
		}
	}
}
