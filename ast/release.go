package ast

// Teardown. A root is released by whoever holds it; releasing walks the
// whole subtree, children before parents, and returns every node, list
// cell and owned string to the ledger. Releasing a nil root does nothing.

func (t *Tree) ReleaseClassList(list *ClassList) error {
	return releaseRootList(t, "ReleaseClassList", list)
}

// ReleaseFeatureList releases a feature list not yet handed to a class.
func (t *Tree) ReleaseFeatureList(list *FeatureList) error {
	return releaseRootList(t, "ReleaseFeatureList", list)
}

// ReleaseFormalList releases a formal list not yet handed to a method.
func (t *Tree) ReleaseFormalList(list *FormalList) error {
	return releaseRootList(t, "ReleaseFormalList", list)
}

// ReleaseExprList releases an expression list that has no owner.
func (t *Tree) ReleaseExprList(list *ExprList) error {
	return releaseRootList(t, "ReleaseExprList", list)
}

// ReleaseCaseList releases a branch list that has no owner.
func (t *Tree) ReleaseCaseList(list *CaseList) error {
	return releaseRootList(t, "ReleaseCaseList", list)
}

// ReleaseClass releases a class that was never linked into a list.
func (t *Tree) ReleaseClass(c *Class) error {
	if c == nil {
		return nil
	}
	return t.releaseRoot("ReleaseClass", c)
}

// ReleaseFeature releases a feature that was never linked into a list.
func (t *Tree) ReleaseFeature(f *Feature) error {
	if f == nil {
		return nil
	}
	return t.releaseRoot("ReleaseFeature", f)
}

func (t *Tree) ReleaseFormal(f *Formal) error {
	if f == nil {
		return nil
	}
	return t.releaseRoot("ReleaseFormal", f)
}

// ReleaseCase releases a branch that was never linked into a list.
func (t *Tree) ReleaseCase(c *Case) error {
	if c == nil {
		return nil
	}
	return t.releaseRoot("ReleaseCase", c)
}

// ReleaseExpr releases an expression that has no owner yet, such as one
// abandoned half way through parsing.
func (t *Tree) ReleaseExpr(e Expr) error {
	if absent(e) {
		return nil
	}
	return t.releaseRoot("ReleaseExpr", e)
}

func releaseRootList[T node](t *Tree, op string, list *List[T]) error {
	if list == nil {
		return nil
	}
	return t.releaseRoot(op, list)
}

func (t *Tree) releaseRoot(op string, n node) error {
	h := n.hdr()
	switch {
	case h.tree != t:
		return t.fail(newError(AliasedNode, op, "root belongs to another tree"))
	case h.released:
		return t.fail(newError(AliasedNode, op, "root was already released"))
	case h.owned:
		return t.fail(newError(AliasedNode, op, "root is owned by another node"))
	}
	t.release(n)
	return nil
}

func releaseList[T node](t *Tree, list *List[T]) {
	if list == nil {
		return
	}
	for _, item := range list.items {
		t.release(item)
	}
	t.free(&list.h)
}

// release frees n after everything it owns.
func (t *Tree) release(n node) {
	switch n := n.(type) {
	case *ClassList:
		releaseList(t, n)
		return
	case *FeatureList:
		releaseList(t, n)
		return
	case *FormalList:
		releaseList(t, n)
		return
	case *ExprList:
		releaseList(t, n)
		return
	case *CaseList:
		releaseList(t, n)
		return
	case *Class:
		releaseList(t, n.features)
	case *Feature:
		releaseList(t, n.formals)
		t.releaseExpr(n.body)
	case *Formal:
	case *Case:
		t.releaseExpr(n.body)
	case Expr:
		t.releaseChildren(n)
	}
	t.free(n.hdr())
}

func (t *Tree) releaseExpr(e Expr) {
	if e != nil {
		t.release(e)
	}
}

func (t *Tree) releaseChildren(e Expr) {
	switch e := e.(type) {
	case *AssignExpr:
		t.releaseExpr(e.value)
	case *IfExpr:
		t.releaseExpr(e.cond)
		t.releaseExpr(e.then)
		t.releaseExpr(e.els)
	case *WhileExpr:
		t.releaseExpr(e.cond)
		t.releaseExpr(e.body)
	case *BlockExpr:
		releaseList(t, e.body)
	case *LetExpr:
		t.releaseExpr(e.init)
		t.releaseExpr(e.body)
	case *CaseExpr:
		t.releaseExpr(e.scrutinee)
		releaseList(t, e.branches)
	case *IsVoidExpr:
		t.releaseExpr(e.operand)
	case *NotExpr:
		t.releaseExpr(e.operand)
	case *NegExpr:
		t.releaseExpr(e.operand)
	case *BinaryExpr:
		t.releaseExpr(e.left)
		t.releaseExpr(e.right)
	case *DispatchExpr:
		t.releaseExpr(e.receiver)
		releaseList(t, e.args)
	case *StaticDispatchExpr:
		t.releaseExpr(e.receiver)
		releaseList(t, e.args)
	}
}
