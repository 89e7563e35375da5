package ast

// ExprKind identifies the variant of an expression node.
type ExprKind int

const (
	AssignKind ExprKind = iota
	IfKind
	WhileKind
	BlockKind
	LetKind
	CaseKind
	NewKind
	IsVoidKind
	NotKind
	ObjectKind
	IntKind
	StringKind
	BoolKind
	NegKind
	BinaryKind
	DispatchKind
	StaticDispatchKind
)

var exprKindNames = [...]string{
	AssignKind:         "assign",
	IfKind:             "if",
	WhileKind:          "while",
	BlockKind:          "block",
	LetKind:            "let",
	CaseKind:           "case",
	NewKind:            "new",
	IsVoidKind:         "isvoid",
	NotKind:            "not",
	ObjectKind:         "object",
	IntKind:            "int",
	StringKind:         "string",
	BoolKind:           "bool",
	NegKind:            "neg",
	BinaryKind:         "binary",
	DispatchKind:       "dispatch",
	StaticDispatchKind: "static_dispatch",
}

func (k ExprKind) String() string {
	if k < 0 || int(k) >= len(exprKindNames) {
		return "unknown"
	}
	return exprKindNames[k]
}

// Expr is implemented by every expression node. The set of
// implementations is closed; switch on the concrete type or on Kind.
type Expr interface {
	node
	Kind() ExprKind
}

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

const (
	Plus BinaryOp = iota
	Minus
	Times
	Divide
	Less
	LessEqual
	Equal
)

var binaryOpSymbols = [...]string{"+", "-", "*", "/", "<", "<=", "="}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpSymbols) {
		return "?"
	}
	return binaryOpSymbols[op]
}

// AssignExpr is name <- value.
type AssignExpr struct {
	header
	name  string
	value Expr
}

func (e *AssignExpr) Kind() ExprKind { return AssignKind }
func (e *AssignExpr) Name() string   { return e.name }
func (e *AssignExpr) Value() Expr    { return e.value }

// IfExpr is if cond then then else else fi.
type IfExpr struct {
	header
	cond, then, els Expr
}

func (e *IfExpr) Kind() ExprKind { return IfKind }
func (e *IfExpr) Cond() Expr     { return e.cond }
func (e *IfExpr) Then() Expr     { return e.then }
func (e *IfExpr) Else() Expr     { return e.els }

// WhileExpr is while cond loop body pool.
type WhileExpr struct {
	header
	cond, body Expr
}

func (e *WhileExpr) Kind() ExprKind { return WhileKind }
func (e *WhileExpr) Cond() Expr     { return e.cond }
func (e *WhileExpr) Body() Expr     { return e.body }

// BlockExpr is { e1; e2; ... }.
type BlockExpr struct {
	header
	body *ExprList
}

func (e *BlockExpr) Kind() ExprKind  { return BlockKind }
func (e *BlockExpr) Body() *ExprList { return e.body }

// LetExpr binds one identifier. A let with several bindings is a chain
// of nested LetExprs.
type LetExpr struct {
	header
	name string
	typ  string
	init Expr
	body Expr
}

func (e *LetExpr) Kind() ExprKind { return LetKind }
func (e *LetExpr) Name() string   { return e.name }
func (e *LetExpr) Type() string   { return e.typ }

// Init is nil when the binding has no initializer.
func (e *LetExpr) Init() Expr { return e.init }
func (e *LetExpr) Body() Expr { return e.body }

// CaseExpr is case scrutinee of branches esac.
type CaseExpr struct {
	header
	scrutinee Expr
	branches  *CaseList
}

func (e *CaseExpr) Kind() ExprKind      { return CaseKind }
func (e *CaseExpr) Scrutinee() Expr     { return e.scrutinee }
func (e *CaseExpr) Branches() *CaseList { return e.branches }

// NewExpr is new Type.
type NewExpr struct {
	header
	typ string
}

func (e *NewExpr) Kind() ExprKind { return NewKind }
func (e *NewExpr) Type() string   { return e.typ }

// IsVoidExpr is isvoid operand.
type IsVoidExpr struct {
	header
	operand Expr
}

func (e *IsVoidExpr) Kind() ExprKind { return IsVoidKind }
func (e *IsVoidExpr) Operand() Expr  { return e.operand }

// NotExpr is not operand.
type NotExpr struct {
	header
	operand Expr
}

func (e *NotExpr) Kind() ExprKind { return NotKind }
func (e *NotExpr) Operand() Expr  { return e.operand }

// NegExpr is ~operand.
type NegExpr struct {
	header
	operand Expr
}

func (e *NegExpr) Kind() ExprKind { return NegKind }
func (e *NegExpr) Operand() Expr  { return e.operand }

// ObjectExpr references an identifier, including self.
type ObjectExpr struct {
	header
	name string
}

func (e *ObjectExpr) Kind() ExprKind { return ObjectKind }
func (e *ObjectExpr) Name() string   { return e.name }

type IntExpr struct {
	header
	value int
}

func (e *IntExpr) Kind() ExprKind { return IntKind }
func (e *IntExpr) Value() int     { return e.value }

type StringExpr struct {
	header
	value string
}

func (e *StringExpr) Kind() ExprKind { return StringKind }
func (e *StringExpr) Value() string  { return e.value }

type BoolExpr struct {
	header
	value bool
}

func (e *BoolExpr) Kind() ExprKind { return BoolKind }
func (e *BoolExpr) Value() bool    { return e.value }

// BinaryExpr covers arithmetic and comparison.
type BinaryExpr struct {
	header
	op          BinaryOp
	left, right Expr
}

func (e *BinaryExpr) Kind() ExprKind { return BinaryKind }
func (e *BinaryExpr) Op() BinaryOp   { return e.op }
func (e *BinaryExpr) Left() Expr     { return e.left }
func (e *BinaryExpr) Right() Expr    { return e.right }

// DispatchExpr is receiver.method(args). A bare call method(args) has
// self as its receiver.
type DispatchExpr struct {
	header
	receiver Expr
	method   string
	args     *ExprList
}

func (e *DispatchExpr) Kind() ExprKind  { return DispatchKind }
func (e *DispatchExpr) Receiver() Expr  { return e.receiver }
func (e *DispatchExpr) Method() string  { return e.method }
func (e *DispatchExpr) Args() *ExprList { return e.args }

// StaticDispatchExpr is receiver@Type.method(args).
type StaticDispatchExpr struct {
	header
	receiver Expr
	typ      string
	method   string
	args     *ExprList
}

func (e *StaticDispatchExpr) Kind() ExprKind  { return StaticDispatchKind }
func (e *StaticDispatchExpr) Receiver() Expr  { return e.receiver }
func (e *StaticDispatchExpr) Type() string    { return e.typ }
func (e *StaticDispatchExpr) Method() string  { return e.method }
func (e *StaticDispatchExpr) Args() *ExprList { return e.args }

// Constructors. Sub-expressions and lists passed in are owned by the new
// node from then on; strings are copied.

// NewAssign builds name <- value.
func (t *Tree) NewAssign(name string, value Expr) (*AssignExpr, error) {
	h, err := t.alloc("NewAssign", []string{name}, required("assigned value", value))
	if err != nil {
		return nil, err
	}
	e := &AssignExpr{header: h, name: ownString(name), value: value}
	t.track(&e.header)
	return e, nil
}

// NewIf builds a conditional; all three parts are required.
func (t *Tree) NewIf(cond, then, els Expr) (*IfExpr, error) {
	h, err := t.alloc("NewIf", nil,
		required("condition", cond), required("then branch", then), required("else branch", els))
	if err != nil {
		return nil, err
	}
	e := &IfExpr{header: h, cond: cond, then: then, els: els}
	t.track(&e.header)
	return e, nil
}

// NewWhile builds a loop.
func (t *Tree) NewWhile(cond, body Expr) (*WhileExpr, error) {
	h, err := t.alloc("NewWhile", nil, required("condition", cond), required("loop body", body))
	if err != nil {
		return nil, err
	}
	e := &WhileExpr{header: h, cond: cond, body: body}
	t.track(&e.header)
	return e, nil
}

// NewBlock builds a block; a nil list gives an empty block.
func (t *Tree) NewBlock(body *ExprList) (*BlockExpr, error) {
	h, err := t.alloc("NewBlock", nil, optional("block body", body))
	if err != nil {
		return nil, err
	}
	e := &BlockExpr{header: h, body: body}
	t.track(&e.header)
	return e, nil
}

// NewLet builds a single let binding. init may be nil.
func (t *Tree) NewLet(name, typ string, init, body Expr) (*LetExpr, error) {
	h, err := t.alloc("NewLet", []string{name, typ}, optional("initializer", init), required("let body", body))
	if err != nil {
		return nil, err
	}
	e := &LetExpr{header: h, name: ownString(name), typ: ownString(typ), init: init, body: body}
	t.track(&e.header)
	return e, nil
}

// NewCaseExpr builds a case over scrutinee. branches must hold at least one branch.
func (t *Tree) NewCaseExpr(scrutinee Expr, branches *CaseList) (*CaseExpr, error) {
	h, err := t.alloc("NewCaseExpr", nil, required("scrutinee", scrutinee), required("branch list", branches))
	if err != nil {
		return nil, err
	}
	e := &CaseExpr{header: h, scrutinee: scrutinee, branches: branches}
	t.track(&e.header)
	return e, nil
}

// NewNew builds new typ.
func (t *Tree) NewNew(typ string) (*NewExpr, error) {
	h, err := t.alloc("NewNew", []string{typ})
	if err != nil {
		return nil, err
	}
	e := &NewExpr{header: h, typ: ownString(typ)}
	t.track(&e.header)
	return e, nil
}

// NewIsVoid builds isvoid operand.
func (t *Tree) NewIsVoid(operand Expr) (*IsVoidExpr, error) {
	h, err := t.alloc("NewIsVoid", nil, required("operand", operand))
	if err != nil {
		return nil, err
	}
	e := &IsVoidExpr{header: h, operand: operand}
	t.track(&e.header)
	return e, nil
}

// NewNot builds boolean negation.
func (t *Tree) NewNot(operand Expr) (*NotExpr, error) {
	h, err := t.alloc("NewNot", nil, required("operand", operand))
	if err != nil {
		return nil, err
	}
	e := &NotExpr{header: h, operand: operand}
	t.track(&e.header)
	return e, nil
}

// NewNeg builds integer negation, ~operand.
func (t *Tree) NewNeg(operand Expr) (*NegExpr, error) {
	h, err := t.alloc("NewNeg", nil, required("operand", operand))
	if err != nil {
		return nil, err
	}
	e := &NegExpr{header: h, operand: operand}
	t.track(&e.header)
	return e, nil
}

// NewObject builds a reference to an identifier, self included.
func (t *Tree) NewObject(name string) (*ObjectExpr, error) {
	h, err := t.alloc("NewObject", []string{name})
	if err != nil {
		return nil, err
	}
	e := &ObjectExpr{header: h, name: ownString(name)}
	t.track(&e.header)
	return e, nil
}

// NewInt builds an integer constant.
func (t *Tree) NewInt(value int) (*IntExpr, error) {
	h, err := t.alloc("NewInt", nil)
	if err != nil {
		return nil, err
	}
	e := &IntExpr{header: h, value: value}
	t.track(&e.header)
	return e, nil
}

// NewString builds a string constant; value is copied.
func (t *Tree) NewString(value string) (*StringExpr, error) {
	h, err := t.alloc("NewString", []string{value})
	if err != nil {
		return nil, err
	}
	e := &StringExpr{header: h, value: ownString(value)}
	t.track(&e.header)
	return e, nil
}

// NewBool builds a boolean constant.
func (t *Tree) NewBool(value bool) (*BoolExpr, error) {
	h, err := t.alloc("NewBool", nil)
	if err != nil {
		return nil, err
	}
	e := &BoolExpr{header: h, value: value}
	t.track(&e.header)
	return e, nil
}

// NewBinary builds an arithmetic or comparison expression.
func (t *Tree) NewBinary(op BinaryOp, left, right Expr) (*BinaryExpr, error) {
	h, err := t.alloc("NewBinary", nil, required("left operand", left), required("right operand", right))
	if err != nil {
		return nil, err
	}
	e := &BinaryExpr{header: h, op: op, left: left, right: right}
	t.track(&e.header)
	return e, nil
}

// NewDispatch builds receiver.method(args). args may be nil.
func (t *Tree) NewDispatch(receiver Expr, method string, args *ExprList) (*DispatchExpr, error) {
	h, err := t.alloc("NewDispatch", []string{method}, required("receiver", receiver), optional("argument list", args))
	if err != nil {
		return nil, err
	}
	e := &DispatchExpr{header: h, receiver: receiver, method: ownString(method), args: args}
	t.track(&e.header)
	return e, nil
}

// NewStaticDispatch builds receiver@typ.method(args). args may be nil.
func (t *Tree) NewStaticDispatch(receiver Expr, typ, method string, args *ExprList) (*StaticDispatchExpr, error) {
	h, err := t.alloc("NewStaticDispatch", []string{typ, method},
		required("receiver", receiver), optional("argument list", args))
	if err != nil {
		return nil, err
	}
	e := &StaticDispatchExpr{header: h, receiver: receiver, typ: ownString(typ), method: ownString(method), args: args}
	t.track(&e.header)
	return e, nil
}
