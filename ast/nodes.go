// Package ast holds the syntax tree of a COOL program: classes, their
// features and formals, expressions and case branches, together with
// the ordered lists that link siblings. Every node is created through a
// Tree, which owns it until it is released.
package ast

// Class represents a class declaration.
type Class struct {
	header
	name     string
	parent   string
	features *FeatureList
}

func (c *Class) Name() string { return c.name }

// Parent is the declared parent class, or "" when none was written.
func (c *Class) Parent() string { return c.parent }

func (c *Class) HasParent() bool { return c.parent != "" }

// Features may be nil for a class without members.
func (c *Class) Features() *FeatureList { return c.features }

// FeatureKind tells methods and attributes apart.
type FeatureKind int

const (
	MethodFeature FeatureKind = iota
	AttributeFeature
)

func (k FeatureKind) String() string {
	if k == MethodFeature {
		return "method"
	}
	return "attribute"
}

// Feature is a class member: a method or an attribute.
type Feature struct {
	header
	kind    FeatureKind
	name    string
	typ     string
	formals *FormalList
	body    Expr
}

func (f *Feature) Kind() FeatureKind { return f.kind }
func (f *Feature) IsMethod() bool    { return f.kind == MethodFeature }
func (f *Feature) Name() string      { return f.name }

// Type is the return type of a method or the declared type of an attribute.
func (f *Feature) Type() string { return f.typ }

// Formals is always nil for attributes.
func (f *Feature) Formals() *FormalList { return f.formals }

// Body is a method's body or an attribute's initializer (nil if absent).
func (f *Feature) Body() Expr { return f.body }

// Formal is a method parameter.
type Formal struct {
	header
	name string
	typ  string
}

func (f *Formal) Name() string { return f.name }
func (f *Formal) Type() string { return f.typ }

// Case is one branch of a case expression: name : Type => body.
type Case struct {
	header
	name string
	typ  string
	body Expr
}

func (c *Case) Name() string { return c.name }
func (c *Case) Type() string { return c.typ }
func (c *Case) Body() Expr   { return c.body }

// NewClass builds a class. An empty parent means none was declared. A class
// naming itself as parent is rejected with InvalidHierarchy; no other
// inheritance rule is checked here.
func (t *Tree) NewClass(name, parent string, features *FeatureList) (*Class, error) {
	const op = "NewClass"
	if parent != "" && parent == name {
		return nil, t.fail(newError(InvalidHierarchy, op, "class %s cannot inherit from itself", name))
	}
	h, err := t.alloc(op, []string{name, parent}, optional("feature list", features))
	if err != nil {
		return nil, err
	}
	c := &Class{header: h, name: ownString(name), parent: ownString(parent), features: features}
	t.track(&c.header)
	return c, nil
}

// NewMethod builds a method feature. formals may be nil.
func (t *Tree) NewMethod(name string, formals *FormalList, typ string, body Expr) (*Feature, error) {
	const op = "NewMethod"
	h, err := t.alloc(op, []string{name, typ}, optional("formal list", formals), required("method body", body))
	if err != nil {
		return nil, err
	}
	f := &Feature{
		header:  h,
		kind:    MethodFeature,
		name:    ownString(name),
		typ:     ownString(typ),
		formals: formals,
		body:    body,
	}
	t.track(&f.header)
	return f, nil
}

// NewAttribute builds an attribute feature. init may be nil.
func (t *Tree) NewAttribute(name, typ string, init Expr) (*Feature, error) {
	const op = "NewAttribute"
	h, err := t.alloc(op, []string{name, typ}, optional("initializer", init))
	if err != nil {
		return nil, err
	}
	f := &Feature{header: h, kind: AttributeFeature, name: ownString(name), typ: ownString(typ), body: init}
	t.track(&f.header)
	return f, nil
}

// NewFormal builds a method parameter.
func (t *Tree) NewFormal(name, typ string) (*Formal, error) {
	h, err := t.alloc("NewFormal", []string{name, typ})
	if err != nil {
		return nil, err
	}
	f := &Formal{header: h, name: ownString(name), typ: ownString(typ)}
	t.track(&f.header)
	return f, nil
}

// NewCase builds a case branch binding name of type typ in body.
func (t *Tree) NewCase(name, typ string, body Expr) (*Case, error) {
	h, err := t.alloc("NewCase", []string{name, typ}, required("branch body", body))
	if err != nil {
		return nil, err
	}
	c := &Case{header: h, name: ownString(name), typ: ownString(typ), body: body}
	t.track(&c.header)
	return c, nil
}
