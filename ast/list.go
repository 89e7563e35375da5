package ast

import (
	"iter"
	"slices"
)

// List is an ordered sequence of sibling nodes. Elements keep the order
// they were appended in and are owned by the list. A nil *List is a
// valid, empty list.
type List[T node] struct {
	h     header
	items []T
}

type (
	ClassList   = List[*Class]
	FeatureList = List[*Feature]
	FormalList  = List[*Formal]
	ExprList    = List[Expr]
	CaseList    = List[*Case]
)

func (l *List[T]) hdr() *header {
	if l == nil {
		return nil
	}
	return &l.h
}

func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i'th element; it panics if i is out of range.
func (l *List[T]) At(i int) T { return l.items[i] }

// All iterates over the elements head to tail.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l == nil {
			return
		}
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Items returns a copy of the elements.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// checkElem verifies elem may be linked into a list: it must exist, come
// from this tree and not be linked anywhere yet. Appending an element a
// second time, including into its own list, is rejected here.
func (t *Tree) checkElem(op string, elem node) *Error {
	h := elem.hdr()
	switch {
	case h.tree != t:
		return newError(AliasedNode, op, "element belongs to another tree")
	case h.released:
		return newError(AliasedNode, op, "element was already released")
	case h.owned:
		return newError(MalformedList, op, "element is already linked")
	}
	return nil
}

func newList[T node](t *Tree, op string, elem T) (*List[T], error) {
	if absent(elem) {
		return nil, t.fail(newError(MalformedList, op, "nil element"))
	}
	if err := t.checkElem(op, elem); err != nil {
		return nil, t.fail(err)
	}
	if err := t.reserve(op, 1, 0); err != nil {
		return nil, t.fail(err)
	}
	elem.hdr().owned = true
	l := &List[T]{h: header{tree: t, list: true, links: 1}, items: []T{elem}}
	t.track(&l.h)
	return l, nil
}

// appendList links elem after the current tail. Appending to a nil list
// creates one. A list that was handed to a node is sealed: growing it
// could link its owner back into it. On error the list is returned
// unchanged.
func appendList[T node](t *Tree, op string, l *List[T], elem T) (*List[T], error) {
	if l == nil {
		return newList(t, op, elem)
	}
	if l.h.tree != t || l.h.released {
		return l, t.fail(newError(AliasedNode, op, "list is not live in this tree"))
	}
	if l.h.owned {
		return l, t.fail(newError(MalformedList, op, "list is already owned by a node"))
	}
	if absent(elem) {
		return l, t.fail(newError(MalformedList, op, "nil element"))
	}
	if err := t.checkElem(op, elem); err != nil {
		return l, t.fail(err)
	}
	if err := t.reserve(op, 1, 0); err != nil {
		return l, t.fail(err)
	}
	elem.hdr().owned = true
	l.items = append(l.items, elem)
	l.h.links++
	t.stats.Links++
	t.stats.Allocated++
	return l, nil
}

// NewClassList creates a list holding c.
func (t *Tree) NewClassList(c *Class) (*ClassList, error) {
	return newList(t, "NewClassList", c)
}

// AppendClass appends c to list, creating the list when it is nil.
func (t *Tree) AppendClass(list *ClassList, c *Class) (*ClassList, error) {
	return appendList(t, "AppendClass", list, c)
}

// NewFeatureList creates a list holding f.
func (t *Tree) NewFeatureList(f *Feature) (*FeatureList, error) {
	return newList(t, "NewFeatureList", f)
}

// AppendFeature appends f to list, creating the list when it is nil.
func (t *Tree) AppendFeature(list *FeatureList, f *Feature) (*FeatureList, error) {
	return appendList(t, "AppendFeature", list, f)
}

// NewFormalList creates a list holding f.
func (t *Tree) NewFormalList(f *Formal) (*FormalList, error) {
	return newList(t, "NewFormalList", f)
}

// AppendFormal appends f to list, creating the list when it is nil.
func (t *Tree) AppendFormal(list *FormalList, f *Formal) (*FormalList, error) {
	return appendList(t, "AppendFormal", list, f)
}

// NewExprList creates a list holding e.
func (t *Tree) NewExprList(e Expr) (*ExprList, error) {
	return newList(t, "NewExprList", e)
}

// AppendExpr appends e to list, creating the list when it is nil.
func (t *Tree) AppendExpr(list *ExprList, e Expr) (*ExprList, error) {
	return appendList(t, "AppendExpr", list, e)
}

// NewCaseList creates a list holding c.
func (t *Tree) NewCaseList(c *Case) (*CaseList, error) {
	return newList(t, "NewCaseList", c)
}

// AppendCase appends c to list, creating the list when it is nil.
func (t *Tree) AppendCase(list *CaseList, c *Case) (*CaseList, error) {
	return appendList(t, "AppendCase", list, c)
}
