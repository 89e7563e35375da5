package ast

import "fmt"

// ErrorKind classifies failures raised while building or releasing a tree.
type ErrorKind int

const (
	// OutOfMemory means the tree's allocation limits would be exceeded.
	OutOfMemory ErrorKind = iota + 1
	// InvalidHierarchy means a class names itself as its parent.
	InvalidHierarchy
	// MalformedList means an element cannot be linked into a list.
	MalformedList
	// AliasedNode means a node already has an owner, was released, or
	// belongs to a different tree.
	AliasedNode
	// MissingChild means a required sub-expression was nil.
	MissingChild
)

func (k ErrorKind) String() string {
	switch k {
	case OutOfMemory:
		return "out of memory"
	case InvalidHierarchy:
		return "invalid hierarchy"
	case MalformedList:
		return "malformed list"
	case AliasedNode:
		return "aliased node"
	case MissingChild:
		return "missing child"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every Tree operation that fails.
type Error struct {
	Kind   ErrorKind
	Op     string // operation that failed, e.g. "NewClass"
	Detail string
}

func (e *Error) Error() string {
	switch {
	case e.Op == "":
		return "ast: " + e.Kind.String()
	case e.Detail == "":
		return "ast: " + e.Op + ": " + e.Kind.String()
	default:
		return "ast: " + e.Op + ": " + e.Kind.String() + ": " + e.Detail
	}
}

// Is reports whether target is an *Error of the same kind, so
// errors.Is(err, ErrInvalidHierarchy) works on any wrapped *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrOutOfMemory      = &Error{Kind: OutOfMemory}
	ErrInvalidHierarchy = &Error{Kind: InvalidHierarchy}
	ErrMalformedList    = &Error{Kind: MalformedList}
	ErrAliasedNode      = &Error{Kind: AliasedNode}
	ErrMissingChild     = &Error{Kind: MissingChild}
)

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}
