package ast

import (
	"io"
	"log/slog"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// Limits caps what one tree may hold at a time. Zero disables a limit.
type Limits struct {
	MaxNodes       int // nodes plus list cells
	MaxStringBytes int
}

// Stats is a snapshot of a tree's allocation ledger.
type Stats struct {
	Nodes       int // live nodes
	Links       int // live list cells
	Strings     int // live owned strings
	StringBytes int

	Allocated int // nodes and list cells ever allocated
	Released  int // nodes and list cells released so far
}

// Empty reports whether nothing allocated by the tree is still live.
func (s Stats) Empty() bool {
	return s.Nodes == 0 && s.Links == 0 && s.Strings == 0 && s.StringBytes == 0
}

// Tree allocates and owns every node of one compilation unit. Nodes are
// built bottom-up through its constructors; each sub-node handed to a
// constructor or list changes owner exactly once.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	id     string
	limits Limits
	logger *slog.Logger
	stats  Stats
	allocs []*header
}

// Option configures a Tree.
type Option func(*Tree)

// WithLimits bounds the memory a tree may hold.
func WithLimits(l Limits) Option {
	return func(t *Tree) { t.limits = l }
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithID overrides the generated tree id.
func WithID(id string) Option {
	return func(t *Tree) { t.id = id }
}

// NewTree returns an empty tree. Diagnostics are discarded unless a
// logger is supplied.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		id:     uuid.NewString(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("tree", t.id)
	return t
}

// ID identifies the compilation unit in diagnostics.
func (t *Tree) ID() string { return t.id }

// Limits returns the limits the tree was created with.
func (t *Tree) Limits() Limits { return t.limits }

// Stats returns the current allocation ledger.
func (t *Tree) Stats() Stats { return t.stats }

// Release frees everything the tree still holds, whoever owns it. Any
// node obtained from the tree must not be used afterwards.
func (t *Tree) Release() {
	for _, h := range t.allocs {
		t.free(h)
	}
	t.allocs = nil
	t.logger.Debug("tree released", "allocated", t.stats.Allocated, "released", t.stats.Released)
}

// header is the bookkeeping every node and list carries.
type header struct {
	tree     *Tree
	owned    bool
	released bool
	list     bool
	links    int // list cells, lists only
	strs     int
	strBytes int
}

func (h *header) hdr() *header { return h }

type node interface {
	hdr() *header
}

// child is a sub-node passed to a constructor.
type child struct {
	role     string
	n        node
	required bool
}

func required(role string, n node) child { return child{role: role, n: n, required: true} }
func optional(role string, n node) child { return child{role: role, n: n} }

// absent reports whether n is nil, including a nil pointer held in an
// interface such as Expr.
func absent(n node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// alloc validates the children of a new node, reserves room for the node
// and its strings, and only then takes ownership of the children. On
// error nothing has changed.
func (t *Tree) alloc(op string, strs []string, children ...child) (header, error) {
	var owned []*header
	for _, c := range children {
		if absent(c.n) {
			if c.required {
				return header{}, t.fail(newError(MissingChild, op, "%s is nil", c.role))
			}
			continue
		}
		h := c.n.hdr()
		if err := t.checkOwnable(op, c.role, h); err != nil {
			return header{}, t.fail(err)
		}
		if slices.Contains(owned, h) {
			return header{}, t.fail(newError(AliasedNode, op, "%s is passed more than once", c.role))
		}
		owned = append(owned, h)
	}
	count, bytes := stringCost(strs...)
	if err := t.reserve(op, 1, bytes); err != nil {
		return header{}, t.fail(err)
	}
	for _, h := range owned {
		h.owned = true
	}
	return header{tree: t, strs: count, strBytes: bytes}, nil
}

func (t *Tree) checkOwnable(op, role string, h *header) *Error {
	switch {
	case h.tree != t:
		return newError(AliasedNode, op, "%s belongs to another tree", role)
	case h.released:
		return newError(AliasedNode, op, "%s was already released", role)
	case h.owned:
		return newError(AliasedNode, op, "%s already has an owner", role)
	}
	return nil
}

func (t *Tree) reserve(op string, units, bytes int) *Error {
	if m := t.limits.MaxNodes; m > 0 && t.stats.Nodes+t.stats.Links+units > m {
		return newError(OutOfMemory, op, "node limit %d reached", m)
	}
	if m := t.limits.MaxStringBytes; m > 0 && t.stats.StringBytes+bytes > m {
		return newError(OutOfMemory, op, "string limit of %d bytes reached", m)
	}
	return nil
}

// track records a freshly built node or list in the ledger.
func (t *Tree) track(h *header) {
	t.allocs = append(t.allocs, h)
	if h.list {
		t.stats.Links += h.links
		t.stats.Allocated += h.links
	} else {
		t.stats.Nodes++
		t.stats.Allocated++
	}
	t.stats.Strings += h.strs
	t.stats.StringBytes += h.strBytes
}

func (t *Tree) free(h *header) {
	if h.released {
		return
	}
	h.released = true
	if h.list {
		t.stats.Links -= h.links
		t.stats.Released += h.links
	} else {
		t.stats.Nodes--
		t.stats.Released++
	}
	t.stats.Strings -= h.strs
	t.stats.StringBytes -= h.strBytes
}

// fail emits a diagnostic for err and returns it.
func (t *Tree) fail(err *Error) error {
	t.logger.Error(err.Detail, "op", err.Op, "kind", err.Kind.String())
	return err
}
