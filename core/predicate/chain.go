package predicate

import "fmt"

type op uint8

const (
	opHead op = iota
	opAnd
	opOr
)

func (o op) String() string {
	switch o {
	case opHead:
		return "head"
	case opAnd:
		return "and"
	case opOr:
		return "or"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Chain is an immutable, left-associative composition of predicates.
//
// Every node holds the predicate appended at that step and a pointer to
// the node it was appended to. And and Or never modify the receiver, so
// a chain may be shared between goroutines and extended in several
// directions from the same prefix.
type Chain[T any] struct {
	op     op
	parent *Chain[T]
	pred   Predicate[T]
}

var _ Predicate[any] = (*Chain[any])(nil)

// New starts a chain with p as its head.
// It returns ErrNilPredicate if p is nil.
func New[T any](p Predicate[T]) (*Chain[T], error) {
	if IsNil(p) {
		return nil, ErrNilPredicate
	}
	return &Chain[T]{op: opHead, pred: p}, nil
}

// Head starts a chain with p as its head.
// Panics with ErrNilPredicate if p is nil.
//
// Example:
//
//	isLog := predicate.Head(predicate.HasPrefix("[INFO]")).
//		Or(predicate.HasPrefix("[WARN]")).
//		And(predicate.Not(predicate.Contains("healthcheck")))
func Head[T any](p Predicate[T]) *Chain[T] {
	c, err := New(p)
	if err != nil {
		panic(err)
	}
	return c
}

// And returns a new chain evaluating (c && p).
// Panics with ErrNilPredicate if p is nil.
func (c *Chain[T]) And(p Predicate[T]) *Chain[T] {
	return c.append(opAnd, p)
}

// Or returns a new chain evaluating (c || p).
// Panics with ErrNilPredicate if p is nil.
func (c *Chain[T]) Or(p Predicate[T]) *Chain[T] {
	return c.append(opOr, p)
}

// AndFunc is And for a plain function.
func (c *Chain[T]) AndFunc(fn func(T) bool) *Chain[T] {
	if fn == nil {
		panic(ErrNilPredicate)
	}
	return c.append(opAnd, Func[T](fn))
}

// OrFunc is Or for a plain function.
func (c *Chain[T]) OrFunc(fn func(T) bool) *Chain[T] {
	if fn == nil {
		panic(ErrNilPredicate)
	}
	return c.append(opOr, Func[T](fn))
}

func (c *Chain[T]) append(o op, p Predicate[T]) *Chain[T] {
	if c == nil {
		panic(ErrNilChain)
	}
	if IsNil(p) {
		panic(ErrNilPredicate)
	}
	return &Chain[T]{op: o, parent: c, pred: p}
}

// Evaluate applies the chain to v in append order with no precedence:
// Head(A).And(B).Or(C).And(D) is ((A && B) || C) && D.
// Both operators short-circuit.
func (c *Chain[T]) Evaluate(v T) bool {
	switch c.op {
	case opHead:
		return c.pred.Evaluate(v)
	case opAnd:
		return c.parent.Evaluate(v) && c.pred.Evaluate(v)
	case opOr:
		return c.parent.Evaluate(v) || c.pred.Evaluate(v)
	}
	// Unreachable: nodes are only built by New and append.
	panic(fmt.Sprintf("predicate: corrupt chain node %s", c.op))
}

// Len returns the number of predicates in the chain.
func (c *Chain[T]) Len() int {
	n := 0
	for node := c; node != nil; node = node.parent {
		n++
	}
	return n
}

// String renders the operator layout, e.g. "((p and p) or p)".
func (c *Chain[T]) String() string {
	if c.op == opHead {
		return "p"
	}
	return fmt.Sprintf("(%s %s p)", c.parent.String(), c.op)
}
