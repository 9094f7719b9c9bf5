// Package predicate provides composable boolean tests over values of any type.
//
// A Predicate is a single test. A Chain glues predicates together with And
// and Or into a flat, left-associative expression that is evaluated in the
// order it was written, with no operator precedence and no grouping:
//
//	chain := predicate.Head(a).And(b).Or(c).And(d)
//	// chain.Evaluate(v) == ((a(v) && b(v)) || c(v)) && d(v)
//
// Both operators short-circuit: once the left side decides an And or an Or,
// the right predicate is not called.
//
// # Immutability
//
// Chains are persistent. And and Or return a new node pointing at the
// receiver, so the same prefix can be reused:
//
//	base := predicate.Head(predicate.HasPrefix("[ERROR]"))
//	withDB := base.And(predicate.Contains("db"))
//	withAPI := base.And(predicate.Contains("api"))
//	// base is unchanged and still matches every "[ERROR]" line
//
// A built chain is never modified again, which makes it safe to evaluate
// from many goroutines at once as long as the predicates it holds are.
//
// # Validation
//
// Nil predicates are rejected when the chain is built, not when it is
// evaluated. Head, And and Or panic with an error wrapping ErrNilPredicate;
// New returns the error instead for callers assembling chains from dynamic
// input:
//
//	chain, err := predicate.New(p)
//	if errors.Is(err, predicate.ErrInvalidArgument) {
//		// reject configuration
//	}
//
// # Collections
//
// Filter applies a predicate to a slice and returns the matching items:
//
//	words := []string{"good", "morning", "sir", "male", "a"}
//	p := predicate.Head(predicate.Func[string](func(s string) bool { return len(s) != 1 })).
//		OrFunc(func(s string) bool { return len(s) == 3 }).
//		And(predicate.Contains("m"))
//	predicate.Filter(words, p) // [morning male]
package predicate
