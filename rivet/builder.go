package rivet

// Query is a fluent wrapper for assembling expression trees left to right.
// Stages that keep the element type are methods; stages that change it
// (projection, product, join) are package-level functions, since Go methods
// cannot introduce type parameters. Every stage is one-for-one equivalent
// to the corresponding expression constructor.
//
//	gigs := rivet.JoinWith(
//	    rivet.From(musicians).Select(func(m Musician) bool { return m.Active }),
//	    rivet.From(bands),
//	    func(m Musician) string { return m.Band },
//	    func(b Band) string { return b.Name },
//	    func(_ string, m Musician, b Band) Gig { return Gig{m.Name, b.Genre} },
//	)
//	result, err := rivet.Evaluate(db, gigs.Expr())
type Query[T comparable] struct {
	expr Expression[T]
}

// From starts a query from any expression (a Relation, View, Singleton, or
// an already-built tree).
func From[T comparable](expr Expression[T]) Query[T] {
	return Query[T]{expr: expr}
}

// Expr unwraps the built expression.
func (q Query[T]) Expr() Expression[T] {
	return q.expr
}

// Select keeps the tuples satisfying pred.
func (q Query[T]) Select(pred func(T) bool) Query[T] {
	return Query[T]{expr: NewSelect(q.expr, pred)}
}

// Union adds the tuples of other.
func (q Query[T]) Union(other Expression[T]) Query[T] {
	return Query[T]{expr: NewUnion(q.expr, other)}
}

// Minus removes the tuples of other.
func (q Query[T]) Minus(other Expression[T]) Query[T] {
	return Query[T]{expr: NewDifference(q.expr, other)}
}

// Map projects the query through fn.
func Map[S, T comparable](q Query[S], fn func(S) T) Query[T] {
	return Query[T]{expr: NewProject(q.expr, fn)}
}

// CrossWith builds the Cartesian product of two queries.
func CrossWith[L, R, T comparable](l Query[L], r Query[R], fn func(L, R) T) Query[T] {
	return Query[T]{expr: NewProduct(l.expr, r.expr, fn)}
}

// JoinWith equi-joins two queries on the given key functions.
func JoinWith[L, R, K, T comparable](
	l Query[L],
	r Query[R],
	leftKey func(L) K,
	rightKey func(R) K,
	fn func(K, L, R) T,
) Query[T] {
	return Query[T]{expr: NewJoin(l.expr, r.expr, leftKey, rightKey, fn)}
}
