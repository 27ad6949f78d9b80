// Package rivet is a small, in-memory, strongly-typed relational
// evaluation engine with incrementally maintained views.
//
// Clients register named relations carrying tuples of a chosen element
// type, insert tuples, compose relational expressions (selection,
// projection, join, union, difference, cross product, literal singletons)
// over relations and stored views, and evaluate them. Stored views are
// materialized and kept current by a semi-naive evaluation loop: each
// instance stages tuples through pending, recent, and stable sets, and
// every stabilization sweep feeds each view exactly the tuples newly
// derivable from the current recent sets.
package rivet
