// Package relcalc implements tuple relational calculus by brute force: a
// calculus expression is evaluated by enumerating every tuple that can be
// built from an interpretation domain and testing a predicate on it.
//
// # Basics
//
// Relations are sets of tuples with identical attributes.  In this package
// tuples are go structs with only exported fields, or go arrays.  The fields
// (or positions) of the tuple are its attributes.  Base relations, the
// facts, are constructed with New or FromRows, and they support membership
// tests with Contains.
//
// An interpretation domain is the universe that free variables range over.
// NewRange creates a domain of contiguous integers, and NewSet creates a
// domain of explicitly added values.  The calculus is single sorted: every
// attribute of a tuple ranges over the same values.
//
// A predicate is a func which takes a tuple and returns a bool.  The type of
// its input determines how many free variables the expression has.  There are
// three ways to evaluate a predicate over a domain:
//
// Query, which returns the relation {t | p(t)} of all tuples satisfying p.
//
// Any, the existential quantifier ∃t p(t).
//
// All, the universal quantifier ∀t p(t).
//
// Quantifiers nest: a predicate may call Any or All (or MustAny and MustAll)
// on its own domain, and each call enumerates its own scratch tuple.  This is
// how joins are written.  For example, given relations income(Date, Sum) and
// payment(Sum, Paid), the calculus expression
//
//	{t | income(t.Date, t.Sum) ∧ ∃u (payment(u) ∧ u.Sum = t.Sum ∧ u.Paid = t.Paid)}
//
// is written as
//
//	res, err := relcalc.Query(d, func(t paidIncome) bool {
//		return income.Contains(incomeTup{t.Date, t.Sum}) &&
//			relcalc.MustAny(d, func(u paymentTup) bool {
//				return payment.Contains(u) && u.Sum == t.Sum && u.Paid == t.Paid
//			})
//	})
//
// The evaluation does no optimization at all.  A predicate with n free
// variables over a domain of m values is called m^n times (or fewer, when a
// quantifier can stop early), so the domain should be kept small.  AddActive
// builds the active domain of a relation, which is usually enough.
package relcalc

// variable naming conventions
//
// r, r1, r2, ... all represent relations.
//
// d, d1, d2, ... all represent domains.
//
// p, p1, p2, ... all represent predicates.
//
// tup, tup1, tup2, ... all represent tuples.
//
// rtup, rtup1, rtup2, ... all represent the reflect.ValueOf(tup) with the
// appropriate identification.
//
// e, e1, e2, ... all represent the reflect.Type of a tuple.
