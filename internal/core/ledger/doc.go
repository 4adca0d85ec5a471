// Package ledger implements the pure expense-splitting computations:
// allocating an expense total into participant shares, folding a group's
// expense history into per-member net balances, and reducing those
// balances into a minimal set of pairwise transfers.
//
// Every function here is a pure function from input to output. The
// package holds no state, performs no I/O, and never mutates its
// arguments; callers recompute balances and settlements from a fresh
// snapshot after every change to the underlying expense set.
//
// All amounts use decimal arithmetic rounded to two fractional digits
// (the currency minor unit), so share sums reconcile with expense totals
// to the exact cent and net balances over a self-consistent expense set
// sum to zero.
package ledger
