// Package calculator implements the bill-splitting ledger: per-expense split
// calculation, net balance aggregation, and debt simplification.
//
// Everything here is pure and deterministic. Given the same members and
// expenses the package always produces the same balances and the same
// suggested debts, which lets callers recompute at any time instead of
// trusting incrementally maintained caches.
//
// SimplifyDebts is a greedy heuristic that pairs the largest debtor with the
// largest creditor. It settles every balance in at most n-1 payments for n
// non-zero balances, but it is not guaranteed to find the minimum number of
// payments for every distribution.
package calculator
