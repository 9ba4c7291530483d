// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Group: a shared-expense group that owns its members and expenses
//   - Member: a participant in a group, with a cached net balance
//   - Expense: an immutable record of one shared cost and how it was split
//   - SplitDetail: one participant's share of one expense
//   - Debt: a suggested payment produced by debt simplification
//
// A settlement is not a separate model. When a user confirms a suggested Debt
// it is recorded as an Expense paid by the debtor with a single exact split
// for the creditor, so the expense list alone is enough to rebuild every
// balance.
//
// # Balances
//
// Member.Balance is a cache. It is updated incrementally as expenses are
// added and removed, and can always be recomputed from the group's expenses.
// Positive means the group owes the member, negative means the member owes
// the group.
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers.
//  2. Amounts are decimal units of the group's single currency.
//  3. JSON field names match the ledger file and API payloads.
package models
