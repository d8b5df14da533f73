// Package models defines the core domain models for splitfriends.
//
// # Models
//
//   - Friend: one participant in the shared ledger, with a running balance
//   - AddFriendForm: the draft values of the add-friend form
//
// Balances are exact decimals. A negative balance means the user owes the
// friend, a positive balance means the friend owes the user.
//
// Models carry no behavior beyond construction helpers; state transitions
// live in the ledger package.
package models
