// Package ledger implements the cashflow transaction-application engine.
//
// Core flow:
//   - NewTransaction builds a normalized transaction record.
//   - NewOutcome wraps a record so it can be applied at most once.
//   - Apply mutates an AccountBook and TransactionLog per transaction type.
//
// The package enforces deterministic behavior using typed domain errors.
package ledger
