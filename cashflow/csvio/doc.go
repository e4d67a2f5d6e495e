// Package csvio reads CSV transaction streams into a ledger and writes
// account reports back out as CSV.
//
// Core flow:
//   - LoadTransactions decodes `type,client,tx,amount` rows and drives
//     ledger.Apply for each record.
//   - WriteAccounts renders `client,available,held,total,locked` rows with
//     amounts fixed to the ledger decimal scale.
package csvio
