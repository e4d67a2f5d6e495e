package ledger

import "github.com/shopspring/decimal"

// AccountBook is the storage contract for all client accounts.
//
// The contract assumes a single caller driving transactions strictly
// sequentially; implementations serving concurrent producers must serialize
// access themselves.
type AccountBook interface {
	// Account fetches a client's account, creating it with zero balances if
	// it does not exist yet.
	Account(clientID ClientID) (*Account, error)

	// Accounts returns every account in the book. Iteration order is
	// unspecified and must not be relied upon.
	Accounts() []*Account
}

// TransactionLog is the storage contract for registered primary transactions.
// It recovers the original amount referenced by a dispute, resolve, or
// chargeback.
type TransactionLog interface {
	// Transaction fetches a registered transaction by id. A miss is not an
	// error: it returns nil, nil.
	Transaction(transactionID TransactionID) (*Transaction, error)

	// Register inserts or overwrites a transaction under its id.
	Register(txn Transaction) error
}

// Apply applies one pending transaction record to the account book and,
// for primary types, registers it in the transaction log.
//
// This is the single orchestration entry point shared by every storage
// backend. The outcome holder guards against re-application: an
// already-applied holder fails with DUPLICATE_TRANSACTION. On any failure the
// holder stays pending and the caller retains the record; on success it
// transitions to applied in one logical step with the balance mutations.
//
// Referential records whose referenced transaction was never registered are
// a silent no-op: malformed or out-of-order dispute chains do not halt the
// stream.
func Apply(book AccountBook, txnLog TransactionLog, outcome *Outcome) error {
	if outcome.Applied() {
		return newDuplicateError(outcome.TransactionID())
	}

	txn := outcome.record

	referred, err := referredAmount(txnLog, txn.TransactionID)
	if err != nil {
		return err
	}

	account, err := book.Account(txn.ClientID)
	if err != nil {
		return err
	}

	switch txn.Type {
	case TypeDeposit:
		amount, err := txn.requireAmount()
		if err != nil {
			return err
		}

		if err := account.Deposit(amount); err != nil {
			return err
		}
	case TypeWithdrawal:
		amount, err := txn.requireAmount()
		if err != nil {
			return err
		}

		if err := account.Withdraw(amount); err != nil {
			return err
		}
	case TypeDispute:
		if referred != nil {
			account.Dispute(*referred)
		}
	case TypeResolve:
		if referred != nil {
			account.Resolve(*referred)
		}
	case TypeChargeback:
		if referred != nil {
			account.Chargeback(*referred)
		}
	default:
		return NewDomainError(ErrorUnknownTransactionType, "type", "unknown transaction type "+string(txn.Type))
	}

	outcome.markApplied()

	// Only primary transactions are registered for future reference.
	// A dispute cannot itself be disputed.
	if txn.Type.Primary() {
		return txnLog.Register(*txn)
	}

	return nil
}

// referredAmount looks up the amount of a previously registered transaction
// with the same id. Absence is not an error.
func referredAmount(txnLog TransactionLog, transactionID TransactionID) (*decimal.Decimal, error) {
	referred, err := txnLog.Transaction(transactionID)
	if err != nil {
		return nil, err
	}

	if referred == nil {
		return nil, nil
	}

	return referred.Amount, nil
}
