package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of operation a record performs on an account.
type TransactionType string

const (
	// TypeDeposit credits the client's available funds.
	TypeDeposit TransactionType = "deposit"
	// TypeWithdrawal debits the client's available funds.
	TypeWithdrawal TransactionType = "withdrawal"
	// TypeDispute is a client's claim that a prior transaction was erroneous;
	// it moves the referenced amount from available to held.
	TypeDispute TransactionType = "dispute"
	// TypeResolve settles a dispute, releasing the referenced held funds.
	TypeResolve TransactionType = "resolve"
	// TypeChargeback is the terminal state of a dispute: the referenced held
	// funds are reversed and the account is locked.
	TypeChargeback TransactionType = "chargeback"
)

// Primary reports whether the type carries its own amount and is registered
// in the transaction log. Dispute, resolve, and chargeback are referential:
// they look up the amount of a prior primary transaction instead.
func (t TransactionType) Primary() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// ParseTransactionType parses a wire tag into a TransactionType.
func ParseTransactionType(tag string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(tag))) {
	case TypeDeposit:
		return TypeDeposit, nil
	case TypeWithdrawal:
		return TypeWithdrawal, nil
	case TypeDispute:
		return TypeDispute, nil
	case TypeResolve:
		return TypeResolve, nil
	case TypeChargeback:
		return TypeChargeback, nil
	default:
		return "", NewDomainError(ErrorUnknownTransactionType, "type", "unknown transaction type "+strings.TrimSpace(tag))
	}
}

// Transaction is an immutable description of a single incoming event.
//
// Amount is present for primary types and nil for referential ones. The
// engine rejects primary records with a nil amount as MISSING_AMOUNT.
type Transaction struct {
	Type          TransactionType  `json:"type"`
	ClientID      ClientID         `json:"client"`
	TransactionID TransactionID    `json:"tx"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// NewTransaction builds a transaction record, normalizing the amount to the
// fixed decimal scale at ingestion.
func NewTransaction(transactionType TransactionType, clientID ClientID, transactionID TransactionID, amount *decimal.Decimal) Transaction {
	txn := Transaction{
		Type:          transactionType,
		ClientID:      clientID,
		TransactionID: transactionID,
	}

	if amount != nil {
		rescaled := Rescale(*amount)
		txn.Amount = &rescaled
	}

	return txn
}

func (t Transaction) requireAmount() (decimal.Decimal, error) {
	if t.Amount == nil {
		return decimal.Zero, newMissingAmountError(t.Type, t.TransactionID)
	}

	return *t.Amount, nil
}

// Outcome tracks whether a transaction record has been applied.
//
// It exists because inadvertent re-application of a record would be so
// disastrous. The holder starts out owning the pending record; on successful
// processing the engine transitions it in place to the applied state, keeping
// only the transaction id, and moves the record into the transaction log. On
// failure the holder is left untouched and the caller still owns the record,
// free to retry, log, or discard it. The transition is one-way.
type Outcome struct {
	applied bool
	id      TransactionID
	record  *Transaction
}

// NewOutcome wraps a not-yet-applied transaction record.
func NewOutcome(txn Transaction) *Outcome {
	return &Outcome{record: &txn}
}

// Applied reports whether the wrapped record has been applied.
func (o *Outcome) Applied() bool {
	return o.applied
}

// TransactionID returns the transaction id in either state.
func (o *Outcome) TransactionID() TransactionID {
	if o.applied {
		return o.id
	}

	return o.record.TransactionID
}

// Record returns a copy of the pending record, or false once applied.
func (o *Outcome) Record() (Transaction, bool) {
	if o.applied {
		return Transaction{}, false
	}

	return *o.record, true
}

// markApplied performs the one-way pending → applied transition, releasing
// ownership of the record.
func (o *Outcome) markApplied() {
	o.id = o.record.TransactionID
	o.record = nil
	o.applied = true
}
