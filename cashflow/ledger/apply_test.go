package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(t *testing.T, value string) *decimal.Decimal {
	t.Helper()

	parsed := dec(t, value)

	return &parsed
}

func mustApply(t *testing.T, book AccountBook, txnLog TransactionLog, txn Transaction) {
	t.Helper()
	require.NoError(t, Apply(book, txnLog, NewOutcome(txn)))
}

func mustAccount(t *testing.T, book AccountBook, clientID ClientID) *Account {
	t.Helper()

	account, err := book.Account(clientID)
	require.NoError(t, err)

	return account
}

// ---------------------------------------------------------------------------
// Apply -- engine dispatch and outcome transitions
// ---------------------------------------------------------------------------

func TestApplyDeposit(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	outcome := NewOutcome(NewTransaction(TypeDeposit, 41, 3311, amount(t, "24.22")))
	require.NoError(t, Apply(book, txnLog, outcome))

	assert.True(t, outcome.Applied())
	assert.Equal(t, TransactionID(3311), outcome.TransactionID())

	_, ok := outcome.Record()
	assert.False(t, ok, "applied outcome must no longer own the record")

	assertAmount(t, "24.22", mustAccount(t, book, 41).Available())

	registered, err := txnLog.Transaction(3311)
	require.NoError(t, err)
	require.NotNil(t, registered)
	assertAmount(t, "24.22", *registered.Amount)
}

func TestApplyDuplicate(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	outcome := NewOutcome(NewTransaction(TypeDeposit, 41, 3311, amount(t, "24.22")))
	require.NoError(t, Apply(book, txnLog, outcome))

	err := Apply(book, txnLog, outcome)
	require.Error(t, err)

	var domainErr DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrorDuplicateTransaction, domainErr.Code)

	// The duplicate attempt must not mutate any account.
	assertAmount(t, "24.22", mustAccount(t, book, 41).Available())
}

func TestApplyToLockedAccountLeavesOutcomePending(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 5, 10, amount(t, "10.0000")))
	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 5, 10, nil))
	mustApply(t, book, txnLog, NewTransaction(TypeChargeback, 5, 10, nil))

	account := mustAccount(t, book, 5)
	assertAmount(t, "0", account.Available())
	assertAmount(t, "0", account.Held())
	assert.True(t, account.Locked())

	outcome := NewOutcome(NewTransaction(TypeDeposit, 5, 11, amount(t, "5.00")))
	err := Apply(book, txnLog, outcome)
	require.Error(t, err)

	var domainErr DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrorAccountLocked, domainErr.Code)

	// The caller keeps the unconsumed record for retry, logging, or discard.
	assert.False(t, outcome.Applied())
	record, ok := outcome.Record()
	require.True(t, ok)
	assert.Equal(t, TransactionID(11), record.TransactionID)

	// Rejected records are never registered.
	registered, err := txnLog.Transaction(11)
	require.NoError(t, err)
	assert.Nil(t, registered)
}

func TestApplyReferentialUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		transactionType TransactionType
	}{
		{name: "dispute", transactionType: TypeDispute},
		{name: "resolve", transactionType: TypeResolve},
		{name: "chargeback", transactionType: TypeChargeback},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book := NewMemoryAccountBook()
			txnLog := NewMemoryTransactionLog()

			mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 41, 3311, amount(t, "24.22")))

			outcome := NewOutcome(NewTransaction(tt.transactionType, 41, 9999, nil))
			require.NoError(t, Apply(book, txnLog, outcome))
			assert.True(t, outcome.Applied())

			account := mustAccount(t, book, 41)
			assertAmount(t, "24.22", account.Available())
			assertAmount(t, "0", account.Held())
			assert.False(t, account.Locked())
		})
	}
}

func TestApplyReferentialRecordsAreNeverRegistered(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 1, 100, amount(t, "5")))
	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 1, 100, nil))

	// The dispute re-used the deposit's id; the log must still hold the
	// deposit, so a dispute cannot itself be disputed.
	registered, err := txnLog.Transaction(100)
	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.Equal(t, TypeDeposit, registered.Type)
}

func TestApplyPrimaryWithoutAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		transactionType TransactionType
	}{
		{name: "deposit", transactionType: TypeDeposit},
		{name: "withdrawal", transactionType: TypeWithdrawal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book := NewMemoryAccountBook()
			txnLog := NewMemoryTransactionLog()

			outcome := NewOutcome(NewTransaction(tt.transactionType, 4, 77, nil))
			err := Apply(book, txnLog, outcome)
			require.Error(t, err)

			var domainErr DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, ErrorMissingAmount, domainErr.Code)

			assert.False(t, outcome.Applied())
			assertAmount(t, "0", mustAccount(t, book, 4).Available())
		})
	}
}

func TestApplyUnknownType(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	outcome := NewOutcome(NewTransaction(TransactionType("transfer"), 4, 77, amount(t, "1")))
	err := Apply(book, txnLog, outcome)
	require.Error(t, err)

	var domainErr DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrorUnknownTransactionType, domainErr.Code)
	assert.False(t, outcome.Applied())
}

// ---------------------------------------------------------------------------
// Apply -- multi-transaction scenarios
// ---------------------------------------------------------------------------

func TestApplySeries(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 41, 3311, amount(t, "24.22")))
	mustApply(t, book, txnLog, NewTransaction(TypeWithdrawal, 41, 3312, amount(t, "0.21")))
	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 41, 3313, amount(t, "7.8484")))
	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 41, 3313, nil))

	account := mustAccount(t, book, 41)
	assertAmount(t, "24.01", account.Available())
	assertAmount(t, "7.8484", account.Held())

	// Unknown id below: balances must not move.
	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 41, 3319, nil))
	assertAmount(t, "24.01", account.Available())
	assertAmount(t, "7.8484", account.Held())

	mustApply(t, book, txnLog, NewTransaction(TypeResolve, 41, 3313, nil))
	assertAmount(t, "31.8584", account.Available())
	assertAmount(t, "0", account.Held())

	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 41, 3313, nil))
	mustApply(t, book, txnLog, NewTransaction(TypeChargeback, 41, 3313, nil))
	assertAmount(t, "24.01", account.Available())
	assertAmount(t, "0", account.Held())
	assert.True(t, account.Locked())

	outcome := NewOutcome(NewTransaction(TypeDeposit, 41, 3314, amount(t, "17.4219")))
	require.Error(t, Apply(book, txnLog, outcome))
	assert.False(t, outcome.Applied())
}

func TestApplyMultipleClients(t *testing.T) {
	t.Parallel()

	book := NewMemoryAccountBook()
	txnLog := NewMemoryTransactionLog()

	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 1, 1, amount(t, "7.00")))
	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 2, 2, amount(t, "2.00")))
	mustApply(t, book, txnLog, NewTransaction(TypeDeposit, 1, 3, amount(t, "2.00")))
	mustApply(t, book, txnLog, NewTransaction(TypeWithdrawal, 1, 4, amount(t, "1.50")))

	first := mustAccount(t, book, 1)
	assertAmount(t, "7.50", first.Available())
	assertAmount(t, "0", first.Held())
	assert.False(t, first.Locked())

	second := mustAccount(t, book, 2)
	assertAmount(t, "2.00", second.Available())
	assertAmount(t, "0", second.Held())
	assert.False(t, second.Locked())

	mustApply(t, book, txnLog, NewTransaction(TypeDispute, 2, 2, nil))
	assertAmount(t, "0", second.Available())
	assertAmount(t, "2.00", second.Held())

	mustApply(t, book, txnLog, NewTransaction(TypeResolve, 2, 2, nil))
	assertAmount(t, "2.00", second.Available())
	assertAmount(t, "0", second.Held())
}
