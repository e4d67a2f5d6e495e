package ledger

import "fmt"

// ErrorCode is a domain error code used by the transaction-application engine.
type ErrorCode string

const (
	// ErrorDuplicateTransaction indicates an outcome holder that was already applied.
	ErrorDuplicateTransaction ErrorCode = "DUPLICATE_TRANSACTION"
	// ErrorAccountLocked indicates a deposit or withdrawal against a locked account.
	ErrorAccountLocked ErrorCode = "ACCOUNT_LOCKED"
	// ErrorMissingAmount indicates a deposit or withdrawal record carrying no amount.
	ErrorMissingAmount ErrorCode = "MISSING_AMOUNT"
	// ErrorUnknownTransactionType indicates a record whose type is outside the closed set.
	ErrorUnknownTransactionType ErrorCode = "UNKNOWN_TRANSACTION_TYPE"
)

// DomainError represents a structured ledger domain error.
//
// All engine failures are recoverable values: when Apply returns a
// DomainError the outcome holder is left pending and no balance was
// mutated by the failing operation.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}

func newDuplicateError(id TransactionID) error {
	return NewDomainError(ErrorDuplicateTransaction, "tx", fmt.Sprintf("%s has already been applied", id))
}

func newLockedError(id ClientID) error {
	return NewDomainError(ErrorAccountLocked, "client", fmt.Sprintf("%s is locked", id))
}

func newMissingAmountError(transactionType TransactionType, id TransactionID) error {
	return NewDomainError(ErrorMissingAmount, "amount", fmt.Sprintf("%s record %s has no amount", transactionType, id))
}
