package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DecimalScale is the number of fractional digits tracked for all amounts.
const DecimalScale = 4

// ClientID uniquely identifies a client and keys the account book.
type ClientID uint16

// String returns the display form of a client identifier.
func (id ClientID) String() string {
	return fmt.Sprintf("client[%d]", uint16(id))
}

// TransactionID uniquely identifies a transaction and keys the transaction log.
type TransactionID uint32

// String returns the display form of a transaction identifier.
func (id TransactionID) String() string {
	return fmt.Sprintf("tx[%d]", uint32(id))
}

// Rescale normalizes an amount to the fixed DecimalScale.
//
// Every amount is normalized at ingestion and again before each balance
// mutation, so repeated dispute/resolve cycles cannot accumulate drift.
// Rounding is banker's rounding, matching decimal rescaling conventions.
func Rescale(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(DecimalScale)
}
