package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/ledger"
)

// WriteAccounts renders the state of every account in the book as CSV:
//
//	client,available,held,total,locked
//	1,7.5000,0.0000,7.5000,false
//
// Amounts are fixed to the ledger decimal scale. Row order follows the
// account book's iteration order, which is unspecified.
func WriteAccounts(writer io.Writer, book ledger.AccountBook) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write([]string{columnClient, "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("writing account report header: %w", err)
	}

	for _, account := range book.Accounts() {
		row := []string{
			strconv.FormatUint(uint64(account.ClientID()), 10),
			account.Available().StringFixed(ledger.DecimalScale),
			account.Held().StringFixed(ledger.DecimalScale),
			account.Total().StringFixed(ledger.DecimalScale),
			strconv.FormatBool(account.Locked()),
		}

		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing account report for %s: %w", account.ClientID(), err)
		}
	}

	csvWriter.Flush()

	return csvWriter.Error()
}
