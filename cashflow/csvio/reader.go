package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/ledger"
	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/log"
)

// Input column names. A header row carrying them is required; column order is
// taken from the header, not assumed.
const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// header maps input column names to their position in the stream.
type header struct {
	typeIndex   int
	clientIndex int
	txIndex     int
	amountIndex int
}

// LoadTransactions reads a CSV-formatted transaction stream and applies every
// record against the supplied account book and transaction log.
//
// Expects input in this format (including header):
//
//	type,      client,   tx,   amount
//	deposit,        1,    1,      1.0
//	withdrawal,     1,    4,      1.5
//	dispute,        1,    1,
//
// Surrounding whitespace is trimmed and the trailing amount field may be
// omitted entirely on referential rows. Malformed rows abort the load.
// Recoverable domain failures from the engine (a locked account, a primary
// record with no amount) are logged at warn level and the stream continues;
// the rejected record is discarded.
func LoadTransactions(reader io.Reader, book ledger.AccountBook, txnLog ledger.TransactionLog, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNop()
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	head, err := readHeader(csvReader)
	if err != nil {
		return err
	}

	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading transaction stream: %w", err)
		}

		txn, err := decodeTransaction(head, row)
		if err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}

		outcome := ledger.NewOutcome(txn)
		if err := ledger.Apply(book, txnLog, outcome); err != nil {
			var domainErr ledger.DomainError
			if errors.As(err, &domainErr) && recoverable(domainErr.Code) {
				logger.Log(log.LevelWarn, "skipping transaction",
					log.Int("row", line),
					log.Stringer("tx", txn.TransactionID),
					log.Stringer("client", txn.ClientID),
					log.Err(err),
				)

				continue
			}

			return fmt.Errorf("row %d: %w", line, err)
		}
	}
}

// recoverable reports whether a domain failure should skip the record instead
// of halting the stream.
func recoverable(code ledger.ErrorCode) bool {
	return code == ledger.ErrorAccountLocked || code == ledger.ErrorMissingAmount
}

func readHeader(csvReader *csv.Reader) (header, error) {
	row, err := csvReader.Read()
	if err != nil {
		return header{}, fmt.Errorf("reading transaction stream header: %w", err)
	}

	head := header{typeIndex: -1, clientIndex: -1, txIndex: -1, amountIndex: -1}

	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnType:
			head.typeIndex = i
		case columnClient:
			head.clientIndex = i
		case columnTx:
			head.txIndex = i
		case columnAmount:
			head.amountIndex = i
		}
	}

	if head.typeIndex < 0 || head.clientIndex < 0 || head.txIndex < 0 {
		return header{}, fmt.Errorf("transaction stream header must name %q, %q, and %q columns", columnType, columnClient, columnTx)
	}

	return head, nil
}

func decodeTransaction(head header, row []string) (ledger.Transaction, error) {
	transactionType, err := ledger.ParseTransactionType(field(row, head.typeIndex))
	if err != nil {
		return ledger.Transaction{}, err
	}

	clientID, err := strconv.ParseUint(field(row, head.clientIndex), 10, 16)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parsing client id: %w", err)
	}

	transactionID, err := strconv.ParseUint(field(row, head.txIndex), 10, 32)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parsing transaction id: %w", err)
	}

	var amount *decimal.Decimal

	if raw := field(row, head.amountIndex); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("parsing amount: %w", err)
		}

		amount = &parsed
	}

	return ledger.NewTransaction(
		transactionType,
		ledger.ClientID(clientID),
		ledger.TransactionID(transactionID),
		amount,
	), nil
}

// field fetches a trimmed column value, tolerating rows that omit trailing
// fields.
func field(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[index])
}
