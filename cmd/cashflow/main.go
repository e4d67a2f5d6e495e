// Command cashflow replays a CSV transaction log against an in-memory ledger
// and writes the resulting account report to stdout as CSV.
//
// Usage:
//
//	cashflow [-env local|development|production] [-log-level debug|info|warn|error] transactions.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/csvio"
	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/ledger"
	"github.com/nd7eeha6mr8rqv3/cashflow/cashflow/log"
	cashzap "github.com/nd7eeha6mr8rqv3/cashflow/cashflow/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("cashflow", flag.ContinueOnError)
	environment := flags.String("env", string(cashzap.EnvironmentLocal), "logger profile: local, development, or production")
	logLevel := flags.String("log-level", "", "log verbosity: debug, info, warn, or error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 1 {
		return fmt.Errorf("usage: cashflow [flags] {transactions.csv}")
	}

	logger, _, err := cashzap.New(cashzap.Config{
		Environment: cashzap.Environment(*environment),
		Level:       *logLevel,
	})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	return replay(flags.Arg(0), stdout, logger)
}

func replay(path string, stdout io.Writer, logger log.Logger) error {
	streamFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening transaction log %s: %w", path, err)
	}
	defer streamFile.Close()

	book := ledger.NewMemoryAccountBook()
	txnLog := ledger.NewMemoryTransactionLog()

	if err := csvio.LoadTransactions(bufio.NewReader(streamFile), book, txnLog, logger); err != nil {
		return fmt.Errorf("loading transactions from %s: %w", path, err)
	}

	if err := csvio.WriteAccounts(stdout, book); err != nil {
		return fmt.Errorf("writing account report: %w", err)
	}

	return nil
}
