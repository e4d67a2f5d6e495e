package ledger

// MemoryAccountBook holds all accounts in an in-memory map.
//
// No persistence, and only a single operation is allowed on the entire book
// at any given time.
type MemoryAccountBook struct {
	accounts map[ClientID]*Account
}

// NewMemoryAccountBook creates a new, empty MemoryAccountBook.
func NewMemoryAccountBook() *MemoryAccountBook {
	return &MemoryAccountBook{accounts: make(map[ClientID]*Account)}
}

// Account fetches a client's account, creating it on first reference.
func (b *MemoryAccountBook) Account(clientID ClientID) (*Account, error) {
	account, ok := b.accounts[clientID]
	if !ok {
		account = NewAccount(clientID)
		b.accounts[clientID] = account
	}

	return account, nil
}

// Accounts returns every account in the book, in unspecified order.
func (b *MemoryAccountBook) Accounts() []*Account {
	accounts := make([]*Account, 0, len(b.accounts))
	for _, account := range b.accounts {
		accounts = append(accounts, account)
	}

	return accounts
}

// MemoryTransactionLog holds all registered transactions in an in-memory map.
//
// Only a single transaction per id is supported, which is sufficient because
// referential types are never registered. No persistence.
type MemoryTransactionLog struct {
	transactions map[TransactionID]Transaction
}

// NewMemoryTransactionLog creates a new, empty MemoryTransactionLog.
func NewMemoryTransactionLog() *MemoryTransactionLog {
	return &MemoryTransactionLog{transactions: make(map[TransactionID]Transaction)}
}

// Transaction fetches a registered transaction by id, or nil on a miss.
func (l *MemoryTransactionLog) Transaction(transactionID TransactionID) (*Transaction, error) {
	txn, ok := l.transactions[transactionID]
	if !ok {
		return nil, nil
	}

	return &txn, nil
}

// Register inserts or overwrites a transaction under its id.
func (l *MemoryTransactionLog) Register(txn Transaction) error {
	l.transactions[txn.TransactionID] = txn

	return nil
}
