package ledger

import "github.com/shopspring/decimal"

// Account is the per-client balance record: available funds, funds held for
// dispute, and the lock flag set by a chargeback.
//
// Both balances may go negative: over-withdrawal and over-dispute proceed
// rather than being rejected, which distinguishes this ledger from strict
// double-entry accounting.
type Account struct {
	clientID  ClientID
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
}

// NewAccount creates a new, unlocked account with zero balances.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		clientID:  clientID,
		available: decimal.Zero,
		held:      decimal.Zero,
	}
}

// ClientID returns the unique identifier for the account.
func (a *Account) ClientID() ClientID {
	return a.clientID
}

// Available returns the funds immediately usable by the client.
func (a *Account) Available() decimal.Decimal {
	return a.available
}

// Held returns the funds frozen pending dispute resolution.
func (a *Account) Held() decimal.Decimal {
	return a.held
}

// Total returns available plus held funds. It is derived, never stored.
func (a *Account) Total() decimal.Decimal {
	return a.available.Add(a.held)
}

// Locked reports whether a chargeback has locked the account.
func (a *Account) Locked() bool {
	return a.locked
}

// Deposit adds funds to the account's available funds.
// Returns ACCOUNT_LOCKED if the account is locked.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.checkLock(); err != nil {
		return err
	}

	a.available = a.available.Add(Rescale(amount))

	return nil
}

// Withdraw subtracts funds from the account's available funds, which may go
// negative. Returns ACCOUNT_LOCKED if the account is locked.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.checkLock(); err != nil {
		return err
	}

	a.available = a.available.Sub(Rescale(amount))

	return nil
}

// Dispute moves funds from available to held. It never fails and proceeds on
// locked accounts: disputes reverse prior, already-validated activity, and may
// legitimately follow the chargeback that performed the locking.
func (a *Account) Dispute(amount decimal.Decimal) {
	rescaled := Rescale(amount)
	a.available = a.available.Sub(rescaled)
	a.held = a.held.Add(rescaled)
}

// Resolve moves funds from held back to available. It never fails.
func (a *Account) Resolve(amount decimal.Decimal) {
	rescaled := Rescale(amount)
	a.held = a.held.Sub(rescaled)
	a.available = a.available.Add(rescaled)
}

// Chargeback subtracts funds from held and locks the account. It never fails,
// regardless of prior lock state.
func (a *Account) Chargeback(amount decimal.Decimal) {
	a.held = a.held.Sub(Rescale(amount))
	a.locked = true
}

func (a *Account) checkLock() error {
	if a.locked {
		return newLockedError(a.clientID)
	}

	return nil
}
