package state

import (
	"fmt"
	"math"

	"github.com/kidchain/kidchain/foundation/ledger/database"
)

// SubmitTransaction validates a transfer against the current balances
// and appends it to the pending queue. On failure nothing is mutated,
// on success exactly one transaction is queued and the chain is left
// untouched.
func (s *State) SubmitTransaction(sender string, recipient string, amount float64, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrNotANumber
	}

	if amount <= 0 {
		return ErrNotPositive
	}

	if sender != database.SystemAccount && !s.accounts.Exists(sender) {
		return fmt.Errorf("%w %q", ErrUnknownSender, sender)
	}

	if recipient != database.GenesisAccount && !s.accounts.Exists(recipient) {
		return fmt.Errorf("%w %q", ErrUnknownRecipient, recipient)
	}

	// SYSTEM is the faucet, it mints without a balance check.
	if sender != database.SystemAccount {
		if balance := s.balance(sender); balance < amount {
			return &InsufficientFundsError{Sender: sender, Balance: balance}
		}
	}

	tx := database.NewTx(sender, recipient, amount, note)
	s.mempool.Append(tx)

	s.evHandler("state: SubmitTransaction: accepted: tx[%s]", tx)

	return nil
}
