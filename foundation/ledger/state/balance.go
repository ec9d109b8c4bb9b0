package state

import "math"

// Balance computes the spendable balance for the specified name by
// replaying the entire chain and then applying pending debits. Pending
// credits do not count until mined, which keeps a user from spending
// funds they have only been promised. An unknown name yields zero;
// there are no error conditions.
func (s *State) Balance(name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balance(name)
}

// balance is the replay fold. Callers must hold the state lock.
func (s *State) balance(name string) float64 {
	var balance float64

	for _, block := range s.chain {
		for _, tx := range block.Trans {
			if tx.Sender == name {
				balance -= tx.Amount
			}
			if tx.Recipient == name {
				balance += tx.Amount
			}
		}
	}

	for _, tx := range s.mempool.Copy() {
		if tx.Sender == name {
			balance -= tx.Amount
		}
	}

	return round(balance)
}

// round trims the accumulated value to 8 decimal places to avoid
// floating point display noise.
func round(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
