package state

import (
	"fmt"
	"math"

	"github.com/kidchain/kidchain/foundation/ledger/database"
)

// RetrieveChain returns a copy of the committed chain in order.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBlocks(s.chain)
}

// RetrieveTail returns a copy of the last n committed blocks. A value
// larger than the chain returns the whole chain.
func (s *State) RetrieveTail(n int) []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.chain) {
		n = len(s.chain)
	}

	return copyBlocks(s.chain[len(s.chain)-n:])
}

// RetrieveLatestBlock returns a copy of the latest committed block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := copyBlocks(s.chain[len(s.chain)-1:])
	return blocks[0]
}

// ChainLength returns the number of committed blocks.
func (s *State) ChainLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chain)
}

// RetrievePending returns a copy of the pending queue in admission order.
func (s *State) RetrievePending() []database.Tx {
	return s.mempool.Copy()
}

// PendingCount returns the number of pending transactions.
func (s *State) PendingCount() int {
	return s.mempool.Count()
}

// RetrieveUsers returns the registered user names in sorted order.
func (s *State) RetrieveUsers() []string {
	return s.accounts.Copy()
}

// Difficulty returns the current proof of work difficulty.
func (s *State) Difficulty() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.genesis.Difficulty
}

// SetDifficulty updates the number of leading zero characters required
// in a block hash.
func (s *State) SetDifficulty(difficulty uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.genesis.Difficulty = difficulty
	s.evHandler("state: SetDifficulty: difficulty[%d]", difficulty)
}

// Reward returns the current mining reward.
func (s *State) Reward() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.genesis.Reward
}

// SetReward updates the amount minted to the miner per mined block. The
// reward must be a positive number.
func (s *State) SetReward(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrNotANumber
	}
	if amount <= 0 {
		return fmt.Errorf("reward: %w", ErrNotPositive)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.genesis.Reward = amount
	s.evHandler("state: SetReward: reward[%v]", amount)

	return nil
}

// =============================================================================

// copyBlocks makes a copy of the specified blocks including their
// transaction lists so callers never hold references into the chain.
func copyBlocks(blocks []database.Block) []database.Block {
	out := make([]database.Block, len(blocks))
	for i, block := range blocks {
		trans := make([]database.Tx, len(block.Trans))
		copy(trans, block.Trans)

		block.Trans = trans
		out[i] = block
	}

	return out
}
