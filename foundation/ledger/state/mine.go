package state

import (
	"context"
	"fmt"

	"github.com/kidchain/kidchain/foundation/ledger/database"
)

// Mine bundles the pending transactions plus a reward transaction into a
// new block, performs the proof of work search and commits the block.
// The commit appends the block to the chain and clears the pending queue
// in one step, there is no partial commit state observable to callers.
func (s *State) Mine(ctx context.Context, miner string) (database.Block, error) {
	if !s.accounts.Exists(miner) {
		return database.Block{}, fmt.Errorf("mine %q: %w", miner, ErrUnknownMiner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: Mine: MINING: started: miner[%s]", miner)
	defer s.evHandler("state: Mine: MINING: completed")

	// The reward joins a working copy of the pending list. The stored
	// queue is untouched until the commit below.
	rewardTx := database.NewTx(database.SystemAccount, miner, s.genesis.Reward, "Mining reward")
	trans := append(s.mempool.Copy(), rewardTx)

	latestBlock := s.chain[len(s.chain)-1]
	candidate := database.NewBlock(uint64(len(s.chain)), trans, latestBlock.Hash)

	block, err := database.POW(ctx, candidate, s.genesis.Difficulty, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Sole commit point.
	s.chain = append(s.chain, block)
	s.mempool.Truncate()

	s.evHandler("state: Mine: committed: blk[%d] txs[%d] hash[%s]", block.Index, len(block.Trans), block.Hash)

	return block, nil
}
