package state

import (
	"fmt"

	"github.com/kidchain/kidchain/foundation/ledger/accounts"
	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/digest"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/mempool"
)

// Snapshot represents the whole ledger in its transport form. The
// policy fields are pointers so a snapshot missing them can fall back
// to the defaults on import.
type Snapshot struct {
	Difficulty *uint            `json:"difficulty"`
	Reward     *float64         `json:"reward"`
	Users      []string         `json:"users"`
	Pending    []database.Tx    `json:"pending"`
	Chain      []database.Block `json:"chain"`
}

// Export produces a structural copy of the ledger: policy, users in
// sorted order, the pending queue and the chain. The copy shares
// nothing with the live state.
func (s *State) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	difficulty := s.genesis.Difficulty
	reward := s.genesis.Reward

	return Snapshot{
		Difficulty: &difficulty,
		Reward:     &reward,
		Users:      s.accounts.Copy(),
		Pending:    s.mempool.Copy(),
		Chain:      copyBlocks(s.chain),
	}
}

// FromSnapshot constructs a brand-new ledger from the snapshot. The
// prior instance is never touched, callers swap their reference only
// when this returns without error. The snapshot is checked for
// structure only; hash linkage is not re-verified.
func FromSnapshot(snap Snapshot, evHandler EventHandler) (*State, error) {
	if err := validateSnapshot(snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	g := genesis.New()
	if snap.Difficulty != nil {
		g.Difficulty = *snap.Difficulty
	}
	if snap.Reward != nil && *snap.Reward > 0 {
		g.Reward = *snap.Reward
	}

	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	state := State{
		evHandler: ev,
		genesis:   g,
		chain:     copyBlocks(snap.Chain),
		mempool:   mempool.New(),
	}
	state.mempool.Replace(snap.Pending)

	state.accounts = accounts.New()
	state.accounts.Replace(snap.Users)

	ev("state: FromSnapshot: restored: blocks[%d] users[%d] pending[%d]",
		len(snap.Chain), len(snap.Users), len(snap.Pending))

	return &state, nil
}

// validateSnapshot checks the structural requirements of the transport
// form: a chain starting at genesis and complete transaction records.
func validateSnapshot(snap Snapshot) error {
	if len(snap.Chain) == 0 {
		return fmt.Errorf("chain is missing or empty")
	}

	for i, block := range snap.Chain {
		if len(block.Hash) != digest.HashLength {
			return fmt.Errorf("block %d: malformed hash", i)
		}
		if len(block.PrevBlockHash) != digest.HashLength {
			return fmt.Errorf("block %d: malformed previous hash", i)
		}
		if block.Timestamp == "" {
			return fmt.Errorf("block %d: missing timestamp", i)
		}
		for j, tx := range block.Trans {
			if err := validateTx(tx); err != nil {
				return fmt.Errorf("block %d: transaction %d: %w", i, j, err)
			}
		}
	}

	for i, tx := range snap.Pending {
		if err := validateTx(tx); err != nil {
			return fmt.Errorf("pending transaction %d: %w", i, err)
		}
	}

	return nil
}

func validateTx(tx database.Tx) error {
	switch {
	case tx.Sender == "":
		return fmt.Errorf("missing sender")
	case tx.Recipient == "":
		return fmt.Errorf("missing recipient")
	case tx.Timestamp == "":
		return fmt.Errorf("missing timestamp")
	}

	return nil
}
