package commands

import (
	"fmt"

	"github.com/kidchain/kidchain/foundation/ledger/digest"
)

// Verify recomputes every block hash in the snapshot and checks the
// previous-hash linkage between consecutive blocks.
func Verify(args []string) error {
	st, err := loadState(args[2])
	if err != nil {
		return err
	}

	chain := st.RetrieveChain()
	prev := digest.ZeroHash

	for _, b := range chain {
		if b.PrevBlockHash != prev {
			return fmt.Errorf("block %d: previous hash %s does not match %s", b.Index, b.PrevBlockHash, prev)
		}

		if got := b.ComputeHash(); got != b.Hash {
			return fmt.Errorf("block %d: stored hash %s does not match computed %s", b.Index, b.Hash, got)
		}

		prev = b.Hash
	}

	fmt.Printf("chain verified: %d blocks\n", len(chain))
	return nil
}
