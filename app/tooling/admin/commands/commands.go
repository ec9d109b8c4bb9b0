// Package commands implements the admin subcommands over snapshot
// files.
package commands

import (
	"fmt"

	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/kidchain/kidchain/foundation/ledger/storage/disk"
)

// loadState reads a snapshot file and reconstructs a ledger from it.
func loadState(path string) (*state.State, error) {
	snap, err := disk.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %q: %w", path, err)
	}

	st, err := state.FromSnapshot(snap, func(v string, args ...any) {})
	if err != nil {
		return nil, fmt.Errorf("reconstructing ledger: %w", err)
	}

	return st, nil
}
