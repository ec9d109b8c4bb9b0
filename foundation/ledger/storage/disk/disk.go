// Package disk handles the lower level support for persisting ledger
// snapshots as a single flat JSON file on disk.
package disk

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kidchain/kidchain/foundation/ledger/state"
)

// Save writes the snapshot to the specified path. The file is held open
// only for the duration of the write, in a more human readable format.
func Save(path string, snap state.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

// Load reads a snapshot from the specified path. An unreadable file or
// malformed content returns an error and nothing else happens, the
// caller's ledger is untouched.
func Load(path string) (state.Snapshot, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0600)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	var snap state.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return state.Snapshot{}, fmt.Errorf("decode snapshot file: %w", err)
	}

	return snap, nil
}
