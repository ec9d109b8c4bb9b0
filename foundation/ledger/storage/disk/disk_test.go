package disk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/kidchain/kidchain/foundation/ledger/storage/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_SaveLoad(t *testing.T) {
	t.Log("Given the need to persist a ledger snapshot.")
	{
		t.Log("\tTest 0:\tWhen saving and loading a snapshot.")
		{
			s := state.New(state.Config{
				Genesis:   genesis.Genesis{Difficulty: 1, Reward: 10.0},
				EvHandler: func(v string, args ...any) {},
			})
			if err := s.AddUser("alice"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould add a user: %v", failed, err)
			}
			if err := s.SubmitTransaction(database.SystemAccount, "alice", 50, "Faucet"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould queue a faucet grant: %v", failed, err)
			}
			if _, err := s.Mine(context.Background(), "alice"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould mine the block: %v", failed, err)
			}

			path := filepath.Join(t.TempDir(), "ledger.json")

			if err := disk.Save(path, s.Export()); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould save the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould save the snapshot.", success)

			snap, err := disk.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould load the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould load the snapshot.", success)

			s2, err := state.FromSnapshot(snap, func(v string, args ...any) {})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould rebuild the ledger: %v", failed, err)
			}

			if s2.ChainLength() != s.ChainLength() || s2.Balance("alice") != s.Balance("alice") {
				t.Fatalf("\t%s\tTest 0:\tShould round trip the ledger exactly.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould round trip the ledger exactly.", success)
		}

		t.Log("\tTest 1:\tWhen loading a missing file.")
		{
			if _, err := disk.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould fail with an error.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with an error.", success)
		}

		t.Log("\tTest 2:\tWhen loading a corrupt file.")
		{
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould write the fixture: %v", failed, err)
			}

			if _, err := disk.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould fail with an error.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould fail with an error.", success)
		}
	}
}
