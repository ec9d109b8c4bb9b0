package ledger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kidchain/kidchain/business/core/ledger"
	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newCore(t *testing.T) *ledger.Core {
	t.Helper()

	g := genesis.Genesis{Difficulty: 1, Reward: 10.0}
	return ledger.NewCore(g, func(v string, args ...any) {})
}

// =============================================================================

func Test_SaveLoadSwap(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to replace the running ledger from a file.")
	{
		core := newCore(t)
		if err := core.AddUser("alice"); err != nil {
			t.Fatalf("\t%s\tShould add alice: %v", failed, err)
		}
		if err := core.SubmitTransaction(database.SystemAccount, "alice", 50, "Faucet"); err != nil {
			t.Fatalf("\t%s\tShould queue a faucet grant: %v", failed, err)
		}
		if _, err := core.Mine(ctx, "alice"); err != nil {
			t.Fatalf("\t%s\tShould mine the block: %v", failed, err)
		}

		path := filepath.Join(t.TempDir(), "ledger.json")

		t.Log("\tTest 0:\tWhen saving and loading the ledger.")
		{
			if err := core.Save(path); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould save the ledger: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould save the ledger.", success)

			if err := core.AddUser("bob"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould add bob after the save: %v", failed, err)
			}

			if err := core.Load(path); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould load the ledger back: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould load the ledger back.", success)

			if core.UserExists("bob") {
				t.Fatalf("\t%s\tTest 0:\tShould drop state created after the save.", failed)
			}
			if got := core.Balance("alice"); got != 60 {
				t.Fatalf("\t%s\tTest 0:\tShould restore alice's balance: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould restore the saved state.", success)
		}

		t.Log("\tTest 1:\tWhen loading a corrupt file.")
		{
			bad := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould write the fixture: %v", failed, err)
			}

			if err := core.Load(bad); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould fail with an error.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with an error.", success)

			if got := core.Balance("alice"); got != 60 {
				t.Fatalf("\t%s\tTest 1:\tShould keep the running ledger intact: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the running ledger intact.", success)
		}
	}
}
