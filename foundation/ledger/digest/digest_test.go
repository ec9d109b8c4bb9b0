package digest_test

import (
	"strings"
	"testing"

	"github.com/kidchain/kidchain/foundation/ledger/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	t.Log("Given the need to hash block fields deterministically.")
	{
		t.Log("\tTest 0:\tWhen hashing the same fields twice.")
		{
			trans := []byte(`[{"amount":10,"note":"hi","recipient":"bob","sender":"alice","timestamp":"2024-01-01T00:00:00Z"}]`)

			h1 := digest.Hash(1, "2024-01-01T00:00:00Z", trans, digest.ZeroHash, 42)
			h2 := digest.Hash(1, "2024-01-01T00:00:00Z", trans, digest.ZeroHash, 42)

			if h1 != h2 {
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest for the same input: %s vs %s", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest for the same input.", success)

			if len(h1) != digest.HashLength {
				t.Fatalf("\t%s\tTest 0:\tShould get a %d character hex digest: got %d", failed, digest.HashLength, len(h1))
			}
			t.Logf("\t%s\tTest 0:\tShould get a %d character hex digest.", success, digest.HashLength)

			if strings.ToLower(h1) != h1 {
				t.Fatalf("\t%s\tTest 0:\tShould get a lowercase digest: %s", failed, h1)
			}
			t.Logf("\t%s\tTest 0:\tShould get a lowercase digest.", success)
		}

		t.Log("\tTest 1:\tWhen changing any single field.")
		{
			trans := []byte(`[]`)
			base := digest.Hash(1, "2024-01-01T00:00:00Z", trans, digest.ZeroHash, 0)

			variants := []string{
				digest.Hash(2, "2024-01-01T00:00:00Z", trans, digest.ZeroHash, 0),
				digest.Hash(1, "2024-01-01T00:00:01Z", trans, digest.ZeroHash, 0),
				digest.Hash(1, "2024-01-01T00:00:00Z", []byte(`[{}]`), digest.ZeroHash, 0),
				digest.Hash(1, "2024-01-01T00:00:00Z", trans, strings.Repeat("a", 64), 0),
				digest.Hash(1, "2024-01-01T00:00:00Z", trans, digest.ZeroHash, 1),
			}

			for i, v := range variants {
				if v == base {
					t.Fatalf("\t%s\tTest 1:\tShould get a different digest for variant %d.", failed, i)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould get a different digest for every changed field.", success)
		}
	}
}

func Test_Solved(t *testing.T) {
	type table struct {
		name       string
		difficulty uint
		hash       string
		solved     bool
	}

	tt := []table{
		{"zero difficulty", 0, strings.Repeat("f", 64), true},
		{"two zeros solved", 2, "00" + strings.Repeat("f", 62), true},
		{"two zeros unsolved", 2, "0f" + strings.Repeat("f", 62), false},
		{"full zero hash", 64, digest.ZeroHash, true},
		{"difficulty past length", 65, digest.ZeroHash, false},
		{"short hash", 1, "0", false},
		{"empty hash", 0, "", false},
	}

	t.Log("Given the need to check the leading zero rule.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking %s.", testID, tst.name)
			{
				if got := digest.Solved(tst.difficulty, tst.hash); got != tst.solved {
					t.Fatalf("\t%s\tTest %d:\tShould get %v: got %v", failed, testID, tst.solved, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get %v.", success, testID, tst.solved)
			}
		}
	}
}
