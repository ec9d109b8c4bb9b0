package state_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newState(t *testing.T) *state.State {
	t.Helper()

	s := state.New(state.Config{
		Genesis: genesis.Genesis{
			Difficulty: 1,
			Reward:     10.0,
		},
		EvHandler: func(v string, args ...any) {},
	})

	return s
}

func addUsers(t *testing.T, s *state.State, names ...string) {
	t.Helper()

	for _, name := range names {
		if err := s.AddUser(name); err != nil {
			t.Fatalf("\t%s\tShould add user %q: %v", failed, name, err)
		}
	}
}

// =============================================================================

func Test_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to run a ledger through a full session.")
	{
		s := newState(t)
		addUsers(t, s, "alice", "bob")

		t.Log("\tTest 0:\tWhen granting alice coins from the faucet and mining.")
		{
			if err := s.SubmitTransaction(database.SystemAccount, "alice", 50, "Faucet"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould accept a faucet grant: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould accept a faucet grant.", success)

			block, err := s.Mine(ctx, "alice")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould mine the block.", success)

			if len(block.Trans) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould commit the pending tx plus the reward: got %d", failed, len(block.Trans))
			}
			t.Logf("\t%s\tTest 0:\tShould commit the pending tx plus the reward.", success)

			reward := block.Trans[len(block.Trans)-1]
			if reward.Sender != database.SystemAccount || reward.Recipient != "alice" || reward.Amount != 10 {
				t.Fatalf("\t%s\tTest 0:\tShould append the reward tx last: %+v", failed, reward)
			}
			t.Logf("\t%s\tTest 0:\tShould append the reward tx last.", success)

			if got := s.Balance("alice"); got != 60 {
				t.Fatalf("\t%s\tTest 0:\tShould leave alice with 60: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould leave alice with 60.", success)

			if s.PendingCount() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould drain the pending pool: got %d", failed, s.PendingCount())
			}
			t.Logf("\t%s\tTest 0:\tShould drain the pending pool.", success)
		}

		t.Log("\tTest 1:\tWhen alice sends bob 20 before any mining.")
		{
			if err := s.SubmitTransaction("alice", "bob", 20, "gift"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould accept the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould accept the transaction.", success)

			if got := s.Balance("alice"); got != 40 {
				t.Fatalf("\t%s\tTest 1:\tShould debit alice's spendable balance: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould debit alice's spendable balance.", success)

			if got := s.Balance("bob"); got != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould not credit bob before mining: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould not credit bob before mining.", success)
		}

		t.Log("\tTest 2:\tWhen bob mines the pending transaction.")
		{
			if _, err := s.Mine(ctx, "bob"); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould mine the block.", success)

			if got := s.Balance("alice"); got != 40 {
				t.Fatalf("\t%s\tTest 2:\tShould leave alice with 40: got %v", failed, got)
			}
			if got := s.Balance("bob"); got != 30 {
				t.Fatalf("\t%s\tTest 2:\tShould leave bob with 30: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould settle both balances.", success)

			if got := s.ChainLength(); got != 3 {
				t.Fatalf("\t%s\tTest 2:\tShould have 3 blocks on the chain: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould have 3 blocks on the chain.", success)
		}

		t.Log("\tTest 3:\tWhen mining with nothing pending.")
		{
			block, err := s.Mine(ctx, "alice")
			if err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould mine a reward-only block: %v", failed, err)
			}
			if len(block.Trans) != 1 {
				t.Fatalf("\t%s\tTest 3:\tShould contain only the reward tx: got %d", failed, len(block.Trans))
			}
			t.Logf("\t%s\tTest 3:\tShould mine a reward-only block.", success)
		}
	}
}

func Test_SubmitTransactionRejections(t *testing.T) {
	t.Log("Given the need to reject invalid transactions.")
	{
		s := newState(t)
		addUsers(t, s, "alice", "bob")

		type table struct {
			name      string
			sender    string
			recipient string
			amount    float64
			check     func(err error) bool
		}

		tt := []table{
			{"NaN amount", "alice", "bob", math.NaN(), func(err error) bool { return errors.Is(err, state.ErrNotANumber) }},
			{"infinite amount", "alice", "bob", math.Inf(1), func(err error) bool { return errors.Is(err, state.ErrNotANumber) }},
			{"zero amount", "alice", "bob", 0, func(err error) bool { return errors.Is(err, state.ErrNotPositive) }},
			{"negative amount", "alice", "bob", -5, func(err error) bool { return errors.Is(err, state.ErrNotPositive) }},
			{"unknown sender", "mallory", "bob", 1, func(err error) bool { return errors.Is(err, state.ErrUnknownSender) }},
			{"unknown recipient", "alice", "mallory", 1, func(err error) bool { return errors.Is(err, state.ErrUnknownRecipient) }},
			{"insufficient funds", "alice", "bob", 1, func(err error) bool {
				var ife *state.InsufficientFundsError
				return errors.As(err, &ife)
			}},
		}

		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen submitting a transaction with %s.", testID, tst.name)
			{
				err := s.SubmitTransaction(tst.sender, tst.recipient, tst.amount, "")
				if err == nil || !tst.check(err) {
					t.Fatalf("\t%s\tTest %d:\tShould reject the transaction: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould reject the transaction.", success, testID)

				if s.PendingCount() != 0 {
					t.Fatalf("\t%s\tTest %d:\tShould leave the pending pool unchanged.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould leave the pending pool unchanged.", success, testID)
			}
		}

		t.Log("\tTest 7:\tWhen the faucet overdraws the system account.")
		{
			if err := s.SubmitTransaction(database.SystemAccount, "alice", 1_000_000, "Faucet"); err != nil {
				t.Fatalf("\t%s\tTest 7:\tShould never bounce the system account: %v", failed, err)
			}
			t.Logf("\t%s\tTest 7:\tShould never bounce the system account.", success)
		}
	}
}

func Test_MineUnknownMiner(t *testing.T) {
	t.Log("Given the need to refuse rewards to unknown accounts.")
	{
		s := newState(t)
		addUsers(t, s, "alice")

		if err := s.SubmitTransaction(database.SystemAccount, "alice", 5, "Faucet"); err != nil {
			t.Fatalf("\t%s\tShould accept a faucet grant: %v", failed, err)
		}

		t.Log("\tTest 0:\tWhen an unregistered account mines.")
		{
			if _, err := s.Mine(context.Background(), "mallory"); !errors.Is(err, state.ErrUnknownMiner) {
				t.Fatalf("\t%s\tTest 0:\tShould reject the unknown miner: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject the unknown miner.", success)

			if s.ChainLength() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain unchanged: got %d blocks", failed, s.ChainLength())
			}
			if s.PendingCount() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the pending pool unchanged: got %d", failed, s.PendingCount())
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain and pending pool unchanged.", success)
		}
	}
}

func Test_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to export and import the full ledger.")
	{
		s := newState(t)
		addUsers(t, s, "alice", "bob")

		if err := s.SubmitTransaction(database.SystemAccount, "alice", 50, "Faucet"); err != nil {
			t.Fatalf("\t%s\tShould accept a faucet grant: %v", failed, err)
		}
		if _, err := s.Mine(ctx, "alice"); err != nil {
			t.Fatalf("\t%s\tShould mine the block: %v", failed, err)
		}
		if err := s.SubmitTransaction("alice", "bob", 7, "pending"); err != nil {
			t.Fatalf("\t%s\tShould queue a pending tx: %v", failed, err)
		}

		t.Log("\tTest 0:\tWhen importing an exported snapshot.")
		{
			snap := s.Export()

			s2, err := state.FromSnapshot(snap, func(v string, args ...any) {})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould import the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould import the snapshot.", success)

			if s2.ChainLength() != s.ChainLength() {
				t.Fatalf("\t%s\tTest 0:\tShould preserve the chain length.", failed)
			}
			if s2.PendingCount() != s.PendingCount() {
				t.Fatalf("\t%s\tTest 0:\tShould preserve the pending pool.", failed)
			}
			if s2.Difficulty() != s.Difficulty() || s2.Reward() != s.Reward() {
				t.Fatalf("\t%s\tTest 0:\tShould preserve the policy settings.", failed)
			}
			for _, name := range []string{"alice", "bob"} {
				if s2.Balance(name) != s.Balance(name) {
					t.Fatalf("\t%s\tTest 0:\tShould preserve the balance of %q.", failed, name)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould reproduce the ledger exactly.", success)
		}

		t.Log("\tTest 1:\tWhen the snapshot omits the policy settings.")
		{
			snap := s.Export()
			snap.Difficulty = nil
			snap.Reward = nil

			s2, err := state.FromSnapshot(snap, func(v string, args ...any) {})
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould import the snapshot: %v", failed, err)
			}

			if s2.Difficulty() != genesis.DefaultDifficulty || s2.Reward() != genesis.DefaultReward {
				t.Fatalf("\t%s\tTest 1:\tShould fall back to the defaults: difficulty %d reward %v", failed, s2.Difficulty(), s2.Reward())
			}
			t.Logf("\t%s\tTest 1:\tShould fall back to the defaults.", success)
		}

		t.Log("\tTest 2:\tWhen the snapshot is malformed.")
		{
			snap := s.Export()
			snap.Chain = nil

			if _, err := state.FromSnapshot(snap, func(v string, args ...any) {}); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject an empty chain.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject an empty chain.", success)

			snap = s.Export()
			snap.Chain[0].Hash = "short"

			if _, err := state.FromSnapshot(snap, func(v string, args ...any) {}); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject a malformed block hash.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a malformed block hash.", success)

			if s.ChainLength() != 2 || s.PendingCount() != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould leave the source ledger usable.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould leave the source ledger usable.", success)
		}
	}
}

func Test_Policy(t *testing.T) {
	t.Log("Given the need to adjust the mining policy.")
	{
		s := newState(t)

		t.Log("\tTest 0:\tWhen setting the difficulty.")
		{
			s.SetDifficulty(3)
			if got := s.Difficulty(); got != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould read back 3: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould read back the new difficulty.", success)
		}

		t.Log("\tTest 1:\tWhen setting the reward.")
		{
			if err := s.SetReward(25); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould accept a positive reward: %v", failed, err)
			}
			if got := s.Reward(); got != 25 {
				t.Fatalf("\t%s\tTest 1:\tShould read back 25: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould accept a positive reward.", success)

			for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				if err := s.SetReward(amount); err == nil {
					t.Fatalf("\t%s\tTest 1:\tShould reject reward %v.", failed, amount)
				}
			}
			if got := s.Reward(); got != 25 {
				t.Fatalf("\t%s\tTest 1:\tShould keep the last valid reward: got %v", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould reject invalid rewards.", success)
		}
	}
}
