// Package ledger provides the application level API over the ledger
// state, including snapshot save and load with atomic replace.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/kidchain/kidchain/foundation/ledger/storage/disk"
)

// Core owns the reference to the ledger state. A successful snapshot
// load swaps the reference wholesale; a failed load leaves the prior
// ledger fully usable.
type Core struct {
	mu        sync.RWMutex
	evHandler state.EventHandler
	state     *state.State
}

// NewCore constructs a core with a fresh ledger using the specified
// policy.
func NewCore(g genesis.Genesis, evHandler state.EventHandler) *Core {
	if evHandler == nil {
		evHandler = func(v string, args ...any) {}
	}

	return &Core{
		evHandler: evHandler,
		state: state.New(state.Config{
			Genesis:   g,
			EvHandler: evHandler,
		}),
	}
}

// ledger returns the current state reference.
func (c *Core) ledger() *state.State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// =============================================================================
// Pass through operations on the current ledger.

// AddUser registers a new user name.
func (c *Core) AddUser(name string) error {
	return c.ledger().AddUser(name)
}

// UserExists reports whether the specified name is registered.
func (c *Core) UserExists(name string) bool {
	return c.ledger().UserExists(name)
}

// SubmitTransaction validates and queues a transfer.
func (c *Core) SubmitTransaction(sender string, recipient string, amount float64, note string) error {
	return c.ledger().SubmitTransaction(sender, recipient, amount, note)
}

// Mine commits the pending transactions plus the reward into a new block.
func (c *Core) Mine(ctx context.Context, miner string) (database.Block, error) {
	return c.ledger().Mine(ctx, miner)
}

// Balance computes the spendable balance for the specified name.
func (c *Core) Balance(name string) float64 {
	return c.ledger().Balance(name)
}

// Users returns the registered user names in sorted order.
func (c *Core) Users() []string {
	return c.ledger().RetrieveUsers()
}

// Pending returns the pending transactions in admission order.
func (c *Core) Pending() []database.Tx {
	return c.ledger().RetrievePending()
}

// Chain returns a copy of the committed chain.
func (c *Core) Chain() []database.Block {
	return c.ledger().RetrieveChain()
}

// Tail returns a copy of the last n committed blocks.
func (c *Core) Tail(n int) []database.Block {
	return c.ledger().RetrieveTail(n)
}

// LatestBlock returns a copy of the latest committed block.
func (c *Core) LatestBlock() database.Block {
	return c.ledger().RetrieveLatestBlock()
}

// Difficulty returns the current proof of work difficulty.
func (c *Core) Difficulty() uint {
	return c.ledger().Difficulty()
}

// SetDifficulty updates the proof of work difficulty.
func (c *Core) SetDifficulty(difficulty uint) {
	c.ledger().SetDifficulty(difficulty)
}

// Reward returns the current mining reward.
func (c *Core) Reward() float64 {
	return c.ledger().Reward()
}

// SetReward updates the mining reward.
func (c *Core) SetReward(amount float64) error {
	return c.ledger().SetReward(amount)
}

// =============================================================================
// Snapshot support.

// Save exports the current ledger and writes it to the specified path.
func (c *Core) Save(path string) error {
	if err := disk.Save(path, c.ledger().Export()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	c.evHandler("core: Save: snapshot written: path[%s]", path)
	return nil
}

// Load reads a snapshot from the specified path and replaces the
// ledger with a brand-new instance built from it. The swap happens only
// on a fully successful parse; any failure leaves the current ledger
// untouched.
func (c *Core) Load(path string) error {
	snap, err := disk.Load(path)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	newState, err := state.FromSnapshot(snap, c.evHandler)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = newState

	c.evHandler("core: Load: snapshot restored: path[%s]", path)
	return nil
}
