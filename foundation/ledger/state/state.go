// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/kidchain/kidchain/foundation/ledger/accounts"
	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when events occur in
// the processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the ledger: the committed chain, the pending queue, the
// user registry and the policy parameters. All mutation goes through the
// methods below; reads hand out computed copies.
type State struct {
	mu        sync.RWMutex
	evHandler EventHandler

	genesis  genesis.Genesis
	chain    []database.Block
	mempool  *mempool.Mempool
	accounts *accounts.Accounts
}

// New constructs a ledger with the genesis block already committed.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		chain:     []database.Block{database.GenesisBlock()},
		mempool:   mempool.New(),
		accounts:  accounts.New(),
	}

	ev("state: New: genesis committed: hash[%s]", state.chain[0].Hash)

	return &state
}

// AddUser registers a new user name with the ledger. Invalid and
// duplicate names are reported as soft failures.
func (s *State) AddUser(name string) error {
	if err := s.accounts.Add(name); err != nil {
		return err
	}

	s.evHandler("state: AddUser: registered: name[%s]", name)
	return nil
}

// UserExists reports whether the specified name is registered.
func (s *State) UserExists(name string) bool {
	return s.accounts.Exists(name)
}
