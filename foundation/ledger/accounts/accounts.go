// Package accounts maintains the registry of user names allowed to
// transact on the ledger.
package accounts

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/kidchain/kidchain/foundation/ledger/database"
)

// Registration failures are soft validation errors. Callers report them
// to the user, they never abort the process.
var (
	ErrInvalidName = errors.New("name is empty or reserved")
	ErrExists      = errors.New("name is already registered")
)

// Accounts manages the set of registered user names.
type Accounts struct {
	mu    sync.RWMutex
	users map[string]struct{}
}

// New constructs an empty registry. The SYSTEM and GENESIS identifiers
// are never members, they are special cased by validation.
func New() *Accounts {
	return &Accounts{
		users: make(map[string]struct{}),
	}
}

// Add registers a new user name. The name is trimmed of surrounding
// whitespace, the empty string and the reserved SYSTEM name (in any
// case) are rejected, as are names already registered. Nothing is
// mutated on failure.
func (act *Accounts) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, database.SystemAccount) {
		return ErrInvalidName
	}

	act.mu.Lock()
	defer act.mu.Unlock()

	if _, exists := act.users[name]; exists {
		return ErrExists
	}
	act.users[name] = struct{}{}

	return nil
}

// Exists reports whether the specified name is registered.
func (act *Accounts) Exists(name string) bool {
	act.mu.RLock()
	defer act.mu.RUnlock()

	_, exists := act.users[name]
	return exists
}

// Count returns the number of registered users.
func (act *Accounts) Count() int {
	act.mu.RLock()
	defer act.mu.RUnlock()

	return len(act.users)
}

// Copy returns the registered names in sorted order.
func (act *Accounts) Copy() []string {
	act.mu.RLock()
	defer act.mu.RUnlock()

	users := make([]string, 0, len(act.users))
	for name := range act.users {
		users = append(users, name)
	}
	sort.Strings(users)

	return users
}

// Replace swaps the registry wholesale with the specified names. It is
// used when reconstructing a ledger from a snapshot.
func (act *Accounts) Replace(users []string) {
	act.mu.Lock()
	defer act.mu.Unlock()

	act.users = make(map[string]struct{}, len(users))
	for _, name := range users {
		act.users[name] = struct{}{}
	}
}
