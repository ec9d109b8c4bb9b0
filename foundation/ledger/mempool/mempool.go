// Package mempool maintains the pending transactions awaiting inclusion
// in the next mined block. Insertion order is preserved and mining always
// drains the pool completely.
package mempool

import (
	"sync"

	"github.com/kidchain/kidchain/foundation/ledger/database"
)

// Mempool represents the ordered queue of pending transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the queue.
func (mp *Mempool) Append(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
}

// Copy returns the pending transactions in admission order. The copy is
// independent of the pool so callers never hold references into it.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Replace swaps the queue wholesale with the specified transactions. It
// is used when reconstructing a ledger from a snapshot.
func (mp *Mempool) Replace(trans []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make([]database.Tx, len(trans))
	copy(mp.pool, trans)
}
