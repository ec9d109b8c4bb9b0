// Package database maintains the data entities of the ledger, the
// transactions and blocks, and implements the proof of work mining.
package database

import (
	"context"
	"encoding/json"

	"github.com/kidchain/kidchain/foundation/ledger/digest"
)

// Block represents a group of transactions batched together with the
// chain linkage metadata. Once committed to the chain a block is never
// mutated, so the stored hash always equals the digest of its fields.
type Block struct {
	Index         uint64 `json:"index"`
	Timestamp     string `json:"timestamp"`
	Trans         []Tx   `json:"transactions"`
	PrevBlockHash string `json:"previous_hash"`
	Nonce         uint64 `json:"nonce"`
	Hash          string `json:"hash"`
}

// NewBlock constructs a candidate block for mining. The timestamp is
// assigned here and not updated during mining. The initial hash is
// computed for the zero nonce so the hash field is never stale.
func NewBlock(index uint64, trans []Tx, prevBlockHash string) Block {
	b := Block{
		Index:         index,
		Timestamp:     Now(),
		Trans:         trans,
		PrevBlockHash: prevBlockHash,
		Nonce:         0,
	}
	b.Hash = b.ComputeHash()

	return b
}

// GenesisBlock constructs the fixed first block in the chain. Its sole
// transaction mints nothing and the block is not subject to mining.
func GenesisBlock() Block {
	genesisTx := Tx{
		Sender:    SystemAccount,
		Recipient: GenesisAccount,
		Amount:    0,
		Note:      "Genesis",
		Timestamp: Now(),
	}

	return NewBlock(0, []Tx{genesisTx}, digest.ZeroHash)
}

// ComputeHash returns the digest for the block's current field values.
func (b Block) ComputeHash() string {
	return digest.Hash(b.Index, b.Timestamp, marshalCanonical(b.Trans), b.PrevBlockHash, b.Nonce)
}

// =============================================================================

// POW performs the work of mining to find a valid hash for the specified
// candidate block. The nonce is incremented from its current value and the
// digest recomputed until the prefix consists of difficulty zero
// characters. The candidate is left untouched; the finalized block is
// returned, so no half-mined state is ever observable.
func POW(ctx context.Context, candidate Block, difficulty uint, ev func(v string, args ...any)) (Block, error) {
	ev("database: POW: MINING: started: blk[%d] difficulty[%d]", candidate.Index, difficulty)
	defer ev("database: POW: MINING: completed")

	for _, tx := range candidate.Trans {
		ev("database: POW: MINING: tx[%s]", tx)
	}

	b := candidate

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: POW: MINING: CANCELLED")
			return Block{}, ctx.Err()
		}

		hash := b.ComputeHash()
		if !digest.Solved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash
		ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevBlockHash, hash)
		ev("database: POW: MINING: attempts[%d]", attempts)

		return b, nil
	}
}

// =============================================================================

// canonicalTx fixes the key order of the transaction encoding that is
// hashed. The fields are declared in sorted key order so byte identical
// logical content always yields the same digest.
type canonicalTx struct {
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	Recipient string  `json:"recipient"`
	Sender    string  `json:"sender"`
	Timestamp string  `json:"timestamp"`
}

// marshalCanonical serializes the transaction list with a stable, sorted
// key encoding for hashing.
func marshalCanonical(trans []Tx) []byte {
	recs := make([]canonicalTx, len(trans))
	for i, tx := range trans {
		recs[i] = canonicalTx{
			Amount:    tx.Amount,
			Note:      tx.Note,
			Recipient: tx.Recipient,
			Sender:    tx.Sender,
			Timestamp: tx.Timestamp,
		}
	}

	// The canonical form contains only plain strings and finite numbers,
	// admission rejects anything json can't represent.
	data, err := json.Marshal(recs)
	if err != nil {
		return []byte(digest.ZeroHash)
	}

	return data
}
