// Package digest provides the hashing support for the ledger. Every block
// hash in the system is produced here so proof of work and chain linkage
// agree on a single encoding.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ZeroHash represents the previous hash value for the genesis block.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLength is the number of characters in a hex encoded digest.
const HashLength = 64

// Hash returns the hex encoded sha256 digest for the specified block
// contents. The transactions must already be in their canonical encoding
// so byte identical logical content always yields the same digest.
func Hash(index uint64, timestamp string, canonicalTrans []byte, prevBlockHash string, nonce uint64) string {
	input := fmt.Sprintf("%d|%s|%s|%s|%d", index, timestamp, canonicalTrans, prevBlockHash, nonce)

	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// Solved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of 0's.
func Solved(difficulty uint, hash string) bool {
	if len(hash) != HashLength || difficulty > HashLength {
		return false
	}

	return hash[:difficulty] == ZeroHash[:difficulty]
}
