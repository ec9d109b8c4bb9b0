package database

import (
	"fmt"
	"time"
)

// Reserved identifiers that exist outside the user registry. They are
// checked by name before any registry membership test.
const (
	SystemAccount  = "SYSTEM"
	GenesisAccount = "GENESIS"
)

// timeFormat is the ledger timestamp form, UTC with second precision
// and a trailing zone marker.
const timeFormat = "2006-01-02T15:04:05Z"

// Tx represents a single transfer record between two parties.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	Timestamp string  `json:"timestamp"`
}

// NewTx constructs a new transaction stamped with the current time.
func NewTx(sender string, recipient string, amount float64, note string) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Note:      note,
		Timestamp: Now(),
	}
}

// String implements the fmt.Stringer interface for event logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s -> %s : %v %s", tx.Sender, tx.Recipient, tx.Amount, tx.Note)
}

// =============================================================================

// Now returns the current UTC time in the ledger timestamp format.
func Now() string {
	return time.Now().UTC().Format(timeFormat)
}
