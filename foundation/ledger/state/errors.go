package state

import (
	"errors"
	"fmt"
)

// Soft validation failures returned from transaction admission. The
// caller decides how to present them, they never abort the process.
var (
	ErrNotANumber       = errors.New("amount must be a number")
	ErrNotPositive      = errors.New("amount must be positive")
	ErrUnknownSender    = errors.New("unknown sender")
	ErrUnknownRecipient = errors.New("unknown recipient")
)

// ErrUnknownMiner is the fatal usage tier: mining with an unregistered
// miner signals a caller error, not user input to be validated.
var ErrUnknownMiner = errors.New("miner must be a registered user")

// InsufficientFundsError is the soft failure for a sender whose
// spendable balance does not cover the transaction amount. It reports
// the current balance.
type InsufficientFundsError struct {
	Sender  string
	Balance float64
}

// Error implements the error interface.
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %s has %v", e.Sender, e.Balance)
}

// IsSoftFailure reports whether the specified error is a validation
// failure that should be shown to the user rather than treated as a
// caller error.
func IsSoftFailure(err error) bool {
	var ife *InsufficientFundsError
	switch {
	case errors.Is(err, ErrNotANumber),
		errors.Is(err, ErrNotPositive),
		errors.Is(err, ErrUnknownSender),
		errors.Is(err, ErrUnknownRecipient),
		errors.As(err, &ife):
		return true
	}

	return false
}
