package public

import "github.com/kidchain/kidchain/business/sys/validate"

// addUserRequest is the payload for registering a new user.
type addUserRequest struct {
	Name string `json:"name" validate:"required"`
}

// Validate implements the web framework validator interface.
func (r addUserRequest) Validate() error {
	return validate.Check(r)
}

// addTxRequest is the payload for submitting a transfer for admission.
type addTxRequest struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
}

// Validate implements the web framework validator interface.
func (r addTxRequest) Validate() error {
	return validate.Check(r)
}

// mineRequest is the payload for running the proof of work.
type mineRequest struct {
	Miner string `json:"miner" validate:"required"`
}

// Validate implements the web framework validator interface.
func (r mineRequest) Validate() error {
	return validate.Check(r)
}

// stateFileRequest is the payload for snapshot save and load.
type stateFileRequest struct {
	Path string `json:"path" validate:"required"`
}

// Validate implements the web framework validator interface.
func (r stateFileRequest) Validate() error {
	return validate.Check(r)
}

// =============================================================================

// balance is an account name and spendable balance pair.
type balance struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// balances is the response for the balance listing.
type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

// genesisInfo reports the ledger policy.
type genesisInfo struct {
	Difficulty uint    `json:"difficulty"`
	Reward     float64 `json:"reward"`
}

// ack is a plain acknowledgement response.
type ack struct {
	Status string `json:"status"`
}
