// Package genesis maintains access to the ledger policy settings.
package genesis

import (
	"encoding/json"
	"os"
)

// Default policy values applied whenever a setting is absent.
const (
	DefaultDifficulty uint    = 2
	DefaultReward     float64 = 10.0
)

// Genesis represents the policy parameters for the ledger.
type Genesis struct {
	Difficulty uint    `json:"difficulty"` // Number of leading 0's needed to solve the work problem.
	Reward     float64 `json:"reward"`     // Amount minted to the miner per mined block.
}

// New constructs the default policy.
func New() Genesis {
	return Genesis{
		Difficulty: DefaultDifficulty,
		Reward:     DefaultReward,
	}
}

// Load opens and consumes the genesis file. Settings missing from the
// file keep their defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := New()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if genesis.Reward <= 0 {
		genesis.Reward = DefaultReward
	}

	return genesis, nil
}
