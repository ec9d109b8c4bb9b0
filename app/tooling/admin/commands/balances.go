package commands

import "fmt"

// Balances prints the spendable balance for every account in the
// snapshot, or for the single account named on the command line.
func Balances(args []string) error {
	st, err := loadState(args[2])
	if err != nil {
		return err
	}

	var only string
	if len(args) == 4 {
		only = args[3]
	}

	fmt.Printf("LatestBlockHash: %s\n\n", st.RetrieveLatestBlock().Hash)

	for _, name := range st.RetrieveUsers() {
		if only != "" && name != only {
			continue
		}
		fmt.Printf("Account: %s  Balance: %v\n", name, st.Balance(name))
	}

	return nil
}
