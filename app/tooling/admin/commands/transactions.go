package commands

import "fmt"

// Transactions prints every committed transaction in the snapshot,
// block by block, filtered to the single account named on the command
// line when one is given. Pending transactions are listed last.
func Transactions(args []string) error {
	st, err := loadState(args[2])
	if err != nil {
		return err
	}

	var only string
	if len(args) == 4 {
		only = args[3]
	}

	match := func(sender, recipient string) bool {
		return only == "" || sender == only || recipient == only
	}

	for _, b := range st.RetrieveChain() {
		for _, tx := range b.Trans {
			if !match(tx.Sender, tx.Recipient) {
				continue
			}
			fmt.Printf("Block: %d  %s\n", b.Index, tx.String())
		}
	}

	for _, tx := range st.RetrievePending() {
		if !match(tx.Sender, tx.Recipient) {
			continue
		}
		fmt.Printf("Pending:  %s\n", tx.String())
	}

	return nil
}
