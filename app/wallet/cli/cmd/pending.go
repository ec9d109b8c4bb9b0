package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

type pendingTx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	Timestamp string  `json:"timestamp"`
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the transactions waiting to be mined.",
	Run:   pendingRun,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func pendingRun(cmd *cobra.Command, args []string) {
	var txs []pendingTx
	if err := getJSON("/v1/tx/pending/list", &txs); err != nil {
		log.Fatal(err)
	}

	if len(txs) == 0 {
		fmt.Println("no pending transactions")
		return
	}

	for _, tx := range txs {
		fmt.Printf("%s  %s -> %s  %v  %q\n", tx.Timestamp, tx.Sender, tx.Recipient, tx.Amount, tx.Note)
	}
}
