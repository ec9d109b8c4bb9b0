package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

type balance struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance of your account.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	name := requireAccount()

	var bals balances
	if err := getJSON("/v1/balances/list/"+name, &bals); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Latest Block:", bals.LatestBlock)
	fmt.Println("Uncommitted :", bals.Uncommitted)
	for _, b := range bals.Balances {
		fmt.Printf("%s: %v\n", b.Name, b.Balance)
	}
}
