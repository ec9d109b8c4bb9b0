package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the pending transactions.",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) {
	miner := requireAccount()

	body := struct {
		Miner string `json:"miner"`
	}{
		Miner: miner,
	}

	var block struct {
		Index uint64 `json:"index"`
		Nonce uint64 `json:"nonce"`
		Hash  string `json:"hash"`
	}
	if err := postJSON("/v1/mining/run", body, &block); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Mined block:", block.Index)
	fmt.Println("Nonce      :", block.Nonce)
	fmt.Println("Hash       :", block.Hash)
}
