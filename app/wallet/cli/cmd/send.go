package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	to     string
	amount float64
	note   string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node.",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Recipient account name.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "m", 0, "Amount to send.")
	sendCmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note for the transaction.")
}

func sendRun(cmd *cobra.Command, args []string) {
	from := requireAccount()

	body := struct {
		Sender    string  `json:"sender"`
		Recipient string  `json:"recipient"`
		Amount    float64 `json:"amount"`
		Note      string  `json:"note"`
	}{
		Sender:    from,
		Recipient: to,
		Amount:    amount,
		Note:      note,
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := postJSON("/v1/tx/add", body, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Status)
}
