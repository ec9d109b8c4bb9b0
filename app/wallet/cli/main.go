// This program is a small HTTP client for the node service. It lets a
// user manage accounts and transactions from the command line without
// running their own ledger.
package main

import "github.com/kidchain/kidchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
