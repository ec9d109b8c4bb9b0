package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the accounts registered on the node.",
	Run:   usersRun,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the account on the node.",
	Run:   registerRun,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(registerCmd)
}

func usersRun(cmd *cobra.Command, args []string) {
	var users []string
	if err := getJSON("/v1/users/list", &users); err != nil {
		log.Fatal(err)
	}

	for _, name := range users {
		fmt.Println(name)
	}
}

func registerRun(cmd *cobra.Command, args []string) {
	name := requireAccount()

	body := struct {
		Name string `json:"name"`
	}{
		Name: name,
	}

	if err := postJSON("/v1/users/add", body, nil); err != nil {
		log.Fatal(err)
	}

	fmt.Println("registered:", name)
}
