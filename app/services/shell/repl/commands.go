package repl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kidchain/kidchain/foundation/ledger/database"
	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/pterm/pterm"
)

// maxShellDifficulty bounds the difficulty values the shell accepts so
// a session can't lock itself into an unminable chain.
const maxShellDifficulty = 6

// commandTable builds the dispatch table. Defined as a method so each
// entry can close over the shell's session state.
func (sh *Shell) commandTable() map[string]command {
	cmds := map[string]command{
		"help": {
			usage: "help [cmd]",
			help:  "Show all commands, or the usage of one command.",
			run: func(args []string) error {
				if len(args) == 1 {
					cmd, exists := sh.commands[strings.ToLower(args[0])]
					if !exists {
						pterm.Warning.Printfln("Unknown command %q.", args[0])
						return nil
					}
					pterm.Info.Printfln("%s\n%s", cmd.usage, cmd.help)
					return nil
				}
				sh.printHelp()
				return nil
			},
		},
		"create_user": {
			usage: "create_user <name>",
			help:  "Register a new account on the ledger.",
			run:   sh.cmdCreateUser,
		},
		"users": {
			usage: "users",
			help:  "List all registered accounts.",
			run:   sh.cmdUsers,
		},
		"login": {
			usage: "login <name>",
			help:  "Start acting as the specified account.",
			run:   sh.cmdLogin,
		},
		"logout": {
			usage: "logout",
			help:  "Stop acting as the current account.",
			run: func(args []string) error {
				sh.currentUser = ""
				pterm.Info.Println("Logged out.")
				return nil
			},
		},
		"whoami": {
			usage: "whoami",
			help:  "Show the account you are logged in as.",
			run: func(args []string) error {
				if sh.currentUser == "" {
					pterm.Info.Println("Not logged in.")
					return nil
				}
				pterm.Info.Println(sh.currentUser)
				return nil
			},
		},
		"faucet": {
			usage: "faucet <amount>",
			help:  "Grant yourself coins from the system account.",
			run:   sh.cmdFaucet,
		},
		"send": {
			usage: "send <to> <amount> [note...]",
			help:  "Submit a transaction to the pending pool.",
			run:   sh.cmdSend,
		},
		"pending": {
			usage: "pending",
			help:  "Show transactions waiting to be mined.",
			run:   sh.cmdPending,
		},
		"mine": {
			usage: "mine",
			help:  "Mine the pending transactions into a new block.",
			run:   sh.cmdMine,
		},
		"difficulty": {
			usage: "difficulty [n]",
			help:  "Show or set the mining difficulty (0-6).",
			run:   sh.cmdDifficulty,
		},
		"reward": {
			usage: "reward [amount]",
			help:  "Show or set the mining reward.",
			run:   sh.cmdReward,
		},
		"balance": {
			usage: "balance [name]",
			help:  "Show an account balance (yours by default).",
			run:   sh.cmdBalance,
		},
		"chain": {
			usage: "chain [n]",
			help:  "Show the blockchain, optionally only the last n blocks.",
			run:   sh.cmdChain,
		},
		"save": {
			usage: "save <file.json>",
			help:  "Save the ledger to a snapshot file.",
			run:   sh.cmdSave,
		},
		"load": {
			usage: "load <file.json>",
			help:  "Replace the ledger with a snapshot file.",
			run:   sh.cmdLoad,
		},
	}

	exit := command{
		usage: "exit",
		help:  "Leave the shell.",
		run: func(args []string) error {
			return errExit
		},
	}
	cmds["exit"] = exit
	cmds["quit"] = exit

	return cmds
}

func (sh *Shell) cmdCreateUser(args []string) error {
	if len(args) != 1 {
		pterm.Warning.Println("Usage: create_user <name>")
		return nil
	}

	if err := sh.core.AddUser(args[0]); err != nil {
		pterm.Error.Println(err)
		return nil
	}

	pterm.Success.Printfln("Created user %q.", args[0])
	return nil
}

func (sh *Shell) cmdUsers(args []string) error {
	users := sh.core.Users()
	if len(users) == 0 {
		pterm.Info.Println("No users yet. Try: create_user <name>")
		return nil
	}

	for _, name := range users {
		pterm.Println("  " + name)
	}
	return nil
}

func (sh *Shell) cmdLogin(args []string) error {
	if len(args) != 1 {
		pterm.Warning.Println("Usage: login <name>")
		return nil
	}

	if !sh.core.UserExists(args[0]) {
		pterm.Error.Printfln("Unknown user %q. Try: create_user %s", args[0], args[0])
		return nil
	}

	sh.currentUser = args[0]
	pterm.Success.Printfln("Logged in as %q.", args[0])
	return nil
}

func (sh *Shell) cmdFaucet(args []string) error {
	user, ok := sh.requireLogin()
	if !ok {
		return nil
	}

	if len(args) != 1 {
		pterm.Warning.Println("Usage: faucet <amount>")
		return nil
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		pterm.Error.Printfln("Amount %q is not a number.", args[0])
		return nil
	}

	if err := sh.core.SubmitTransaction(database.SystemAccount, user, amount, "Faucet"); err != nil {
		pterm.Error.Println(err)
		return nil
	}

	pterm.Success.Printfln("Faucet granted %v to %q. Mine a block to commit it.", amount, user)
	return nil
}

func (sh *Shell) cmdSend(args []string) error {
	user, ok := sh.requireLogin()
	if !ok {
		return nil
	}

	if len(args) < 2 {
		pterm.Warning.Println("Usage: send <to> <amount> [note...]")
		return nil
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		pterm.Error.Printfln("Amount %q is not a number.", args[1])
		return nil
	}

	note := strings.Join(args[2:], " ")

	if err := sh.core.SubmitTransaction(user, args[0], amount, note); err != nil {
		pterm.Error.Println(err)
		return nil
	}

	pterm.Success.Printfln("Transaction queued: %s -> %s %v.", user, args[0], amount)
	return nil
}

func (sh *Shell) cmdPending(args []string) error {
	pending := sh.core.Pending()
	if len(pending) == 0 {
		pterm.Info.Println("No pending transactions.")
		return nil
	}

	for _, tx := range pending {
		pterm.Println("  " + tx.String())
	}
	return nil
}

func (sh *Shell) cmdMine(args []string) error {
	user, ok := sh.requireLogin()
	if !ok {
		return nil
	}

	spinner, _ := pterm.DefaultSpinner.Start("Mining...")

	block, err := sh.core.Mine(context.Background(), user)
	if err != nil {
		spinner.Fail()
		if errors.Is(err, state.ErrUnknownMiner) {
			pterm.Error.Printfln("Account %q is not registered.", user)
			return nil
		}
		pterm.Error.Println(err)
		return nil
	}

	spinner.Success(fmt.Sprintf("Mined block %d with %d transactions.", block.Index, len(block.Trans)))
	pterm.Println("  hash: " + block.Hash)
	return nil
}

func (sh *Shell) cmdDifficulty(args []string) error {
	if len(args) == 0 {
		pterm.Info.Printfln("Difficulty is %d.", sh.core.Difficulty())
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > maxShellDifficulty {
		pterm.Error.Printfln("Difficulty must be a whole number between 0 and %d.", maxShellDifficulty)
		return nil
	}

	sh.core.SetDifficulty(uint(n))
	pterm.Success.Printfln("Difficulty set to %d.", n)
	return nil
}

func (sh *Shell) cmdReward(args []string) error {
	if len(args) == 0 {
		pterm.Info.Printfln("Mining reward is %v.", sh.core.Reward())
		return nil
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		pterm.Error.Printfln("Reward %q is not a number.", args[0])
		return nil
	}

	if err := sh.core.SetReward(amount); err != nil {
		pterm.Error.Println("Reward must be a positive number.")
		return nil
	}

	pterm.Success.Printfln("Mining reward set to %v.", amount)
	return nil
}

func (sh *Shell) cmdBalance(args []string) error {
	name := sh.currentUser
	if len(args) == 1 {
		name = args[0]
	}

	if name == "" {
		pterm.Warning.Println("Usage: balance [name] (or login first).")
		return nil
	}

	if !sh.core.UserExists(name) {
		pterm.Error.Printfln("Unknown user %q.", name)
		return nil
	}

	pterm.Info.Printfln("%s: %v", name, sh.core.Balance(name))
	return nil
}

func (sh *Shell) cmdChain(args []string) error {
	var blocks []database.Block

	switch len(args) {
	case 0:
		blocks = sh.core.Chain()
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			pterm.Warning.Println("Usage: chain [n] where n is a positive whole number.")
			return nil
		}
		blocks = sh.core.Tail(n)
	default:
		pterm.Warning.Println("Usage: chain [n]")
		return nil
	}

	for _, b := range blocks {
		pterm.Printfln("block %d  %s  nonce=%d", b.Index, b.Timestamp, b.Nonce)
		pterm.Println("  hash: " + b.Hash)
		pterm.Println("  prev: " + b.PrevBlockHash)
		for _, tx := range b.Trans {
			pterm.Println("    " + tx.String())
		}
	}
	return nil
}

func (sh *Shell) cmdSave(args []string) error {
	if len(args) != 1 {
		pterm.Warning.Println("Usage: save <file.json>")
		return nil
	}

	if err := sh.core.Save(args[0]); err != nil {
		pterm.Error.Println(err)
		return nil
	}

	pterm.Success.Printfln("Saved ledger to %q.", args[0])
	return nil
}

// cmdLoad replaces the whole ledger from a snapshot file. The current
// session user may not exist in the loaded state, so a successful load
// always logs out.
func (sh *Shell) cmdLoad(args []string) error {
	if len(args) != 1 {
		pterm.Warning.Println("Usage: load <file.json>")
		return nil
	}

	if err := sh.core.Load(args[0]); err != nil {
		pterm.Error.Printfln("Load failed, ledger unchanged: %v", err)
		return nil
	}

	sh.currentUser = ""
	pterm.Success.Printfln("Loaded ledger from %q. You have been logged out.", args[0])
	return nil
}
