// Package repl implements the interactive command shell over the
// ledger. It is a thin dispatcher: all parsing, prompting and
// formatting lives here, all the rules live in the core.
package repl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kidchain/kidchain/business/core/ledger"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// command binds a shell command name to its usage line, help text and
// implementation.
type command struct {
	usage string
	help  string
	run   func(args []string) error
}

// errExit is the sentinel the exit and quit commands use to leave the
// read loop.
var errExit = fmt.Errorf("exit")

// Shell maintains the REPL session: the ledger core and the currently
// logged in user.
type Shell struct {
	log         *zap.SugaredLogger
	core        *ledger.Core
	currentUser string
	commands    map[string]command
}

// New constructs a shell over the specified core.
func New(log *zap.SugaredLogger, core *ledger.Core) *Shell {
	sh := Shell{
		log:  log,
		core: core,
	}
	sh.commands = sh.commandTable()

	return &sh
}

// Run executes the read loop until exit/quit or end of input. Every
// failure below the dispatch level is printed and the loop continues;
// the shell never crashes the process on a command error.
func (sh *Shell) Run() error {
	input := pterm.DefaultInteractiveTextInput.WithDefaultText(">")

	for {
		line, err := input.Show()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := sh.dispatch(line); err != nil {
			if err == errExit {
				return nil
			}
			pterm.Error.Println(err)
		}
	}
}

// dispatch parses one input line and executes the matching command.
func (sh *Shell) dispatch(line string) error {
	parts := strings.Fields(line)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, exists := sh.commands[name]
	if !exists {
		pterm.Warning.Printfln("Unknown command %q. Type 'help' for a list.", name)
		return nil
	}

	sh.log.Infow("command", "name", name, "args", args)

	return cmd.run(args)
}

// requireLogin reports the current user or instructs the caller to log
// in first.
func (sh *Shell) requireLogin() (string, bool) {
	if sh.currentUser == "" {
		pterm.Warning.Println("Login first.")
		return "", false
	}
	return sh.currentUser, true
}

// printHelp lists every command with its usage and help line.
func (sh *Shell) printHelp() {
	names := make([]string, 0, len(sh.commands))
	for name := range sh.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	data := pterm.TableData{{"Command", "Description"}}
	for _, name := range names {
		cmd := sh.commands[name]
		data = append(data, []string{cmd.usage, cmd.help})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
