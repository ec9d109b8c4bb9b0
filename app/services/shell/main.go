// This program provides an interactive shell over a single in-process
// ledger. It exists for teaching: every command maps to exactly one
// core operation, so a session makes the mechanics visible step by
// step.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/kidchain/kidchain/app/services/shell/repl"
	"github.com/kidchain/kidchain/business/core/ledger"
	"github.com/kidchain/kidchain/foundation/ledger/genesis"
	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/kidchain/kidchain/foundation/logger"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

var build = "develop"

func main() {
	log, err := logger.New("SHELL")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			Difficulty  uint    `conf:"default:2"`
			Reward      float64 `conf:"default:10.0"`
			GenesisFile string  `conf:""`
			Verbose     bool    `conf:"default:false"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "kidchain interactive shell",
		},
	}

	const prefix = "SHELL"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// Ledger Support

	g := genesis.Genesis{
		Difficulty: cfg.Ledger.Difficulty,
		Reward:     cfg.Ledger.Reward,
	}
	if cfg.Ledger.GenesisFile != "" {
		g, err = genesis.Load(cfg.Ledger.GenesisFile)
		if err != nil {
			return fmt.Errorf("loading genesis file: %w", err)
		}
	}

	// Core events only reach the log in verbose mode so the mining
	// progress lines don't fight the prompt.
	ev := func(v string, args ...any) {
		if cfg.Ledger.Verbose {
			log.Infow(v, args...)
		}
	}

	core := ledger.NewCore(g, state.EventHandler(ev))

	// =========================================================================
	// Shell

	pterm.DefaultHeader.Println("KIDCHAIN SHELL")
	pterm.Info.Printfln("difficulty=%d reward=%v", core.Difficulty(), core.Reward())
	pterm.Info.Println("Type 'help' for commands, 'exit' to leave.")

	return repl.New(log, core).Run()
}
