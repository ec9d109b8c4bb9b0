// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kidchain/kidchain/app/services/node/handlers/v1/public"
	"github.com/kidchain/kidchain/business/core/ledger"
	"github.com/kidchain/kidchain/foundation/events"
	"github.com/kidchain/kidchain/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log  *zap.SugaredLogger
	Core *ledger.Core
	Evts *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:  cfg.Log,
		Core: cfg.Core,
		WS:   websocket.Upgrader{},
		Evts: cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/users/list", pbl.Users)
	app.Handle(http.MethodPost, version, "/users/add", pbl.AddUser)
	app.Handle(http.MethodPost, version, "/tx/add", pbl.AddTransaction)
	app.Handle(http.MethodGet, version, "/tx/pending/list", pbl.Pending)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:name", pbl.Balances)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/list/:tail", pbl.Blocks)
	app.Handle(http.MethodPost, version, "/mining/run", pbl.Mine)
	app.Handle(http.MethodPost, version, "/state/save", pbl.SaveState)
	app.Handle(http.MethodPost, version, "/state/load", pbl.LoadState)
}
