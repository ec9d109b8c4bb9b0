// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kidchain/kidchain/business/core/ledger"
	"github.com/kidchain/kidchain/business/web/errs"
	"github.com/kidchain/kidchain/foundation/events"
	"github.com/kidchain/kidchain/foundation/ledger/state"
	"github.com/kidchain/kidchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log  *zap.SugaredLogger
	Core *ledger.Core
	WS   websocket.Upgrader
	Evts *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the ledger policy parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := genesisInfo{
		Difficulty: h.Core.Difficulty(),
		Reward:     h.Core.Reward(),
	}

	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Users returns the registered user names.
func (h Handlers) Users(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Core.Users(), http.StatusOK)
}

// AddUser registers a new user with the ledger.
func (h Handlers) AddUser(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req addUserRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if err := h.Core.AddUser(req.Name); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, ack{Status: "user added"}, http.StatusCreated)
}

// AddTransaction submits a transfer for admission to the pending queue.
func (h Handlers) AddTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req addTxRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if err := h.Core.SubmitTransaction(req.Sender, req.Recipient, req.Amount, req.Note); err != nil {
		if state.IsSoftFailure(err) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	return web.Respond(ctx, w, ack{Status: "transaction pending"}, http.StatusCreated)
}

// Pending returns the transactions awaiting the next mined block.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Core.Pending(), http.StatusOK)
}

// Balances returns the spendable balances, either for every registered
// user or for the single name in the route.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	names := h.Core.Users()
	if name := web.Param(r, "name"); name != "" {
		names = []string{name}
	}

	list := make([]balance, 0, len(names))
	for _, name := range names {
		list = append(list, balance{Name: name, Balance: h.Core.Balance(name)})
	}

	bals := balances{
		LatestBlock: h.Core.LatestBlock().Hash,
		Uncommitted: len(h.Core.Pending()),
		Balances:    list,
	}

	return web.Respond(ctx, w, bals, http.StatusOK)
}

// Blocks returns the committed chain, or just its tail when the route
// carries a count.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if tailParam := web.Param(r, "tail"); tailParam != "" {
		tail, err := strconv.Atoi(tailParam)
		if err != nil || tail < 1 {
			return errs.NewTrusted(errors.New("tail must be a positive integer"), http.StatusBadRequest)
		}
		return web.Respond(ctx, w, h.Core.Tail(tail), http.StatusOK)
	}

	return web.Respond(ctx, w, h.Core.Chain(), http.StatusOK)
}

// Mine runs the proof of work and commits the next block. An
// unregistered miner is a usage error, reported distinctly from
// ordinary validation feedback.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req mineRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	block, err := h.Core.Mine(ctx, req.Miner)
	if err != nil {
		if errors.Is(err, state.ErrUnknownMiner) {
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		}
		return err
	}

	return web.Respond(ctx, w, block, http.StatusCreated)
}

// SaveState writes a snapshot of the whole ledger to disk.
func (h Handlers) SaveState(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req stateFileRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if err := h.Core.Save(req.Path); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, ack{Status: "state saved"}, http.StatusOK)
}

// LoadState replaces the ledger with the snapshot at the specified
// path. A failed load leaves the running ledger untouched.
func (h Handlers) LoadState(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req stateFileRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}

	if err := h.Core.Load(req.Path); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, ack{Status: "state loaded"}, http.StatusOK)
}
