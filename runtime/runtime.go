// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes engine calls against persistent storage.
//
// Calls are serialized. Each mutating call runs on a fresh state over the
// store and either commits all of its writes in one batch or none of them.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/feesplit"
	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/builtin/revshare"
	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/clock"
	"github.com/slotgrid/slotgrid/co"
	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/kv"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/state"
)

var logger = log.WithContext("pkg", "runtime")

// ErrOutOfGas is returned when a call crosses the per call gas limit.
var ErrOutOfGas = reverts.New("out of gas")

// Options configures a Runtime.
type Options struct {
	Engine       grid.Address // storage address of the engine
	Token        grid.Address // the only address allowed to send revenue
	Origin       uint64       // deployment height
	FloorPrice   *uint256.Int
	CallGasLimit uint64 // zero means unmetered
}

// Receipt describes a committed call.
type Receipt struct {
	Height  uint64
	Events  []revshare.Event
	GasUsed uint64
}

// Runtime is a single writer executor of engine calls.
type Runtime struct {
	mu     sync.RWMutex
	store  kv.Store
	events *eventdb.EventDB
	clock  clock.Clock
	opts   Options

	committed co.Signal[uint64]
}

// New creates a runtime and deploys the engine unless the store already holds one.
// events may be nil to skip indexing.
func New(store kv.Store, events *eventdb.EventDB, clk clock.Clock, opts Options) (*Runtime, error) {
	rt := &Runtime{
		store:  store,
		events: events,
		clock:  clk,
		opts:   opts,
	}
	if err := rt.deploy(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) deploy() error {
	cfg, err := rt.Config()
	if err == nil {
		if cfg.Token != rt.opts.Token {
			logger.Warn("token differs from deployed config, keeping deployed", "deployed", cfg.Token, "configured", rt.opts.Token)
		}
		// the deployed config binds the fee source and the origin
		rt.opts.Token = cfg.Token
		rt.opts.Origin = cfg.Origin
		rt.opts.FloorPrice = cfg.FloorPrice
		logger.Info("engine loaded", "origin", cfg.Origin, "floor", cfg.FloorPrice, "cycleLength", cfg.CycleLength)
		return nil
	}
	if !reverts.IsRevertErr(err) {
		return err
	}
	_, err = rt.exec(context.Background(), "deploy", func(c *call) error {
		return c.engine.Initialize(rt.opts.Origin, rt.opts.Token, rt.opts.FloorPrice)
	})
	return err
}

// Options returns the runtime options, with the deployed config in effect.
func (rt *Runtime) Options() Options {
	return rt.opts
}

// Height returns the current height of the clock.
func (rt *Runtime) Height() uint64 {
	return rt.clock.Height()
}

// NewWaiter returns a waiter fired after every commit, carrying the committed height.
func (rt *Runtime) NewWaiter() co.Waiter[uint64] {
	return rt.committed.NewWaiter()
}

// call is the environment of a single engine call.
type call struct {
	height  uint64
	state   *state.State
	charger *gascharger.Charger
	engine  *revshare.Revshare
	fees    *feesplit.FeeSplit
}

func (c *call) events() []revshare.Event {
	// fee events always follow the revenue the fee produced
	return append(append([]revshare.Event(nil), c.engine.Events()...), c.fees.Events()...)
}

func (rt *Runtime) newCall(limit uint64) *call {
	st := state.New(rt.store)
	charger := gascharger.New(limit)
	return &call{
		height:  rt.clock.Height(),
		state:   st,
		charger: charger,
		engine:  revshare.New(rt.opts.Engine, st, charger),
		fees:    feesplit.New(rt.opts.Token, rt.opts.Engine, st, charger),
	}
}

// run invokes fn, converting an out of gas panic into ErrOutOfGas.
func run(c *call, fn func(*call) error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if pe, ok := e.(error); ok && errors.Is(pe, gascharger.ErrOutOfGas) {
				err = ErrOutOfGas
				return
			}
			panic(e)
		}
	}()
	return fn(c)
}

func (rt *Runtime) exec(ctx context.Context, method string, fn func(*call) error) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	c := rt.newCall(rt.opts.CallGasLimit)
	checkpoint := c.state.NewCheckpoint()

	if err := run(c, fn); err != nil {
		c.state.RevertTo(checkpoint)
		status := "error"
		if reverts.IsRevertErr(err) {
			status = "reverted"
			logger.Debug("call reverted", "method", method, "height", c.height, "err", err)
		} else {
			logger.Error("call failed", "method", method, "height", c.height, "err", err)
		}
		metricCalls().AddWithLabel(1, map[string]string{"method": method, "status": status})
		return nil, err
	}

	stage := c.state.Stage()
	batch := rt.store.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return nil, errors.Wrapf(err, "stage %s", method)
	}
	if err := batch.Write(); err != nil {
		return nil, errors.Wrapf(err, "commit %s", method)
	}

	receipt := &Receipt{
		Height:  c.height,
		Events:  c.events(),
		GasUsed: c.charger.TotalGas(),
	}
	if err := rt.index(ctx, receipt); err != nil {
		logger.Warn("failed to index events", "method", method, "height", c.height, "err", err)
	}

	metricCalls().AddWithLabel(1, map[string]string{"method": method, "status": "ok"})
	metricGasUsed().ObserveWithLabels(int64(receipt.GasUsed), map[string]string{"method": method})
	metricHeight().Set(int64(c.height))

	logger.Debug("call committed",
		"method", method,
		"height", c.height,
		"events", len(receipt.Events),
		"writes", stage.Len(),
		"root", stage.Hash().AbbrevString(),
		"gas", receipt.GasUsed,
		"elapsed", time.Since(start),
	)
	logger.Trace("gas breakdown", "method", method, "breakdown", c.charger.Breakdown())

	rt.committed.Broadcast(c.height)
	return receipt, nil
}

// view runs fn on a throwaway state. Writes made by lazy settlement are discarded.
func (rt *Runtime) view(fn func(*call) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	c := rt.newCall(0)
	return run(c, fn)
}
