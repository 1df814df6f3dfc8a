// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package revshare implements the slot ownership and revenue sharing engine.
//
// A fixed pool of grid.SlotCount slots is claimed or taken over by outbidding
// the holder. Revenue received from the fee source is pooled per cycle and, once
// the cycle is over, split evenly across all slots and credited to whoever held
// each slot when the cycle was settled.
//
// Every mutating entry point settles elapsed cycles first. The caller is
// responsible for running each call atomically and discarding all writes when
// an error is returned.
package revshare

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/builtin/revshare/cycle"
	"github.com/slotgrid/slotgrid/builtin/revshare/refunds"
	"github.com/slotgrid/slotgrid/builtin/revshare/revenue"
	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/revshare/settlement"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/state"
)

var (
	logger = log.WithContext("pkg", "revshare")

	slotConfig = grid.BytesToBytes32([]byte("revshare-config"))

	CycleLength = solidity.NewConfigVariable("revshare-cycle-length", grid.CycleLength)
)

func SetLogger(l log.Logger) {
	logger = l
}

// Config is fixed at deployment.
type Config struct {
	Token       grid.Address
	Origin      uint64
	FloorPrice  *uint256.Int
	CycleLength uint64
}

// Revshare implements the native methods of the revenue sharing contract.
type Revshare struct {
	config *solidity.Raw[*Config]

	slots      *slots.Service
	revenue    *revenue.Service
	refunds    *refunds.Service
	settlement *settlement.Service

	events []Event
}

// New create a new instance. charger may be nil for unmetered access.
func New(addr grid.Address, state *state.State, charger *gascharger.Charger) *Revshare {
	var useGas solidity.UseGasFunc
	if charger != nil {
		useGas = charger.Charge
	}
	sctx := solidity.NewContext(addr, state, useGas)

	// debug overrides for testing
	CycleLength.Override(sctx)

	slotSvc := slots.New(sctx)
	revenueSvc := revenue.New(sctx)
	return &Revshare{
		config:     solidity.NewRaw[*Config](sctx, slotConfig),
		slots:      slotSvc,
		revenue:    revenueSvc,
		refunds:    refunds.New(sctx),
		settlement: settlement.New(sctx, slotSvc, revenueSvc),
	}
}

// Events returns the events emitted so far, in order.
func (r *Revshare) Events() []Event {
	return r.events
}

func (r *Revshare) emit(ev Event) {
	r.events = append(r.events, ev)
}

// Initialize deploys the engine at origin. A zero floor falls back to grid.DefaultFloorPrice.
func (r *Revshare) Initialize(origin uint64, token grid.Address, floor *uint256.Int) error {
	exists, err := r.config.Exists()
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	if exists {
		return reverts.New("already initialized")
	}
	if token.IsZero() {
		return reverts.New("invalid token address")
	}
	if floor == nil || floor.IsZero() {
		floor = uint256.NewInt(grid.DefaultFloorPrice)
	}
	cfg := &Config{
		Token:       token,
		Origin:      origin,
		FloorPrice:  new(uint256.Int).Set(floor),
		CycleLength: CycleLength.Get(),
	}
	if err := r.config.Insert(cfg); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	logger.Info("revshare initialized", "token", token, "origin", origin, "floor", cfg.FloorPrice, "cycleLength", cfg.CycleLength)
	return nil
}

// Config returns the deployment config.
func (r *Revshare) Config() (*Config, error) {
	exists, err := r.config.Exists()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if !exists {
		return nil, reverts.New("not initialized")
	}
	cfg, err := r.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return cfg, nil
}

func (r *Revshare) calculator() (*Config, cycle.Calculator, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, cycle.Calculator{}, err
	}
	return cfg, cycle.New(cfg.Origin, cfg.CycleLength), nil
}

// Settle freezes elapsed cycles up to the one containing height, at most
// grid.MaxSettleBatch per call. It returns the cycles settled by this call.
func (r *Revshare) Settle(height uint64) ([]settlement.Settled, error) {
	_, calc, err := r.calculator()
	if err != nil {
		return nil, err
	}
	return r.settle(calc, height)
}

func (r *Revshare) settle(calc cycle.Calculator, height uint64) ([]settlement.Settled, error) {
	current := calc.Current(height)
	settled, err := r.settlement.Settle(current)
	if err != nil {
		return nil, err
	}
	for _, s := range settled {
		r.emit(&CycleSettled{Cycle: s.Cycle, Share: s.Share, Owned: s.Owned})
	}
	if n := len(settled); n > 0 {
		last := settled[n-1].Cycle + 1
		if last < current {
			logger.Debug("settlement lagging", "settled", n, "lastSettled", last, "current", current)
		} else {
			logger.Debug("settled cycles", "settled", n, "lastSettled", last)
		}
	}
	return settled, nil
}

// prepare loads config and settles, the common prologue of mutating entry points.
func (r *Revshare) prepare(height uint64, caller grid.Address) (*Config, cycle.Calculator, error) {
	cfg, calc, err := r.calculator()
	if err != nil {
		return nil, cycle.Calculator{}, err
	}
	if caller.IsZero() {
		return nil, cycle.Calculator{}, reverts.New("invalid caller")
	}
	if _, err := r.settle(calc, height); err != nil {
		return nil, cycle.Calculator{}, err
	}
	return cfg, calc, nil
}
