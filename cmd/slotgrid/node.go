// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slotgrid/slotgrid/builtin/revshare/cycle"
	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/clock"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/runtime"
)

const ntpCheckInterval = 30 * time.Minute

// Node runs the background routines next to the API server.
type Node struct {
	rt         *runtime.Runtime
	clock      *clock.Timed
	calc       cycle.Calculator
	autoSettle bool
	ntpServer  string
}

func newNode(rt *runtime.Runtime, clk *clock.Timed, s *settings) (*Node, error) {
	cfg, err := rt.Config()
	if err != nil {
		return nil, err
	}
	return &Node{
		rt:         rt,
		clock:      clk,
		calc:       cycle.New(cfg.Origin, cfg.CycleLength),
		autoSettle: !s.DisableAutoSettle,
		ntpServer: func() string {
			if s.DisableNTPCheck {
				return ""
			}
			return s.NTPServer
		}(),
	}, nil
}

func (n *Node) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if n.autoSettle {
		g.Go(func() error { return n.settleLoop(ctx) })
	}
	if n.ntpServer != "" {
		g.Go(func() error { return n.ntpLoop(ctx) })
	}
	g.Go(func() error { return n.reportLoop(ctx) })
	return g.Wait()
}

// settleLoop settles finished cycles once per cycle, repeating while a batch
// is not enough to catch up.
func (n *Node) settleLoop(ctx context.Context) error {
	var (
		settledAt = n.calc.Current(n.clock.Height())
		timer     = time.NewTimer(n.clock.NextHeightIn())
		lagging   = true
	)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		timer.Reset(n.clock.NextHeightIn())

		current := n.calc.Current(n.clock.Height())
		if current == settledAt && !lagging {
			continue
		}
		res, err := n.rt.Settle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if reverts.IsRevertErr(err) {
				logger.Debug("settle reverted", "err", err)
			} else {
				logger.Warn("failed to settle", "err", err)
			}
			continue
		}
		settledAt = current
		lagging = len(res.Settled) >= grid.MaxSettleBatch
		if len(res.Settled) > 0 {
			logger.Info("cycles settled",
				"from", res.Settled[0].Cycle,
				"to", res.Settled[len(res.Settled)-1].Cycle,
				"lagging", lagging)
		}
	}
}

func (n *Node) reportLoop(ctx context.Context) error {
	for {
		w := n.rt.NewWaiter()
		select {
		case <-ctx.Done():
			return nil
		case <-w.C():
			logger.Trace("call committed", "height", w.Value())
		}
	}
}

func (n *Node) ntpLoop(ctx context.Context) error {
	ticker := time.NewTicker(ntpCheckInterval)
	defer ticker.Stop()

	for {
		if _, err := clock.CheckDrift(n.ntpServer, n.clock.Interval()); err != nil {
			logger.Debug("clock check skipped", "err", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
