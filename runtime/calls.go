// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare/settlement"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/grid"
)

// ClaimSlot occupies an empty slot for caller at bid.
func (rt *Runtime) ClaimSlot(ctx context.Context, caller grid.Address, id uint16, bid *uint256.Int) (*Receipt, error) {
	return rt.exec(ctx, "claimSlot", func(c *call) error {
		return c.engine.ClaimSlot(c.height, caller, slots.ID(id), bid)
	})
}

// TakeoverResult carries the cycle the takeover happened in.
type TakeoverResult struct {
	*Receipt
	Cycle    uint64
	CycleEnd uint64
}

// TakeoverSlot outbids the holder of slot id.
func (rt *Runtime) TakeoverSlot(ctx context.Context, caller grid.Address, id uint16, bid *uint256.Int) (*TakeoverResult, error) {
	var res TakeoverResult
	receipt, err := rt.exec(ctx, "takeoverSlot", func(c *call) (err error) {
		res.Cycle, res.CycleEnd, err = c.engine.TakeoverSlot(c.height, caller, slots.ID(id), bid)
		return
	})
	if err != nil {
		return nil, err
	}
	res.Receipt = receipt
	return &res, nil
}

// ReceiveRevenue adds amount sent by caller to the current cycle pool.
func (rt *Runtime) ReceiveRevenue(ctx context.Context, caller grid.Address, amount *uint256.Int) (*Receipt, error) {
	return rt.exec(ctx, "receiveRevenue", func(c *call) error {
		return c.engine.ReceiveRevenue(c.height, caller, amount)
	})
}

// TransferResult is the fee split of a transfer.
type TransferResult struct {
	*Receipt
	Fee *uint256.Int
	Net *uint256.Int
}

// Transfer takes the fee off amount and forwards it to the engine as revenue.
func (rt *Runtime) Transfer(ctx context.Context, from, to grid.Address, amount *uint256.Int) (*TransferResult, error) {
	var res TransferResult
	receipt, err := rt.exec(ctx, "transfer", func(c *call) (err error) {
		res.Fee, res.Net, err = c.fees.Transfer(c.height, from, to, amount, c.engine)
		return
	})
	if err != nil {
		return nil, err
	}
	res.Receipt = receipt
	return &res, nil
}

// ClaimResult is the amount paid by ClaimRevenue.
type ClaimResult struct {
	*Receipt
	Amount *uint256.Int
}

// ClaimRevenue pays caller its rewards and refunds.
func (rt *Runtime) ClaimRevenue(ctx context.Context, caller grid.Address) (*ClaimResult, error) {
	var res ClaimResult
	receipt, err := rt.exec(ctx, "claimRevenue", func(c *call) (err error) {
		res.Amount, err = c.engine.ClaimRevenue(c.height, caller)
		return
	})
	if err != nil {
		return nil, err
	}
	res.Receipt = receipt
	return &res, nil
}

// SettleResult lists the cycles settled by Settle.
type SettleResult struct {
	*Receipt
	Settled []settlement.Settled
}

// Settle settles elapsed cycles, at most grid.MaxSettleBatch of them.
func (rt *Runtime) Settle(ctx context.Context) (*SettleResult, error) {
	var res SettleResult
	receipt, err := rt.exec(ctx, "settle", func(c *call) (err error) {
		res.Settled, err = c.engine.Settle(c.height)
		return
	})
	if err != nil {
		return nil, err
	}
	res.Receipt = receipt

	if info, err := rt.CurrentCycle(); err == nil && info.Cycle > info.LastSettled {
		metricSettleLag().Set(int64(info.Cycle - info.LastSettled))
	} else {
		metricSettleLag().Set(0)
	}
	return &res, nil
}
