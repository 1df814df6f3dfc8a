// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/feesplit"
	"github.com/slotgrid/slotgrid/builtin/revshare"
	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/grid"
)

// DecodeEvent restores an indexed event of either the engine or the fee source.
func DecodeEvent(name string, data []byte) (revshare.Event, error) {
	switch name {
	case feesplit.FeeCollectedEvent, feesplit.TransferWithFeeEvent:
		return feesplit.DecodeEvent(name, data)
	default:
		return revshare.DecodeEvent(name, data)
	}
}

// Events queries the event index.
func (rt *Runtime) Events(ctx context.Context, filter *eventdb.Filter) ([]*eventdb.Event, error) {
	if rt.events == nil {
		return nil, errors.New("event index disabled")
	}
	return rt.events.Filter(ctx, filter)
}

func (rt *Runtime) index(ctx context.Context, receipt *Receipt) error {
	if rt.events == nil || len(receipt.Events) == 0 {
		return nil
	}
	rows := make([]*eventdb.Event, 0, len(receipt.Events))
	for _, ev := range receipt.Events {
		row, err := indexRow(receipt.Height, ev)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return rt.events.Insert(ctx, rows)
}

// indexRow maps ev onto the filterable columns of the index.
func indexRow(height uint64, ev revshare.Event) (*eventdb.Event, error) {
	data, err := revshare.EncodeEvent(ev)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", ev.Name())
	}
	row := &eventdb.Event{Height: height, Name: ev.Name(), Data: data}

	set := func(addr *grid.Address, slot *uint16, cycle *uint64, amount *uint256.Int) {
		if addr != nil {
			a := *addr
			row.Address = &a
		}
		if slot != nil {
			s := *slot
			row.Slot = &s
		}
		if cycle != nil {
			n := *cycle
			row.Cycle = &n
		}
		row.Amount = amount
	}

	switch e := ev.(type) {
	case *revshare.SlotClaimed:
		set(&e.Owner, &e.Slot, &e.Cycle, e.Price)
	case *revshare.SlotTakenOver:
		set(&e.NewOwner, &e.Slot, &e.Cycle, e.Price)
	case *revshare.TakeoverRefund:
		set(&e.To, &e.Slot, nil, e.Amount)
	case *revshare.RevenueReceived:
		set(nil, nil, &e.Cycle, e.Amount)
	case *revshare.CycleSettled:
		set(nil, nil, &e.Cycle, e.Share)
	case *revshare.CycleRewardClaimed:
		set(&e.Owner, &e.Slot, &e.Cycle, e.Amount)
	case *revshare.RevenueClaimed:
		set(&e.Owner, nil, nil, e.Total)
	case *feesplit.FeeCollected:
		set(&e.From, nil, nil, e.Fee)
	case *feesplit.TransferWithFee:
		set(&e.From, nil, nil, e.Amount)
	}
	return row, nil
}
