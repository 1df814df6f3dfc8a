// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare"
	"github.com/slotgrid/slotgrid/builtin/revshare/settlement"
)

// Dec renders an amount as a decimal string, "0" for nil.
func Dec(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func ConvertReceipt(height, gasUsed uint64, events []revshare.Event) Receipt {
	r := Receipt{
		Height:  height,
		GasUsed: gasUsed,
		Events:  make([]*Event, 0, len(events)),
	}
	for _, ev := range events {
		r.Events = append(r.Events, &Event{Name: ev.Name(), Height: height, Fields: ev})
	}
	return r
}

func ConvertSlot(info *revshare.SlotInfo) *Slot {
	s := &Slot{
		ID:           info.ID,
		Price:        Dec(info.Price),
		HeldSince:    info.HeldSince,
		LastClaimed:  info.LastClaimed,
		CurrentCycle: info.CurrentCycle,
		CycleEnd:     info.CycleEnd,
		BlocksLeft:   info.BlocksLeft,
	}
	if !info.Empty {
		owner := info.Owner
		s.Owner = &owner
	}
	return s
}

func ConvertCurrentCycle(info *revshare.CurrentCycleInfo) *CurrentCycle {
	return &CurrentCycle{
		Cycle:          info.Cycle,
		Start:          info.Start,
		End:            info.End,
		BlocksLeft:     info.BlocksLeft,
		PendingRevenue: Dec(info.PendingRevenue),
		LastSettled:    info.LastSettled,
		TotalRevenue:   Dec(info.TotalRevenue),
	}
}

func ConvertCycle(info *revshare.CycleInfo) *Cycle {
	return &Cycle{
		Cycle:   info.Cycle,
		Start:   info.Start,
		End:     info.End,
		Share:   Dec(info.Share),
		Settled: info.Settled,
	}
}

func ConvertSettled(settled []settlement.Settled) []*SettledCycle {
	out := make([]*SettledCycle, 0, len(settled))
	for _, s := range settled {
		out = append(out, &SettledCycle{Cycle: s.Cycle, Share: Dec(s.Share), Owned: s.Owned})
	}
	return out
}
