// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revshare

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare/cycle"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/grid"
)

//
// Views - they settle like any entry point, callers discard the writes.
//

// SlotInfo is the state of one slot as seen at a height.
type SlotInfo struct {
	ID           uint16
	Empty        bool
	Owner        grid.Address
	Price        *uint256.Int
	HeldSince    uint64
	LastClaimed  uint64
	CurrentCycle uint64
	CycleEnd     uint64
	BlocksLeft   uint64
}

// CurrentCycleInfo describes the running cycle.
type CurrentCycleInfo struct {
	Cycle          uint64
	Start          uint64
	End            uint64
	BlocksLeft     uint64
	PendingRevenue *uint256.Int
	LastSettled    uint64
	TotalRevenue   *uint256.Int
}

// CycleInfo describes any cycle. Share is zero until the cycle is settled.
type CycleInfo struct {
	Cycle   uint64
	Start   uint64
	End     uint64
	Share   *uint256.Int
	Settled bool
}

func (r *Revshare) view(height uint64) (*Config, cycle.Calculator, error) {
	cfg, calc, err := r.calculator()
	if err != nil {
		return nil, cycle.Calculator{}, err
	}
	if _, err := r.settle(calc, height); err != nil {
		return nil, cycle.Calculator{}, err
	}
	return cfg, calc, nil
}

// SlotInfo returns slot id. Empty slots report the floor price and a zero owner.
func (r *Revshare) SlotInfo(height uint64, id slots.ID) (*SlotInfo, error) {
	cfg, calc, err := r.view(height)
	if err != nil {
		return nil, err
	}
	slot, err := r.slots.Get(id)
	if err != nil {
		return nil, err
	}

	current := calc.Current(height)
	info := &SlotInfo{
		ID:           uint16(id),
		Empty:        slot.IsEmpty(),
		Price:        new(uint256.Int).Set(cfg.FloorPrice),
		HeldSince:    slot.HeldSince,
		LastClaimed:  slot.LastClaimed,
		CurrentCycle: current,
		CycleEnd:     calc.End(current),
		BlocksLeft:   calc.Remaining(height),
	}
	if !slot.IsEmpty() {
		info.Owner = *slot.Owner
		if slot.Price != nil && !slot.Price.IsZero() {
			info.Price = slot.Price
		}
	}
	return info, nil
}

// Slots returns every slot in id order.
func (r *Revshare) Slots(height uint64) ([]*SlotInfo, error) {
	infos := make([]*SlotInfo, 0, grid.SlotCount)
	for i := uint16(0); i < grid.SlotCount; i++ {
		info, err := r.SlotInfo(height, slots.ID(i))
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (r *Revshare) CurrentCycleInfo(height uint64) (*CurrentCycleInfo, error) {
	_, calc, err := r.view(height)
	if err != nil {
		return nil, err
	}
	pending, err := r.revenue.Pending()
	if err != nil {
		return nil, err
	}
	total, err := r.revenue.Total()
	if err != nil {
		return nil, err
	}
	lastSettled, err := r.settlement.LastSettled()
	if err != nil {
		return nil, err
	}

	current := calc.Current(height)
	return &CurrentCycleInfo{
		Cycle:          current,
		Start:          calc.Start(current),
		End:            calc.End(current),
		BlocksLeft:     calc.Remaining(height),
		PendingRevenue: pending,
		LastSettled:    lastSettled,
		TotalRevenue:   total,
	}, nil
}

func (r *Revshare) CycleInfo(height uint64, n uint64) (*CycleInfo, error) {
	_, calc, err := r.view(height)
	if err != nil {
		return nil, err
	}
	share, settled, err := r.settlement.Share(n)
	if err != nil {
		return nil, err
	}
	return &CycleInfo{
		Cycle:   n,
		Start:   calc.Start(n),
		End:     calc.End(n),
		Share:   share,
		Settled: settled,
	}, nil
}

// UserBalance returns the takeover refunds owed to user.
func (r *Revshare) UserBalance(user grid.Address) (*uint256.Int, error) {
	if _, err := r.Config(); err != nil {
		return nil, err
	}
	return r.refunds.Get(user)
}

// SlotsByOwner lists the slots user holds, ascending.
func (r *Revshare) SlotsByOwner(height uint64, user grid.Address) ([]uint16, error) {
	if _, _, err := r.view(height); err != nil {
		return nil, err
	}
	owned, err := r.slots.OwnedBy(user)
	if err != nil {
		return nil, err
	}
	ids := make([]uint16, len(owned))
	for i, id := range owned {
		ids[i] = uint16(id)
	}
	return ids, nil
}

// OwnerAt returns the frozen owner of slot id in cycle n, nil if none.
func (r *Revshare) OwnerAt(n uint64, id slots.ID) (*grid.Address, error) {
	if _, err := r.Config(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.settlement.OwnerAt(n, id)
}

// LastSettled returns the settlement pointer.
func (r *Revshare) LastSettled() (uint64, error) {
	return r.settlement.LastSettled()
}
