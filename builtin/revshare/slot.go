// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revshare

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/grid"
)

// ClaimSlot gives an empty slot to caller for bid, which must reach the floor price.
func (r *Revshare) ClaimSlot(height uint64, caller grid.Address, id slots.ID, bid *uint256.Int) error {
	cfg, calc, err := r.prepare(height, caller)
	if err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return err
	}
	slot, err := r.slots.Get(id)
	if err != nil {
		return err
	}
	if !slot.IsEmpty() {
		return reverts.New("slot already owned, use takeover")
	}
	if bid == nil || bid.Lt(cfg.FloorPrice) {
		return reverts.New("below floor price")
	}

	current := calc.Current(height)
	if err := r.slots.Occupy(id, caller, bid, current); err != nil {
		return err
	}
	r.emit(&SlotClaimed{Slot: uint16(id), Owner: caller, Price: new(uint256.Int).Set(bid), Cycle: current})

	logger.Debug("slot claimed", "slot", id, "owner", caller, "price", bid, "cycle", current)
	return nil
}

// TakeoverSlot moves an occupied slot to caller for a bid strictly above the
// current price. The displaced owner is credited the full bid at once.
// Revenue of the running cycle stays with whoever holds the slot when it is settled.
// It returns the current cycle and the height at which it ends.
func (r *Revshare) TakeoverSlot(height uint64, caller grid.Address, id slots.ID, bid *uint256.Int) (uint64, uint64, error) {
	cfg, calc, err := r.prepare(height, caller)
	if err != nil {
		return 0, 0, err
	}
	if err := id.Validate(); err != nil {
		return 0, 0, err
	}
	slot, err := r.slots.Get(id)
	if err != nil {
		return 0, 0, err
	}
	if slot.IsEmpty() {
		return 0, 0, reverts.New("slot is empty, use claim")
	}
	price := slot.Price
	if price == nil || price.IsZero() {
		price = cfg.FloorPrice
	}
	if bid == nil || !bid.Gt(price) {
		return 0, 0, reverts.New("must pay more than current price")
	}
	oldOwner := *slot.Owner
	if oldOwner == caller {
		return 0, 0, reverts.New("already own this slot")
	}

	if err := r.refunds.Credit(oldOwner, bid); err != nil {
		return 0, 0, err
	}
	r.emit(&TakeoverRefund{To: oldOwner, Slot: uint16(id), Amount: new(uint256.Int).Set(bid)})

	current := calc.Current(height)
	if err := r.slots.Occupy(id, caller, bid, current); err != nil {
		return 0, 0, err
	}
	r.emit(&SlotTakenOver{
		Slot:     uint16(id),
		NewOwner: caller,
		OldOwner: oldOwner,
		Price:    new(uint256.Int).Set(bid),
		Cycle:    current,
	})

	logger.Debug("slot taken over", "slot", id, "from", oldOwner, "to", caller, "price", bid, "cycle", current)
	return current, calc.End(current), nil
}
