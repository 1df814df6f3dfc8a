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

type reward struct {
	slot   slots.ID
	cycle  uint64
	amount *uint256.Int
}

// rewards walks the slots user holds right now. For each one it collects the
// shares of cycles after LastClaimed and before current whose frozen owner is user.
// Slots user held earlier but lost are not visited.
func (r *Revshare) rewards(user grid.Address, current uint64) ([]slots.ID, []reward, error) {
	lastSettled, err := r.settlement.LastSettled()
	if err != nil {
		return nil, nil, err
	}
	// only settled cycles carry snapshots
	end := min(current, lastSettled)

	owned, err := r.slots.OwnedBy(user)
	if err != nil {
		return nil, nil, err
	}

	var found []reward
	for _, id := range owned {
		slot, err := r.slots.Get(id)
		if err != nil {
			return nil, nil, err
		}
		for c := slot.LastClaimed + 1; c < end; c++ {
			owner, err := r.settlement.OwnerAt(c, id)
			if err != nil {
				return nil, nil, err
			}
			if owner == nil || *owner != user {
				continue
			}
			share, _, err := r.settlement.Share(c)
			if err != nil {
				return nil, nil, err
			}
			if share.IsZero() {
				continue
			}
			found = append(found, reward{slot: id, cycle: c, amount: share})
		}
	}
	return owned, found, nil
}

// ClaimRevenue pays out the cycle shares owed to caller on the slots caller
// currently holds, plus any takeover refunds. It reverts when nothing is owed.
// The claim resume point of every held slot moves to the cycle before current.
func (r *Revshare) ClaimRevenue(height uint64, caller grid.Address) (*uint256.Int, error) {
	_, calc, err := r.prepare(height, caller)
	if err != nil {
		return nil, err
	}
	current := calc.Current(height)

	owned, found, err := r.rewards(caller, current)
	if err != nil {
		return nil, err
	}

	rewardTotal := new(uint256.Int)
	for _, rw := range found {
		rewardTotal.Add(rewardTotal, rw.amount)
		r.emit(&CycleRewardClaimed{Owner: caller, Slot: uint16(rw.slot), Cycle: rw.cycle, Amount: rw.amount})
	}

	if current > 0 {
		for _, id := range owned {
			if err := r.slots.SetLastClaimed(id, current-1); err != nil {
				return nil, err
			}
		}
	}

	refund, err := r.refunds.Drain(caller)
	if err != nil {
		return nil, err
	}
	total, overflow := new(uint256.Int).AddOverflow(rewardTotal, refund)
	if overflow {
		return nil, reverts.New("claim overflow")
	}
	if total.IsZero() {
		return nil, reverts.New("nothing to claim")
	}

	r.emit(&RevenueClaimed{Owner: caller, Rewards: rewardTotal, Refunds: refund, Total: total})
	logger.Debug("revenue claimed", "owner", caller, "rewards", rewardTotal, "refunds", refund, "cycles", len(found))
	return total, nil
}

// PendingRevenue estimates the cycle shares ClaimRevenue would pay user,
// excluding takeover refunds.
func (r *Revshare) PendingRevenue(height uint64, user grid.Address) (*uint256.Int, error) {
	_, calc, err := r.calculator()
	if err != nil {
		return nil, err
	}
	if _, err := r.settle(calc, height); err != nil {
		return nil, err
	}
	_, found, err := r.rewards(user, calc.Current(height))
	if err != nil {
		return nil, err
	}
	pending := new(uint256.Int)
	for _, rw := range found {
		pending.Add(pending, rw.amount)
	}
	return pending, nil
}
