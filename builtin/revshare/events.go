// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revshare

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/grid"
)

// Event is a notification emitted by an engine operation.
type Event interface {
	Name() string
}

const (
	SlotClaimedEvent        = "SlotClaimed"
	SlotTakenOverEvent      = "SlotTakenOver"
	TakeoverRefundEvent     = "TakeoverRefund"
	RevenueReceivedEvent    = "RevenueReceived"
	CycleSettledEvent       = "CycleSettled"
	CycleRewardClaimedEvent = "CycleRewardClaimed"
	RevenueClaimedEvent     = "RevenueClaimed"
)

type SlotClaimed struct {
	Slot  uint16
	Owner grid.Address
	Price *uint256.Int
	Cycle uint64
}

type SlotTakenOver struct {
	Slot     uint16
	NewOwner grid.Address
	OldOwner grid.Address
	Price    *uint256.Int
	Cycle    uint64
}

// TakeoverRefund credits the displaced owner with the winning bid.
type TakeoverRefund struct {
	To     grid.Address
	Slot   uint16
	Amount *uint256.Int
}

type RevenueReceived struct {
	Cycle   uint64
	Amount  *uint256.Int
	PerSlot *uint256.Int
}

type CycleSettled struct {
	Cycle uint64
	Share *uint256.Int
	Owned uint16
}

type CycleRewardClaimed struct {
	Owner  grid.Address
	Slot   uint16
	Cycle  uint64
	Amount *uint256.Int
}

type RevenueClaimed struct {
	Owner   grid.Address
	Rewards *uint256.Int
	Refunds *uint256.Int
	Total   *uint256.Int
}

func (SlotClaimed) Name() string        { return SlotClaimedEvent }
func (SlotTakenOver) Name() string      { return SlotTakenOverEvent }
func (TakeoverRefund) Name() string     { return TakeoverRefundEvent }
func (RevenueReceived) Name() string    { return RevenueReceivedEvent }
func (CycleSettled) Name() string       { return CycleSettledEvent }
func (CycleRewardClaimed) Name() string { return CycleRewardClaimedEvent }
func (RevenueClaimed) Name() string     { return RevenueClaimedEvent }

// EncodeEvent returns the rlp payload of ev.
func EncodeEvent(ev Event) ([]byte, error) {
	return rlp.EncodeToBytes(ev)
}

// DecodeEvent restores an event from its name and rlp payload.
func DecodeEvent(name string, data []byte) (Event, error) {
	var ev Event
	switch name {
	case SlotClaimedEvent:
		ev = &SlotClaimed{}
	case SlotTakenOverEvent:
		ev = &SlotTakenOver{}
	case TakeoverRefundEvent:
		ev = &TakeoverRefund{}
	case RevenueReceivedEvent:
		ev = &RevenueReceived{}
	case CycleSettledEvent:
		ev = &CycleSettled{}
	case CycleRewardClaimedEvent:
		ev = &CycleRewardClaimed{}
	case RevenueClaimedEvent:
		ev = &RevenueClaimed{}
	default:
		return nil, errors.Errorf("unknown event %q", name)
	}
	if err := rlp.DecodeBytes(data, ev); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return ev, nil
}
