// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package settlement freezes per-cycle revenue shares and slot owners.
//
// Cycles are settled lazily, oldest first, at most grid.MaxSettleBatch per call.
// A snapshot for cycle C exists iff C < LastSettled and is never rewritten.
package settlement

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/revshare/revenue"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
)

var (
	slotLastSettled = grid.BytesToBytes32([]byte("last-settled-cycle"))
	slotShares      = grid.BytesToBytes32([]byte("cycle-shares"))
	slotOwners      = grid.BytesToBytes32([]byte("cycle-owners"))

	slotCount = uint256.NewInt(uint64(grid.SlotCount))
)

type cycleKey uint64

func (c cycleKey) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(c))
	return b[:]
}

// SnapshotKey addresses the owner snapshot of one slot in one cycle.
type SnapshotKey struct {
	Cycle uint64
	Slot  slots.ID
}

func (k SnapshotKey) Bytes() []byte {
	var b [10]byte
	binary.BigEndian.PutUint64(b[:8], k.Cycle)
	binary.BigEndian.PutUint16(b[8:], uint16(k.Slot))
	return b[:]
}

// Settled describes one cycle frozen by Settle.
type Settled struct {
	Cycle uint64
	Share *uint256.Int
	Owned uint16
}

type Service struct {
	lastSettled *solidity.Uint256
	shares      *solidity.Mapping[cycleKey, *uint256.Int]
	owners      *solidity.Mapping[SnapshotKey, grid.Address]

	slots   *slots.Service
	revenue *revenue.Service
}

func New(sctx *solidity.Context, slotSvc *slots.Service, revenueSvc *revenue.Service) *Service {
	return &Service{
		lastSettled: solidity.NewUint256(sctx, slotLastSettled),
		shares:      solidity.NewMapping[cycleKey, *uint256.Int](sctx, slotShares),
		owners:      solidity.NewMapping[SnapshotKey, grid.Address](sctx, slotOwners),
		slots:       slotSvc,
		revenue:     revenueSvc,
	}
}

// LastSettled returns the settlement pointer: every cycle below it is settled.
func (s *Service) LastSettled() (uint64, error) {
	v, err := s.lastSettled.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get last settled cycle")
	}
	return v.Uint64(), nil
}

// Settle advances the pointer towards current, settling at most grid.MaxSettleBatch cycles.
// It is a no-op once the pointer reached current.
func (s *Service) Settle(current uint64) ([]Settled, error) {
	last, err := s.LastSettled()
	if err != nil {
		return nil, err
	}

	var settled []Settled
	for last < current && len(settled) < grid.MaxSettleBatch {
		entry, err := s.settleCycle(last)
		if err != nil {
			return nil, err
		}
		settled = append(settled, entry)
		last++
	}
	if len(settled) > 0 {
		s.lastSettled.Set(uint256.NewInt(last))
	}
	return settled, nil
}

func (s *Service) settleCycle(cycle uint64) (Settled, error) {
	pending, err := s.revenue.TakePending()
	if err != nil {
		return Settled{}, err
	}
	share := new(uint256.Int).Div(pending, slotCount)
	if err := s.shares.Insert(cycleKey(cycle), share); err != nil {
		return Settled{}, errors.Wrap(err, "failed to set cycle share")
	}

	var (
		owned   uint16
		snapErr error
	)
	err = s.slots.Each(func(id slots.ID, slot *slots.Slot) bool {
		if slot.IsEmpty() {
			return true
		}
		if snapErr = s.owners.Insert(SnapshotKey{Cycle: cycle, Slot: id}, *slot.Owner); snapErr != nil {
			return false
		}
		owned++
		return true
	})
	if err != nil {
		return Settled{}, err
	}
	if snapErr != nil {
		return Settled{}, errors.Wrap(snapErr, "failed to set owner snapshot")
	}
	return Settled{Cycle: cycle, Share: share, Owned: owned}, nil
}

// Share returns the per-slot share of cycle and whether it has been settled.
// Unsettled cycles report a zero share.
func (s *Service) Share(cycle uint64) (*uint256.Int, bool, error) {
	last, err := s.LastSettled()
	if err != nil {
		return nil, false, err
	}
	if cycle >= last {
		return new(uint256.Int), false, nil
	}
	share, err := s.shares.Get(cycleKey(cycle))
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get cycle share")
	}
	return share, true, nil
}

// OwnerAt returns the owner of slot frozen for cycle, nil when the slot was empty
// or the cycle is not settled yet.
func (s *Service) OwnerAt(cycle uint64, id slots.ID) (*grid.Address, error) {
	owner, err := s.owners.Get(SnapshotKey{Cycle: cycle, Slot: id})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get owner snapshot")
	}
	if owner.IsZero() {
		return nil, nil
	}
	return &owner, nil
}
