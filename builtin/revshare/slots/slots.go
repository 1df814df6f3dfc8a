// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
)

var slotRecords = grid.BytesToBytes32([]byte("slots"))

// ID identifies a slot in [0, grid.SlotCount).
type ID uint16

func (id ID) Bytes() []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(id))
	return b[:]
}

// Validate reverts when the id is out of range.
func (id ID) Validate() error {
	if uint16(id) >= grid.SlotCount {
		return reverts.Newf("invalid slot id %d", id)
	}
	return nil
}

// Slot is the live state of one slot. A nil Owner means the slot is empty.
type Slot struct {
	Owner       *grid.Address `rlp:"nil"`
	Price       *uint256.Int
	HeldSince   uint64
	LastClaimed uint64
}

func (s *Slot) IsEmpty() bool {
	return s.Owner == nil
}

// IsOwnedBy reports whether addr is the live owner.
func (s *Slot) IsOwnedBy(addr grid.Address) bool {
	return s.Owner != nil && *s.Owner == addr
}

// Service is the slot ledger.
type Service struct {
	records *solidity.Mapping[ID, *Slot]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[ID, *Slot](sctx, slotRecords),
	}
}

// Get returns the slot record, never nil.
func (s *Service) Get(id ID) (*Slot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	slot, err := s.records.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get slot")
	}
	return slot, nil
}

// Occupy hands the slot to owner at price, starting at cycle.
// Both the hold start and the claim resume point are reset to cycle.
func (s *Service) Occupy(id ID, owner grid.Address, price *uint256.Int, cycle uint64) error {
	prev, err := s.Get(id)
	if err != nil {
		return err
	}
	next := &Slot{
		Owner:       &owner,
		Price:       new(uint256.Int).Set(price),
		HeldSince:   cycle,
		LastClaimed: cycle,
	}
	if err := s.records.Set(id, next, prev.IsEmpty()); err != nil {
		return errors.Wrap(err, "failed to set slot")
	}
	return nil
}

// SetLastClaimed moves the claim resume point of an occupied slot.
func (s *Service) SetLastClaimed(id ID, cycle uint64) error {
	slot, err := s.Get(id)
	if err != nil {
		return err
	}
	if slot.IsEmpty() {
		return errors.Errorf("slot %d is empty", id)
	}
	slot.LastClaimed = cycle
	if err := s.records.Update(id, slot); err != nil {
		return errors.Wrap(err, "failed to update slot")
	}
	return nil
}

// Each visits every slot in id order until fn returns false.
func (s *Service) Each(fn func(id ID, slot *Slot) bool) error {
	for i := uint16(0); i < grid.SlotCount; i++ {
		slot, err := s.Get(ID(i))
		if err != nil {
			return err
		}
		if !fn(ID(i), slot) {
			return nil
		}
	}
	return nil
}

// OwnedBy lists the ids currently held by addr, in ascending order.
func (s *Service) OwnedBy(addr grid.Address) ([]ID, error) {
	owned := make([]ID, 0)
	err := s.Each(func(id ID, slot *Slot) bool {
		if slot.IsOwnedBy(addr) {
			owned = append(owned, id)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}
