// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revenue

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
)

var (
	slotTotal   = grid.BytesToBytes32([]byte("revenue-total"))
	slotPending = grid.BytesToBytes32([]byte("revenue-pending"))
)

// Service accumulates revenue. Total is append-only, pending covers the
// period since the last settlement.
type Service struct {
	total   *solidity.Uint256
	pending *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		total:   solidity.NewUint256(sctx, slotTotal),
		pending: solidity.NewUint256(sctx, slotPending),
	}
}

// Receive adds amount to both counters.
func (s *Service) Receive(amount *uint256.Int) error {
	if err := s.total.Add(amount); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return reverts.New("revenue overflow")
		}
		return err
	}
	if err := s.pending.Add(amount); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return reverts.New("revenue overflow")
		}
		return err
	}
	return nil
}

func (s *Service) Total() (*uint256.Int, error) {
	return s.total.Get()
}

func (s *Service) Pending() (*uint256.Int, error) {
	return s.pending.Get()
}

// TakePending returns the pending amount and resets it to zero.
func (s *Service) TakePending() (*uint256.Int, error) {
	pending, err := s.pending.Get()
	if err != nil {
		return nil, err
	}
	if !pending.IsZero() {
		s.pending.Set(new(uint256.Int))
	}
	return pending, nil
}
