// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package refunds

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
)

var slotBalances = grid.BytesToBytes32([]byte("refund-balances"))

// Service keeps per-address takeover refunds owed until withdrawal.
type Service struct {
	balances *solidity.Mapping[grid.Address, *uint256.Int]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		balances: solidity.NewMapping[grid.Address, *uint256.Int](sctx, slotBalances),
	}
}

// Get returns the balance owed to addr, zero when none.
func (s *Service) Get(addr grid.Address) (*uint256.Int, error) {
	bal, err := s.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get refund balance")
	}
	return bal, nil
}

// Credit adds amount to the balance of addr.
func (s *Service) Credit(addr grid.Address, amount *uint256.Int) error {
	bal, err := s.Get(addr)
	if err != nil {
		return err
	}
	fresh := bal.IsZero()
	if _, overflow := bal.AddOverflow(bal, amount); overflow {
		return reverts.New("refund balance overflow")
	}
	if err := s.balances.Set(addr, bal, fresh); err != nil {
		return errors.Wrap(err, "failed to set refund balance")
	}
	return nil
}

// Drain returns the balance of addr and zeroes it. The entry is kept.
func (s *Service) Drain(addr grid.Address) (*uint256.Int, error) {
	bal, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal.IsZero() {
		return bal, nil
	}
	if err := s.balances.Update(addr, new(uint256.Int)); err != nil {
		return nil, errors.Wrap(err, "failed to drain refund balance")
	}
	return bal, nil
}
