// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revshare

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/grid"
)

var slotCount = uint256.NewInt(uint64(grid.SlotCount))

// ReceiveRevenue pools amount into the running cycle. Only the token may call it.
func (r *Revshare) ReceiveRevenue(height uint64, caller grid.Address, amount *uint256.Int) error {
	cfg, calc, err := r.prepare(height, caller)
	if err != nil {
		return err
	}
	if caller != cfg.Token {
		return reverts.New("only the token can send revenue")
	}
	if amount == nil || amount.IsZero() {
		return reverts.New("zero revenue")
	}
	if err := r.revenue.Receive(amount); err != nil {
		return err
	}

	current := calc.Current(height)
	r.emit(&RevenueReceived{
		Cycle:   current,
		Amount:  new(uint256.Int).Set(amount),
		PerSlot: new(uint256.Int).Div(amount, slotCount),
	})
	logger.Trace("revenue received", "amount", amount, "cycle", current)
	return nil
}
