// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/revshare"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/grid"
)

// Config returns the deployed engine config.
func (rt *Runtime) Config() (cfg *revshare.Config, err error) {
	err = rt.view(func(c *call) error {
		cfg, err = c.engine.Config()
		return err
	})
	return
}

func (rt *Runtime) SlotInfo(id uint16) (info *revshare.SlotInfo, err error) {
	err = rt.view(func(c *call) error {
		info, err = c.engine.SlotInfo(c.height, slots.ID(id))
		return err
	})
	return
}

func (rt *Runtime) Slots() (infos []*revshare.SlotInfo, err error) {
	err = rt.view(func(c *call) error {
		infos, err = c.engine.Slots(c.height)
		return err
	})
	return
}

func (rt *Runtime) CurrentCycle() (info *revshare.CurrentCycleInfo, err error) {
	err = rt.view(func(c *call) error {
		info, err = c.engine.CurrentCycleInfo(c.height)
		return err
	})
	return
}

// Cycle returns cycle n. Share is zero until n is settled.
func (rt *Runtime) Cycle(n uint64) (info *revshare.CycleInfo, err error) {
	err = rt.view(func(c *call) error {
		info, err = c.engine.CycleInfo(c.height, n)
		return err
	})
	return
}

// OwnerAt returns the frozen owner of slot id in cycle n.
func (rt *Runtime) OwnerAt(n uint64, id uint16) (owner *grid.Address, err error) {
	err = rt.view(func(c *call) error {
		owner, err = c.engine.OwnerAt(n, slots.ID(id))
		return err
	})
	return
}

// Account summarises what the engine holds for an address.
type Account struct {
	Address grid.Address
	Refunds *uint256.Int
	Pending *uint256.Int
	Slots   []uint16
}

func (rt *Runtime) Account(addr grid.Address) (*Account, error) {
	acc := &Account{Address: addr}
	err := rt.view(func(c *call) (err error) {
		if acc.Pending, err = c.engine.PendingRevenue(c.height, addr); err != nil {
			return err
		}
		if acc.Slots, err = c.engine.SlotsByOwner(c.height, addr); err != nil {
			return err
		}
		acc.Refunds, err = c.engine.UserBalance(addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Fees returns the fee rate in basis points and the total forwarded so far.
func (rt *Runtime) Fees() (rate uint64, collected *uint256.Int, err error) {
	err = rt.view(func(c *call) error {
		rate = c.fees.Rate()
		collected, err = c.fees.Collected()
		return err
	})
	return
}
