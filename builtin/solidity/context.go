// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/state"
)

type UseGasFunc func(op gascharger.Op, gas uint64)

// Context binds storage helpers to one contract address.
type Context struct {
	address grid.Address
	state   *state.State
	charger UseGasFunc
}

func NewContext(address grid.Address, state *state.State, charger UseGasFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		charger: charger,
	}
}

func (c *Context) Address() grid.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) UseGas(op gascharger.Op, gas uint64) {
	if c.charger != nil {
		c.charger(op, gas)
	}
}
