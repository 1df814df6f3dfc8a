// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/grid"
)

// Address is a wrapper for storage and retrieval of an address at a fixed position.
type Address struct {
	context *Context
	pos     grid.Bytes32
}

func NewAddress(context *Context, pos grid.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (grid.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return grid.Address{}, err
	}
	a.context.UseGas(gascharger.Sload, grid.SloadGas)
	return grid.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *grid.Address) {
	var storage grid.Bytes32
	if addr != nil {
		storage = grid.BytesToBytes32(addr.Bytes())
	}
	a.context.UseGas(gascharger.SstoreSet, grid.SstoreSetGas)
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}
