// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/grid"
)

// Uint256 is a wrapper for storage and retrieval of an uint256 at a fixed position.
// Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     grid.Bytes32
}

func NewUint256(context *Context, pos grid.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	u.context.UseGas(gascharger.Sload, grid.SloadGas)
	return new(uint256.Int).SetBytes32(storage[:]), nil
}

func (u *Uint256) Set(value *uint256.Int) {
	u.context.UseGas(gascharger.SstoreReset, grid.SstoreResetGas)
	u.context.state.SetStorage(u.context.address, u.pos, grid.Bytes32(value.Bytes32()))
}

// Add increases the stored value, reverting on overflow.
func (u *Uint256) Add(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, overflow := storage.AddOverflow(storage, value); overflow {
		return ErrOverflow
	}
	u.Set(storage)
	return nil
}

// Sub decreases the stored value, reverting on underflow.
func (u *Uint256) Sub(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, underflow := storage.SubOverflow(storage, value); underflow {
		return ErrOverflow
	}
	u.Set(storage)
	return nil
}
