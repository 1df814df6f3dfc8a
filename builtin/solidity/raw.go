// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/grid"
)

// Raw stores a single rlp encoded value at a fixed position.
type Raw[T any] struct {
	context *Context
	pos     grid.Bytes32
}

func NewRaw[T any](context *Context, pos grid.Bytes32) *Raw[T] {
	return &Raw[T]{context: context, pos: pos}
}

// Get decodes the stored value. A missing value yields the zero value of T,
// or a pointer to one when T is a pointer type.
func (r *Raw[T]) Get() (value T, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(T)
		}
		if len(raw) == 0 {
			r.context.UseGas(gascharger.Sload, grid.SloadGas)
			return nil
		}
		r.context.UseGas(gascharger.Sload, toWordSize(len(raw))*grid.SloadGas)
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Exists reports whether a value has been stored.
func (r *Raw[T]) Exists() (bool, error) {
	raw, err := r.context.state.GetRawStorage(r.context.address, r.pos)
	if err != nil {
		return false, err
	}
	r.context.UseGas(gascharger.Sload, grid.SloadGas)
	return len(raw) > 0, nil
}

func (r *Raw[T]) Set(value T, newValue bool) error {
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		if newValue {
			r.context.UseGas(gascharger.SstoreSet, toWordSize(len(val))*grid.SstoreSetGas)
		} else {
			r.context.UseGas(gascharger.SstoreReset, toWordSize(len(val))*grid.SstoreResetGas)
		}
		return val, nil
	})
}

func (r *Raw[T]) Insert(value T) error {
	return r.Set(value, true)
}

func (r *Raw[T]) Update(value T) error {
	return r.Set(value, false)
}
