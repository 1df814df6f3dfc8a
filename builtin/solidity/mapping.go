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

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for native contracts, similar to the mapping in Solidity.
// Values are rlp encoded under blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos grid.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos grid.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) grid.Bytes32 {
	return grid.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value stored for key. A missing entry decodes to the zero value,
// or to a pointer to a zero value when V is a pointer type.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			m.context.UseGas(gascharger.Sload, grid.SloadGas)
			return nil
		}
		m.context.UseGas(gascharger.Sload, toWordSize(len(raw))*grid.SloadGas)
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores value for key. newValue selects the fresh-slot tariff.
func (m *Mapping[K, V]) Set(key K, value V, newValue bool) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		if newValue {
			m.context.UseGas(gascharger.SstoreSet, toWordSize(len(val))*grid.SstoreSetGas)
		} else {
			m.context.UseGas(gascharger.SstoreReset, toWordSize(len(val))*grid.SstoreResetGas)
		}
		return val, nil
	})
}

// Insert stores value for a key that has never been written.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	return m.Set(key, value, true)
}

// Update overwrites the value of an existing key.
func (m *Mapping[K, V]) Update(key K, value V) error {
	return m.Set(key, value, false)
}

// Exists reports whether a value was ever stored for key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	m.context.UseGas(gascharger.Sload, grid.SloadGas)
	return len(raw) > 0, nil
}

// Delete clears the entry for key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.UseGas(gascharger.SstoreReset, grid.SstoreResetGas)
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
