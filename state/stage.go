// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/kv"
)

// Stage abstracts storage changes pending to be written.
type Stage struct {
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes a digest over the changes, ordered by persisted key.
func (s *Stage) Hash() grid.Bytes32 {
	keys := s.sortedKeys()
	hasher := grid.NewBlake2b()
	for _, k := range keys {
		hasher.Write(k)
		hasher.Write(s.changes[s.index(k)])
	}
	var h grid.Bytes32
	hasher.Sum(h[:0])
	return h
}

// Commit writes all changes into w. Cleared slots are deleted.
func (s *Stage) Commit(w kv.Putter) error {
	for k, v := range s.changes {
		pk := persistKey(k.addr, k.key)
		if len(v) == 0 {
			if err := w.Delete(pk); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := w.Put(pk, v); err != nil {
			return &Error{err}
		}
	}
	return nil
}

func (s *Stage) sortedKeys() [][]byte {
	keys := make([][]byte, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, persistKey(k.addr, k.key))
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys
}

func (s *Stage) index(pk []byte) storageKey {
	var k storageKey
	off := len(StorageKeyPrefix)
	copy(k.addr[:], pk[off:off+len(k.addr)])
	copy(k.key[:], pk[off+len(k.addr):])
	return k
}
