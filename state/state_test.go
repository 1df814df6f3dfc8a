// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/lvldb"
	"github.com/slotgrid/slotgrid/state"
)

func newStore(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateReadWrite(t *testing.T) {
	db := newStore(t)
	st := state.New(db)

	addr := grid.BytesToAddress([]byte("contract"))
	key := grid.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.True(t, v.IsZero())

	value := grid.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, v)

	raw, err := st.GetRawStorage(addr, key)
	assert.Nil(t, err)
	var decoded []byte
	assert.Nil(t, rlp.DecodeBytes(raw, &decoded))
	assert.Equal(t, []byte("value"), decoded)
}

func TestStateRevert(t *testing.T) {
	st := state.New(newStore(t))
	addr := grid.BytesToAddress([]byte("contract"))
	key := grid.BytesToBytes32([]byte("key"))

	values := []grid.Bytes32{
		grid.BytesToBytes32([]byte("v1")),
		grid.BytesToBytes32([]byte("v2")),
		grid.BytesToBytes32([]byte("v3")),
	}

	var revisions []int
	for _, v := range values {
		revisions = append(revisions, st.NewCheckpoint())
		st.SetStorage(addr, key, v)
	}

	for i := len(revisions) - 1; i >= 0; i-- {
		st.RevertTo(revisions[i])
		got, err := st.GetStorage(addr, key)
		require.NoError(t, err)
		if i == 0 {
			assert.True(t, got.IsZero())
		} else {
			assert.Equal(t, values[i-1], got)
		}
	}
}

func TestStageCommit(t *testing.T) {
	db := newStore(t)
	addr := grid.BytesToAddress([]byte("contract"))
	k1 := grid.BytesToBytes32([]byte("k1"))
	k2 := grid.BytesToBytes32([]byte("k2"))

	st := state.New(db)
	st.SetStorage(addr, k1, grid.BytesToBytes32([]byte("one")))
	st.SetStorage(addr, k2, grid.BytesToBytes32([]byte("two")))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	h := stage.Hash()
	assert.False(t, h.IsZero())
	assert.Equal(t, h, st.Stage().Hash(), "digest should be deterministic")

	batch := db.NewBatch()
	require.NoError(t, stage.Commit(batch))
	require.NoError(t, batch.Write())

	reloaded := state.New(db)
	v, err := reloaded.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, grid.BytesToBytes32([]byte("one")), v)

	// clearing a slot deletes it from the store
	reloaded.SetStorage(addr, k1, grid.Bytes32{})
	batch = db.NewBatch()
	require.NoError(t, reloaded.Stage().Commit(batch))
	require.NoError(t, batch.Write())

	v, err = state.New(db).GetStorage(addr, k1)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	v, err = state.New(db).GetStorage(addr, k2)
	require.NoError(t, err)
	assert.Equal(t, grid.BytesToBytes32([]byte("two")), v)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := state.New(newStore(t))
	addr := grid.BytesToAddress([]byte("contract"))
	key := grid.BytesToBytes32([]byte("list"))

	type pair struct {
		A uint64
		B uint64
	}
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&pair{1, 2})
	}))

	var got pair
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	}))
	assert.Equal(t, pair{1, 2}, got)

	// list values report their hash
	h, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	raw, _ := st.GetRawStorage(addr, key)
	assert.Equal(t, grid.Blake2b(raw), h)
}
