// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/builtin/revshare/revenue"
	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/lvldb"
	"github.com/slotgrid/slotgrid/state"
)

var (
	alice = grid.BytesToAddress([]byte("alice"))
	bob   = grid.BytesToAddress([]byte("bob"))
)

type fixture struct {
	sctx       *solidity.Context
	slots      *slots.Service
	revenue    *revenue.Service
	settlement *Service
}

func newFixture(t *testing.T, charger *gascharger.Charger) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	var useGas solidity.UseGasFunc
	if charger != nil {
		useGas = charger.Charge
	}
	sctx := solidity.NewContext(grid.BytesToAddress([]byte("revshare")), state.New(db), useGas)
	s := slots.New(sctx)
	r := revenue.New(sctx)
	return &fixture{sctx: sctx, slots: s, revenue: r, settlement: New(sctx, s, r)}
}

func TestSnapshotKey(t *testing.T) {
	a := SnapshotKey{Cycle: 1, Slot: 0}
	b := SnapshotKey{Cycle: 0, Slot: 1000}
	assert.NotEqual(t, a.Bytes(), b.Bytes(), "composite keys must not collide")
	assert.Len(t, a.Bytes(), 10)
}

func TestSettleNothing(t *testing.T) {
	f := newFixture(t, nil)

	settled, err := f.settlement.Settle(0)
	require.NoError(t, err)
	assert.Empty(t, settled)

	last, err := f.settlement.LastSettled()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), last)
}

func TestSettleSnapshotsOwners(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.slots.Occupy(5, alice, uint256.NewInt(1000), 0))
	require.NoError(t, f.revenue.Receive(uint256.NewInt(4320)))

	settled, err := f.settlement.Settle(1)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, uint64(0), settled[0].Cycle)
	assert.Equal(t, uint64(43), settled[0].Share.Uint64())
	assert.Equal(t, uint16(1), settled[0].Owned)

	share, ok, err := f.settlement.Share(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(43), share.Uint64())

	owner, err := f.settlement.OwnerAt(0, 5)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, alice, *owner)

	owner, err = f.settlement.OwnerAt(0, 6)
	require.NoError(t, err)
	assert.Nil(t, owner, "empty slots get no snapshot")

	pending, err := f.revenue.Pending()
	require.NoError(t, err)
	assert.True(t, pending.IsZero())

	// later ownership changes never touch a frozen cycle
	require.NoError(t, f.slots.Occupy(5, bob, uint256.NewInt(1100), 1))
	settled, err = f.settlement.Settle(1)
	require.NoError(t, err)
	assert.Empty(t, settled)

	owner, err = f.settlement.OwnerAt(0, 5)
	require.NoError(t, err)
	assert.Equal(t, alice, *owner)

	_, err = f.settlement.Settle(2)
	require.NoError(t, err)
	owner, err = f.settlement.OwnerAt(1, 5)
	require.NoError(t, err)
	assert.Equal(t, bob, *owner)

	share, ok, err = f.settlement.Share(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, share.IsZero())
}

func TestShareOfUnsettledCycle(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.revenue.Receive(uint256.NewInt(1000)))

	share, ok, err := f.settlement.Share(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, share.IsZero())
}

func TestSettleBatchLimit(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.revenue.Receive(uint256.NewInt(999)))

	settled, err := f.settlement.Settle(25)
	require.NoError(t, err)
	assert.Len(t, settled, grid.MaxSettleBatch)
	assert.Equal(t, uint64(9), settled[0].Share.Uint64(), "pending lands in the oldest unsettled cycle")
	for _, s := range settled[1:] {
		assert.True(t, s.Share.IsZero())
	}

	last, err := f.settlement.LastSettled()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), last)

	settled, err = f.settlement.Settle(25)
	require.NoError(t, err)
	assert.Len(t, settled, 10)
	assert.Equal(t, uint64(10), settled[0].Cycle)

	settled, err = f.settlement.Settle(25)
	require.NoError(t, err)
	assert.Len(t, settled, 5)

	last, err = f.settlement.LastSettled()
	require.NoError(t, err)
	assert.Equal(t, uint64(25), last)
}

func TestShareNeverExceedsRevenue(t *testing.T) {
	for _, amount := range []uint64{1, 99, 100, 101, 4320, 123457} {
		f := newFixture(t, nil)
		for i := uint16(0); i < grid.SlotCount; i += 3 {
			require.NoError(t, f.slots.Occupy(slots.ID(i), alice, uint256.NewInt(1000), 0))
		}
		require.NoError(t, f.revenue.Receive(uint256.NewInt(amount)))

		settled, err := f.settlement.Settle(1)
		require.NoError(t, err)
		require.Len(t, settled, 1)

		paid := new(uint256.Int).Mul(settled[0].Share, uint256.NewInt(uint64(settled[0].Owned)))
		assert.LessOrEqual(t, paid.Uint64(), amount)
		assert.Equal(t, amount/uint64(grid.SlotCount), settled[0].Share.Uint64())
	}
}

func TestFullBatchFitsCallBudget(t *testing.T) {
	f := newFixture(t, nil)
	for i := uint16(0); i < grid.SlotCount; i++ {
		require.NoError(t, f.slots.Occupy(slots.ID(i), alice, new(uint256.Int).SetAllOne(), 0))
	}

	charger := gascharger.New(grid.DefaultCallGasLimit)
	mctx := solidity.NewContext(f.sctx.Address(), f.sctx.State(), charger.Charge)
	ms := slots.New(mctx)
	metered := New(mctx, ms, revenue.New(mctx))

	assert.NotPanics(t, func() {
		settled, err := metered.Settle(1000)
		require.NoError(t, err)
		assert.Len(t, settled, grid.MaxSettleBatch)
	})
	assert.Less(t, charger.TotalGas(), grid.DefaultCallGasLimit)
	t.Log(charger.Breakdown())
}
