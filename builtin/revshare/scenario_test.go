// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revshare

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/builtin/revshare/slots"
	"github.com/slotgrid/slotgrid/grid"
)

// Deploy at 0 with floor 500, A claims slot 5, revenue arrives in cycle 0,
// B takes the slot over in cycle 1 and both try to claim in cycle 2.
func TestTakeoverScenario(t *testing.T) {
	r := newRevshare(t, 500)

	require.NoError(t, r.ClaimSlot(10, alice, 5, u(1000)))
	require.NoError(t, r.ReceiveRevenue(20, token, u(4320)))

	// cycle 1 has started, any mutating call settles cycle 0
	settled, err := r.Settle(500)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, uint64(43), settled[0].Share.Uint64())
	owner, err := r.OwnerAt(0, 5)
	require.NoError(t, err)
	assert.Equal(t, alice, *owner)

	_, _, err = r.TakeoverSlot(600, bob, 5, u(1100))
	require.NoError(t, err)
	bal, err := r.UserBalance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), bal.Uint64(), "refund is credited immediately")

	_, err = r.Settle(900)
	require.NoError(t, err)
	owner, err = r.OwnerAt(1, 5)
	require.NoError(t, err)
	assert.Equal(t, bob, *owner, "cycle 1 belongs to whoever held the slot when it ended")

	// A no longer holds slot 5, so only the refund is found. The cycle 0 share
	// recorded under A stays unclaimed.
	total, err := r.ClaimRevenue(900, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), total.Uint64())

	// cycle 1 had no revenue
	_, err = r.ClaimRevenue(1000, bob)
	assertRevert(t, err, "nothing to claim")
}

// A user who lost a slot before claiming cannot recover the shares earned on it.
func TestLostSlotForfeitsHistory(t *testing.T) {
	r := newRevshare(t, 500)

	require.NoError(t, r.ClaimSlot(10, alice, 7, u(1000)))
	require.NoError(t, r.ReceiveRevenue(500, token, u(2000)))  // cycle 1
	require.NoError(t, r.ReceiveRevenue(1000, token, u(3000))) // cycle 2

	pending, err := r.PendingRevenue(1300, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), pending.Uint64(), "cycles 1 and 2 while still holding")

	_, _, err = r.TakeoverSlot(1300, bob, 7, u(1500))
	require.NoError(t, err)

	for _, c := range []uint64{1, 2} {
		owner, err := r.OwnerAt(c, 7)
		require.NoError(t, err)
		assert.Equal(t, alice, *owner)
	}

	pending, err = r.PendingRevenue(1300, alice)
	require.NoError(t, err)
	assert.True(t, pending.IsZero())

	total, err := r.ClaimRevenue(1300, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), total.Uint64(), "refund only")

	// bob starts from the takeover cycle and never sees alice's cycles
	pending, err = r.PendingRevenue(2000, bob)
	require.NoError(t, err)
	assert.True(t, pending.IsZero())
}

func TestClaimTwiceWithoutNewCycles(t *testing.T) {
	r := newRevshare(t, 500)
	require.NoError(t, r.ClaimSlot(10, alice, 1, u(1000)))
	require.NoError(t, r.ReceiveRevenue(500, token, u(10000)))

	first, err := r.ClaimRevenue(900, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), first.Uint64())

	_, err = r.ClaimRevenue(950, alice)
	assertRevert(t, err, "nothing to claim")
}

// Settlement only keeps up grid.MaxSettleBatch cycles per call. A claim moves the
// resume point to the cycle before current even when later cycles are still unsettled.
func TestSettlementLag(t *testing.T) {
	r := newRevshare(t, 500)
	require.NoError(t, r.ClaimSlot(10, alice, 2, u(1000)))
	require.NoError(t, r.ReceiveRevenue(500, token, u(1000)))

	height := 30 * grid.CycleLength
	total, err := r.ClaimRevenue(height, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), total.Uint64())

	info, err := r.CurrentCycleInfo(height)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), info.Cycle)
	assert.Equal(t, uint64(21), info.LastSettled, "claim and view each settled a batch")

	_, err = r.Settle(height)
	require.NoError(t, err)
	last, err := r.LastSettled()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), last)

	slot, err := r.SlotInfo(height, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(29), slot.LastClaimed)
}

func TestRevenueConservation(t *testing.T) {
	r := newRevshare(t, 500)
	rng := rand.New(rand.NewSource(42))
	users := []grid.Address{alice, bob, carol}

	received := make(map[uint64]uint64)
	var height uint64 = 1
	for step := 0; step < 400; step++ {
		height += uint64(rng.Intn(40))
		current := height / grid.CycleLength

		switch rng.Intn(3) {
		case 0:
			amount := uint64(rng.Intn(100000) + 1)
			require.NoError(t, r.ReceiveRevenue(height, token, u(amount)))
			received[current] += amount
		case 1:
			id := slots.ID(rng.Intn(int(grid.SlotCount)))
			user := users[rng.Intn(len(users))]
			info, err := r.SlotInfo(height, id)
			require.NoError(t, err)
			bid := new(uint256.Int).AddUint64(info.Price, uint64(rng.Intn(100)+1))
			if info.Empty {
				require.NoError(t, r.ClaimSlot(height, user, id, bid))
			} else if info.Owner != user {
				before, err := r.UserBalance(info.Owner)
				require.NoError(t, err)
				_, _, err = r.TakeoverSlot(height, user, id, bid)
				require.NoError(t, err)
				after, err := r.UserBalance(info.Owner)
				require.NoError(t, err)
				assert.Equal(t, new(uint256.Int).Add(before, bid), after)
			}
		case 2:
			_, err := r.Settle(height)
			require.NoError(t, err)
		}
	}

	last, err := r.LastSettled()
	require.NoError(t, err)
	var totalShares uint64
	for c := uint64(0); c < last; c++ {
		info, err := r.CycleInfo(height, c)
		require.NoError(t, err)
		require.True(t, info.Settled)

		var owned uint64
		for id := uint16(0); id < grid.SlotCount; id++ {
			owner, err := r.OwnerAt(c, slots.ID(id))
			require.NoError(t, err)
			if owner != nil {
				owned++
			}
		}
		paid := info.Share.Uint64() * owned
		assert.LessOrEqual(t, paid, received[c], "cycle %d pays more than it received", c)
		assert.Equal(t, received[c]/uint64(grid.SlotCount), info.Share.Uint64())
		totalShares += paid
	}

	cur, err := r.CurrentCycleInfo(height)
	require.NoError(t, err)
	var sum uint64
	for _, v := range received {
		sum += v
	}
	assert.Equal(t, sum, cur.TotalRevenue.Uint64())
	assert.LessOrEqual(t, totalShares, sum)
}
