// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revenue

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/lvldb"
	"github.com/slotgrid/slotgrid/state"
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return New(solidity.NewContext(grid.BytesToAddress([]byte("revshare")), state.New(db), nil))
}

func TestReceiveAndTake(t *testing.T) {
	svc := newSvc(t)

	require.NoError(t, svc.Receive(uint256.NewInt(4000)))
	require.NoError(t, svc.Receive(uint256.NewInt(320)))

	pending, err := svc.Pending()
	require.NoError(t, err)
	assert.Equal(t, uint64(4320), pending.Uint64())

	taken, err := svc.TakePending()
	require.NoError(t, err)
	assert.Equal(t, uint64(4320), taken.Uint64())

	pending, err = svc.Pending()
	require.NoError(t, err)
	assert.True(t, pending.IsZero())

	taken, err = svc.TakePending()
	require.NoError(t, err)
	assert.True(t, taken.IsZero())

	require.NoError(t, svc.Receive(uint256.NewInt(80)))
	total, err := svc.Total()
	require.NoError(t, err)
	assert.Equal(t, uint64(4400), total.Uint64(), "total is never reset")
}

func TestReceiveOverflow(t *testing.T) {
	svc := newSvc(t)

	require.NoError(t, svc.Receive(new(uint256.Int).SetAllOne()))
	err := svc.Receive(uint256.NewInt(1))
	assert.True(t, reverts.IsRevertErr(err))
	assert.EqualError(t, err, "revenue overflow")
}
