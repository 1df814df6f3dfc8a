// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gascharger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slotgrid/slotgrid/grid"
)

func TestChargeBreakdown(t *testing.T) {
	c := New(0)
	c.Charge(Sload, grid.SloadGas)
	c.Charge(Sload, grid.SloadGas*3)
	c.Charge(SstoreSet, grid.SstoreSetGas)
	c.Charge(SstoreReset, grid.SstoreResetGas)
	c.Charge(Custom, 7)

	assert.Equal(t, 4*grid.SloadGas+grid.SstoreSetGas+grid.SstoreResetGas+7, c.TotalGas())
	assert.Equal(t, uint64(4), c.sloadOps)
	assert.Equal(t, uint64(1), c.sstoreSetOps)
	assert.Equal(t, uint64(1), c.sstoreResetOps)
	assert.Equal(t, uint64(7), c.customGas)
	assert.Contains(t, c.Breakdown(), "SLOAD: 4 ops (800 gas)")
}

func TestChargeMultiWordReset(t *testing.T) {
	c := New(0)
	// four words reset cost exactly one fresh word
	c.Charge(SstoreReset, 4*grid.SstoreResetGas)
	c.Charge(Sload, grid.SstoreSetGas)

	assert.Equal(t, uint64(0), c.sstoreSetOps)
	assert.Equal(t, uint64(4), c.sstoreResetOps)
	assert.Equal(t, grid.SstoreSetGas/grid.SloadGas, c.sloadOps)
	assert.Contains(t, c.Breakdown(), "SSTORE_SET: 0 ops (0 gas)")
	assert.Contains(t, c.Breakdown(), "SSTORE_RESET: 4 ops (20000 gas)")
}

func TestChargeLimit(t *testing.T) {
	c := New(grid.SstoreSetGas)
	assert.Equal(t, grid.SstoreSetGas, c.Limit())
	assert.NotPanics(t, func() { c.Charge(SstoreSet, grid.SstoreSetGas) })
	assert.PanicsWithValue(t, ErrOutOfGas, func() { c.Charge(Sload, grid.SloadGas) })
}
