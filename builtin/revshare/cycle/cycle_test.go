// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cycle

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
)

func TestCalculator(t *testing.T) {
	c := New(0, 432)

	tests := []struct {
		height    uint64
		cycle     uint64
		start     uint64
		end       uint64
		remaining uint64
	}{
		{0, 0, 0, 432, 432},
		{10, 0, 0, 432, 422},
		{431, 0, 0, 432, 1},
		{432, 1, 432, 864, 432},
		{500, 1, 432, 864, 364},
		{900, 2, 864, 1296, 396},
	}

	for _, tt := range tests {
		cycle := c.Current(tt.height)
		assert.Equal(t, tt.cycle, cycle, "height %d", tt.height)
		assert.Equal(t, tt.start, c.Start(cycle))
		assert.Equal(t, tt.end, c.End(cycle))
		assert.Equal(t, tt.remaining, c.Remaining(tt.height))
	}
}

func TestCalculatorOrigin(t *testing.T) {
	c := New(1000, 10)

	assert.Equal(t, uint64(0), c.Current(0), "heights before origin map to cycle 0")
	assert.Equal(t, uint64(0), c.Current(1009))
	assert.Equal(t, uint64(1), c.Current(1010))
	assert.Equal(t, uint64(1010), c.Start(1))
	assert.Equal(t, uint64(1000), c.Origin())
	assert.Equal(t, uint64(10), c.Length())
}

func TestCalculatorSaturates(t *testing.T) {
	c := New(math.MaxUint64-100, 432)

	assert.Equal(t, uint64(math.MaxUint64), c.Start(1))
	assert.Equal(t, uint64(math.MaxUint64), c.End(0))
	assert.Equal(t, uint64(math.MaxUint64), c.Start(math.MaxUint64))
	assert.Equal(t, uint64(0), c.Current(math.MaxUint64))
	assert.Equal(t, uint64(1), c.Remaining(math.MaxUint64-1))
	assert.Equal(t, uint64(0), c.Remaining(math.MaxUint64))
}

func TestZeroLengthPanics(t *testing.T) {
	assert.Panics(t, func() { New(0, 0) })
}

func TestCalculatorProperties(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for i := 0; i < 2000; i++ {
		var origin, height, delta uint64
		var length uint16
		f.Fuzz(&origin)
		f.Fuzz(&height)
		f.Fuzz(&delta)
		f.Fuzz(&length)

		// keep clear of saturation so the boundary property holds exactly
		origin %= 1 << 40
		height %= 1 << 48
		delta %= 1 << 20
		c := New(origin, uint64(length)+1)

		cur := c.Current(height)
		if height >= origin {
			assert.LessOrEqual(t, c.Start(cur), height)
			assert.Greater(t, c.End(cur), height)
			assert.Equal(t, c.End(cur)-height, c.Remaining(height))
		}
		assert.LessOrEqual(t, cur, c.Current(height+delta), "cycle must be monotonic")
	}
}
