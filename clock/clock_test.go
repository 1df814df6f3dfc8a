// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	c := NewManual(10)
	assert.Equal(t, uint64(10), c.Height())

	assert.Equal(t, uint64(15), c.Advance(5))
	c.Set(3)
	assert.Equal(t, uint64(15), c.Height(), "never moves backwards")
	c.Set(500)
	assert.Equal(t, uint64(500), c.Height())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Advance(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(1300), c.Height())
}

func TestTimed(t *testing.T) {
	genesis := time.Unix(1_700_000_000, 0)
	c := NewTimed(genesis, 10*time.Second)

	now := genesis.Add(-time.Minute)
	c.now = func() time.Time { return now }
	assert.Equal(t, uint64(0), c.Height())
	assert.Equal(t, time.Minute, c.NextHeightIn())

	now = genesis.Add(95 * time.Second)
	assert.Equal(t, uint64(9), c.Height())
	assert.Equal(t, 5*time.Second, c.NextHeightIn())

	now = genesis.Add(100 * time.Second)
	assert.Equal(t, uint64(10), c.Height())
	assert.Equal(t, 10*time.Second, c.NextHeightIn())

	assert.Equal(t, genesis, c.Genesis())
	assert.Equal(t, 10*time.Second, c.Interval())
	assert.Panics(t, func() { NewTimed(genesis, 0) })
}
