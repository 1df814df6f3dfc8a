// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the monotonic height the engine observes.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/slotgrid/slotgrid/log"
)

var logger = log.WithContext("pkg", "clock")

// Clock reports the current height. Heights never decrease.
type Clock interface {
	Height() uint64
}

// Manual is a clock moved by hand.
type Manual struct {
	height atomic.Uint64
}

func NewManual(height uint64) *Manual {
	m := &Manual{}
	m.height.Store(height)
	return m
}

func (m *Manual) Height() uint64 {
	return m.height.Load()
}

// Set moves the clock to height. Moving backwards is ignored.
func (m *Manual) Set(height uint64) {
	for {
		cur := m.height.Load()
		if height <= cur || m.height.CompareAndSwap(cur, height) {
			return
		}
	}
}

// Advance moves the clock forward by n and returns the new height.
func (m *Manual) Advance(n uint64) uint64 {
	return m.height.Add(n)
}

// Timed derives height from wall time: one height per interval since genesis.
type Timed struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

func NewTimed(genesis time.Time, interval time.Duration) *Timed {
	if interval <= 0 {
		panic("clock: non-positive interval")
	}
	return &Timed{genesis: genesis, interval: interval, now: time.Now}
}

func (t *Timed) Genesis() time.Time {
	return t.genesis
}

func (t *Timed) Interval() time.Duration {
	return t.interval
}

func (t *Timed) Height() uint64 {
	elapsed := t.now().Sub(t.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / t.interval)
}

// NextHeightIn returns the wait until the next height starts.
func (t *Timed) NextHeightIn() time.Duration {
	elapsed := t.now().Sub(t.genesis)
	if elapsed < 0 {
		return -elapsed
	}
	return t.interval - elapsed%t.interval
}

// CheckDrift queries an NTP server and warns when the local clock is off by more
// than half an interval. It returns the measured offset.
func CheckDrift(server string, interval time.Duration) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return 0, err
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > interval/2 {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
	return resp.ClockOffset, nil
}
