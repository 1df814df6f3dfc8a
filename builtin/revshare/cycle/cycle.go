// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cycle maps heights to fixed-length revenue cycles.
//
// Cycle n covers the half-open height range [origin+n*length, origin+(n+1)*length).
// All arithmetic saturates at math.MaxUint64 instead of wrapping.
package cycle

import (
	"math"

	cmath "github.com/ethereum/go-ethereum/common/math"
)

// Calculator is a pure height to cycle mapping.
type Calculator struct {
	origin uint64
	length uint64
}

// New creates a calculator. It panics on zero length.
func New(origin, length uint64) Calculator {
	if length == 0 {
		panic("cycle: zero length")
	}
	return Calculator{origin: origin, length: length}
}

func (c Calculator) Origin() uint64 { return c.origin }
func (c Calculator) Length() uint64 { return c.length }

// Current returns the cycle containing height. Heights before origin belong to cycle 0.
func (c Calculator) Current(height uint64) uint64 {
	if height < c.origin {
		return 0
	}
	return (height - c.origin) / c.length
}

// Start returns the first height of cycle.
func (c Calculator) Start(cycle uint64) uint64 {
	offset, overflow := cmath.SafeMul(cycle, c.length)
	if overflow {
		return math.MaxUint64
	}
	start, overflow := cmath.SafeAdd(c.origin, offset)
	if overflow {
		return math.MaxUint64
	}
	return start
}

// End returns the first height after cycle.
func (c Calculator) End(cycle uint64) uint64 {
	end, overflow := cmath.SafeAdd(c.Start(cycle), c.length)
	if overflow {
		return math.MaxUint64
	}
	return end
}

// Remaining returns the heights left in the cycle containing height.
func (c Calculator) Remaining(height uint64) uint64 {
	end := c.End(c.Current(height))
	if end <= height {
		return 0
	}
	return end - height
}
