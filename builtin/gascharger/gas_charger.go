// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gascharger

import (
	"errors"
	"fmt"

	"github.com/slotgrid/slotgrid/grid"
)

// ErrOutOfGas is raised by Charge once the limit is crossed.
var ErrOutOfGas = errors.New("out of gas")

// Op classifies a charge in the breakdown.
type Op int

const (
	Custom Op = iota
	Sload
	SstoreSet
	SstoreReset
)

// Charger meters storage access of a single call.
type Charger struct {
	limit          uint64
	sloadOps       uint64
	sstoreSetOps   uint64
	sstoreResetOps uint64
	customGas      uint64
	totalGas       uint64
}

// New creates a charger. Zero limit means unmetered.
func New(limit uint64) *Charger {
	return &Charger{limit: limit}
}

// Charge adds gas of the given kind to the running total. Storage ops count
// one op per word charged.
// It panics with ErrOutOfGas when the total exceeds the limit.
func (c *Charger) Charge(op Op, gas uint64) {
	c.totalGas += gas

	switch op {
	case Sload:
		c.sloadOps += gas / grid.SloadGas
	case SstoreSet:
		c.sstoreSetOps += gas / grid.SstoreSetGas
	case SstoreReset:
		c.sstoreResetOps += gas / grid.SstoreResetGas
	default:
		c.customGas += gas
	}

	if c.limit > 0 && c.totalGas > c.limit {
		panic(ErrOutOfGas)
	}
}

func (c *Charger) Breakdown() string {
	return fmt.Sprintf(
		"SLOAD: %d ops (%d gas) | SSTORE_SET: %d ops (%d gas) | SSTORE_RESET: %d ops (%d gas) | CUSTOM: %d gas | TOTAL: %d gas",
		c.sloadOps,
		c.sloadOps*grid.SloadGas,
		c.sstoreSetOps,
		c.sstoreSetOps*grid.SstoreSetGas,
		c.sstoreResetOps,
		c.sstoreResetOps*grid.SstoreResetGas,
		c.customGas,
		c.totalGas,
	)
}

func (c *Charger) TotalGas() uint64 {
	return c.totalGas
}

func (c *Charger) Limit() uint64 {
	return c.limit
}
