// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/grid"
)

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

// Range is an inclusive height range. To below From means open ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Event is one indexed engine event. Optional columns are nil when the
// event carries no such field.
type Event struct {
	Seq     uint64
	Height  uint64
	Name    string
	Address *grid.Address
	Slot    *uint16
	Cycle   *uint64
	Amount  *uint256.Int
	Data    []byte
}

// Filter selects events. Zero fields match everything.
type Filter struct {
	Name    string
	Address *grid.Address
	Slot    *uint16
	Range   *Range
	Order   OrderType
	Options *Options
}
