// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grid

// Constants of the slot pool.
const (
	SlotCount      uint16 = 100 // number of slots in the pool.
	CycleLength    uint64 = 432 // heights per cycle, 3 days of 144 blocks.
	MaxSettleBatch int    = 10  // cycles settled by a single call at most.

	DefaultFloorPrice uint64 = 1000 // floor price used when deployment supplies none.
	FeeRateBps        uint64 = 100  // fee taken by the fee source, in basis points (1%).
	MaxFeeRateBps     uint64 = 10000

	BlockInterval uint64 = 10 // seconds between two heights of the timed clock.
)

// Work units charged for storage access.
const (
	SloadGas       uint64 = 200
	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 5000

	DefaultCallGasLimit uint64 = 50 * 1000 * 1000
)
