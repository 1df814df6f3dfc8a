// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package types holds the JSON bodies of the HTTP API.
package types

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/slotgrid/slotgrid/grid"
)

// CallRequest is the body of slot claims, takeovers and revenue receipts.
// Amount accepts decimal or 0x prefixed hex.
type CallRequest struct {
	Caller grid.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// TransferRequest is the body of a fee split transfer.
type TransferRequest struct {
	From   grid.Address          `json:"from"`
	To     grid.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// Event is a committed event, either from a receipt or the index.
type Event struct {
	Name   string `json:"name"`
	Height uint64 `json:"height"`
	Seq    uint64 `json:"seq,omitempty"`
	Fields any    `json:"fields"`
}

type Receipt struct {
	Height  uint64   `json:"height"`
	GasUsed uint64   `json:"gasUsed"`
	Events  []*Event `json:"events"`
}

type TakeoverReceipt struct {
	Receipt
	Cycle    uint64 `json:"cycle"`
	CycleEnd uint64 `json:"cycleEnd"`
}

type ClaimReceipt struct {
	Receipt
	Amount string `json:"amount"`
}

type TransferReceipt struct {
	Receipt
	Fee string `json:"fee"`
	Net string `json:"net"`
}

type SettledCycle struct {
	Cycle uint64 `json:"cycle"`
	Share string `json:"share"`
	Owned uint16 `json:"owned"`
}

type SettleReceipt struct {
	Receipt
	Settled []*SettledCycle `json:"settled"`
}

// Slot amounts are decimal strings. Owner is null while the slot is empty.
type Slot struct {
	ID           uint16        `json:"id"`
	Owner        *grid.Address `json:"owner"`
	Price        string        `json:"price"`
	HeldSince    uint64        `json:"heldSince"`
	LastClaimed  uint64        `json:"lastClaimed"`
	CurrentCycle uint64        `json:"currentCycle"`
	CycleEnd     uint64        `json:"cycleEnd"`
	BlocksLeft   uint64        `json:"blocksLeft"`
}

type CurrentCycle struct {
	Cycle          uint64 `json:"cycle"`
	Start          uint64 `json:"start"`
	End            uint64 `json:"end"`
	BlocksLeft     uint64 `json:"blocksLeft"`
	PendingRevenue string `json:"pendingRevenue"`
	LastSettled    uint64 `json:"lastSettled"`
	TotalRevenue   string `json:"totalRevenue"`
}

type Cycle struct {
	Cycle   uint64 `json:"cycle"`
	Start   uint64 `json:"start"`
	End     uint64 `json:"end"`
	Share   string `json:"share"`
	Settled bool   `json:"settled"`
}

type SlotOwner struct {
	Cycle uint64        `json:"cycle"`
	Slot  uint16        `json:"slot"`
	Owner *grid.Address `json:"owner"`
}

type Account struct {
	Address grid.Address `json:"address"`
	Refunds string       `json:"refunds"`
	Pending string       `json:"pending"`
	Slots   []uint16     `json:"slots"`
}

type Fees struct {
	RateBps   uint64 `json:"rateBps"`
	Collected string `json:"collected"`
}

type NodeInfo struct {
	Height      uint64       `json:"height"`
	Engine      grid.Address `json:"engine"`
	Token       grid.Address `json:"token"`
	Origin      uint64       `json:"origin"`
	FloorPrice  string       `json:"floorPrice"`
	CycleLength uint64       `json:"cycleLength"`
	SlotCount   uint16       `json:"slotCount"`
}
