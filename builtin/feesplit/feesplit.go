// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package feesplit takes a basis-point fee off transfers of the revenue token
// and forwards it to the revenue sharing engine. It keeps no balances.
package feesplit

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/builtin/gascharger"
	"github.com/slotgrid/slotgrid/builtin/revshare"
	"github.com/slotgrid/slotgrid/builtin/revshare/reverts"
	"github.com/slotgrid/slotgrid/builtin/solidity"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/state"
)

var (
	logger = log.WithContext("pkg", "feesplit")

	slotCollected = grid.BytesToBytes32([]byte("fees-collected"))

	bpsDenominator = uint256.NewInt(grid.MaxFeeRateBps)

	FeeRateBps = solidity.NewConfigVariable("feesplit-rate-bps", grid.FeeRateBps)
)

const (
	FeeCollectedEvent    = "FeeCollected"
	TransferWithFeeEvent = "TransferWithFee"
)

// Sink receives the fee taken off a transfer.
type Sink interface {
	ReceiveRevenue(height uint64, caller grid.Address, amount *uint256.Int) error
}

type FeeCollected struct {
	From grid.Address
	To   grid.Address
	Fee  *uint256.Int
}

type TransferWithFee struct {
	From   grid.Address
	To     grid.Address
	Amount *uint256.Int
	Fee    *uint256.Int
}

func (FeeCollected) Name() string    { return FeeCollectedEvent }
func (TransferWithFee) Name() string { return TransferWithFeeEvent }

// DecodeEvent restores a fee event from its name and rlp payload.
func DecodeEvent(name string, data []byte) (revshare.Event, error) {
	var ev revshare.Event
	switch name {
	case FeeCollectedEvent:
		ev = &FeeCollected{}
	case TransferWithFeeEvent:
		ev = &TransferWithFee{}
	default:
		return nil, errors.Errorf("unknown event %q", name)
	}
	if err := rlp.DecodeBytes(data, ev); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return ev, nil
}

// FeeSplit is the fee source bound to the token address.
type FeeSplit struct {
	token     grid.Address
	engine    grid.Address
	rate      *uint256.Int
	collected *solidity.Uint256

	events []revshare.Event
}

// New creates a splitter for token, sending fees to the engine at engine.
func New(token, engine grid.Address, state *state.State, charger *gascharger.Charger) *FeeSplit {
	var useGas solidity.UseGasFunc
	if charger != nil {
		useGas = charger.Charge
	}
	sctx := solidity.NewContext(token, state, useGas)

	// debug overrides for testing
	FeeRateBps.Override(sctx)

	rate := FeeRateBps.Get()
	if rate > grid.MaxFeeRateBps {
		logger.Warn("fee rate out of range, clamping", "rate", rate)
		rate = grid.MaxFeeRateBps
	}
	return &FeeSplit{
		token:     token,
		engine:    engine,
		rate:      uint256.NewInt(rate),
		collected: solidity.NewUint256(sctx, slotCollected),
	}
}

// Rate returns the fee rate in basis points.
func (f *FeeSplit) Rate() uint64 {
	return f.rate.Uint64()
}

// Split returns fee = amount*rate/10000 and the remainder.
func (f *FeeSplit) Split(amount *uint256.Int) (fee, net *uint256.Int, err error) {
	scaled, overflow := new(uint256.Int).MulOverflow(amount, f.rate)
	if overflow {
		return nil, nil, reverts.New("transfer amount too large")
	}
	fee = scaled.Div(scaled, bpsDenominator)
	net = new(uint256.Int).Sub(amount, fee)
	return fee, net, nil
}

// Transfer takes the fee off amount and forwards it to sink as the token.
// Transfers too small to carry a fee forward nothing.
func (f *FeeSplit) Transfer(height uint64, from, to grid.Address, amount *uint256.Int, sink Sink) (fee, net *uint256.Int, err error) {
	if amount == nil || amount.IsZero() {
		return nil, nil, reverts.New("zero amount")
	}
	fee, net, err = f.Split(amount)
	if err != nil {
		return nil, nil, err
	}
	if !fee.IsZero() {
		if err := sink.ReceiveRevenue(height, f.token, fee); err != nil {
			return nil, nil, err
		}
		if err := f.collected.Add(fee); err != nil {
			return nil, nil, err
		}
		f.events = append(f.events, &FeeCollected{From: from, To: f.engine, Fee: fee})
	}
	f.events = append(f.events, &TransferWithFee{From: from, To: to, Amount: net, Fee: fee})

	logger.Trace("transfer with fee", "from", from, "to", to, "net", net, "fee", fee)
	return fee, net, nil
}

// Collected returns the total fees forwarded so far.
func (f *FeeSplit) Collected() (*uint256.Int, error) {
	return f.collected.Get()
}

// Events returns the events emitted so far, in order.
func (f *FeeSplit) Events() []revshare.Event {
	return f.events
}
