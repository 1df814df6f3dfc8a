// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/grid"
)

// ParseUint parses an optional decimal query or path value. Empty yields def.
func ParseUint(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// ParseSlotID parses a slot id in [0, grid.SlotCount).
func ParseSlotID(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if n >= uint64(grid.SlotCount) {
		return 0, errors.Errorf("slot id out of range [0, %d)", grid.SlotCount)
	}
	return uint16(n), nil
}

// ToAmount converts a request amount. Missing amounts are zero.
func ToAmount(v *math.HexOrDecimal256) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative amount")
	}
	amount, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("amount exceeds 256 bits")
	}
	return amount, nil
}

// ParseAddress parses an optional hex address. Empty yields nil.
func ParseAddress(s string) (*grid.Address, error) {
	if s == "" {
		return nil, nil
	}
	addr, err := grid.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}
