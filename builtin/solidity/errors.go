// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "github.com/pkg/errors"

// ErrOverflow is returned when an arithmetic update leaves the uint256 range.
var ErrOverflow = errors.New("uint256 overflow")
