// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/slotgrid/slotgrid/metrics"

var (
	metricCalls     = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"method", "status"})
	metricGasUsed   = metrics.LazyLoadHistogramVec("runtime_gas_used", []string{"method"}, metrics.BucketGas)
	metricHeight    = metrics.LazyLoadGauge("runtime_height")
	metricSettleLag = metrics.LazyLoadGauge("settlement_lag_cycles")
)
