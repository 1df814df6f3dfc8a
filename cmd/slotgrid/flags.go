// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slotgrid/slotgrid/grid"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml config file, explicit flags take precedence",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state and event databases",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save state to disk instead of keeping it in memory",
	}
	engineFlag = cli.StringFlag{
		Name:  "engine",
		Value: defaultEngine.String(),
		Usage: "storage address of the slot engine",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "address of the fee source allowed to deliver revenue",
	}
	floorPriceFlag = cli.StringFlag{
		Name:  "floor-price",
		Usage: "minimum bid for an empty slot, used on first start only",
	}
	genesisTimeFlag = cli.Uint64Flag{
		Name:  "genesis-time",
		Usage: "unix time of height zero, defaults to the first start",
	}
	blockIntervalFlag = cli.Uint64Flag{
		Name:  "block-interval",
		Value: grid.BlockInterval,
		Usage: "seconds between two heights",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiCallGasLimitFlag = cli.Uint64Flag{
		Name:  "api-call-gas-limit",
		Value: grid.DefaultCallGasLimit,
		Usage: "limit work units of a single call, zero disables metering",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by a query",
	}
	apiCycleCacheFlag = cli.IntFlag{
		Name:  "api-cycle-cache",
		Value: 1024,
		Usage: "number of settled cycles kept in memory",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration (ms) above the threshold will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: "terminal",
		Usage: "log output format (terminal|json|logfmt)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	disableAutoSettleFlag = cli.BoolFlag{
		Name:  "disable-auto-settle",
		Usage: "do not settle finished cycles in the background",
	}
	disableNTPCheckFlag = cli.BoolFlag{
		Name:  "disable-ntp-check",
		Usage: "do not check the local clock against an NTP server",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server used by the clock check",
	}

	// client flags
	nodeFlag = cli.StringFlag{
		Name:  "node",
		Value: "http://localhost:8680",
		Usage: "URL of the node API",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address acting as the caller",
	}
	slotFlag = cli.UintFlag{
		Name:  "slot",
		Usage: "slot id",
	}
	cycleFlag = cli.Uint64Flag{
		Name:  "cycle",
		Usage: "cycle number",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in base units, decimal",
	}
)
