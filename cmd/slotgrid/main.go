// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/holiman/uint256"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slotgrid/slotgrid/api"
	"github.com/slotgrid/slotgrid/clock"
	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/kv"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/metrics"
	"github.com/slotgrid/slotgrid/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "SlotGrid",
		Usage:   "Slot ownership and revenue sharing node",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			engineFlag,
			tokenFlag,
			floorPriceFlag,
			genesisTimeFlag,
			blockIntervalFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiCallGasLimitFlag,
			apiEventsLimitFlag,
			apiCycleCacheFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			verbosityFlag,
			logFormatFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			disableAutoSettleFlag,
			disableNTPCheckFlag,
			ntpServerFlag,
		},
		Action:   defaultAction,
		Commands: clientCommands,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	s, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	initLogger(s)

	engine, err := parseAddress(engineFlag.Name, s.Engine)
	if err != nil {
		return err
	}
	token, err := parseAddress(tokenFlag.Name, s.Token)
	if err != nil {
		return err
	}
	floorPrice := uint256.NewInt(grid.DefaultFloorPrice)
	if s.FloorPrice != "" {
		if floorPrice, err = parseAmount(floorPriceFlag.Name, s.FloorPrice); err != nil {
			return err
		}
	}

	if s.Metrics.Enable {
		metrics.InitializePrometheusMetrics()
	}

	var (
		mainDB  kv.StoreCloser
		eventDB *eventdb.EventDB
		dataDir string
	)
	if s.Persist {
		dataDir = makeInstanceDir(s, engine)
		mainDB = openMainDB(dataDir)
		eventDB = openEventDB(dataDir)
	} else {
		dataDir = "Memory"
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	genesis, err := loadGenesisTime(mainDB, s.GenesisTime)
	if err != nil {
		return err
	}
	clk := clock.NewTimed(genesis, s.interval())

	rt, err := runtime.New(mainDB, eventDB, clk, runtime.Options{
		Engine:       engine,
		Token:        token,
		Origin:       clk.Height(),
		FloorPrice:   floorPrice,
		CallGasLimit: s.API.CallGasLimit,
	})
	if err != nil {
		return err
	}

	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(s.API.EnableLogs)
	handler, err := api.New(rt, api.Options{
		AllowedOrigins:       s.API.Cors,
		EventsLimit:          s.API.EventsLimit,
		CycleCacheSize:       s.API.CycleCache,
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(s.API.SlowQueriesThreshold) * time.Millisecond,
		EnableMetrics:        s.Metrics.Enable,
	})
	if err != nil {
		return err
	}
	apiURL, stopAPI := startAPIServer(s, handler)
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	var metricsURL string
	if s.Metrics.Enable {
		url, stopMetrics := startMetricsServer(s.Metrics.Addr)
		defer func() { logger.Info("stopping metrics server..."); stopMetrics() }()
		metricsURL = url
	}

	printStartupMessage(engine, token, genesis, s.interval(), clk.Height(), dataDir, apiURL, metricsURL)

	node, err := newNode(rt, clk, s)
	if err != nil {
		return err
	}
	return node.Run(exitSignal)
}
