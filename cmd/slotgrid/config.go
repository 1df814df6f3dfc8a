// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// settings are the resolved node options. A config file fills them first and
// flags given on the command line override it.
type settings struct {
	DataDir       string `yaml:"data-dir"`
	Persist       bool   `yaml:"persist"`
	Engine        string `yaml:"engine"`
	Token         string `yaml:"token"`
	FloorPrice    string `yaml:"floor-price"`
	GenesisTime   uint64 `yaml:"genesis-time"`
	BlockInterval uint64 `yaml:"block-interval"`

	API struct {
		Addr                 string `yaml:"addr"`
		Cors                 string `yaml:"cors"`
		CallGasLimit         uint64 `yaml:"call-gas-limit"`
		EventsLimit          uint64 `yaml:"events-limit"`
		CycleCache           int    `yaml:"cycle-cache"`
		SlowQueriesThreshold uint64 `yaml:"slow-queries-threshold"`
		EnableLogs           bool   `yaml:"enable-logs"`
	} `yaml:"api"`

	Log struct {
		Verbosity int    `yaml:"verbosity"`
		Format    string `yaml:"format"`
	} `yaml:"log"`

	Metrics struct {
		Enable bool   `yaml:"enable"`
		Addr   string `yaml:"addr"`
	} `yaml:"metrics"`

	DisableAutoSettle bool   `yaml:"disable-auto-settle"`
	DisableNTPCheck   bool   `yaml:"disable-ntp-check"`
	NTPServer         string `yaml:"ntp-server"`
}

func (s *settings) interval() time.Duration {
	return time.Duration(s.BlockInterval) * time.Second
}

func loadSettings(ctx *cli.Context) (*settings, error) {
	var s settings
	applyFlags(ctx, &s, false)

	if path := ctx.String(configFlag.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrapf(err, "decode config %v", path)
		}
		applyFlags(ctx, &s, true)
	}

	switch s.Log.Format {
	case "terminal", "json", "logfmt":
	default:
		return nil, errors.Errorf("unknown log format %q", s.Log.Format)
	}
	if s.BlockInterval == 0 {
		return nil, errors.New("block interval must be positive")
	}
	return &s, nil
}

// applyFlags copies flag values into s. With explicitOnly set, flags left at
// their defaults are skipped.
func applyFlags(ctx *cli.Context, s *settings, explicitOnly bool) {
	use := func(name string) bool {
		return !explicitOnly || ctx.IsSet(name)
	}

	if use(dataDirFlag.Name) {
		s.DataDir = ctx.String(dataDirFlag.Name)
	}
	if use(persistFlag.Name) {
		s.Persist = ctx.Bool(persistFlag.Name)
	}
	if use(engineFlag.Name) {
		s.Engine = ctx.String(engineFlag.Name)
	}
	if use(tokenFlag.Name) {
		s.Token = ctx.String(tokenFlag.Name)
	}
	if use(floorPriceFlag.Name) {
		s.FloorPrice = ctx.String(floorPriceFlag.Name)
	}
	if use(genesisTimeFlag.Name) {
		s.GenesisTime = ctx.Uint64(genesisTimeFlag.Name)
	}
	if use(blockIntervalFlag.Name) {
		s.BlockInterval = ctx.Uint64(blockIntervalFlag.Name)
	}
	if use(apiAddrFlag.Name) {
		s.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if use(apiCorsFlag.Name) {
		s.API.Cors = ctx.String(apiCorsFlag.Name)
	}
	if use(apiCallGasLimitFlag.Name) {
		s.API.CallGasLimit = ctx.Uint64(apiCallGasLimitFlag.Name)
	}
	if use(apiEventsLimitFlag.Name) {
		s.API.EventsLimit = ctx.Uint64(apiEventsLimitFlag.Name)
	}
	if use(apiCycleCacheFlag.Name) {
		s.API.CycleCache = ctx.Int(apiCycleCacheFlag.Name)
	}
	if use(apiSlowQueriesThresholdFlag.Name) {
		s.API.SlowQueriesThreshold = ctx.Uint64(apiSlowQueriesThresholdFlag.Name)
	}
	if use(enableAPILogsFlag.Name) {
		s.API.EnableLogs = ctx.Bool(enableAPILogsFlag.Name)
	}
	if use(verbosityFlag.Name) {
		s.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if use(logFormatFlag.Name) {
		s.Log.Format = ctx.String(logFormatFlag.Name)
	}
	if use(enableMetricsFlag.Name) {
		s.Metrics.Enable = ctx.Bool(enableMetricsFlag.Name)
	}
	if use(metricsAddrFlag.Name) {
		s.Metrics.Addr = ctx.String(metricsAddrFlag.Name)
	}
	if use(disableAutoSettleFlag.Name) {
		s.DisableAutoSettle = ctx.Bool(disableAutoSettleFlag.Name)
	}
	if use(disableNTPCheckFlag.Name) {
		s.DisableNTPCheck = ctx.Bool(disableNTPCheckFlag.Name)
	}
	if use(ntpServerFlag.Name) {
		s.NTPServer = ctx.String(ntpServerFlag.Name)
	}
}
