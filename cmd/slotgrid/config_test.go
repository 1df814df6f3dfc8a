// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/lvldb"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	app := cli.NewApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{
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
	} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestSettingsDefaults(t *testing.T) {
	s, err := loadSettings(newContext(t))
	require.NoError(t, err)

	assert.Equal(t, defaultEngine.String(), s.Engine)
	assert.Equal(t, "localhost:8680", s.API.Addr)
	assert.Equal(t, grid.DefaultCallGasLimit, s.API.CallGasLimit)
	assert.Equal(t, time.Duration(grid.BlockInterval)*time.Second, s.interval())
	assert.Equal(t, 3, s.Log.Verbosity)
	assert.Equal(t, "terminal", s.Log.Format)
	assert.False(t, s.Persist)
}

func TestSettingsFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
token: "0x0000000000000000000000000000000000000a11"
floor-price: "5000"
persist: true
api:
  addr: "0.0.0.0:9000"
  events-limit: 50
log:
  verbosity: 5
metrics:
  enable: true
`), 0o600))

	s, err := loadSettings(newContext(t, "--config", path, "--api-addr", "localhost:7000"))
	require.NoError(t, err)

	assert.Equal(t, "0x0000000000000000000000000000000000000a11", s.Token)
	assert.Equal(t, "5000", s.FloorPrice)
	assert.True(t, s.Persist)
	assert.Equal(t, "localhost:7000", s.API.Addr, "explicit flag wins")
	assert.Equal(t, uint64(50), s.API.EventsLimit)
	assert.Equal(t, 5, s.Log.Verbosity)
	assert.True(t, s.Metrics.Enable)
	// absent from the file, keeps the flag default
	assert.Equal(t, "localhost:2112", s.Metrics.Addr)
}

func TestSettingsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [1, 2"), 0o600))

	_, err := loadSettings(newContext(t, "--config", path))
	assert.Error(t, err)

	_, err = loadSettings(newContext(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	_, err = loadSettings(newContext(t, "--block-interval", "0"))
	assert.EqualError(t, err, "block interval must be positive")

	_, err = loadSettings(newContext(t, "--log-format", "xml"))
	assert.EqualError(t, err, `unknown log format "xml"`)
}

func TestLoadGenesisTime(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	first, err := loadGenesisTime(db, 1_700_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), first.Unix())

	again, err := loadGenesisTime(db, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	ignored, err := loadGenesisTime(db, 1_800_000_000)
	require.NoError(t, err)
	assert.Equal(t, first, ignored)
}

func TestParseArgs(t *testing.T) {
	_, err := parseAddress("token", "")
	assert.EqualError(t, err, "token: address required")

	addr, err := parseAddress("token", "0x0000000000000000000000000000000000000a11")
	require.NoError(t, err)
	assert.False(t, addr.IsZero())

	v, err := parseAmount("amount", "1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())

	_, err = parseAmount("amount", "-1")
	assert.Error(t, err)
	_, err = parseAmount("amount", "")
	assert.Error(t, err)
}
