// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/kv"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/lvldb"
	"github.com/slotgrid/slotgrid/metrics"
)

var (
	defaultEngine  = grid.BytesToAddress([]byte("SlotGrid"))
	genesisTimeKey = []byte("slotgrid-genesis-time")
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(s *settings) *slog.LevelVar {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(s.Log.Verbosity))

	var handler slog.Handler
	switch s.Log.Format {
	case "json":
		handler = log.JSONHandlerWithLevel(os.Stdout, lvl)
	case "logfmt":
		handler = log.LogfmtHandlerWithLevel(os.Stdout, lvl)
	default:
		useColor := isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return lvl
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.slotgrid")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.slotgrid")
		default:
			return filepath.Join(home, ".org.slotgrid")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// makeInstanceDir returns a directory unique to the engine address.
func makeInstanceDir(s *settings, engine grid.Address) string {
	if s.DataDir == "" {
		fatal("unable to infer default data dir, use -data-dir to specify")
	}
	dir := filepath.Join(s.DataDir, fmt.Sprintf("instance-%x", engine.Bytes()[:4]))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", dir, err))
	}
	return dir
}

func openMainDB(dir string) *lvldb.LevelDB {
	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", path, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openEventDB(dir string) *eventdb.EventDB {
	path := filepath.Join(dir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open event database [%v]: %v", path, err))
	}
	return db
}

func openMemEventDB() *eventdb.EventDB {
	db, err := eventdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open event database: %v", err))
	}
	return db
}

// loadGenesisTime returns the wall time of height zero. The first start stores
// it so restarts keep the same heights.
func loadGenesisTime(store kv.Store, configured uint64) (time.Time, error) {
	data, err := store.Get(genesisTimeKey)
	if err == nil {
		if len(data) != 8 {
			return time.Time{}, errors.New("corrupted genesis time")
		}
		stored := binary.BigEndian.Uint64(data)
		if configured != 0 && configured != stored {
			logger.Warn("genesis time differs from the stored one, ignored", "configured", configured, "stored", stored)
		}
		return time.Unix(int64(stored), 0), nil
	}
	if !store.IsNotFound(err) {
		return time.Time{}, errors.Wrap(err, "read genesis time")
	}

	t := configured
	if t == 0 {
		t = uint64(time.Now().Unix())
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], t)
	if err := store.Put(genesisTimeKey, buf[:]); err != nil {
		return time.Time{}, errors.Wrap(err, "write genesis time")
	}
	return time.Unix(int64(t), 0), nil
}

func parseAddress(name, s string) (grid.Address, error) {
	if s == "" {
		return grid.Address{}, errors.Errorf("%v: address required", name)
	}
	addr, err := grid.ParseAddress(s)
	if err != nil {
		return grid.Address{}, errors.Wrapf(err, "%v", name)
	}
	return addr, nil
}

func parseAmount(name, s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.Errorf("%v: amount required", name)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", name)
	}
	return v, nil
}

func startAPIServer(s *settings, handler http.Handler) (string, func()) {
	listener, err := net.Listen("tcp", s.API.Addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", s.API.Addr, err))
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			logger.Error("API server stopped", "err", err)
		}
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		<-done
	}
}

func startMetricsServer(addr string) (string, func()) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen metrics addr [%v]: %v", addr, err))
	}
	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router, ReadHeaderTimeout: time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Serve(listener)
	}()
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		<-done
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(exitSignalCh)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(
	engine grid.Address,
	token grid.Address,
	genesis time.Time,
	interval time.Duration,
	height uint64,
	dataDir string,
	apiURL string,
	metricsURL string,
) {
	fmt.Printf(`Starting %v
    Engine       [ %v ]
    Token        [ %v ]
    Genesis      [ %v, one height per %v ]
    Height       [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		common.MakeName("SlotGrid", fullVersion()),
		engine,
		token,
		genesis.Format(time.RFC3339), common.PrettyDuration(interval),
		height,
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "disabled"
			}
			return metricsURL
		}(),
	)
}
