// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/slotgrid/slotgrid/api/accounts"
	"github.com/slotgrid/slotgrid/api/cycles"
	"github.com/slotgrid/slotgrid/api/events"
	"github.com/slotgrid/slotgrid/api/fees"
	"github.com/slotgrid/slotgrid/api/middleware"
	"github.com/slotgrid/slotgrid/api/node"
	"github.com/slotgrid/slotgrid/api/revenue"
	"github.com/slotgrid/slotgrid/api/slots"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EventsLimit          uint64
	CycleCacheSize       int
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
}

// New return api router
func New(rt *runtime.Runtime, opts Options) (http.HandlerFunc, error) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	slots.New(rt).
		Mount(router, "/slots")
	cyc, err := cycles.New(rt, opts.CycleCacheSize)
	if err != nil {
		return nil, err
	}
	cyc.Mount(router, "/cycles")
	accounts.New(rt).
		Mount(router, "/accounts")
	revenue.New(rt).
		Mount(router, "/revenue")
	fees.New(rt).
		Mount(router, "/fees")
	events.New(rt, opts.EventsLimit).
		Mount(router, "/events")
	node.New(rt).
		Mount(router, "/node")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	if opts.EnableReqLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold))
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	return handler.ServeHTTP, nil
}
