// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cycles

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/cache"
	"github.com/slotgrid/slotgrid/log"
	"github.com/slotgrid/slotgrid/runtime"
)

var logger = log.WithContext("pkg", "cycles")

type Cycles struct {
	rt *runtime.Runtime
	// settled cycles never change
	settled *cache.LRU
}

func New(rt *runtime.Runtime, cacheSize int) (*Cycles, error) {
	settled, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Cycles{rt, settled}, nil
}

func (c *Cycles) handleCurrent(w http.ResponseWriter, _ *http.Request) error {
	info, err := c.rt.CurrentCycle()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertCurrentCycle(info))
}

func (c *Cycles) cycle(n uint64) (*types.Cycle, error) {
	v, ok := c.settled.Get(n)
	if changed, hit, miss := c.settled.Stats().Stats(); changed {
		logger.Debug("settled cycle cache", "hit", hit, "miss", miss)
	}
	if ok {
		return v.(*types.Cycle), nil
	}
	info, err := c.rt.Cycle(n)
	if err != nil {
		return nil, err
	}
	out := types.ConvertCycle(info)
	if out.Settled {
		c.settled.Add(n, out)
	}
	return out, nil
}

func (c *Cycles) handleGetCycle(w http.ResponseWriter, req *http.Request) error {
	n, err := utils.ParseUint(mux.Vars(req)["n"], 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "n"))
	}
	out, err := c.cycle(n)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (c *Cycles) handleGetOwner(w http.ResponseWriter, req *http.Request) error {
	n, err := utils.ParseUint(mux.Vars(req)["n"], 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "n"))
	}
	id, err := utils.ParseSlotID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	owner, err := c.rt.OwnerAt(n, id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.SlotOwner{Cycle: n, Slot: id, Owner: owner})
}

func (c *Cycles) handleSettle(w http.ResponseWriter, req *http.Request) error {
	res, err := c.rt.Settle(req.Context())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.SettleReceipt{
		Receipt: types.ConvertReceipt(res.Height, res.GasUsed, res.Events),
		Settled: types.ConvertSettled(res.Settled),
	})
}

func (c *Cycles) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/current").
		Methods(http.MethodGet).
		Name("GET /cycles/current").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCurrent))
	sub.Path("/settle").
		Methods(http.MethodPost).
		Name("POST /cycles/settle").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSettle))
	sub.Path("/{n:[0-9]+}").
		Methods(http.MethodGet).
		Name("GET /cycles/{n}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetCycle))
	sub.Path("/{n:[0-9]+}/owners/{id}").
		Methods(http.MethodGet).
		Name("GET /cycles/{n}/owners/{id}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetOwner))
}
