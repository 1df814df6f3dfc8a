// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/runtime"
)

type Events struct {
	rt    *runtime.Runtime
	limit uint64
}

func New(rt *runtime.Runtime, limit uint64) *Events {
	return &Events{rt, limit}
}

func (e *Events) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	q := req.URL.Query()
	filter := &eventdb.Filter{Name: q.Get("name")}

	addr, err := utils.ParseAddress(q.Get("address"))
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	filter.Address = addr

	if s := q.Get("slot"); s != "" {
		id, err := utils.ParseSlotID(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "slot"))
		}
		filter.Slot = &id
	}

	from, err := utils.ParseUint(q.Get("from"), 0)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "from"))
	}
	to, err := utils.ParseUint(q.Get("to"), math.MaxInt64)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "to"))
	}
	if from > to {
		return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
	}
	// sqlite integers are signed
	if to > math.MaxInt64 {
		to = math.MaxInt64
	}
	if from > math.MaxInt64 {
		from = math.MaxInt64
	}
	filter.Range = &eventdb.Range{From: from, To: to}

	switch order := q.Get("order"); order {
	case "", string(eventdb.ASC):
		filter.Order = eventdb.ASC
	case string(eventdb.DESC):
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unsupported value %q", order))
	}

	offset, err := utils.ParseUint(q.Get("offset"), 0)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	// one over the limit to detect truncated results
	limit := e.limit + 1
	if s := q.Get("limit"); s != "" {
		if limit, err = utils.ParseUint(s, 0); err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > e.limit {
			return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
		}
	}
	filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	rows, err := e.rt.Events(req.Context(), filter)
	if err != nil {
		return err
	}
	if uint64(len(rows)) > e.limit {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	out := make([]*types.Event, 0, len(rows))
	for _, row := range rows {
		fields, err := runtime.DecodeEvent(row.Name, row.Data)
		if err != nil {
			return err
		}
		out = append(out, &types.Event{Name: row.Name, Height: row.Height, Seq: row.Seq, Fields: fields})
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
