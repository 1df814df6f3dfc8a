// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/runtime"
)

type Slots struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Slots {
	return &Slots{rt}
}

func (s *Slots) handleGetSlots(w http.ResponseWriter, _ *http.Request) error {
	infos, err := s.rt.Slots()
	if err != nil {
		return err
	}
	out := make([]*types.Slot, 0, len(infos))
	for _, info := range infos {
		out = append(out, types.ConvertSlot(info))
	}
	return utils.WriteJSON(w, out)
}

func (s *Slots) handleGetSlot(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseSlotID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	info, err := s.rt.SlotInfo(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertSlot(info))
}

func parseCall(req *http.Request) (uint16, *types.CallRequest, error) {
	id, err := utils.ParseSlotID(mux.Vars(req)["id"])
	if err != nil {
		return 0, nil, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var body types.CallRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return 0, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return id, &body, nil
}

func (s *Slots) handleClaim(w http.ResponseWriter, req *http.Request) error {
	id, body, err := parseCall(req)
	if err != nil {
		return err
	}
	bid, err := utils.ToAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	receipt, err := s.rt.ClaimSlot(req.Context(), body.Caller, id, bid)
	if err != nil {
		return err
	}
	out := types.ConvertReceipt(receipt.Height, receipt.GasUsed, receipt.Events)
	return utils.WriteJSON(w, &out)
}

func (s *Slots) handleTakeover(w http.ResponseWriter, req *http.Request) error {
	id, body, err := parseCall(req)
	if err != nil {
		return err
	}
	bid, err := utils.ToAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	res, err := s.rt.TakeoverSlot(req.Context(), body.Caller, id, bid)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.TakeoverReceipt{
		Receipt:  types.ConvertReceipt(res.Height, res.GasUsed, res.Events),
		Cycle:    res.Cycle,
		CycleEnd: res.CycleEnd,
	})
}

func (s *Slots) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /slots").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSlots))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /slots/{id}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSlot))
	sub.Path("/{id}/claim").
		Methods(http.MethodPost).
		Name("POST /slots/{id}/claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
	sub.Path("/{id}/takeover").
		Methods(http.MethodPost).
		Name("POST /slots/{id}/takeover").
		HandlerFunc(utils.WrapHandlerFunc(s.handleTakeover))
}
