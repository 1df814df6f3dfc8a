// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package revenue

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/runtime"
)

type Revenue struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Revenue {
	return &Revenue{rt}
}

// handleReceive books revenue sent by the fee source. The amount is trusted
// as already transferred.
func (r *Revenue) handleReceive(w http.ResponseWriter, req *http.Request) error {
	var body types.CallRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ToAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	receipt, err := r.rt.ReceiveRevenue(req.Context(), body.Caller, amount)
	if err != nil {
		return err
	}
	out := types.ConvertReceipt(receipt.Height, receipt.GasUsed, receipt.Events)
	return utils.WriteJSON(w, &out)
}

func (r *Revenue) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /revenue").
		HandlerFunc(utils.WrapHandlerFunc(r.handleReceive))
}
