// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/runtime"
)

type Fees struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Fees {
	return &Fees{rt}
}

func (f *Fees) handleGetFees(w http.ResponseWriter, _ *http.Request) error {
	rate, collected, err := f.rt.Fees()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.Fees{RateBps: rate, Collected: types.Dec(collected)})
}

func (f *Fees) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body types.TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ToAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	res, err := f.rt.Transfer(req.Context(), body.From, body.To, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.TransferReceipt{
		Receipt: types.ConvertReceipt(res.Height, res.GasUsed, res.Events),
		Fee:     types.Dec(res.Fee),
		Net:     types.Dec(res.Net),
	})
}

func (f *Fees) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /fees").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFees))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /fees").
		HandlerFunc(utils.WrapHandlerFunc(f.handleTransfer))
}
