// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/runtime"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func parseAddress(req *http.Request) (grid.Address, error) {
	addr, err := grid.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return grid.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	acc, err := a.rt.Account(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.Account{
		Address: acc.Address,
		Refunds: types.Dec(acc.Refunds),
		Pending: types.Dec(acc.Pending),
		Slots:   acc.Slots,
	})
}

// handleClaim pays out the account. The address in the path is the caller.
func (a *Accounts) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	res, err := a.rt.ClaimRevenue(req.Context(), addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.ClaimReceipt{
		Receipt: types.ConvertReceipt(res.Height, res.GasUsed, res.Events),
		Amount:  types.Dec(res.Amount),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("POST /accounts/{address}/claim").
		HandlerFunc(utils.WrapHandlerFunc(a.handleClaim))
}
