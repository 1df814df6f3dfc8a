// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/api/utils"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/runtime"
)

type Node struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Node {
	return &Node{rt}
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := n.rt.Config()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &types.NodeInfo{
		Height:      n.rt.Height(),
		Engine:      n.rt.Options().Engine,
		Token:       cfg.Token,
		Origin:      cfg.Origin,
		FloorPrice:  types.Dec(cfg.FloorPrice),
		CycleLength: cfg.CycleLength,
		SlotCount:   grid.SlotCount,
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
}
