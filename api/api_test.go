// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/api"
	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/clock"
	"github.com/slotgrid/slotgrid/eventdb"
	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/lvldb"
	"github.com/slotgrid/slotgrid/runtime"
)

var (
	engine = grid.BytesToAddress([]byte("engine"))
	token  = grid.BytesToAddress([]byte("token"))
	alice  = grid.BytesToAddress([]byte("alice"))
	bob    = grid.BytesToAddress([]byte("bob"))
)

type testServer struct {
	*httptest.Server
	clock *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	events, err := eventdb.NewMem()
	require.NoError(t, err)
	clk := clock.NewManual(0)

	rt, err := runtime.New(store, events, clk, runtime.Options{
		Engine:       engine,
		Token:        token,
		FloorPrice:   uint256.NewInt(1000),
		CallGasLimit: grid.DefaultCallGasLimit,
	})
	require.NoError(t, err)

	handler, err := api.New(rt, api.Options{
		AllowedOrigins: "*",
		EventsLimit:    5,
		CycleCacheSize: 16,
		EnableMetrics:  true,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		ts.Close()
		events.Close()
		store.Close()
	})
	return &testServer{ts, clk}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func (ts *testServer) get(t *testing.T, path string, out any) {
	code, data := ts.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, code, string(data))
	require.NoError(t, json.Unmarshal(data, out))
}

func call(caller grid.Address, amount string) map[string]string {
	return map[string]string{"caller": caller.String(), "amount": amount}
}

func TestSlots(t *testing.T) {
	ts := newTestServer(t)

	var all []*types.Slot
	ts.get(t, "/slots", &all)
	require.Len(t, all, int(grid.SlotCount))
	assert.Nil(t, all[0].Owner)
	assert.Equal(t, "1000", all[0].Price)

	code, data := ts.do(t, http.MethodPost, "/slots/5/claim", call(alice, "1500"))
	require.Equal(t, http.StatusOK, code, string(data))
	var receipt types.Receipt
	require.NoError(t, json.Unmarshal(data, &receipt))
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "SlotClaimed", receipt.Events[0].Name)

	var slot types.Slot
	ts.get(t, "/slots/5", &slot)
	require.NotNil(t, slot.Owner)
	assert.Equal(t, alice, *slot.Owner)
	assert.Equal(t, "1500", slot.Price)

	// reverts map to 400 with the revert message
	code, data = ts.do(t, http.MethodPost, "/slots/5/claim", call(bob, "2000"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "slot already owned, use takeover\n", string(data))

	code, data = ts.do(t, http.MethodPost, "/slots/5/takeover", call(bob, "0x7d0"))
	require.Equal(t, http.StatusOK, code, string(data))
	var takeover types.TakeoverReceipt
	require.NoError(t, json.Unmarshal(data, &takeover))
	assert.Equal(t, uint64(0), takeover.Cycle)
	assert.Equal(t, grid.CycleLength, takeover.CycleEnd)

	var acc types.Account
	ts.get(t, "/accounts/"+alice.String(), &acc)
	assert.Equal(t, "2000", acc.Refunds)
	assert.Empty(t, acc.Slots)

	code, _ = ts.do(t, http.MethodGet, "/slots/100", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, http.MethodPost, "/slots/1/claim", map[string]string{"bidder": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRevenueAndCycles(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(t, http.MethodPost, "/slots/0/claim", call(alice, "1000"))
	require.Equal(t, http.StatusOK, code, string(data))

	code, data = ts.do(t, http.MethodPost, "/revenue", call(alice, "100"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "only the token can send revenue\n", string(data))

	ts.clock.Set(grid.CycleLength)
	code, data = ts.do(t, http.MethodPost, "/fees", map[string]string{
		"from":   alice.String(),
		"to":     bob.String(),
		"amount": "1000000",
	})
	require.Equal(t, http.StatusOK, code, string(data))
	var transfer types.TransferReceipt
	require.NoError(t, json.Unmarshal(data, &transfer))
	assert.Equal(t, "10000", transfer.Fee)
	assert.Equal(t, "990000", transfer.Net)

	var fees types.Fees
	ts.get(t, "/fees", &fees)
	assert.Equal(t, grid.FeeRateBps, fees.RateBps)
	assert.Equal(t, "10000", fees.Collected)

	var current types.CurrentCycle
	ts.get(t, "/cycles/current", &current)
	assert.Equal(t, uint64(1), current.Cycle)
	assert.Equal(t, "10000", current.PendingRevenue)
	assert.Equal(t, uint64(1), current.LastSettled)

	ts.clock.Set(2 * grid.CycleLength)
	code, data = ts.do(t, http.MethodPost, "/cycles/settle", nil)
	require.Equal(t, http.StatusOK, code, string(data))
	var settle types.SettleReceipt
	require.NoError(t, json.Unmarshal(data, &settle))
	// cycle 0 was settled by the transfer
	require.Len(t, settle.Settled, 1)
	assert.Equal(t, uint64(1), settle.Settled[0].Cycle)
	assert.Equal(t, "100", settle.Settled[0].Share)
	assert.Equal(t, uint16(1), settle.Settled[0].Owned)

	for i := 0; i < 2; i++ {
		var cycle types.Cycle
		ts.get(t, "/cycles/1", &cycle)
		assert.True(t, cycle.Settled)
		assert.Equal(t, "100", cycle.Share)
		assert.Equal(t, grid.CycleLength, cycle.Start)
	}

	var owner types.SlotOwner
	ts.get(t, "/cycles/1/owners/0", &owner)
	require.NotNil(t, owner.Owner)
	assert.Equal(t, alice, *owner.Owner)

	var acc types.Account
	ts.get(t, "/accounts/"+alice.String(), &acc)
	assert.Equal(t, "100", acc.Pending)

	code, data = ts.do(t, http.MethodPost, "/accounts/"+alice.String()+"/claim", nil)
	require.Equal(t, http.StatusOK, code, string(data))
	var claim types.ClaimReceipt
	require.NoError(t, json.Unmarshal(data, &claim))
	assert.Equal(t, "100", claim.Amount)

	code, data = ts.do(t, http.MethodPost, "/accounts/"+alice.String()+"/claim", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "nothing to claim\n", string(data))
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 4; i++ {
		code, data := ts.do(t, http.MethodPost, "/slots/"+strconv.Itoa(i)+"/claim", call(alice, "1000"))
		require.Equal(t, http.StatusOK, code, string(data))
	}
	ts.clock.Set(10)
	code, data := ts.do(t, http.MethodPost, "/slots/2/takeover", call(bob, "1001"))
	require.Equal(t, http.StatusOK, code, string(data))

	var evs []*types.Event
	ts.get(t, "/events?slot=2", &evs)
	require.Len(t, evs, 3)
	assert.Equal(t, "SlotClaimed", evs[0].Name)
	assert.Equal(t, "SlotTakenOver", evs[2].Name)
	assert.Equal(t, uint64(10), evs[2].Height)

	ts.get(t, "/events?name=SlotClaimed&order=desc&limit=2", &evs)
	require.Len(t, evs, 2)
	assert.Greater(t, evs[0].Seq, evs[1].Seq)

	ts.get(t, "/events?address="+bob.String(), &evs)
	require.Len(t, evs, 1)

	ts.get(t, "/events?from=5&to=20", &evs)
	assert.Len(t, evs, 2)

	// six events in total, more than the configured limit of five
	code, data = ts.do(t, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.True(t, strings.Contains(string(data), "please use pagination"))

	code, _ = ts.do(t, http.MethodGet, "/events?limit=6", nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = ts.do(t, http.MethodGet, "/events?order=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, http.MethodGet, "/events?from=9&to=3", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNodeInfo(t *testing.T) {
	ts := newTestServer(t)
	ts.clock.Set(77)

	var info types.NodeInfo
	ts.get(t, "/node/info", &info)
	assert.Equal(t, uint64(77), info.Height)
	assert.Equal(t, engine, info.Engine)
	assert.Equal(t, token, info.Token)
	assert.Equal(t, "1000", info.FloorPrice)
	assert.Equal(t, grid.CycleLength, info.CycleLength)
	assert.Equal(t, grid.SlotCount, info.SlotCount)
}
