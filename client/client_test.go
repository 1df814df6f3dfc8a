// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/grid"
)

var alice = grid.BytesToAddress([]byte("alice"))

func TestClient_Slot(t *testing.T) {
	expected := &types.Slot{ID: 4, Owner: &alice, Price: "1500", CycleEnd: 432}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots/4", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(expected)
	}))
	defer ts.Close()

	slot, err := New(ts.URL).Slot(4)
	require.NoError(t, err)
	assert.Equal(t, expected, slot)
}

func TestClient_ClaimSlot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots/9/claim", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body types.CallRequest
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, alice, body.Caller)
		assert.Equal(t, "2000", (*big.Int)(body.Amount).String())

		json.NewEncoder(w).Encode(&types.Receipt{Height: 3, GasUsed: 21000})
	}))
	defer ts.Close()

	receipt, err := New(ts.URL).ClaimSlot(alice, 9, uint256.NewInt(2000))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), receipt.Height)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
}

func TestClient_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/" + alice.String() + "/claim":
			http.Error(w, "nothing to claim", http.StatusBadRequest)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	_, err := c.ClaimRevenue(alice)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "nothing to claim", se.Message)

	_, err = c.Fees()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventFilterQuery(t *testing.T) {
	slot := uint16(2)
	from := uint64(10)
	f := &EventFilter{Name: "SlotClaimed", Slot: &slot, From: &from, Order: "desc", Limit: 5}
	assert.Equal(t, "?from=10&limit=5&name=SlotClaimed&order=desc&slot=2", f.query())
	assert.Equal(t, "", (&EventFilter{}).query())
}
