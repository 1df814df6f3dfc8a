// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides a typed HTTP client for a slotgrid node.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/slotgrid/slotgrid/api/types"
	"github.com/slotgrid/slotgrid/grid"
)

var ErrNotFound = errors.New("not found")

// StatusError is returned for any non 200 response. Message holds the
// response body, which for rejected calls is the revert reason.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, http.StatusText(e.Code), e.Message)
}

// Client talks to the node API at url.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimRight(url, "/"),
		c:   c,
	}
}

func amount(v *uint256.Int) *math.HexOrDecimal256 {
	if v == nil {
		return nil
	}
	return (*math.HexOrDecimal256)(v.ToBig())
}

// NodeInfo retrieves the deployment summary and current height.
func (c *Client) NodeInfo() (*types.NodeInfo, error) {
	var info types.NodeInfo
	if err := c.get("/node/info", &info); err != nil {
		return nil, fmt.Errorf("unable to retrieve node info - %w", err)
	}
	return &info, nil
}

func (c *Client) Slots() ([]*types.Slot, error) {
	var slots []*types.Slot
	if err := c.get("/slots", &slots); err != nil {
		return nil, fmt.Errorf("unable to retrieve slots - %w", err)
	}
	return slots, nil
}

func (c *Client) Slot(id uint16) (*types.Slot, error) {
	var slot types.Slot
	if err := c.get("/slots/"+strconv.Itoa(int(id)), &slot); err != nil {
		return nil, fmt.Errorf("unable to retrieve slot - %w", err)
	}
	return &slot, nil
}

// ClaimSlot claims empty slot id for caller.
func (c *Client) ClaimSlot(caller grid.Address, id uint16, bid *uint256.Int) (*types.Receipt, error) {
	var receipt types.Receipt
	body := &types.CallRequest{Caller: caller, Amount: amount(bid)}
	if err := c.post("/slots/"+strconv.Itoa(int(id))+"/claim", body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to claim slot - %w", err)
	}
	return &receipt, nil
}

// TakeoverSlot outbids the holder of slot id.
func (c *Client) TakeoverSlot(caller grid.Address, id uint16, bid *uint256.Int) (*types.TakeoverReceipt, error) {
	var receipt types.TakeoverReceipt
	body := &types.CallRequest{Caller: caller, Amount: amount(bid)}
	if err := c.post("/slots/"+strconv.Itoa(int(id))+"/takeover", body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to take over slot - %w", err)
	}
	return &receipt, nil
}

func (c *Client) CurrentCycle() (*types.CurrentCycle, error) {
	var info types.CurrentCycle
	if err := c.get("/cycles/current", &info); err != nil {
		return nil, fmt.Errorf("unable to retrieve current cycle - %w", err)
	}
	return &info, nil
}

func (c *Client) Cycle(n uint64) (*types.Cycle, error) {
	var info types.Cycle
	if err := c.get("/cycles/"+strconv.FormatUint(n, 10), &info); err != nil {
		return nil, fmt.Errorf("unable to retrieve cycle - %w", err)
	}
	return &info, nil
}

func (c *Client) OwnerAt(n uint64, id uint16) (*types.SlotOwner, error) {
	var owner types.SlotOwner
	if err := c.get("/cycles/"+strconv.FormatUint(n, 10)+"/owners/"+strconv.Itoa(int(id)), &owner); err != nil {
		return nil, fmt.Errorf("unable to retrieve slot owner - %w", err)
	}
	return &owner, nil
}

// Settle asks the node to settle elapsed cycles.
func (c *Client) Settle() (*types.SettleReceipt, error) {
	var receipt types.SettleReceipt
	if err := c.post("/cycles/settle", nil, &receipt); err != nil {
		return nil, fmt.Errorf("unable to settle - %w", err)
	}
	return &receipt, nil
}

func (c *Client) Account(addr grid.Address) (*types.Account, error) {
	var acc types.Account
	if err := c.get("/accounts/"+addr.String(), &acc); err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}
	return &acc, nil
}

// ClaimRevenue claims everything owed to addr.
func (c *Client) ClaimRevenue(addr grid.Address) (*types.ClaimReceipt, error) {
	var receipt types.ClaimReceipt
	if err := c.post("/accounts/"+addr.String()+"/claim", nil, &receipt); err != nil {
		return nil, fmt.Errorf("unable to claim revenue - %w", err)
	}
	return &receipt, nil
}

// ReceiveRevenue books revenue sent by caller, which must be the token.
func (c *Client) ReceiveRevenue(caller grid.Address, value *uint256.Int) (*types.Receipt, error) {
	var receipt types.Receipt
	body := &types.CallRequest{Caller: caller, Amount: amount(value)}
	if err := c.post("/revenue", body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to send revenue - %w", err)
	}
	return &receipt, nil
}

func (c *Client) Fees() (*types.Fees, error) {
	var fees types.Fees
	if err := c.get("/fees", &fees); err != nil {
		return nil, fmt.Errorf("unable to retrieve fees - %w", err)
	}
	return &fees, nil
}

// Transfer runs a fee split transfer.
func (c *Client) Transfer(from, to grid.Address, value *uint256.Int) (*types.TransferReceipt, error) {
	var receipt types.TransferReceipt
	body := &types.TransferRequest{From: from, To: to, Amount: amount(value)}
	if err := c.post("/fees", body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to transfer - %w", err)
	}
	return &receipt, nil
}

// EventFilter mirrors the query parameters of the events endpoint.
type EventFilter struct {
	Name    string
	Address *grid.Address
	Slot    *uint16
	From    *uint64
	To      *uint64
	Order   string
	Offset  uint64
	Limit   uint64
}

func (f *EventFilter) query() string {
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Address != nil {
		q.Set("address", f.Address.String())
	}
	if f.Slot != nil {
		q.Set("slot", strconv.Itoa(int(*f.Slot)))
	}
	if f.From != nil {
		q.Set("from", strconv.FormatUint(*f.From, 10))
	}
	if f.To != nil {
		q.Set("to", strconv.FormatUint(*f.To, 10))
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.FormatUint(f.Offset, 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.FormatUint(f.Limit, 10))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) Events(filter *EventFilter) ([]*types.Event, error) {
	path := "/events"
	if filter != nil {
		path += filter.query()
	}
	var events []*types.Event
	if err := c.get(path, &events); err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}
	return events, nil
}

func (c *Client) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *Client) post(path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("unable to marshal payload - %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(http.MethodPost, path, body, out)
}

func (c *Client) do(method, path string, body io.Reader, out any) error {
	req, err := http.NewRequest(method, c.url+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("unable to read response body - %w", err)
	}
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{Code: res.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unable to unmarshal response - %w", err)
	}
	return nil
}
