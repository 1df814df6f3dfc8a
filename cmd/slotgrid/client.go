// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slotgrid/slotgrid/client"
	"github.com/slotgrid/slotgrid/grid"
)

var clientCommands = []cli.Command{
	{
		Name:   "info",
		Usage:  "show node info",
		Flags:  []cli.Flag{nodeFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) { return c.NodeInfo() }),
	},
	{
		Name:  "slot",
		Usage: "show a slot, or all slots when --slot is not given",
		Flags: []cli.Flag{nodeFlag, slotFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			if !ctx.IsSet(slotFlag.Name) {
				return c.Slots()
			}
			return c.Slot(uint16(ctx.Uint(slotFlag.Name)))
		}),
	},
	{
		Name:  "cycle",
		Usage: "show the current cycle, or a given one",
		Flags: []cli.Flag{nodeFlag, cycleFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			if !ctx.IsSet(cycleFlag.Name) {
				return c.CurrentCycle()
			}
			return c.Cycle(ctx.Uint64(cycleFlag.Name))
		}),
	},
	{
		Name:  "account",
		Usage: "show refunds, pending revenue and slots of --caller",
		Flags: []cli.Flag{nodeFlag, callerFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			addr, err := parseAddress(callerFlag.Name, ctx.String(callerFlag.Name))
			if err != nil {
				return nil, err
			}
			return c.Account(addr)
		}),
	},
	{
		Name:  "claim-slot",
		Usage: "claim an empty slot",
		Flags: []cli.Flag{nodeFlag, callerFlag, slotFlag, amountFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			caller, id, bid, err := bidArgs(ctx)
			if err != nil {
				return nil, err
			}
			return c.ClaimSlot(caller, id, bid)
		}),
	},
	{
		Name:  "takeover",
		Usage: "take an owned slot over by outbidding its price",
		Flags: []cli.Flag{nodeFlag, callerFlag, slotFlag, amountFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			caller, id, bid, err := bidArgs(ctx)
			if err != nil {
				return nil, err
			}
			return c.TakeoverSlot(caller, id, bid)
		}),
	},
	{
		Name:  "claim-revenue",
		Usage: "withdraw refunds and settled revenue of --caller",
		Flags: []cli.Flag{nodeFlag, callerFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			addr, err := parseAddress(callerFlag.Name, ctx.String(callerFlag.Name))
			if err != nil {
				return nil, err
			}
			return c.ClaimRevenue(addr)
		}),
	},
	{
		Name:  "settle",
		Usage: "settle finished cycles",
		Flags: []cli.Flag{nodeFlag},
		Action: clientAction(func(ctx *cli.Context, c *client.Client) (any, error) {
			return c.Settle()
		}),
	},
}

func clientAction(fn func(ctx *cli.Context, c *client.Client) (any, error)) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		res, err := fn(ctx, client.New(ctx.String(nodeFlag.Name)))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}

func bidArgs(ctx *cli.Context) (caller grid.Address, id uint16, bid *uint256.Int, err error) {
	if caller, err = parseAddress(callerFlag.Name, ctx.String(callerFlag.Name)); err != nil {
		return
	}
	if !ctx.IsSet(slotFlag.Name) {
		err = errors.New("slot: id required")
		return
	}
	n := ctx.Uint(slotFlag.Name)
	if n >= uint(grid.SlotCount) {
		err = errors.Errorf("slot: id %v out of range", n)
		return
	}
	id = uint16(n)
	bid, err = parseAmount(amountFlag.Name, ctx.String(amountFlag.Name))
	return
}
