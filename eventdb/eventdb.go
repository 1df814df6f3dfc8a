// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/slotgrid/slotgrid/grid"
	"github.com/slotgrid/slotgrid/log"
)

var logger = log.WithContext("pkg", "eventdb")

// EventDB indexes engine events in sqlite.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open event db")
	}
	if path == ":memory:" {
		// every connection would get its own memory db
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create event table")
	}
	s, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", s)
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert stores events in one transaction and assigns their Seq.
func (db *EventDB) Insert(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO event(height, name, address, slot, cycle, amount, data) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		res, err := stmt.ExecContext(ctx,
			ev.Height,
			ev.Name,
			addressValue(ev.Address),
			nullable(ev.Slot),
			nullable(ev.Cycle),
			amountValue(ev.Amount),
			ev.Data,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return err
		}
		ev.Seq = uint64(id)
	}
	return tx.Commit()
}

// Filter returns events matching filter, ordered by height then insertion.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, height, name, address, slot, cycle, amount, data FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT seq, height, name, address, slot, cycle, amount, data FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND height >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND height <= ?"
		}
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ?"
	}
	if filter.Address != nil {
		args = append(args, filter.Address.Bytes())
		stmt += " AND address = ?"
	}
	if filter.Slot != nil {
		args = append(args, *filter.Slot)
		stmt += " AND slot = ?"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev      Event
			address []byte
			slot    sql.NullInt64
			cycle   sql.NullInt64
			amount  sql.NullString
		)
		if err := rows.Scan(&ev.Seq, &ev.Height, &ev.Name, &address, &slot, &cycle, &amount, &ev.Data); err != nil {
			return nil, err
		}
		if len(address) > 0 {
			addr := grid.BytesToAddress(address)
			ev.Address = &addr
		}
		if slot.Valid {
			v := uint16(slot.Int64)
			ev.Slot = &v
		}
		if cycle.Valid {
			v := uint64(cycle.Int64)
			ev.Cycle = &v
		}
		if amount.Valid {
			v, err := uint256.FromDecimal(amount.String)
			if err != nil {
				return nil, errors.Wrap(err, "decode amount")
			}
			ev.Amount = v
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path return db's path.
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite.
func (db *EventDB) Close() error {
	return db.db.Close()
}

func addressValue(addr *grid.Address) any {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func amountValue(v *uint256.Int) any {
	if v == nil {
		return nil
	}
	return v.Dec()
}

func nullable[T uint16 | uint64](v *T) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
