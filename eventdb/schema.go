// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	height INTEGER NOT NULL,
	name TEXT NOT NULL,
	address BLOB,
	slot INTEGER,
	cycle INTEGER,
	amount TEXT,
	data BLOB
);
CREATE INDEX IF NOT EXISTS event_i_height ON event(height);
CREATE INDEX IF NOT EXISTS event_i_name ON event(name, height);
CREATE INDEX IF NOT EXISTS event_i_address ON event(address, height);
CREATE INDEX IF NOT EXISTS event_i_slot ON event(slot, height);`
