// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb persists committed operation events to sqlite so that
// external indexers can reconstruct the ledger without replaying
// state.
package logdb

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	opIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	origin CHAR(42) NOT NULL,
	name TEXT NOT NULL,
	data BLOB,
	PRIMARY KEY (seq, opIndex)
);

CREATE INDEX IF NOT EXISTS eventNameIndex ON event(name);
CREATE INDEX IF NOT EXISTS eventOriginIndex ON event(origin);
CREATE INDEX IF NOT EXISTS eventTimeIndex ON event(time);
`

// LogDB is the sqlite-backed event log. It implements runtime.Sink.
type LogDB struct {
	path string
	db   *sql.DB
}

// New creates or opens the event log at the given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	return &LogDB{path, db}, nil
}

// NewMem creates an event log in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close closes the event log.
func (db *LogDB) Close() {
	db.db.Close()
}

// Path returns the db file path.
func (db *LogDB) Path() string {
	return db.path
}

// WriteEvents stores one operation's events in a single transaction.
func (db *LogDB) WriteEvents(events []runtime.CommittedEvent) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(
		"INSERT INTO event(seq, opIndex, time, origin, name, data) VALUES(?,?,?,?,?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		data, err := json.Marshal(ev.Attrs)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(ev.Seq, ev.OpIndex, ev.Time, ev.Origin.String(), ev.Name, data); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Range bounds a filter by operation sequence number, inclusive.
type Range struct {
	From uint64
	To   uint64
}

// Filter selects events. Zero-valued fields match everything.
type Filter struct {
	Names  []string
	Origin *xdc.Address
	Range  *Range
	Desc   bool
	Limit  uint64
	Offset uint64
}

// FilterEvents returns stored events matching the filter, ordered by
// (seq, opIndex).
func (db *LogDB) FilterEvents(ctx context.Context, filter *Filter) ([]runtime.CommittedEvent, error) {
	stmt := "SELECT seq, opIndex, time, origin, name, data FROM event WHERE 1"
	var args []any
	if filter != nil {
		if len(filter.Names) > 0 {
			stmt += " AND name IN (?" + repeat(",?", len(filter.Names)-1) + ")"
			for _, name := range filter.Names {
				args = append(args, name)
			}
		}
		if filter.Origin != nil {
			stmt += " AND origin = ?"
			args = append(args, filter.Origin.String())
		}
		if filter.Range != nil {
			stmt += " AND seq >= ? AND seq <= ?"
			args = append(args, filter.Range.From, filter.Range.To)
		}
	}
	if filter != nil && filter.Desc {
		stmt += " ORDER BY seq DESC, opIndex DESC"
	} else {
		stmt += " ORDER BY seq, opIndex"
	}
	if filter != nil {
		if filter.Limit > 0 {
			stmt += " LIMIT ?"
			args = append(args, filter.Limit)
			if filter.Offset > 0 {
				stmt += " OFFSET ?"
				args = append(args, filter.Offset)
			}
		}
	}

	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []runtime.CommittedEvent
	for rows.Next() {
		var (
			ev     runtime.CommittedEvent
			origin string
			data   []byte
		)
		if err := rows.Scan(&ev.Seq, &ev.OpIndex, &ev.Time, &origin, &ev.Name, &data); err != nil {
			return nil, err
		}
		addr, err := xdc.ParseAddress(origin)
		if err != nil {
			return nil, err
		}
		ev.Origin = *addr
		if len(data) > 0 {
			if err := json.Unmarshal(data, &ev.Attrs); err != nil {
				return nil, err
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func repeat(s string, n int) string {
	out := ""
	for range n {
		out += s
	}
	return out
}
