// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package neardb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DB reads the NEAR indexer tables and, when pointed to an activity
// database, the `balance_changes` table. The same type serves both roles,
// the caller decides which handle it injects where.
type DB struct {
	db *sqlx.DB
}

// New opens a database from a DSN. Supported schemes are `postgres://` and
// `sqlite3://`. A `createTables=true` query parameter creates the schema
// when missing, which is what tests and local setups rely on.
func New(dsnString string) (*DB, error) {
	u, err := url.Parse(dsnString)
	if err != nil {
		return nil, fmt.Errorf("invalid dsn: %w", err)
	}

	createTables := u.Query().Get("createTables") == "true"
	vals := u.Query()
	vals.Del("createTables")

	open := drivers[strings.ToLower(u.Scheme)]
	if open == nil {
		return nil, fmt.Errorf("unsupported dsn scheme %q", u.Scheme)
	}

	u.RawQuery = vals.Encode()
	db, err := open(u)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", u.Scheme, err)
	}

	zlog.Info("opened database", zap.String("scheme", u.Scheme), zap.String("host", u.Host), zap.Bool("create_tables", createTables))

	out := &DB{db: db}
	if createTables {
		if err := out.createTables(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
	}

	return out, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range createStmts {
		if _, err := db.db.ExecContext(ctx, stmt.query); err != nil {
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}
	return nil
}

// selectIn expands the slice arguments of an `IN (?)` query, rebinds it for
// the driver and scans all rows into dest.
func (db *DB) selectIn(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("expanding query: %w", err)
	}

	if err := db.db.SelectContext(ctx, dest, db.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	return nil
}
