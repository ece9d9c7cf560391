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
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres:// driver
	_ "github.com/mattn/go-sqlite3" // sqlite3:// driver
	"github.com/pkg/errors"
)

// DriverOpener opens the database a DSN points to. The `createTables`
// parameter is already stripped from the URL.
type DriverOpener func(dsn *url.URL) (*sqlx.DB, error)

var drivers = make(map[string]DriverOpener)

// Register registers the opener used for DSNs of the given scheme.
func Register(schemeName string, opener DriverOpener) {
	schemeName = strings.ToLower(schemeName)

	if _, ok := drivers[schemeName]; ok {
		panic(errors.Errorf("%s is already registered", schemeName))
	}

	drivers[schemeName] = opener
}

func init() {
	Register("postgres", openPostgres)
	Register("postgresql", openPostgres)
	Register("sqlite3", openSQLite)
	Register("sqlite", openSQLite)
}

func openPostgres(dsn *url.URL) (*sqlx.DB, error) {
	return sqlx.Open("postgres", dsn.String())
}

// openSQLite accepts both `sqlite3://path/to.db` and `sqlite3:///abs/to.db`.
// The driver allows a single open connection so writes never race.
func openSQLite(dsn *url.URL) (*sqlx.DB, error) {
	path := dsn.Host + dsn.Path
	if dsn.RawQuery != "" {
		path += "?" + dsn.RawQuery
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	return db, nil
}
