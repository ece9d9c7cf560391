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

package explorer

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/streamingfast/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logging.TestingOverride()
}

func TestParseNetworkValues(t *testing.T) {
	tests := []struct {
		name        string
		in          []string
		expected    map[string]string
		expectedErr string
	}{
		{"none", nil, map[string]string{}, ""},
		{"many", []string{"mainnet=postgres://a/b?x=1", "testnet=sqlite3://near.db"}, map[string]string{"mainnet": "postgres://a/b?x=1", "testnet": "sqlite3://near.db"}, ""},
		{"missing value", []string{"mainnet="}, nil, `invalid network value "mainnet=", expected <network>=<value>`},
		{"missing separator", []string{"mainnet"}, nil, `invalid network value "mainnet", expected <network>=<value>`},
		{"duplicate", []string{"mainnet=a", "mainnet=b"}, nil, `network "mainnet" given more than once`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := ParseNetworkValues(test.in)
			if test.expectedErr != "" {
				require.EqualError(t, err, test.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func validConfig() *Config {
	return &Config{
		HTTPListenAddr:   "127.0.0.1:0",
		IndexerDSNs:      map[string]string{"mainnet": "postgres://localhost/indexer"},
		ActivityDSNs:     map[string]string{"mainnet": "postgres://localhost/activity"},
		ArchivalRPCAddrs: map[string]string{"mainnet": "localhost:3030"},
		DefaultLimit:     20,
		MaxLimit:         100,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no indexer", func(c *Config) { c.IndexerDSNs = nil }, "at least one indexer dsn is required"},
		{"no archival", func(c *Config) { c.ArchivalRPCAddrs = nil }, `network "mainnet" has an indexer dsn but no archival rpc address`},
		{"orphan activity", func(c *Config) { c.ActivityDSNs["testnet"] = "postgres://localhost/t" }, `network "testnet" has an activity dsn but no indexer dsn`},
		{"bad limits", func(c *Config) { c.MaxLimit = 10 }, "invalid limits, default 20 must be positive and not above max 10"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := validConfig()
			test.mutate(config)

			err := config.Validate()
			if test.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, test.expectedErr)
			}
		})
	}
}

func TestApp_Run(t *testing.T) {
	dir := t.TempDir()
	config := validConfig()
	config.IndexerDSNs["mainnet"] = fmt.Sprintf("sqlite3://%s?createTables=true", filepath.Join(dir, "indexer.db"))
	config.ActivityDSNs["mainnet"] = fmt.Sprintf("sqlite3://%s?createTables=true", filepath.Join(dir, "activity.db"))

	app := New(config)
	require.NoError(t, app.Run())

	app.Shutdown(nil)
	<-app.Terminated()
	assert.True(t, app.IsTerminated())
}

func TestApp_RunInvalidDSN(t *testing.T) {
	config := validConfig()
	config.IndexerDSNs["mainnet"] = "mysql://localhost/indexer"

	err := New(config).Run()
	assert.EqualError(t, err, `mainnet indexer database: unsupported dsn scheme "mysql"`)
}

func TestRPCURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3030", rpcURL("localhost:3030"))
	assert.Equal(t, "https://archival-rpc.mainnet.near.org", rpcURL("https://archival-rpc.mainnet.near.org"))
}
