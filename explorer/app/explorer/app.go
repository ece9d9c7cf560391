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
	"sort"
	"strings"

	stackdriverPropagation "contrib.go.opencensus.io/exporter/stackdriver/propagation"
	archival "github.com/dfuse-io/dfuse-near/archival-client"
	"github.com/dfuse-io/dfuse-near/explorer"
	"github.com/dfuse-io/dfuse-near/explorer/metrics"
	"github.com/dfuse-io/dfuse-near/explorer/rest"
	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/streamingfast/dmetrics"
	"github.com/streamingfast/shutter"
	"go.opencensus.io/plugin/ochttp"
	"go.uber.org/zap"
)

type Config struct {
	HTTPListenAddr string

	// Keyed by network name. A network is served when it has both an
	// indexer DSN and an archival RPC address, its activity DSN is optional.
	IndexerDSNs      map[string]string
	ActivityDSNs     map[string]string
	ArchivalRPCAddrs map[string]string

	DefaultLimit int
	MaxLimit     int
}

func (c *Config) Validate() error {
	if len(c.IndexerDSNs) == 0 {
		return fmt.Errorf("at least one indexer dsn is required")
	}

	for network := range c.IndexerDSNs {
		if c.ArchivalRPCAddrs[network] == "" {
			return fmt.Errorf("network %q has an indexer dsn but no archival rpc address", network)
		}
	}

	for network := range c.ActivityDSNs {
		if c.IndexerDSNs[network] == "" {
			return fmt.Errorf("network %q has an activity dsn but no indexer dsn", network)
		}
	}

	if c.DefaultLimit <= 0 || c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("invalid limits, default %d must be positive and not above max %d", c.DefaultLimit, c.MaxLimit)
	}

	return nil
}

type App struct {
	*shutter.Shutter
	Config *Config
}

func New(config *Config) *App {
	return &App{
		Shutter: shutter.New(),
		Config:  config,
	}
}

func (a *App) Run() error {
	zlog.Info("running explorer app", zap.Reflect("config", a.Config))
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("invalid app config: %w", err)
	}

	var databases []*neardb.DB
	a.OnTerminating(func(_ error) {
		for _, db := range databases {
			db.Close()
		}
	})

	open := func(dsn string) (*neardb.DB, error) {
		db, err := neardb.New(dsn)
		if err != nil {
			return nil, err
		}
		databases = append(databases, db)
		return db, nil
	}

	networks := map[explorer.Network]*explorer.NetworkClients{}
	for _, network := range sortedKeys(a.Config.IndexerDSNs) {
		clients := &explorer.NetworkClients{}

		indexer, err := open(a.Config.IndexerDSNs[network])
		if err != nil {
			return fmt.Errorf("%s indexer database: %w", network, err)
		}
		clients.Indexer = indexer

		if dsn := a.Config.ActivityDSNs[network]; dsn != "" {
			activity, err := open(dsn)
			if err != nil {
				return fmt.Errorf("%s activity database: %w", network, err)
			}
			clients.Activity = activity
		}

		clients.Archival = archival.NewClient(rpcURL(a.Config.ArchivalRPCAddrs[network]), &ochttp.Transport{
			Propagation: &stackdriverPropagation.HTTPFormat{},
		})

		zlog.Info("serving network",
			zap.String("network", network),
			zap.Bool("with_activity", clients.Activity != nil),
		)
		networks[explorer.Network(network)] = clients
	}

	dmetrics.Register(metrics.MetricSet)

	server := rest.New(a.Config.HTTPListenAddr, explorer.New(networks, explorer.WithLimits(a.Config.DefaultLimit, a.Config.MaxLimit)))
	a.OnTerminating(server.Shutdown)
	server.OnTerminated(a.Shutdown)

	go server.Serve()

	return nil
}

// ParseNetworkValues parses `network=value` pairs as given on the command
// line.
func ParseNetworkValues(in []string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range in {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid network value %q, expected <network>=<value>", pair)
		}

		if _, found := out[parts[0]]; found {
			return nil, fmt.Errorf("network %q given more than once", parts[0])
		}
		out[parts[0]] = parts[1]
	}
	return out, nil
}

func rpcURL(addr string) string {
	if strings.HasPrefix(addr, "http") {
		return addr
	}
	return "http://" + addr
}

func sortedKeys(in map[string]string) (out []string) {
	for key := range in {
		out = append(out, key)
	}
	sort.Strings(out)
	return
}
