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

	archival "github.com/dfuse-io/dfuse-near/archival-client"
	"github.com/dfuse-io/dfuse-near/neardb"
)

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// NetworkClients are the long-lived handles to the sources of one network.
// Activity is nil when the network has no activity database.
type NetworkClients struct {
	Indexer  neardb.IndexerReader
	Activity neardb.ActivityReader
	Archival archival.Client
}

type Explorer struct {
	networks map[Network]*NetworkClients

	defaultLimit int
	maxLimit     int
}

type Option func(e *Explorer)

// WithLimits sets the page size used when none is requested and the largest
// one allowed.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(e *Explorer) {
		e.defaultLimit = defaultLimit
		e.maxLimit = maxLimit
	}
}

func New(networks map[Network]*NetworkClients, opts ...Option) *Explorer {
	e := &Explorer{
		networks:     networks,
		defaultLimit: 20,
		maxLimit:     100,
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Explorer) Networks() (out []Network) {
	for network := range e.networks {
		out = append(out, network)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return
}

func (e *Explorer) clients(network Network) (*NetworkClients, error) {
	clients, found := e.networks[network]
	if !found {
		return nil, fmt.Errorf("%w %q", ErrUnknownNetwork, network)
	}
	return clients, nil
}

func (e *Explorer) normalizeLimit(limit int) int {
	if limit <= 0 {
		return e.defaultLimit
	}
	if limit > e.maxLimit {
		return e.maxLimit
	}
	return limit
}
