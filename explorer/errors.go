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
	"errors"
	"fmt"

	"github.com/dfuse-io/dfuse-near/codec"
	"github.com/dfuse-io/dfuse-near/explorer/metrics"
)

var ErrUpstreamUnavailable = errors.New("upstream unavailable")
var ErrDataInconsistency = errors.New("data inconsistency")
var ErrUnknownNetwork = errors.New("unknown network")

// UpstreamError is a failed call to one of the sources of a network: the
// indexer database, the activity database or the archival node. Nothing is
// retried.
type UpstreamError struct {
	Network Network
	Stage   string
	ID      string
	Cause   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", e.Network, e.Stage, e.ID, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// DataInconsistencyError reports rows that contradict each other across
// sources, like a balance change pointing to a receipt the indexer does not
// have.
type DataInconsistencyError struct {
	Network Network
	Stage   string
	ID      string
	Reason  string
}

func (e *DataInconsistencyError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", e.Network, e.Stage, e.ID, e.Reason)
}

func (e *DataInconsistencyError) Is(target error) bool {
	return target == ErrDataInconsistency
}

func upstreamError(network Network, stage, id string, err error) error {
	var unmappable *codec.UnmappableActionKindError
	if errors.As(err, &unmappable) {
		return fmt.Errorf("%s: %s %q: %w", network, stage, id, err)
	}

	metrics.UpstreamErrorCount.Inc(string(network), stage)
	return &UpstreamError{Network: network, Stage: stage, ID: id, Cause: err}
}

func dataInconsistency(network Network, stage, id, reason string, args ...interface{}) error {
	metrics.DataInconsistencyCount.Inc(string(network), stage)
	return &DataInconsistencyError{Network: network, Stage: stage, ID: id, Reason: fmt.Sprintf(reason, args...)}
}
