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

package metrics

import (
	"github.com/streamingfast/dmetrics"
)

var MetricSet = dmetrics.NewSet()

var RequestCount = MetricSet.NewCounterVec("explorer_request_count", []string{"operation", "network"}, "Number of explorer requests by operation and network")
var UpstreamErrorCount = MetricSet.NewCounterVec("explorer_upstream_error_count", []string{"network", "stage"}, "Number of failed calls to the indexer, activity database or archival node")
var DataInconsistencyCount = MetricSet.NewCounterVec("explorer_data_inconsistency_count", []string{"network", "stage"}, "Number of requests aborted on data inconsistent across sources")
var SuppressedBalanceChangeCount = MetricSet.NewCounter("explorer_suppressed_balance_change_count", "Number of balance changes dropped from activity pages")
var InflightRequests = MetricSet.NewGaugeVec("explorer_inflight_requests", []string{"operation"}, "Number of explorer requests currently being served")
