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
	"context"

	"github.com/dfuse-io/dfuse-near/explorer/metrics"
	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ActivityPage struct {
	Items []*ActivityItem
	// Cursor is the position of the last balance change read, suppressed or
	// not. It is nil when the page is empty.
	Cursor *neardb.BalanceChangeCursor
}

// FetchActivity returns the activity of accountID, newest first, strictly
// after cursor when one is given.
func (e *Explorer) FetchActivity(ctx context.Context, network Network, accountID string, limit int, cursor *neardb.BalanceChangeCursor) (*ActivityPage, error) {
	clients, err := e.clients(network)
	if err != nil {
		return nil, err
	}

	metrics.RequestCount.Inc("activity", string(network))
	metrics.InflightRequests.Inc("activity")
	defer metrics.InflightRequests.Dec("activity")

	zlogger := logging.Logger(ctx, zlog)
	if clients.Activity == nil {
		zlogger.Debug("network has no activity database", zap.String("network", string(network)))
		return &ActivityPage{Items: []*ActivityItem{}}, nil
	}

	limit = e.normalizeLimit(limit)
	changes, err := clients.Activity.ListBalanceChanges(ctx, accountID, limit, cursor)
	if err != nil {
		return nil, upstreamError(network, "list balance changes", accountID, err)
	}

	zlogger.Debug("fetched balance changes", zap.String("network", string(network)), zap.String("account_id", accountID), zap.Int("count", len(changes)))

	receiptIDs, transactionHashes, blockTimestamps, err := partitionBalanceChanges(network, changes)
	if err != nil {
		return nil, err
	}

	c := &classifier{network: network}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		if c.receipts, err = clients.Indexer.ResolveReceiptGraph(egCtx, receiptIDs); err != nil {
			return upstreamError(network, "resolve receipts", accountID, err)
		}
		return nil
	})

	eg.Go(func() (err error) {
		if c.transactions, err = clients.Indexer.GetTransactionsByHashes(egCtx, transactionHashes); err != nil {
			return upstreamError(network, "resolve transactions", accountID, err)
		}
		return nil
	})

	eg.Go(func() (err error) {
		if c.blocks, err = clients.Indexer.GetBlocksByTimestamps(egCtx, blockTimestamps); err != nil {
			return upstreamError(network, "resolve blocks", accountID, err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	page := &ActivityPage{Items: []*ActivityItem{}}
	for _, change := range changes {
		item, err := c.classify(change)
		if err != nil {
			return nil, err
		}

		if item == nil {
			metrics.SuppressedBalanceChangeCount.Inc()
			continue
		}
		page.Items = append(page.Items, item)
	}

	if len(changes) > 0 {
		page.Cursor = changes[len(changes)-1].Cursor()
	}

	return page, nil
}

// partitionBalanceChanges splits the linkage of each balance change by cause,
// without duplicates and in first seen order.
func partitionBalanceChanges(network Network, changes []*neardb.BalanceChange) (receiptIDs, transactionHashes, blockTimestamps []string, err error) {
	receiptIDs, transactionHashes, blockTimestamps = []string{}, []string{}, []string{}
	seen := map[string]bool{}

	add := func(set *[]string, kind, value string) {
		if key := kind + ":" + value; !seen[key] {
			seen[key] = true
			*set = append(*set, value)
		}
	}

	for _, change := range changes {
		switch change.Cause {
		case neardb.CauseReceipt:
			if change.ReceiptID == nil {
				return nil, nil, nil, dataInconsistency(network, "partition", change.BlockTimestamp, "receipt balance change without receipt id")
			}
			add(&receiptIDs, "r", *change.ReceiptID)

		case neardb.CauseTransaction:
			if change.TransactionHash == nil {
				return nil, nil, nil, dataInconsistency(network, "partition", change.BlockTimestamp, "transaction balance change without transaction hash")
			}
			add(&transactionHashes, "t", *change.TransactionHash)

		case neardb.CauseValidatorsReward:
			add(&blockTimestamps, "b", change.BlockTimestamp)

		default:
			return nil, nil, nil, dataInconsistency(network, "partition", change.BlockTimestamp, "unexpected balance change cause %q", change.Cause)
		}
	}

	return
}
