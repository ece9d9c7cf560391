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

	"github.com/dfuse-io/dfuse-near/codec"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

var receiptPreviewsQuery = `SELECT
    r.receipt_id,
    r.predecessor_account_id,
    r.receiver_account_id,
    r.originated_from_transaction_hash,
    o.executed_in_block_hash,
    o.executed_in_block_timestamp,
    a.action_kind,
    a.args
  FROM action_receipt_actions a
  JOIN receipts r ON r.receipt_id = a.receipt_id
  JOIN execution_outcomes o ON o.receipt_id = a.receipt_id
  WHERE r.receipt_kind = 'ACTION' AND a.receipt_id IN (?)
  ORDER BY a.receipt_id, a.index_in_action_receipt`

var receiptEdgesQuery = `SELECT
    executed_receipt_id,
    produced_receipt_id
  FROM execution_outcome_receipts
  WHERE executed_receipt_id IN (?) OR produced_receipt_id IN (?)
  ORDER BY executed_receipt_id, index_in_execution_outcome`

type receiptActionRow struct {
	ReceiptID                     string `db:"receipt_id"`
	PredecessorAccountID          string `db:"predecessor_account_id"`
	ReceiverAccountID             string `db:"receiver_account_id"`
	OriginatedFromTransactionHash string `db:"originated_from_transaction_hash"`
	ExecutedInBlockHash           string `db:"executed_in_block_hash"`
	ExecutedInBlockTimestamp      string `db:"executed_in_block_timestamp"`
	ActionKind                    string `db:"action_kind"`
	Args                          []byte `db:"args"`
}

type receiptEdgeRow struct {
	ExecutedReceiptID string `db:"executed_receipt_id"`
	ProducedReceiptID string `db:"produced_receipt_id"`
}

// ResolveReceiptGraph fetches the previews of the given action receipts and
// their parent/children relations. Parents and children not part of the
// input are fetched in one extra round, nothing further is followed.
func (db *DB) ResolveReceiptGraph(ctx context.Context, receiptIDs []string) (*ReceiptGraph, error) {
	graph := newReceiptGraph()
	if len(receiptIDs) == 0 {
		return graph, nil
	}

	zlogger := logging.Logger(ctx, zlog)
	zlogger.Debug("resolving receipt graph", zap.Int("receipt_count", len(receiptIDs)))

	if err := db.fetchReceiptPreviews(ctx, receiptIDs, graph.Receipts); err != nil {
		return nil, fmt.Errorf("receipt previews: %w", err)
	}

	var edges []*receiptEdgeRow
	if err := db.selectIn(ctx, &edges, receiptEdgesQuery, receiptIDs, receiptIDs); err != nil {
		return nil, fmt.Errorf("receipt relations: %w", err)
	}

	requested := map[string]bool{}
	for _, id := range receiptIDs {
		requested[id] = true
		graph.Relations[id] = &ReceiptRelation{ChildrenReceiptIDs: []string{}}
	}

	for _, edge := range edges {
		if requested[edge.ProducedReceiptID] {
			relation := graph.Relations[edge.ProducedReceiptID]
			if relation.ParentReceiptID == nil {
				parentID := edge.ExecutedReceiptID
				relation.ParentReceiptID = &parentID
			}
		}

		if requested[edge.ExecutedReceiptID] {
			relation := graph.Relations[edge.ExecutedReceiptID]
			relation.ChildrenReceiptIDs = append(relation.ChildrenReceiptIDs, edge.ProducedReceiptID)
		}
	}

	var missing []string
	seen := map[string]bool{}
	addMissing := func(id string) {
		if requested[id] || seen[id] {
			return
		}
		seen[id] = true
		if _, found := graph.Receipts[id]; !found {
			missing = append(missing, id)
		}
	}

	for _, id := range receiptIDs {
		relation := graph.Relations[id]
		if relation.ParentReceiptID != nil {
			addMissing(*relation.ParentReceiptID)
		}
		for _, childID := range relation.ChildrenReceiptIDs {
			addMissing(childID)
		}
	}

	if len(missing) > 0 {
		zlogger.Debug("resolving related receipts", zap.Int("receipt_count", len(missing)))
		if err := db.fetchReceiptPreviews(ctx, missing, graph.Receipts); err != nil {
			return nil, fmt.Errorf("related receipt previews: %w", err)
		}
	}

	return graph, nil
}

func (db *DB) fetchReceiptPreviews(ctx context.Context, receiptIDs []string, out map[string]*ReceiptPreview) error {
	var rows []*receiptActionRow
	if err := db.selectIn(ctx, &rows, receiptPreviewsQuery, receiptIDs); err != nil {
		return err
	}

	for _, row := range rows {
		action, err := codec.ActionFromDB(row.ActionKind, row.Args)
		if err != nil {
			return fmt.Errorf("receipt %s: %w", row.ReceiptID, err)
		}

		preview, found := out[row.ReceiptID]
		if !found {
			preview = &ReceiptPreview{
				ReceiptID:                     row.ReceiptID,
				SignerID:                      row.PredecessorAccountID,
				ReceiverID:                    row.ReceiverAccountID,
				OriginatedFromTransactionHash: row.OriginatedFromTransactionHash,
				BlockHash:                     row.ExecutedInBlockHash,
				BlockTimestamp:                row.ExecutedInBlockTimestamp,
			}
			out[row.ReceiptID] = preview
		}
		preview.Actions = append(preview.Actions, action)
	}

	return nil
}
