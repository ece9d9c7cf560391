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
	"database/sql"
	"fmt"
	"strings"

	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

var balanceChangesQuery = `SELECT
    block_timestamp,
    receipt_id,
    transaction_hash,
    affected_account_id,
    involved_account_id,
    direction,
    cause,
    delta_nonstaked_amount,
    shard_id,
    index_in_chunk
  FROM balance_changes
  WHERE %s
  ORDER BY block_timestamp DESC, shard_id DESC, index_in_chunk DESC
  LIMIT ?`

var balanceChangesFilters = []string{
	"affected_account_id = ?",
	"cause <> 'CONTRACT_REWARD'",
	"involved_account_id IS NOT NULL",
	"(receipt_id IS NOT NULL OR direction = 'INBOUND')",
}

// Strictly before the cursor in (block_timestamp, shard_id, index_in_chunk)
// order. Row-value comparison is avoided so sqlite and postgres agree.
var balanceChangesCursorFilter = `(block_timestamp < ? OR (block_timestamp = ? AND (shard_id < ? OR (shard_id = ? AND index_in_chunk < ?))))`

type balanceChangeRow struct {
	BlockTimestamp       string         `db:"block_timestamp"`
	ReceiptID            sql.NullString `db:"receipt_id"`
	TransactionHash      sql.NullString `db:"transaction_hash"`
	AffectedAccountID    string         `db:"affected_account_id"`
	InvolvedAccountID    sql.NullString `db:"involved_account_id"`
	Direction            string         `db:"direction"`
	Cause                string         `db:"cause"`
	DeltaNonstakedAmount string         `db:"delta_nonstaked_amount"`
	ShardID              int64          `db:"shard_id"`
	IndexInChunk         int64          `db:"index_in_chunk"`
}

// ListBalanceChanges returns at most `limit` balance changes affecting
// accountID, newest first, strictly after `cursor` when one is given.
// Contract rewards, rows without an involved account and outbound rows not
// tied to a receipt are never returned.
func (db *DB) ListBalanceChanges(ctx context.Context, accountID string, limit int, cursor *BalanceChangeCursor) ([]*BalanceChange, error) {
	filters := append([]string{}, balanceChangesFilters...)
	args := []interface{}{accountID}

	if cursor != nil {
		filters = append(filters, balanceChangesCursorFilter)
		args = append(args,
			cursor.BlockTimestamp,
			cursor.BlockTimestamp,
			cursor.ShardID,
			cursor.ShardID,
			cursor.IndexInChunk,
		)
	}
	args = append(args, limit)

	query := fmt.Sprintf(balanceChangesQuery, strings.Join(filters, " AND "))

	logging.Logger(ctx, zlog).Debug("listing balance changes",
		zap.String("account_id", accountID),
		zap.Int("limit", limit),
		zap.Bool("with_cursor", cursor != nil),
	)

	var rows []*balanceChangeRow
	if err := db.db.SelectContext(ctx, &rows, db.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	out := make([]*BalanceChange, len(rows))
	for i, row := range rows {
		out[i] = &BalanceChange{
			AffectedAccountID: row.AffectedAccountID,
			InvolvedAccountID: row.InvolvedAccountID.String,
			BlockTimestamp:    row.BlockTimestamp,
			ShardID:           row.ShardID,
			IndexInChunk:      row.IndexInChunk,
			Cause:             Cause(row.Cause),
			Direction:         Direction(row.Direction),
			DeltaAmount:       row.DeltaNonstakedAmount,
			ReceiptID:         nullableString(row.ReceiptID),
			TransactionHash:   nullableString(row.TransactionHash),
		}
	}

	return out, nil
}

func nullableString(in sql.NullString) *string {
	if !in.Valid {
		return nil
	}
	return &in.String
}
