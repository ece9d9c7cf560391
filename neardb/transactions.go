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
	"errors"
	"fmt"

	"github.com/dfuse-io/dfuse-near/codec"
)

var transactionHeaderColumns = `transaction_hash,
    signer_account_id,
    receiver_account_id,
    included_in_block_hash,
    block_timestamp,
    status`

var transactionHeaderQuery = `SELECT ` + transactionHeaderColumns + `
  FROM transactions
  WHERE transaction_hash = ?`

var transactionHeadersQuery = `SELECT ` + transactionHeaderColumns + `
  FROM transactions
  WHERE transaction_hash IN (?)`

var transactionActionsQuery = `SELECT
    transaction_hash,
    action_kind,
    args
  FROM transaction_actions
  WHERE transaction_hash IN (?)
  ORDER BY transaction_hash, index_in_transaction`

type transactionRow struct {
	TransactionHash     string `db:"transaction_hash"`
	SignerAccountID     string `db:"signer_account_id"`
	ReceiverAccountID   string `db:"receiver_account_id"`
	IncludedInBlockHash string `db:"included_in_block_hash"`
	BlockTimestamp      string `db:"block_timestamp"`
	Status              string `db:"status"`
}

func (r *transactionRow) header() TransactionHeader {
	return TransactionHeader{
		Hash:           r.TransactionHash,
		SignerID:       r.SignerAccountID,
		ReceiverID:     r.ReceiverAccountID,
		BlockHash:      r.IncludedInBlockHash,
		BlockTimestamp: r.BlockTimestamp,
		Status:         codec.TransactionStatusFromDB(r.Status),
	}
}

type transactionActionRow struct {
	TransactionHash string `db:"transaction_hash"`
	ActionKind      string `db:"action_kind"`
	Args            []byte `db:"args"`
}

// GetTransactionHeader returns nil when the indexer does not know the
// transaction (yet).
func (db *DB) GetTransactionHeader(ctx context.Context, hash string) (*TransactionHeader, error) {
	row := &transactionRow{}
	err := db.db.GetContext(ctx, row, db.db.Rebind(transactionHeaderQuery), hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	header := row.header()
	return &header, nil
}

// GetTransactionsByHashes returns the known transactions keyed by hash,
// unknown hashes are absent from the result.
func (db *DB) GetTransactionsByHashes(ctx context.Context, hashes []string) (map[string]*TransactionPreview, error) {
	out := map[string]*TransactionPreview{}
	if len(hashes) == 0 {
		return out, nil
	}

	var rows []*transactionRow
	if err := db.selectIn(ctx, &rows, transactionHeadersQuery, hashes); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}

	for _, row := range rows {
		out[row.TransactionHash] = &TransactionPreview{TransactionHeader: row.header()}
	}

	var actionRows []*transactionActionRow
	if err := db.selectIn(ctx, &actionRows, transactionActionsQuery, hashes); err != nil {
		return nil, fmt.Errorf("transaction actions: %w", err)
	}

	for _, row := range actionRows {
		preview, found := out[row.TransactionHash]
		if !found {
			continue
		}

		action, err := codec.ActionFromDB(row.ActionKind, row.Args)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", row.TransactionHash, err)
		}
		preview.Actions = append(preview.Actions, action)
	}

	return out, nil
}
