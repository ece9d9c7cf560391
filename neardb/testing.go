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
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB opens a throwaway sqlite database with the full schema created.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(fmt.Sprintf("sqlite3://%s?createTables=true", filepath.Join(t.TempDir(), "near.db")))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

type TestAction struct {
	Kind string
	Args string
}

type TestBlock struct {
	Hash      string
	Height    uint64
	Timestamp string
}

type TestTransaction struct {
	Hash                   string
	SignerID               string
	ReceiverID             string
	BlockHash              string
	BlockTimestamp         string
	Status                 string
	ConvertedIntoReceiptID string
	Actions                []TestAction
}

type TestReceipt struct {
	ID              string
	Kind            string
	PredecessorID   string
	ReceiverID      string
	TransactionHash string
	BlockHash       string
	BlockTimestamp  string
	Status          string
	GasBurnt        uint64
	TokensBurnt     string
	Actions         []TestAction
}

func (db *DB) mustExec(t *testing.T, query string, args ...interface{}) {
	t.Helper()

	_, err := db.db.Exec(db.db.Rebind(query), args...)
	require.NoError(t, err)
}

func (db *DB) InsertTestBlock(t *testing.T, block TestBlock) {
	db.mustExec(t, `INSERT INTO blocks (block_height, block_hash, prev_block_hash, block_timestamp) VALUES (?, ?, ?, ?)`,
		block.Height, block.Hash, "", block.Timestamp,
	)
}

func (db *DB) InsertTestTransaction(t *testing.T, trx TestTransaction) {
	db.mustExec(t, `INSERT INTO transactions (transaction_hash, included_in_block_hash, index_in_chunk, block_timestamp, signer_account_id, receiver_account_id, status, converted_into_receipt_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trx.Hash, trx.BlockHash, 0, trx.BlockTimestamp, trx.SignerID, trx.ReceiverID, defaultString(trx.Status, "SUCCESS_VALUE"), trx.ConvertedIntoReceiptID,
	)

	for i, action := range trx.Actions {
		db.mustExec(t, `INSERT INTO transaction_actions (transaction_hash, index_in_transaction, action_kind, args) VALUES (?, ?, ?, ?)`,
			trx.Hash, i, action.Kind, defaultString(action.Args, "{}"),
		)
	}
}

// InsertTestReceipt writes the receipt, its execution outcome and its
// actions.
func (db *DB) InsertTestReceipt(t *testing.T, receipt TestReceipt) {
	db.mustExec(t, `INSERT INTO receipts (receipt_id, included_in_block_hash, included_in_block_timestamp, predecessor_account_id, receiver_account_id, receipt_kind, originated_from_transaction_hash) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.BlockHash, receipt.BlockTimestamp, receipt.PredecessorID, receipt.ReceiverID, defaultString(receipt.Kind, "ACTION"), receipt.TransactionHash,
	)

	db.mustExec(t, `INSERT INTO execution_outcomes (receipt_id, executed_in_block_hash, executed_in_block_timestamp, gas_burnt, tokens_burnt, executor_account_id, status, shard_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.BlockHash, receipt.BlockTimestamp, receipt.GasBurnt, defaultString(receipt.TokensBurnt, "0"), receipt.ReceiverID, defaultString(receipt.Status, "SUCCESS_VALUE"), 0,
	)

	for i, action := range receipt.Actions {
		db.mustExec(t, `INSERT INTO action_receipt_actions (receipt_id, index_in_action_receipt, action_kind, args) VALUES (?, ?, ?, ?)`,
			receipt.ID, i, action.Kind, defaultString(action.Args, "{}"),
		)
	}
}

// InsertTestReceiptEdges records that executing `executedID` produced the
// given receipts, in order.
func (db *DB) InsertTestReceiptEdges(t *testing.T, executedID string, producedIDs ...string) {
	for i, producedID := range producedIDs {
		db.mustExec(t, `INSERT INTO execution_outcome_receipts (executed_receipt_id, index_in_execution_outcome, produced_receipt_id) VALUES (?, ?, ?)`,
			executedID, i, producedID,
		)
	}
}

func (db *DB) InsertTestBalanceChange(t *testing.T, change *BalanceChange) {
	var involved interface{}
	if change.InvolvedAccountID != "" {
		involved = change.InvolvedAccountID
	}

	db.mustExec(t, `INSERT INTO balance_changes (block_timestamp, receipt_id, transaction_hash, affected_account_id, involved_account_id, direction, cause, delta_nonstaked_amount, shard_id, index_in_chunk) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		change.BlockTimestamp, change.ReceiptID, change.TransactionHash, change.AffectedAccountID, involved,
		string(change.Direction), string(change.Cause), change.DeltaAmount, change.ShardID, change.IndexInChunk,
	)
}

func defaultString(in, fallback string) string {
	if in == "" {
		return fallback
	}
	return in
}
