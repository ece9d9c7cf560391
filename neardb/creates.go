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

// Subset of the NEAR indexer schema read by this package. Amounts are kept in
// text columns here so sqlite does not coerce them to floating point, the
// production indexer stores them as NUMERIC(45, 0) which scans the same way.

var createBlocksTableStmt = `CREATE TABLE IF NOT EXISTS blocks (
    block_height NUMERIC(20, 0) NOT NULL,
    block_hash TEXT NOT NULL PRIMARY KEY,
    prev_block_hash TEXT NOT NULL,
    block_timestamp NUMERIC(20, 0) NOT NULL
);`

var createBlocksTimestampIndexStmt = `CREATE INDEX IF NOT EXISTS blocks_timestamp_idx ON blocks (block_timestamp);`

var createTransactionsTableStmt = `CREATE TABLE IF NOT EXISTS transactions (
    transaction_hash TEXT NOT NULL PRIMARY KEY,
    included_in_block_hash TEXT NOT NULL,
    index_in_chunk INTEGER NOT NULL,
    block_timestamp NUMERIC(20, 0) NOT NULL,
    signer_account_id TEXT NOT NULL,
    receiver_account_id TEXT NOT NULL,
    status TEXT NOT NULL,
    converted_into_receipt_id TEXT NOT NULL
);`

var createTransactionActionsTableStmt = `CREATE TABLE IF NOT EXISTS transaction_actions (
    transaction_hash TEXT NOT NULL,
    index_in_transaction INTEGER NOT NULL,
    action_kind TEXT NOT NULL,
    args TEXT NOT NULL,

    PRIMARY KEY (transaction_hash, index_in_transaction)
);`

var createReceiptsTableStmt = `CREATE TABLE IF NOT EXISTS receipts (
    receipt_id TEXT NOT NULL PRIMARY KEY,
    included_in_block_hash TEXT NOT NULL,
    included_in_block_timestamp NUMERIC(20, 0) NOT NULL,
    predecessor_account_id TEXT NOT NULL,
    receiver_account_id TEXT NOT NULL,
    receipt_kind TEXT NOT NULL,
    originated_from_transaction_hash TEXT NOT NULL
);`

var createActionReceiptActionsTableStmt = `CREATE TABLE IF NOT EXISTS action_receipt_actions (
    receipt_id TEXT NOT NULL,
    index_in_action_receipt INTEGER NOT NULL,
    action_kind TEXT NOT NULL,
    args TEXT NOT NULL,

    PRIMARY KEY (receipt_id, index_in_action_receipt)
);`

var createExecutionOutcomesTableStmt = `CREATE TABLE IF NOT EXISTS execution_outcomes (
    receipt_id TEXT NOT NULL PRIMARY KEY,
    executed_in_block_hash TEXT NOT NULL,
    executed_in_block_timestamp NUMERIC(20, 0) NOT NULL,
    gas_burnt NUMERIC(20, 0) NOT NULL,
    tokens_burnt TEXT NOT NULL,
    executor_account_id TEXT NOT NULL,
    status TEXT NOT NULL,
    shard_id NUMERIC(20, 0) NOT NULL
);`

var createExecutionOutcomeReceiptsTableStmt = `CREATE TABLE IF NOT EXISTS execution_outcome_receipts (
    executed_receipt_id TEXT NOT NULL,
    index_in_execution_outcome INTEGER NOT NULL,
    produced_receipt_id TEXT NOT NULL,

    PRIMARY KEY (executed_receipt_id, index_in_execution_outcome)
);`

var createExecutionOutcomeReceiptsProducedIndexStmt = `CREATE INDEX IF NOT EXISTS execution_outcome_receipts_produced_idx ON execution_outcome_receipts (produced_receipt_id);`

var createBalanceChangesTableStmt = `CREATE TABLE IF NOT EXISTS balance_changes (
    block_timestamp NUMERIC(20, 0) NOT NULL,
    receipt_id TEXT,
    transaction_hash TEXT,
    affected_account_id TEXT NOT NULL,
    involved_account_id TEXT,
    direction TEXT NOT NULL,
    cause TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'SUCCESS',
    delta_nonstaked_amount TEXT NOT NULL,
    absolute_nonstaked_amount TEXT NOT NULL DEFAULT '0',
    delta_staked_amount TEXT NOT NULL DEFAULT '0',
    absolute_staked_amount TEXT NOT NULL DEFAULT '0',
    shard_id INTEGER NOT NULL,
    index_in_chunk INTEGER NOT NULL
);`

var createBalanceChangesAccountIndexStmt = `CREATE INDEX IF NOT EXISTS balance_changes_affected_account_idx
    ON balance_changes (affected_account_id, block_timestamp, shard_id, index_in_chunk);`

var createStmts = []struct {
	name  string
	query string
}{
	{"blocks", createBlocksTableStmt},
	{"blocks timestamp index", createBlocksTimestampIndexStmt},
	{"transactions", createTransactionsTableStmt},
	{"transaction_actions", createTransactionActionsTableStmt},
	{"receipts", createReceiptsTableStmt},
	{"action_receipt_actions", createActionReceiptActionsTableStmt},
	{"execution_outcomes", createExecutionOutcomesTableStmt},
	{"execution_outcome_receipts", createExecutionOutcomeReceiptsTableStmt},
	{"execution_outcome_receipts produced index", createExecutionOutcomeReceiptsProducedIndexStmt},
	{"balance_changes", createBalanceChangesTableStmt},
	{"balance_changes account index", createBalanceChangesAccountIndexStmt},
}
