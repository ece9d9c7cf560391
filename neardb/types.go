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
	"github.com/dfuse-io/dfuse-near/codec"
)

// ReceiptPreview is an action receipt along with its ordered actions.
type ReceiptPreview struct {
	ReceiptID string
	// SignerID is the receipt predecessor, "system" for gas refunds.
	SignerID   string
	ReceiverID string
	Actions    []codec.Action

	OriginatedFromTransactionHash string
	BlockHash                     string
	BlockTimestamp                string
}

type ReceiptRelation struct {
	ParentReceiptID    *string
	ChildrenReceiptIDs []string
}

// ReceiptGraph is the result of a receipt resolution, previews and relations
// keyed by receipt id. Relations are only present for the requested ids,
// Receipts also contains their resolved parents and children.
type ReceiptGraph struct {
	Receipts  map[string]*ReceiptPreview
	Relations map[string]*ReceiptRelation
}

func newReceiptGraph() *ReceiptGraph {
	return &ReceiptGraph{
		Receipts:  map[string]*ReceiptPreview{},
		Relations: map[string]*ReceiptRelation{},
	}
}

type TransactionHeader struct {
	Hash           string
	SignerID       string
	ReceiverID     string
	BlockHash      string
	BlockTimestamp string
	Status         codec.TransactionStatus
}

type TransactionPreview struct {
	TransactionHeader
	Actions []codec.Action
}

type BlockPreview struct {
	Hash      string
	Height    uint64
	Timestamp string
}

type Cause string

const (
	CauseReceipt          Cause = "RECEIPT"
	CauseTransaction      Cause = "TRANSACTION"
	CauseValidatorsReward Cause = "VALIDATORS_REWARD"
	CauseContractReward   Cause = "CONTRACT_REWARD"
)

type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

// BalanceChange is one row of the activity database. Its Cause decides what
// links it to the indexer: ReceiptID for receipts, TransactionHash for
// transactions and BlockTimestamp for validator rewards.
type BalanceChange struct {
	AffectedAccountID string
	InvolvedAccountID string
	BlockTimestamp    string
	ShardID           int64
	IndexInChunk      int64
	Cause             Cause
	Direction         Direction
	DeltaAmount       string
	ReceiptID         *string
	TransactionHash   *string
}

func (c *BalanceChange) Cursor() *BalanceChangeCursor {
	return &BalanceChangeCursor{
		BlockTimestamp: c.BlockTimestamp,
		ShardID:        c.ShardID,
		IndexInChunk:   c.IndexInChunk,
	}
}

// BalanceChangeCursor is the position of a balance change in the
// (block timestamp, shard id, index in chunk) descending order.
type BalanceChangeCursor struct {
	BlockTimestamp string
	ShardID        int64
	IndexInChunk   int64
}
