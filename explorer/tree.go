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
	"github.com/dfuse-io/dfuse-near/codec"
)

type Block struct {
	Hash      string `json:"hash"`
	Height    uint64 `json:"height"`
	Timestamp string `json:"timestamp"`
}

type Outcome struct {
	TokensBurnt string                       `json:"tokensBurnt"`
	GasBurnt    uint64                       `json:"gasBurnt"`
	Status      codec.ReceiptExecutionStatus `json:"status"`
	Logs        []string                     `json:"logs"`
	// Block is nil when the indexer does not know the block yet.
	Block *Block `json:"block"`
}

type NestedReceiptOutcome struct {
	Outcome
	NestedReceipts []*NestedReceiptWithOutcome `json:"nestedReceipts"`
}

type NestedReceiptWithOutcome struct {
	ID            string                `json:"id"`
	PredecessorID string                `json:"predecessorId"`
	ReceiverID    string                `json:"receiverId"`
	Actions       []codec.Action        `json:"actions"`
	Outcome       *NestedReceiptOutcome `json:"outcome"`
}

// parsedReceipt is a receipt (or the transaction itself) paired with its
// execution outcome, before it gets linked to the receipts it produced.
type parsedReceipt struct {
	id                 string
	predecessorID      string
	receiverID         string
	actions            []codec.Action
	outcome            Outcome
	producedReceiptIDs []string
}

// buildReceiptTree links the flat receipts, starting from rootID, each node
// owning the receipts its execution produced. Ids without a parsed receipt
// are pruned, so are ids already placed in the tree.
func buildReceiptTree(rootID string, receipts map[string]*parsedReceipt) *NestedReceiptWithOutcome {
	return buildReceiptNode(rootID, receipts, map[string]bool{})
}

func buildReceiptNode(id string, receipts map[string]*parsedReceipt, placed map[string]bool) *NestedReceiptWithOutcome {
	receipt, found := receipts[id]
	if !found || placed[id] {
		return nil
	}
	placed[id] = true

	node := &NestedReceiptWithOutcome{
		ID:            receipt.id,
		PredecessorID: receipt.predecessorID,
		ReceiverID:    receipt.receiverID,
		Actions:       receipt.actions,
		Outcome: &NestedReceiptOutcome{
			Outcome:        receipt.outcome,
			NestedReceipts: []*NestedReceiptWithOutcome{},
		},
	}

	for _, producedID := range receipt.producedReceiptIDs {
		if child := buildReceiptNode(producedID, receipts, placed); child != nil {
			node.Outcome.NestedReceipts = append(node.Outcome.NestedReceipts, child)
		}
	}

	return node
}
