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
	"encoding/json"

	"github.com/dfuse-io/dfuse-near/codec"
	"github.com/dfuse-io/dfuse-near/neardb"
)

// DisplayAction is what an activity item shows: a single action, a batch of
// actions or a validator reward.
type DisplayAction interface {
	isDisplayAction()
}

type SingleAction struct {
	Action codec.Action
}

type BatchAction struct {
	Actions []codec.Action `json:"actions"`
}

type ValidatorRewardAction struct {
	BlockHash string `json:"blockHash"`
}

func (SingleAction) isDisplayAction()          {}
func (BatchAction) isDisplayAction()           {}
func (ValidatorRewardAction) isDisplayAction() {}

func (a SingleAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Action)
}

func (a BatchAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"kind": "batch", "actions": a.Actions})
}

func (a ValidatorRewardAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"kind": "validatorReward", "blockHash": a.BlockHash})
}

// collapseActions shows a lone action as itself and anything else as a
// batch.
func collapseActions(actions []codec.Action) DisplayAction {
	if len(actions) == 1 {
		return SingleAction{Action: actions[0]}
	}

	out := make([]codec.Action, len(actions))
	copy(out, actions)
	return BatchAction{Actions: out}
}

type ActivityItem struct {
	InvolvedAccountID string           `json:"involvedAccountId"`
	Timestamp         string           `json:"timestamp"`
	Direction         neardb.Direction `json:"direction"`
	Cause             neardb.Cause     `json:"cause"`
	DeltaAmount       string           `json:"deltaAmount"`
	TransactionHash   string           `json:"transactionHash,omitempty"`

	Action          DisplayAction   `json:"action"`
	ParentAction    DisplayAction   `json:"parentAction,omitempty"`
	ChildrenActions []DisplayAction `json:"childrenActions"`
}

// classifier turns the balance changes of one page into activity items using
// the receipts, transactions and blocks resolved for that page.
type classifier struct {
	network      Network
	receipts     *neardb.ReceiptGraph
	transactions map[string]*neardb.TransactionPreview
	blocks       map[string]*neardb.BlockPreview
}

// classify returns nil, nil for a balance change that must not be shown.
func (c *classifier) classify(change *neardb.BalanceChange) (*ActivityItem, error) {
	item := &ActivityItem{
		InvolvedAccountID: change.InvolvedAccountID,
		Timestamp:         change.BlockTimestamp,
		Direction:         change.Direction,
		Cause:             change.Cause,
		DeltaAmount:       change.DeltaAmount,
		ChildrenActions:   []DisplayAction{},
	}

	switch change.Cause {
	case neardb.CauseReceipt:
		receiptID := *change.ReceiptID
		receipt, found := c.receipts.Receipts[receiptID]
		if !found {
			return nil, dataInconsistency(c.network, "classify receipt", receiptID, "receipt of balance change not found in indexer")
		}

		item.Action = collapseActions(receipt.Actions)
		item.TransactionHash = receipt.OriginatedFromTransactionHash

		relation := c.receipts.Relations[receiptID]
		if relation == nil {
			return item, nil
		}

		if relation.ParentReceiptID != nil {
			if parent := c.receipts.Receipts[*relation.ParentReceiptID]; parent != nil && !isRefund(parent) {
				item.ParentAction = collapseActions(parent.Actions)
			}
		}

		for _, childID := range relation.ChildrenReceiptIDs {
			child := c.receipts.Receipts[childID]
			if child == nil || isRefund(child) {
				continue
			}
			item.ChildrenActions = append(item.ChildrenActions, collapseActions(child.Actions))
		}
		return item, nil

	case neardb.CauseTransaction:
		hash := *change.TransactionHash
		trx, found := c.transactions[hash]
		if !found {
			return nil, dataInconsistency(c.network, "classify transaction", hash, "transaction of balance change not found in indexer")
		}

		if trx.Status == codec.TransactionStatusSuccess && change.Direction == neardb.DirectionInbound {
			return nil, nil
		}

		item.Action = collapseActions(trx.Actions)
		item.TransactionHash = hash
		return item, nil

	case neardb.CauseValidatorsReward:
		block, found := c.blocks[change.BlockTimestamp]
		if !found {
			return nil, dataInconsistency(c.network, "classify validators reward", change.BlockTimestamp, "no block found at timestamp")
		}

		item.Action = ValidatorRewardAction{BlockHash: block.Hash}
		return item, nil
	}

	return nil, dataInconsistency(c.network, "classify", change.BlockTimestamp, "unexpected balance change cause %q", change.Cause)
}

func isRefund(receipt *neardb.ReceiptPreview) bool {
	return receipt.SignerID == "system"
}
