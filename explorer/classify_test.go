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
	"errors"
	"testing"

	"github.com/dfuse-io/dfuse-near/codec"
	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseActions(t *testing.T) {
	assert.Equal(t, BatchAction{Actions: []codec.Action{}}, collapseActions(nil))
	assert.Equal(t, SingleAction{Action: codec.CreateAccount{}}, collapseActions([]codec.Action{codec.CreateAccount{}}))
	assert.Equal(t,
		BatchAction{Actions: []codec.Action{codec.CreateAccount{}, codec.Transfer{Deposit: "1"}}},
		collapseActions([]codec.Action{codec.CreateAccount{}, codec.Transfer{Deposit: "1"}}),
	)
}

func TestDisplayAction_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       DisplayAction
		expected string
	}{
		{"single", SingleAction{Action: codec.Transfer{Deposit: "1"}}, `{"kind":"transfer","args":{"deposit":"1"}}`},
		{"batch", BatchAction{Actions: []codec.Action{codec.CreateAccount{}, codec.DeleteKey{PublicKey: "ed25519:abc"}}}, `{"kind":"batch","actions":[{"kind":"createAccount","args":{}},{"kind":"deleteKey","args":{"publicKey":"ed25519:abc"}}]}`},
		{"validator reward", ValidatorRewardAction{BlockHash: "b1"}, `{"kind":"validatorReward","blockHash":"b1"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := json.Marshal(test.in)
			require.NoError(t, err)
			assert.JSONEq(t, test.expected, string(actual))
		})
	}
}

func newTestClassifier() *classifier {
	parentID := "parent"
	refundParentID := "refund-parent"

	return &classifier{
		network: NetworkMainnet,
		receipts: &neardb.ReceiptGraph{
			Receipts: map[string]*neardb.ReceiptPreview{
				"parent":        {ReceiptID: "parent", SignerID: "bob.near", Actions: []codec.Action{codec.Transfer{Deposit: "9"}}},
				"refund-parent": {ReceiptID: "refund-parent", SignerID: "system", Actions: []codec.Action{codec.Transfer{Deposit: "9"}}},
				"receipt":       {ReceiptID: "receipt", SignerID: "bob.near", OriginatedFromTransactionHash: "t1", Actions: []codec.Action{codec.CreateAccount{}, codec.DeployContract{}}},
				"child":         {ReceiptID: "child", SignerID: "alice.near", Actions: []codec.Action{codec.Transfer{Deposit: "2"}}},
				"refund":        {ReceiptID: "refund", SignerID: "system", Actions: []codec.Action{codec.Transfer{Deposit: "3"}}},
				"orphan":        {ReceiptID: "orphan", SignerID: "bob.near", OriginatedFromTransactionHash: "t2", Actions: []codec.Action{codec.Transfer{Deposit: "4"}}},
			},
			Relations: map[string]*neardb.ReceiptRelation{
				"receipt": {ParentReceiptID: &parentID, ChildrenReceiptIDs: []string{"child", "refund", "unknown"}},
				"orphan":  {ParentReceiptID: &refundParentID, ChildrenReceiptIDs: []string{}},
			},
		},
		transactions: map[string]*neardb.TransactionPreview{
			"ok":     {TransactionHeader: neardb.TransactionHeader{Hash: "ok", Status: codec.TransactionStatusSuccess}, Actions: []codec.Action{codec.Transfer{Deposit: "5"}}},
			"failed": {TransactionHeader: neardb.TransactionHeader{Hash: "failed", Status: codec.TransactionStatusFailure}, Actions: []codec.Action{codec.Transfer{Deposit: "6"}}},
		},
		blocks: map[string]*neardb.BlockPreview{
			"10": {Hash: "b10", Height: 10, Timestamp: "10"},
		},
	}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		change   *neardb.BalanceChange
		expected *ActivityItem
	}{
		{
			name:   "receipt with parent and children",
			change: &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "1", Cause: neardb.CauseReceipt, Direction: neardb.DirectionInbound, DeltaAmount: "1", ReceiptID: strPtr("receipt")},
			expected: &ActivityItem{
				InvolvedAccountID: "bob.near", Timestamp: "1", Cause: neardb.CauseReceipt, Direction: neardb.DirectionInbound, DeltaAmount: "1", TransactionHash: "t1",
				Action:          BatchAction{Actions: []codec.Action{codec.CreateAccount{}, codec.DeployContract{}}},
				ParentAction:    SingleAction{Action: codec.Transfer{Deposit: "9"}},
				ChildrenActions: []DisplayAction{SingleAction{Action: codec.Transfer{Deposit: "2"}}},
			},
		},
		{
			name:   "receipt with refund parent",
			change: &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "2", Cause: neardb.CauseReceipt, Direction: neardb.DirectionOutbound, DeltaAmount: "-4", ReceiptID: strPtr("orphan")},
			expected: &ActivityItem{
				InvolvedAccountID: "bob.near", Timestamp: "2", Cause: neardb.CauseReceipt, Direction: neardb.DirectionOutbound, DeltaAmount: "-4", TransactionHash: "t2",
				Action:          SingleAction{Action: codec.Transfer{Deposit: "4"}},
				ChildrenActions: []DisplayAction{},
			},
		},
		{
			name:   "receipt without relation",
			change: &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "3", Cause: neardb.CauseReceipt, Direction: neardb.DirectionInbound, DeltaAmount: "2", ReceiptID: strPtr("child")},
			expected: &ActivityItem{
				InvolvedAccountID: "bob.near", Timestamp: "3", Cause: neardb.CauseReceipt, Direction: neardb.DirectionInbound, DeltaAmount: "2",
				Action:          SingleAction{Action: codec.Transfer{Deposit: "2"}},
				ChildrenActions: []DisplayAction{},
			},
		},
		{
			name:   "successful transaction outbound",
			change: &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "4", Cause: neardb.CauseTransaction, Direction: neardb.DirectionOutbound, DeltaAmount: "-5", TransactionHash: strPtr("ok")},
			expected: &ActivityItem{
				InvolvedAccountID: "bob.near", Timestamp: "4", Cause: neardb.CauseTransaction, Direction: neardb.DirectionOutbound, DeltaAmount: "-5", TransactionHash: "ok",
				Action:          SingleAction{Action: codec.Transfer{Deposit: "5"}},
				ChildrenActions: []DisplayAction{},
			},
		},
		{
			name:     "successful transaction inbound is suppressed",
			change:   &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "5", Cause: neardb.CauseTransaction, Direction: neardb.DirectionInbound, DeltaAmount: "5", TransactionHash: strPtr("ok")},
			expected: nil,
		},
		{
			name:   "failed transaction inbound",
			change: &neardb.BalanceChange{InvolvedAccountID: "bob.near", BlockTimestamp: "6", Cause: neardb.CauseTransaction, Direction: neardb.DirectionInbound, DeltaAmount: "6", TransactionHash: strPtr("failed")},
			expected: &ActivityItem{
				InvolvedAccountID: "bob.near", Timestamp: "6", Cause: neardb.CauseTransaction, Direction: neardb.DirectionInbound, DeltaAmount: "6", TransactionHash: "failed",
				Action:          SingleAction{Action: codec.Transfer{Deposit: "6"}},
				ChildrenActions: []DisplayAction{},
			},
		},
		{
			name:   "validators reward",
			change: &neardb.BalanceChange{InvolvedAccountID: "validator.near", BlockTimestamp: "10", Cause: neardb.CauseValidatorsReward, Direction: neardb.DirectionInbound, DeltaAmount: "7"},
			expected: &ActivityItem{
				InvolvedAccountID: "validator.near", Timestamp: "10", Cause: neardb.CauseValidatorsReward, Direction: neardb.DirectionInbound, DeltaAmount: "7",
				Action:          ValidatorRewardAction{BlockHash: "b10"},
				ChildrenActions: []DisplayAction{},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := newTestClassifier().classify(test.change)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestClassifier_Inconsistencies(t *testing.T) {
	tests := []struct {
		name       string
		change     *neardb.BalanceChange
		expectedID string
	}{
		{"unknown receipt", &neardb.BalanceChange{BlockTimestamp: "1", Cause: neardb.CauseReceipt, ReceiptID: strPtr("ghost")}, "ghost"},
		{"unknown transaction", &neardb.BalanceChange{BlockTimestamp: "1", Cause: neardb.CauseTransaction, TransactionHash: strPtr("ghost")}, "ghost"},
		{"unknown block", &neardb.BalanceChange{BlockTimestamp: "11", Cause: neardb.CauseValidatorsReward}, "11"},
		{"unexpected cause", &neardb.BalanceChange{BlockTimestamp: "12", Cause: neardb.CauseContractReward}, "12"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := newTestClassifier().classify(test.change)
			require.True(t, errors.Is(err, ErrDataInconsistency), "got %v", err)

			var inconsistency *DataInconsistencyError
			require.True(t, errors.As(err, &inconsistency))
			assert.Equal(t, test.expectedID, inconsistency.ID)
		})
	}
}

func TestActivityItem_MarshalJSON(t *testing.T) {
	item := &ActivityItem{
		InvolvedAccountID: "validator.near",
		Timestamp:         "10",
		Direction:         neardb.DirectionInbound,
		Cause:             neardb.CauseValidatorsReward,
		DeltaAmount:       "7",
		Action:            ValidatorRewardAction{BlockHash: "b10"},
		ChildrenActions:   []DisplayAction{},
	}

	actual, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"involvedAccountId": "validator.near",
		"timestamp": "10",
		"direction": "INBOUND",
		"cause": "VALIDATORS_REWARD",
		"deltaAmount": "7",
		"action": {"kind": "validatorReward", "blockHash": "b10"},
		"childrenActions": []
	}`, string(actual))
}

func TestPartitionBalanceChanges(t *testing.T) {
	receiptIDs, transactionHashes, blockTimestamps, err := partitionBalanceChanges(NetworkMainnet, []*neardb.BalanceChange{
		{BlockTimestamp: "5", Cause: neardb.CauseReceipt, ReceiptID: strPtr("r1")},
		{BlockTimestamp: "4", Cause: neardb.CauseTransaction, TransactionHash: strPtr("t1"), ReceiptID: strPtr("r9")},
		{BlockTimestamp: "3", Cause: neardb.CauseReceipt, ReceiptID: strPtr("r1")},
		{BlockTimestamp: "3", Cause: neardb.CauseValidatorsReward},
		{BlockTimestamp: "2", Cause: neardb.CauseTransaction, TransactionHash: strPtr("t1")},
		{BlockTimestamp: "1", Cause: neardb.CauseValidatorsReward},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, receiptIDs)
	assert.Equal(t, []string{"t1"}, transactionHashes)
	assert.Equal(t, []string{"3", "1"}, blockTimestamps)
}

func TestPartitionBalanceChanges_MissingLinkage(t *testing.T) {
	_, _, _, err := partitionBalanceChanges(NetworkMainnet, []*neardb.BalanceChange{
		{BlockTimestamp: "5", Cause: neardb.CauseReceipt},
	})
	assert.True(t, errors.Is(err, ErrDataInconsistency))

	_, _, _, err = partitionBalanceChanges(NetworkMainnet, []*neardb.BalanceChange{
		{BlockTimestamp: "5", Cause: neardb.CauseTransaction},
	})
	assert.True(t, errors.Is(err, ErrDataInconsistency))
}
