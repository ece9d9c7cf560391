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

package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64Ptr(in uint64) *uint64 { return &in }

func TestReceiptStatusFromDB(t *testing.T) {
	tests := []struct {
		in       string
		expected ReceiptExecutionStatus
	}{
		{"SUCCESS_VALUE", &SuccessValueStatus{}},
		{"SUCCESS_RECEIPT_ID", &SuccessReceiptIDStatus{}},
		{"FAILURE", &FailureStatus{}},
		{"UNKNOWN", &UnknownStatus{}},
		{"SOMETHING_ELSE", &UnknownStatus{}},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			assert.Equal(t, test.expected, ReceiptStatusFromDB(test.in))
		})
	}
}

func TestReceiptStatusFromRPC(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ReceiptExecutionStatus
	}{
		{"success value", `{"SuccessValue":"ImhlbGxvIg=="}`, &SuccessValueStatus{Value: []byte(`"hello"`)}},
		{"success empty value", `{"SuccessValue":""}`, &SuccessValueStatus{Value: []byte{}}},
		{"success receipt id", `{"SuccessReceiptId":"8Zv9"}`, &SuccessReceiptIDStatus{ReceiptID: "8Zv9"}},
		{"unknown", `"Unknown"`, &UnknownStatus{}},
		{"started", `"Started"`, &UnknownStatus{}},
		{"garbage string", `"Whatever"`, &UnknownStatus{}},
		{"multi key object", `{"SuccessValue":"","Failure":{}}`, &UnknownStatus{}},
		{"not json", `{{{`, &UnknownStatus{}},
		{"number", `12`, &UnknownStatus{}},
		{
			"failure, account does not exist",
			`{"Failure":{"ActionError":{"index":0,"kind":{"AccountDoesNotExist":{"account_id":"ghost.near"}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: AccountDoesNotExist{AccountID: "ghost.near"}}},
		},
		{
			"failure, action error without index",
			`{"Failure":{"ActionError":{"kind":{"DeleteAccountStaking":{"account_id":"v.near"}}}}}`,
			&FailureStatus{Error: ActionError{Kind: DeleteAccountStaking{AccountID: "v.near"}}},
		},
		{
			"failure, function call execution error",
			`{"Failure":{"ActionError":{"index":1,"kind":{"FunctionCallError":{"ExecutionError":"Smart contract panicked: oops"}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(1), Kind: FunctionCallError{Kind: FunctionCallExecutionError{Message: "Smart contract panicked: oops"}}}},
		},
		{
			"failure, method not found",
			`{"Failure":{"ActionError":{"index":0,"kind":{"FunctionCallError":{"MethodResolveError":"MethodNotFound"}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: MethodResolveError{Reason: "MethodNotFound"}}}},
		},
		{
			"failure, code does not exist",
			`{"Failure":{"ActionError":{"index":0,"kind":{"FunctionCallError":{"CompilationError":{"CodeDoesNotExist":{"account_id":"empty.near"}}}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: CompilationError{Kind: CodeDoesNotExist{AccountID: "empty.near"}}}}},
		},
		{
			"failure, unknown compilation error",
			`{"Failure":{"ActionError":{"index":0,"kind":{"FunctionCallError":{"CompilationError":{"NewCompilerProblem":{}}}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: CompilationError{Kind: UnknownCompilationError{}}}}},
		},
		{
			"failure, host error",
			`{"Failure":{"ActionError":{"index":0,"kind":{"FunctionCallError":{"HostError":{"GuestPanic":{"panic_msg":"boom"}}}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: HostError{
				Reason:  "GuestPanic",
				Details: json.RawMessage(`{"panic_msg":"boom"}`),
			}}}},
		},
		{
			"failure, unknown function call error",
			`{"Failure":{"ActionError":{"index":0,"kind":{"FunctionCallError":{"EvmError":{}}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: UnknownFunctionCallError{}}}},
		},
		{
			"failure, unknown action error",
			`{"Failure":{"ActionError":{"index":2,"kind":{"BrandNewKind":{"x":1}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(2), Kind: UnknownActionError{}}},
		},
		{
			"failure, tries to stake",
			`{"Failure":{"ActionError":{"index":0,"kind":{"TriesToStake":{"account_id":"a","stake":"1","locked":"2","balance":"3"}}}}}`,
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: TriesToStake{AccountID: "a", Stake: "1", Locked: "2", Balance: "3"}}},
		},
		{
			"failure, invalid nonce",
			`{"Failure":{"InvalidTxError":{"InvalidNonce":{"tx_nonce":5,"ak_nonce":6}}}}`,
			&FailureStatus{Error: InvalidTxError{Kind: InvalidNonce{TransactionNonce: 5, AccessKeyNonce: 6}}},
		},
		{
			"failure, not enough balance",
			`{"Failure":{"InvalidTxError":{"NotEnoughBalance":{"signer_id":"s","balance":"1","cost":"2"}}}}`,
			&FailureStatus{Error: InvalidTxError{Kind: NotEnoughBalance{SignerID: "s", Balance: "1", Cost: "2"}}},
		},
		{
			"failure, expired",
			`{"Failure":{"InvalidTxError":"Expired"}}`,
			&FailureStatus{Error: InvalidTxError{Kind: Expired{}}},
		},
		{
			"failure, unknown transaction error",
			`{"Failure":{"InvalidTxError":{"Unheard":{}}}}`,
			&FailureStatus{Error: InvalidTxError{Kind: UnknownTransactionError{}}},
		},
		{
			"failure, unknown top level",
			`{"Failure":{"StorageError":"x"}}`,
			&FailureStatus{Error: UnknownExecutionError{}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ReceiptStatusFromRPC([]byte(test.raw)))
		})
	}
}

func TestTransactionStatus(t *testing.T) {
	assert.Equal(t, TransactionStatusSuccess, TransactionStatusFromDB("SUCCESS_VALUE"))
	assert.Equal(t, TransactionStatusSuccess, TransactionStatusFromDB("SUCCESS_RECEIPT_ID"))
	assert.Equal(t, TransactionStatusFailure, TransactionStatusFromDB("FAILURE"))
	assert.Equal(t, TransactionStatusUnknown, TransactionStatusFromDB("UNKNOWN"))

	assert.Equal(t, TransactionStatusSuccess, TransactionStatusFromRPC([]byte(`{"SuccessValue":""}`)))
	assert.Equal(t, TransactionStatusFailure, TransactionStatusFromRPC([]byte(`{"Failure":{"InvalidTxError":"Expired"}}`)))
	assert.Equal(t, TransactionStatusUnknown, TransactionStatusFromRPC([]byte(`"NotStarted"`)))
}

func TestReceiptStatus_DBAndRPCAgreeOnDiscriminant(t *testing.T) {
	pairs := []struct {
		db  string
		rpc string
	}{
		{"SUCCESS_VALUE", `{"SuccessValue":""}`},
		{"SUCCESS_RECEIPT_ID", `{"SuccessReceiptId":"abc"}`},
		{"FAILURE", `{"Failure":{"ActionError":{"index":0,"kind":{"TriesToUnstake":{"account_id":"a"}}}}}`},
		{"UNKNOWN", `"Unknown"`},
	}

	for _, pair := range pairs {
		assert.IsType(t, ReceiptStatusFromDB(pair.db), ReceiptStatusFromRPC([]byte(pair.rpc)), pair.db)
	}
}

func TestReceiptStatus_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   ReceiptExecutionStatus
		expected string
	}{
		{"success value", &SuccessValueStatus{Value: []byte("ok")}, `{"type":"successValue","value":"b2s="}`},
		{"receipt id", &SuccessReceiptIDStatus{ReceiptID: "r1"}, `{"type":"successReceiptId","receiptId":"r1"}`},
		{"unknown", &UnknownStatus{}, `{"type":"unknown"}`},
		{"lossy failure", &FailureStatus{}, `{"type":"failure","error":null}`},
		{
			"nested failure",
			&FailureStatus{Error: ActionError{Index: u64Ptr(0), Kind: FunctionCallError{Kind: CompilationError{Kind: CodeDoesNotExist{AccountID: "x"}}}}},
			`{"type":"failure","error":{"type":"actionError","index":0,"kind":{"type":"functionCallError","kind":{"type":"compilationError","kind":{"type":"codeDoesNotExist","accountId":"x"}}}}}`,
		},
		{
			"invalid tx",
			&FailureStatus{Error: InvalidTxError{Kind: InvalidSignerID{SignerID: "s"}}},
			`{"type":"failure","error":{"type":"invalidTxError","kind":{"type":"invalidSignerId","signerId":"s"}}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := json.Marshal(test.status)
			require.NoError(t, err)
			assert.JSONEq(t, test.expected, string(out))
		})
	}
}
