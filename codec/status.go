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
	"encoding/base64"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ReceiptExecutionStatus is the outcome of a receipt (or transaction)
// execution.
type ReceiptExecutionStatus interface {
	isReceiptExecutionStatus()
}

type SuccessValueStatus struct {
	Value []byte `json:"value"`
}

type SuccessReceiptIDStatus struct {
	ReceiptID string `json:"receiptId"`
}

// FailureStatus carries a nil Error when the status was read from the
// indexer, which only stores the top-level discriminant.
type FailureStatus struct {
	Error ExecutionError `json:"error"`
}

type UnknownStatus struct{}

func (*SuccessValueStatus) isReceiptExecutionStatus()     {}
func (*SuccessReceiptIDStatus) isReceiptExecutionStatus() {}
func (*FailureStatus) isReceiptExecutionStatus()          {}
func (*UnknownStatus) isReceiptExecutionStatus()          {}

func (s *SuccessValueStatus) MarshalJSON() ([]byte, error) {
	type payload SuccessValueStatus
	return typed("successValue", (*payload)(s))
}

func (s *SuccessReceiptIDStatus) MarshalJSON() ([]byte, error) {
	type payload SuccessReceiptIDStatus
	return typed("successReceiptId", (*payload)(s))
}

func (s *FailureStatus) MarshalJSON() ([]byte, error) {
	type payload FailureStatus
	return typed("failure", (*payload)(s))
}

func (s *UnknownStatus) MarshalJSON() ([]byte, error) {
	return typed("unknown", struct{}{})
}

// ReceiptStatusFromDB maps the indexer `execution_outcomes.status` enum. The
// mapping is lossy: values and failure reasons are not stored by the indexer.
func ReceiptStatusFromDB(status string) ReceiptExecutionStatus {
	switch status {
	case "SUCCESS_VALUE":
		return &SuccessValueStatus{}
	case "SUCCESS_RECEIPT_ID":
		return &SuccessReceiptIDStatus{}
	case "FAILURE":
		return &FailureStatus{}
	}

	if status != "UNKNOWN" {
		zlog.Debug("unmapped indexer execution status", zap.String("status", status))
	}
	return &UnknownStatus{}
}

// ReceiptStatusFromRPC maps an RPC execution status. It never fails, any
// shape it does not recognize becomes UnknownStatus.
func ReceiptStatusFromRPC(raw []byte) ReceiptExecutionStatus {
	if !gjson.ValidBytes(raw) {
		zlog.Debug("invalid rpc execution status", zap.ByteString("raw", raw))
		return &UnknownStatus{}
	}
	return receiptStatusFromNode(gjson.ParseBytes(raw))
}

func receiptStatusFromNode(node gjson.Result) ReceiptExecutionStatus {
	key, payload := discriminant(node)
	switch key {
	case "SuccessValue":
		value, err := base64.StdEncoding.DecodeString(payload.String())
		if err != nil {
			zlog.Debug("invalid success value encoding", zap.String("value", payload.String()), zap.Error(err))
			return &UnknownStatus{}
		}
		return &SuccessValueStatus{Value: value}

	case "SuccessReceiptId":
		return &SuccessReceiptIDStatus{ReceiptID: payload.String()}

	case "Failure":
		return &FailureStatus{Error: executionErrorFromNode(payload)}

	case "Unknown", "NotStarted", "Started":
		return &UnknownStatus{}
	}

	zlog.Debug("unmapped rpc execution status", zap.String("raw", node.Raw))
	return &UnknownStatus{}
}

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailure TransactionStatus = "failure"
	TransactionStatusUnknown TransactionStatus = "unknown"
)

// TransactionStatusOf collapses an execution status to the three states a
// transaction can be reported in.
func TransactionStatusOf(status ReceiptExecutionStatus) TransactionStatus {
	switch status.(type) {
	case *SuccessValueStatus, *SuccessReceiptIDStatus:
		return TransactionStatusSuccess
	case *FailureStatus:
		return TransactionStatusFailure
	}
	return TransactionStatusUnknown
}

func TransactionStatusFromDB(status string) TransactionStatus {
	return TransactionStatusOf(ReceiptStatusFromDB(status))
}

func TransactionStatusFromRPC(raw []byte) TransactionStatus {
	return TransactionStatusOf(ReceiptStatusFromRPC(raw))
}
