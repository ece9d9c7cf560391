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

package archival

import (
	"encoding/json"
	"fmt"
)

// FinalExecutionOutcome is the result of `EXPERIMENTAL_tx_status`. Statuses
// and actions are kept raw, codec decodes them.
type FinalExecutionOutcome struct {
	Status             json.RawMessage           `json:"status"`
	Transaction        *Transaction              `json:"transaction"`
	TransactionOutcome *ExecutionOutcomeWithID   `json:"transaction_outcome"`
	ReceiptsOutcome    []*ExecutionOutcomeWithID `json:"receipts_outcome"`
	Receipts           []*Receipt                `json:"receipts"`
}

// Validate rejects results without a transaction outcome and results with
// null entries in their receipt lists.
func (o *FinalExecutionOutcome) Validate() error {
	if o == nil || o.Transaction == nil || o.TransactionOutcome == nil {
		return fmt.Errorf("incomplete result")
	}

	for i, outcome := range o.ReceiptsOutcome {
		if outcome == nil {
			return fmt.Errorf("null receipt outcome at index %d", i)
		}
	}
	for i, receipt := range o.Receipts {
		if receipt == nil {
			return fmt.Errorf("null receipt at index %d", i)
		}
	}
	return nil
}

type Transaction struct {
	SignerID   string            `json:"signer_id"`
	PublicKey  string            `json:"public_key"`
	Nonce      uint64            `json:"nonce"`
	ReceiverID string            `json:"receiver_id"`
	Actions    []json.RawMessage `json:"actions"`
	Signature  string            `json:"signature"`
	Hash       string            `json:"hash"`
}

type ExecutionOutcomeWithID struct {
	ID        string            `json:"id"`
	BlockHash string            `json:"block_hash"`
	Outcome   *ExecutionOutcome `json:"outcome"`
}

type ExecutionOutcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []string        `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt string          `json:"tokens_burnt"`
	ExecutorID  string          `json:"executor_id"`
	Status      json.RawMessage `json:"status"`
}

type Receipt struct {
	PredecessorID string       `json:"predecessor_id"`
	ReceiverID    string       `json:"receiver_id"`
	ReceiptID     string       `json:"receipt_id"`
	Receipt       *ReceiptBody `json:"receipt"`
}

// ReceiptBody holds either an action receipt or a data receipt.
type ReceiptBody struct {
	Action *ActionReceipt  `json:"Action,omitempty"`
	Data   json.RawMessage `json:"Data,omitempty"`
}

type ActionReceipt struct {
	SignerID        string            `json:"signer_id"`
	SignerPublicKey string            `json:"signer_public_key"`
	GasPrice        string            `json:"gas_price"`
	Actions         []json.RawMessage `json:"actions"`
}

// Actions returns the raw actions of the receipt, none for data receipts.
func (r *Receipt) Actions() []json.RawMessage {
	if r.Receipt == nil || r.Receipt.Action == nil {
		return nil
	}
	return r.Receipt.Action.Actions
}
