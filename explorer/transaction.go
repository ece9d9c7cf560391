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
	"context"
	"encoding/json"
	"fmt"

	archival "github.com/dfuse-io/dfuse-near/archival-client"
	"github.com/dfuse-io/dfuse-near/codec"
	"github.com/dfuse-io/dfuse-near/explorer/metrics"
	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

type TransactionDetail struct {
	Hash       string                  `json:"hash"`
	SignerID   string                  `json:"signerId"`
	ReceiverID string                  `json:"receiverId"`
	Timestamp  string                  `json:"timestamp"`
	Status     codec.TransactionStatus `json:"status"`
	Actions    []codec.Action          `json:"actions"`

	// Amount is the sum of the deposits attached to the transaction actions,
	// Fee the sum of the tokens burnt by the transaction and all its receipts.
	Amount  string `json:"amount"`
	Fee     string `json:"fee"`
	GasUsed string `json:"gasUsed"`

	TransactionOutcome *Outcome `json:"transactionOutcome"`
	// Receipt is the receipt the transaction converted into, nil when the
	// archival node did not return it.
	Receipt *NestedReceiptWithOutcome `json:"receipt"`
}

// FetchTransaction returns the detail of a transaction, or nil when the
// indexer does not know it.
func (e *Explorer) FetchTransaction(ctx context.Context, network Network, hash string) (*TransactionDetail, error) {
	clients, err := e.clients(network)
	if err != nil {
		return nil, err
	}

	metrics.RequestCount.Inc("transaction", string(network))
	metrics.InflightRequests.Inc("transaction")
	defer metrics.InflightRequests.Dec("transaction")

	zlogger := logging.Logger(ctx, zlog)

	header, err := clients.Indexer.GetTransactionHeader(ctx, hash)
	if err != nil {
		return nil, upstreamError(network, "get transaction", hash, err)
	}
	if header == nil {
		zlogger.Debug("transaction not found in indexer", zap.String("network", string(network)), zap.String("hash", hash))
		return nil, nil
	}

	result, err := clients.Archival.TxStatus(ctx, hash, header.SignerID)
	if err != nil {
		return nil, upstreamError(network, "archival tx status", hash, err)
	}
	if err := result.Validate(); err != nil {
		return nil, dataInconsistency(network, "archival tx status", hash, "%s", err)
	}

	blocks, err := clients.Indexer.GetBlocksByHashes(ctx, outcomeBlockHashes(result))
	if err != nil {
		return nil, upstreamError(network, "resolve blocks", hash, err)
	}

	actions, err := decodeRPCActions(result.Transaction.Actions)
	if err != nil {
		return nil, fmt.Errorf("%s: transaction %q actions: %w", network, hash, err)
	}

	detail := &TransactionDetail{
		Hash:       hash,
		SignerID:   result.Transaction.SignerID,
		ReceiverID: result.Transaction.ReceiverID,
		Timestamp:  header.BlockTimestamp,
		Status:     codec.TransactionStatusFromRPC(result.Status),
		Actions:    actions,
	}

	deposits := make([]string, len(actions))
	for i, action := range actions {
		deposits[i] = codec.ActionDeposit(action)
	}
	if detail.Amount, err = sumAmounts(deposits...); err != nil {
		return nil, dataInconsistency(network, "transaction amount", hash, "%s", err)
	}

	outcomes := append([]*archival.ExecutionOutcomeWithID{result.TransactionOutcome}, result.ReceiptsOutcome...)
	var tokensBurnt []string
	var gasBurnt []uint64
	for _, outcome := range outcomes {
		if outcome.Outcome == nil {
			return nil, dataInconsistency(network, "transaction outcomes", outcome.ID, "outcome without execution result")
		}
		tokensBurnt = append(tokensBurnt, outcome.Outcome.TokensBurnt)
		gasBurnt = append(gasBurnt, outcome.Outcome.GasBurnt)
	}

	if detail.Fee, err = sumAmounts(tokensBurnt...); err != nil {
		return nil, dataInconsistency(network, "transaction fee", hash, "%s", err)
	}
	detail.GasUsed = sumGas(gasBurnt...)

	parsed, err := parseReceipts(result, actions, blocks)
	if err != nil {
		return nil, fmt.Errorf("%s: transaction %q receipts: %w", network, hash, err)
	}

	transactionOutcome := parsed[result.TransactionOutcome.ID]
	detail.TransactionOutcome = &transactionOutcome.outcome

	if len(transactionOutcome.producedReceiptIDs) > 0 {
		detail.Receipt = buildReceiptTree(transactionOutcome.producedReceiptIDs[0], parsed)
	}

	zlogger.Debug("fetched transaction",
		zap.String("network", string(network)),
		zap.String("hash", hash),
		zap.Int("receipt_count", len(result.Receipts)),
	)

	return detail, nil
}

func outcomeBlockHashes(result *archival.FinalExecutionOutcome) []string {
	seen := map[string]bool{}
	out := []string{}

	add := func(hash string) {
		if hash != "" && !seen[hash] {
			seen[hash] = true
			out = append(out, hash)
		}
	}

	add(result.TransactionOutcome.BlockHash)
	for _, outcome := range result.ReceiptsOutcome {
		add(outcome.BlockHash)
	}
	return out
}

// parseReceipts pairs every receipt with its outcome by id. The transaction
// outcome is paired with the transaction itself.
func parseReceipts(result *archival.FinalExecutionOutcome, transactionActions []codec.Action, blocks map[string]*neardb.BlockPreview) (map[string]*parsedReceipt, error) {
	out := map[string]*parsedReceipt{}

	trxOutcome := result.TransactionOutcome
	out[trxOutcome.ID] = &parsedReceipt{
		id:                 trxOutcome.ID,
		predecessorID:      result.Transaction.SignerID,
		receiverID:         result.Transaction.ReceiverID,
		actions:            transactionActions,
		outcome:            toOutcome(trxOutcome, blocks),
		producedReceiptIDs: trxOutcome.Outcome.ReceiptIDs,
	}

	outcomesByID := map[string]*archival.ExecutionOutcomeWithID{}
	for _, outcome := range result.ReceiptsOutcome {
		outcomesByID[outcome.ID] = outcome
	}

	for _, receipt := range result.Receipts {
		outcome, found := outcomesByID[receipt.ReceiptID]
		if !found {
			continue
		}

		actions, err := decodeRPCActions(receipt.Actions())
		if err != nil {
			return nil, fmt.Errorf("receipt %s: %w", receipt.ReceiptID, err)
		}

		out[receipt.ReceiptID] = &parsedReceipt{
			id:                 receipt.ReceiptID,
			predecessorID:      receipt.PredecessorID,
			receiverID:         receipt.ReceiverID,
			actions:            actions,
			outcome:            toOutcome(outcome, blocks),
			producedReceiptIDs: outcome.Outcome.ReceiptIDs,
		}
	}

	return out, nil
}

func toOutcome(in *archival.ExecutionOutcomeWithID, blocks map[string]*neardb.BlockPreview) Outcome {
	out := Outcome{
		TokensBurnt: in.Outcome.TokensBurnt,
		GasBurnt:    in.Outcome.GasBurnt,
		Status:      codec.ReceiptStatusFromRPC(in.Outcome.Status),
		Logs:        in.Outcome.Logs,
	}
	if out.Logs == nil {
		out.Logs = []string{}
	}

	if block := blocks[in.BlockHash]; block != nil {
		out.Block = &Block{Hash: block.Hash, Height: block.Height, Timestamp: block.Timestamp}
	}
	return out
}

func decodeRPCActions(raws []json.RawMessage) ([]codec.Action, error) {
	out := make([]codec.Action, len(raws))
	for i, raw := range raws {
		action, err := codec.ActionFromRPC(raw)
		if err != nil {
			return nil, err
		}
		out[i] = action
	}
	return out, nil
}
