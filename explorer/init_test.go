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
	"errors"
	"fmt"

	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/streamingfast/logging"
)

func init() {
	logging.TestingOverride()
}

func strPtr(in string) *string { return &in }

func transfer(deposit string) neardb.TestAction {
	return neardb.TestAction{Kind: "TRANSFER", Args: `{"deposit":"` + deposit + `"}`}
}

func functionCall(method string, gas int, deposit string) neardb.TestAction {
	return neardb.TestAction{Kind: "FUNCTION_CALL", Args: fmt.Sprintf(`{"gas":%d,"deposit":"%s","args_base64":"e30=","method_name":"%s"}`, gas, deposit, method)}
}

var errIndexerDown = errors.New("connection refused")

// failingIndexer fails the calls listed in failing and forwards the others.
type failingIndexer struct {
	neardb.IndexerReader
	failing map[string]bool
}

func (i *failingIndexer) ResolveReceiptGraph(ctx context.Context, ids []string) (*neardb.ReceiptGraph, error) {
	if i.failing["receipts"] {
		return nil, errIndexerDown
	}
	return i.IndexerReader.ResolveReceiptGraph(ctx, ids)
}

func (i *failingIndexer) GetTransactionsByHashes(ctx context.Context, hashes []string) (map[string]*neardb.TransactionPreview, error) {
	if i.failing["transactions"] {
		return nil, errIndexerDown
	}
	return i.IndexerReader.GetTransactionsByHashes(ctx, hashes)
}

func (i *failingIndexer) GetBlocksByHashes(ctx context.Context, hashes []string) (map[string]*neardb.BlockPreview, error) {
	if i.failing["blocks"] {
		return nil, errIndexerDown
	}
	return i.IndexerReader.GetBlocksByHashes(ctx, hashes)
}
