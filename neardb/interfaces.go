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
	"context"
)

// IndexerReader is the read access the explorer needs on the indexer
// database.
type IndexerReader interface {
	ResolveReceiptGraph(ctx context.Context, receiptIDs []string) (*ReceiptGraph, error)
	GetTransactionHeader(ctx context.Context, hash string) (*TransactionHeader, error)
	GetTransactionsByHashes(ctx context.Context, hashes []string) (map[string]*TransactionPreview, error)
	GetBlocksByTimestamps(ctx context.Context, timestamps []string) (map[string]*BlockPreview, error)
	GetBlocksByHashes(ctx context.Context, hashes []string) (map[string]*BlockPreview, error)
}

// ActivityReader is the read access the explorer needs on the activity
// database.
type ActivityReader interface {
	ListBalanceChanges(ctx context.Context, accountID string, limit int, cursor *BalanceChangeCursor) ([]*BalanceChange, error)
}

var _ IndexerReader = (*DB)(nil)
var _ ActivityReader = (*DB)(nil)
