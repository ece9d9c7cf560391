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
	"fmt"
)

var blocksByTimestampsQuery = `SELECT block_hash, block_height, block_timestamp
  FROM blocks
  WHERE block_timestamp IN (?)`

var blocksByHashesQuery = `SELECT block_hash, block_height, block_timestamp
  FROM blocks
  WHERE block_hash IN (?)`

type blockRow struct {
	BlockHash      string `db:"block_hash"`
	BlockHeight    uint64 `db:"block_height"`
	BlockTimestamp string `db:"block_timestamp"`
}

func (r *blockRow) preview() *BlockPreview {
	return &BlockPreview{Hash: r.BlockHash, Height: r.BlockHeight, Timestamp: r.BlockTimestamp}
}

// GetBlocksByTimestamps returns the blocks produced at the given timestamps,
// keyed by timestamp.
func (db *DB) GetBlocksByTimestamps(ctx context.Context, timestamps []string) (map[string]*BlockPreview, error) {
	out := map[string]*BlockPreview{}
	if len(timestamps) == 0 {
		return out, nil
	}

	var rows []*blockRow
	if err := db.selectIn(ctx, &rows, blocksByTimestampsQuery, timestamps); err != nil {
		return nil, fmt.Errorf("blocks by timestamps: %w", err)
	}

	for _, row := range rows {
		out[row.BlockTimestamp] = row.preview()
	}
	return out, nil
}

// GetBlocksByHashes returns the known blocks keyed by hash.
func (db *DB) GetBlocksByHashes(ctx context.Context, hashes []string) (map[string]*BlockPreview, error) {
	out := map[string]*BlockPreview{}
	if len(hashes) == 0 {
		return out, nil
	}

	var rows []*blockRow
	if err := db.selectIn(ctx, &rows, blocksByHashesQuery, hashes); err != nil {
		return nil, fmt.Errorf("blocks by hashes: %w", err)
	}

	for _, row := range rows {
		out[row.BlockHash] = row.preview()
	}
	return out, nil
}
