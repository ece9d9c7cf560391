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

package rest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dfuse-io/dfuse-near/neardb"
	"github.com/streamingfast/opaque"
)

// encodeCursor turns a balance change position into the opaque cursor handed
// to clients, nil encodes to "".
func encodeCursor(cursor *neardb.BalanceChangeCursor) (string, error) {
	if cursor == nil {
		return "", nil
	}

	return opaque.ToOpaque(fmt.Sprintf("%s:%d:%d", cursor.BlockTimestamp, cursor.ShardID, cursor.IndexInChunk))
}

// decodeCursor is the inverse of encodeCursor, "" decodes to nil.
func decodeCursor(in string) (*neardb.BalanceChangeCursor, error) {
	if in == "" {
		return nil, nil
	}

	plain, err := opaque.FromOpaque(in)
	if err != nil {
		return nil, fmt.Errorf("unable to decode cursor: %w", err)
	}

	parts := strings.Split(plain, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid cursor %q, expected 3 parts, got %d", plain, len(parts))
	}

	if _, err := strconv.ParseUint(parts[0], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp %q: %w", parts[0], err)
	}

	shardID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor shard %q: %w", parts[1], err)
	}

	indexInChunk, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor index %q: %w", parts[2], err)
	}

	return &neardb.BalanceChangeCursor{BlockTimestamp: parts[0], ShardID: shardID, IndexInChunk: indexInChunk}, nil
}
