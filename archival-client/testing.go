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
	"context"
	"encoding/json"
	"fmt"
)

type txStatusResponse struct {
	response *FinalExecutionOutcome
	err      error
}

// TestClient answers TxStatus from canned responses keyed by transaction
// hash.
type TestClient struct {
	txStatusResponses map[string]*txStatusResponse
	Calls             []string
}

func NewTestClient() *TestClient {
	return &TestClient{txStatusResponses: map[string]*txStatusResponse{}}
}

// SetTxStatusResponse registers the JSON `result` to return for hash, or
// err when not nil.
func (c *TestClient) SetTxStatusResponse(hash string, response string, err error) *TestClient {
	var unmarshalledResponse *FinalExecutionOutcome
	if response != "" {
		if merr := json.Unmarshal([]byte(response), &unmarshalledResponse); merr != nil {
			panic(merr)
		}
	}

	c.txStatusResponses[hash] = &txStatusResponse{response: unmarshalledResponse, err: err}
	return c
}

func (c *TestClient) TxStatus(ctx context.Context, hash string, signerID string) (*FinalExecutionOutcome, error) {
	c.Calls = append(c.Calls, hash+":"+signerID)

	response, found := c.txStatusResponses[hash]
	if !found {
		return nil, &RPCError{Code: -32000, Message: fmt.Sprintf("transaction %s doesn't exist", hash), Cause: &RPCErrorCause{Name: "UNKNOWN_TRANSACTION"}}
	}
	return response.response, response.err
}
