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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/streamingfast/logging"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Client interface {
	TxStatus(ctx context.Context, hash string, signerID string) (*FinalExecutionOutcome, error)
}

type DefaultClient struct {
	addr       string
	httpClient *http.Client
	nextID     *atomic.Uint64
}

func NewClient(addr string, transport http.RoundTripper) *DefaultClient {
	return &DefaultClient{
		addr: addr,
		httpClient: &http.Client{
			Transport: transport,
		},
		nextID: atomic.NewUint64(0),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is the `error` member of a JSON-RPC response.
type RPCError struct {
	Name    string          `json:"name"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Cause   *RPCErrorCause  `json:"cause"`
}

type RPCErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info"`
}

// CauseName is the machine readable reason, like UNKNOWN_TRANSACTION.
func (e *RPCError) CauseName() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Name
}

func (e *RPCError) Error() string {
	if cause := e.CauseName(); cause != "" {
		return fmt.Sprintf("rpc error %d (%s): %s", e.Code, cause, e.Message)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// TxStatus calls `EXPERIMENTAL_tx_status`, which returns the transaction
// along with every receipt it produced and their outcomes.
func (c *DefaultClient) TxStatus(ctx context.Context, hash string, signerID string) (*FinalExecutionOutcome, error) {
	result, err := c.call(ctx, "EXPERIMENTAL_tx_status", hash, signerID)
	if err != nil {
		return nil, fmt.Errorf("tx status %s: %w", hash, err)
	}

	var out *FinalExecutionOutcome
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, fmt.Errorf("unable to decode tx status %s: %w", hash, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("tx status %s: %w", hash, err)
	}

	return out, nil
}

func (c *DefaultClient) call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(&rpcRequest{
		JSONRPC: "2.0",
		ID:      strconv.FormatUint(c.nextID.Inc(), 10),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode request: %w", err)
	}

	req, err := http.NewRequest("POST", c.addr, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("unable to create new request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	logging.Logger(ctx, zlog).Debug("performing rpc call", zap.String("addr", c.addr), zap.String("method", method))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to perform HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read HTTP response body: %w", err)
	}

	var response *rpcResponse
	if err := json.Unmarshal(body, &response); err != nil || response == nil {
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("request failed, status code was %d, body: %q", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("unable to decode rpc response: %q", string(body))
	}

	if response.Error != nil {
		return nil, response.Error
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("request failed, status code was %d, body: %q", resp.StatusCode, string(body))
	}

	return response.Result, nil
}
