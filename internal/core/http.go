// Copyright © 2025 Kakarot Labs
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

var requestTimeout = 30 * time.Second

func SetRequestTimeout(customRequestTimeoutSecs int) {
	if customRequestTimeoutSecs > 0 {
		requestTimeout = time.Duration(customRequestTimeoutSecs) * time.Second
	}
}

type JSONRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Error   *JSONRPCError   `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type JSONRPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *JSONRPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// RPCClient speaks JSON-RPC 2.0 over HTTP. It is shared by the Starknet
// sequencer client and the Ethereum gateway client.
type RPCClient struct {
	rpcURL string
	nextID int64
	client *http.Client
}

func NewRPCClient(rpcURL string) *RPCClient {
	return &RPCClient{
		rpcURL: rpcURL,
		client: &http.Client{},
	}
}

func (c *RPCClient) URL() string {
	return c.rpcURL
}

// Invoke calls method with params and decodes the result into result, which
// may be nil when the caller does not need it.
func (c *RPCClient) Invoke(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	requestBody, err := json.Marshal(&JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddInt64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("%s [%d] %s", req.URL, resp.StatusCode, responseBody)
	}
	var rpcResponse JSONRPCResponse
	if err := json.Unmarshal(responseBody, &rpcResponse); err != nil {
		return fmt.Errorf("invalid JSON-RPC response from %s: %w", c.rpcURL, err)
	}
	if rpcResponse.JSONRPC == "" {
		return fmt.Errorf("invalid JSON-RPC response from %s: %s", c.rpcURL, responseBody)
	}
	if rpcResponse.Error != nil {
		return rpcResponse.Error
	}
	if result == nil {
		return nil
	}
	if len(rpcResponse.Result) == 0 {
		return fmt.Errorf("%s returned no result for %s", c.rpcURL, method)
	}
	return json.Unmarshal(rpcResponse.Result, result)
}
