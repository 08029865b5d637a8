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

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

var (
	SequencerEndpoint = "http://127.0.0.1:9944"
	GatewayEndpoint   = "http://127.0.0.1:3030"
)

func StartMockServer(t *testing.T) {
	httpmock.Activate()
}

func StopMockServer(_ *testing.T) {
	httpmock.DeactivateAndReset()
}

// JSONRPCResponder answers JSON-RPC requests with the raw JSON result
// registered for their method. Unknown methods get a method not found error.
func JSONRPCResponder(results map[string]string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		var rpcReq struct {
			ID     int64  `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(req.Body).Decode(&rpcReq); err != nil {
			return httpmock.NewStringResponse(400, err.Error()), nil
		}
		result, ok := results[rpcReq.Method]
		if !ok {
			return httpmock.NewStringResponse(200, fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found"}}`, rpcReq.ID)), nil
		}
		return httpmock.NewStringResponse(200, fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"result":%s}`, rpcReq.ID, result)), nil
	}
}
