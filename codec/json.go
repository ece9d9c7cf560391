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

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// discriminant splits an externally tagged node into its variant name and
// payload. The node is either a bare string ("Unknown") or an object with
// exactly one key ({"SuccessValue": "..."}). Anything else has no variant.
func discriminant(node gjson.Result) (string, gjson.Result) {
	switch {
	case node.Type == gjson.String:
		return node.Str, gjson.Result{}

	case node.IsObject():
		var key string
		var payload gjson.Result
		count := 0
		node.ForEach(func(k, v gjson.Result) bool {
			key, payload = k.String(), v
			count++
			return count < 2
		})

		if count == 1 {
			return key, payload
		}
	}

	return "", gjson.Result{}
}

// amount returns a token amount as a decimal string, amounts are encoded as
// JSON strings by NEAR but older indexer rows carry them as numbers.
func amount(node gjson.Result) string {
	switch node.Type {
	case gjson.String:
		return node.Str
	case gjson.Number:
		return node.Raw
	}
	return "0"
}

func optionalAmount(node gjson.Result) *string {
	if !node.Exists() || node.Type == gjson.Null {
		return nil
	}

	out := amount(node)
	return &out
}

func stringList(node gjson.Result) []string {
	out := []string{}
	for _, element := range node.Array() {
		out = append(out, element.String())
	}
	return out
}

// tagged marshals v and injects `key: tag` in the resulting object.
func tagged(key, tag string, v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	out, err := sjson.SetBytes(raw, key, tag)
	if err != nil {
		return nil, fmt.Errorf("tagging %q: %w", tag, err)
	}
	return out, nil
}

func typed(tag string, v interface{}) ([]byte, error) {
	return tagged("type", tag, v)
}

func marshalAction(kind ActionKind, args interface{}) ([]byte, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}

	out, err := sjson.SetBytes([]byte("{}"), "kind", string(kind))
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(out, "args", raw)
}

func (a CreateAccount) MarshalJSON() ([]byte, error) {
	return marshalAction(a.Kind(), struct{}{})
}

func (a DeleteAccount) MarshalJSON() ([]byte, error) {
	type args DeleteAccount
	return marshalAction(a.Kind(), args(a))
}

func (a DeployContract) MarshalJSON() ([]byte, error) {
	return marshalAction(a.Kind(), struct{}{})
}

func (a FunctionCall) MarshalJSON() ([]byte, error) {
	type args FunctionCall
	return marshalAction(a.Kind(), args(a))
}

func (a Transfer) MarshalJSON() ([]byte, error) {
	type args Transfer
	return marshalAction(a.Kind(), args(a))
}

func (a Stake) MarshalJSON() ([]byte, error) {
	type args Stake
	return marshalAction(a.Kind(), args(a))
}

func (a AddKey) MarshalJSON() ([]byte, error) {
	type args AddKey
	return marshalAction(a.Kind(), args(a))
}

func (a DeleteKey) MarshalJSON() ([]byte, error) {
	type args DeleteKey
	return marshalAction(a.Kind(), args(a))
}

func (p AccessKeyPermission) MarshalJSON() ([]byte, error) {
	if p.IsFullAccess() {
		return typed("fullAccess", struct{}{})
	}
	return typed("functionCall", p.FunctionCall)
}
