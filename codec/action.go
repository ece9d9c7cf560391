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
	"encoding/base64"
	"fmt"

	"github.com/tidwall/gjson"
)

type ActionKind string

const (
	ActionKindCreateAccount  ActionKind = "createAccount"
	ActionKindDeleteAccount  ActionKind = "deleteAccount"
	ActionKindDeployContract ActionKind = "deployContract"
	ActionKindFunctionCall   ActionKind = "functionCall"
	ActionKindTransfer       ActionKind = "transfer"
	ActionKindStake          ActionKind = "stake"
	ActionKindAddKey         ActionKind = "addKey"
	ActionKindDeleteKey      ActionKind = "deleteKey"
)

// Action is one of the eight NEAR action variants. The set is closed, only
// the types declared in this file implement it.
type Action interface {
	Kind() ActionKind
	isAction()
}

type CreateAccount struct{}

type DeleteAccount struct {
	BeneficiaryID string `json:"beneficiaryId"`
}

type DeployContract struct{}

type FunctionCall struct {
	MethodName string `json:"methodName"`
	Args       []byte `json:"args"`
	Gas        uint64 `json:"gas"`
	Deposit    string `json:"deposit"`
}

type Transfer struct {
	Deposit string `json:"deposit"`
}

type Stake struct {
	Stake     string `json:"stake"`
	PublicKey string `json:"publicKey"`
}

type AddKey struct {
	PublicKey string    `json:"publicKey"`
	AccessKey AccessKey `json:"accessKey"`
}

type DeleteKey struct {
	PublicKey string `json:"publicKey"`
}

type AccessKey struct {
	Nonce      uint64              `json:"nonce"`
	Permission AccessKeyPermission `json:"permission"`
}

// AccessKeyPermission grants full access when FunctionCall is nil.
type AccessKeyPermission struct {
	FunctionCall *FunctionCallPermission
}

type FunctionCallPermission struct {
	// Allowance is nil when the key has no allowance limit.
	Allowance   *string  `json:"allowance"`
	ReceiverID  string   `json:"receiverId"`
	MethodNames []string `json:"methodNames"`
}

func (CreateAccount) Kind() ActionKind  { return ActionKindCreateAccount }
func (DeleteAccount) Kind() ActionKind  { return ActionKindDeleteAccount }
func (DeployContract) Kind() ActionKind { return ActionKindDeployContract }
func (FunctionCall) Kind() ActionKind   { return ActionKindFunctionCall }
func (Transfer) Kind() ActionKind       { return ActionKindTransfer }
func (Stake) Kind() ActionKind          { return ActionKindStake }
func (AddKey) Kind() ActionKind         { return ActionKindAddKey }
func (DeleteKey) Kind() ActionKind      { return ActionKindDeleteKey }

func (CreateAccount) isAction()  {}
func (DeleteAccount) isAction()  {}
func (DeployContract) isAction() {}
func (FunctionCall) isAction()   {}
func (Transfer) isAction()       {}
func (Stake) isAction()          {}
func (AddKey) isAction()         {}
func (DeleteKey) isAction()      {}

func (p AccessKeyPermission) IsFullAccess() bool {
	return p.FunctionCall == nil
}

// ActionDeposit returns the amount of tokens attached to the action, "0" for
// the variants that cannot carry a deposit.
func ActionDeposit(action Action) string {
	switch a := action.(type) {
	case FunctionCall:
		return a.Deposit
	case Transfer:
		return a.Deposit
	}
	return "0"
}

// UnmappableActionKindError is returned when a source carries an action kind
// this package does not know about. Callers must treat it as fatal.
type UnmappableActionKindError struct {
	Source string
	Kind   string
}

func (e *UnmappableActionKindError) Error() string {
	return fmt.Sprintf("unmappable %s action kind %q", e.Source, e.Kind)
}

// ActionFromDB maps an indexer `action_kind` and its `args` JSON column to an
// Action.
func ActionFromDB(kind string, args []byte) (Action, error) {
	if len(args) == 0 {
		args = []byte("{}")
	}

	if !gjson.ValidBytes(args) {
		return nil, fmt.Errorf("invalid %s action args: %q", kind, string(args))
	}
	payload := gjson.ParseBytes(args)

	switch kind {
	case "CREATE_ACCOUNT":
		return CreateAccount{}, nil

	case "DEPLOY_CONTRACT":
		return DeployContract{}, nil

	case "FUNCTION_CALL":
		methodArgs, err := decodeBase64Field(payload, "args_base64")
		if err != nil {
			return nil, fmt.Errorf("function call args: %w", err)
		}

		return FunctionCall{
			MethodName: payload.Get("method_name").String(),
			Args:       methodArgs,
			Gas:        payload.Get("gas").Uint(),
			Deposit:    amount(payload.Get("deposit")),
		}, nil

	case "TRANSFER":
		deposit := payload.Get("deposit")
		if !deposit.Exists() {
			return nil, fmt.Errorf("transfer action without deposit")
		}
		return Transfer{Deposit: amount(deposit)}, nil

	case "STAKE":
		return Stake{
			Stake:     amount(payload.Get("stake")),
			PublicKey: payload.Get("public_key").String(),
		}, nil

	case "ADD_KEY":
		accessKey := payload.Get("access_key")
		permission, err := dbPermission(accessKey.Get("permission"))
		if err != nil {
			return nil, err
		}

		return AddKey{
			PublicKey: payload.Get("public_key").String(),
			AccessKey: AccessKey{
				Nonce:      accessKey.Get("nonce").Uint(),
				Permission: permission,
			},
		}, nil

	case "DELETE_KEY":
		return DeleteKey{PublicKey: payload.Get("public_key").String()}, nil

	case "DELETE_ACCOUNT":
		return DeleteAccount{BeneficiaryID: payload.Get("beneficiary_id").String()}, nil
	}

	return nil, &UnmappableActionKindError{Source: "indexer", Kind: kind}
}

func dbPermission(node gjson.Result) (AccessKeyPermission, error) {
	switch kind := node.Get("permission_kind").String(); kind {
	case "FULL_ACCESS":
		return AccessKeyPermission{}, nil

	case "FUNCTION_CALL":
		details := node.Get("permission_details")
		return AccessKeyPermission{FunctionCall: &FunctionCallPermission{
			Allowance:   optionalAmount(details.Get("allowance")),
			ReceiverID:  details.Get("receiver_id").String(),
			MethodNames: stringList(details.Get("method_names")),
		}}, nil

	default:
		return AccessKeyPermission{}, fmt.Errorf("unknown access key permission kind %q", kind)
	}
}

// ActionFromRPC maps an RPC action, either a bare string like "CreateAccount"
// or a single-key object like {"Transfer": {"deposit": "1"}}, to an Action.
func ActionFromRPC(raw []byte) (Action, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid rpc action: %q", string(raw))
	}

	kind, payload := discriminant(gjson.ParseBytes(raw))
	switch kind {
	case "CreateAccount":
		return CreateAccount{}, nil

	case "DeployContract":
		return DeployContract{}, nil

	case "FunctionCall":
		methodArgs, err := decodeBase64Field(payload, "args")
		if err != nil {
			return nil, fmt.Errorf("function call args: %w", err)
		}

		return FunctionCall{
			MethodName: payload.Get("method_name").String(),
			Args:       methodArgs,
			Gas:        payload.Get("gas").Uint(),
			Deposit:    amount(payload.Get("deposit")),
		}, nil

	case "Transfer":
		deposit := payload.Get("deposit")
		if !deposit.Exists() {
			return nil, fmt.Errorf("transfer action without deposit")
		}
		return Transfer{Deposit: amount(deposit)}, nil

	case "Stake":
		return Stake{
			Stake:     amount(payload.Get("stake")),
			PublicKey: payload.Get("public_key").String(),
		}, nil

	case "AddKey":
		accessKey := payload.Get("access_key")
		permission, err := rpcPermission(accessKey.Get("permission"))
		if err != nil {
			return nil, err
		}

		return AddKey{
			PublicKey: payload.Get("public_key").String(),
			AccessKey: AccessKey{
				Nonce:      accessKey.Get("nonce").Uint(),
				Permission: permission,
			},
		}, nil

	case "DeleteKey":
		return DeleteKey{PublicKey: payload.Get("public_key").String()}, nil

	case "DeleteAccount":
		return DeleteAccount{BeneficiaryID: payload.Get("beneficiary_id").String()}, nil
	}

	return nil, &UnmappableActionKindError{Source: "rpc", Kind: kind}
}

func rpcPermission(node gjson.Result) (AccessKeyPermission, error) {
	kind, payload := discriminant(node)
	switch kind {
	case "FullAccess":
		return AccessKeyPermission{}, nil

	case "FunctionCall":
		return AccessKeyPermission{FunctionCall: &FunctionCallPermission{
			Allowance:   optionalAmount(payload.Get("allowance")),
			ReceiverID:  payload.Get("receiver_id").String(),
			MethodNames: stringList(payload.Get("method_names")),
		}}, nil

	default:
		return AccessKeyPermission{}, fmt.Errorf("unknown access key permission %q", node.Raw)
	}
}

func decodeBase64Field(payload gjson.Result, path string) ([]byte, error) {
	field := payload.Get(path)
	if !field.Exists() || field.Type == gjson.Null {
		return nil, nil
	}

	out, err := base64.StdEncoding.DecodeString(field.String())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return out, nil
}
