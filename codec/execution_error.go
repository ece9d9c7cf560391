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

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// The failure taxonomy mirrors the RPC one: an ExecutionError is either an
// ActionError, an InvalidTxError or unknown. ActionError kinds nest
// FunctionCallError kinds which nest CompilationError kinds. Each level has
// an Unknown variant which receives anything unrecognized.

type ExecutionError interface{ isExecutionError() }
type ActionErrorKind interface{ isActionErrorKind() }
type FunctionCallErrorKind interface{ isFunctionCallErrorKind() }
type CompilationErrorKind interface{ isCompilationErrorKind() }
type TransactionErrorKind interface{ isTransactionErrorKind() }

type ActionError struct {
	// Index of the failing action, nil when the failure is not tied to one.
	Index *uint64         `json:"index"`
	Kind  ActionErrorKind `json:"kind"`
}

type InvalidTxError struct {
	Kind TransactionErrorKind `json:"kind"`
}

type UnknownExecutionError struct{}

func (ActionError) isExecutionError()           {}
func (InvalidTxError) isExecutionError()        {}
func (UnknownExecutionError) isExecutionError() {}

// Action error kinds

type AccountAlreadyExists struct {
	AccountID string `json:"accountId"`
}

type AccountDoesNotExist struct {
	AccountID string `json:"accountId"`
}

type CreateAccountOnlyByRegistrar struct {
	AccountID          string `json:"accountId"`
	RegistrarAccountID string `json:"registrarAccountId"`
	PredecessorID      string `json:"predecessorId"`
}

type CreateAccountNotAllowed struct {
	AccountID     string `json:"accountId"`
	PredecessorID string `json:"predecessorId"`
}

type ActorNoPermission struct {
	AccountID string `json:"accountId"`
	ActorID   string `json:"actorId"`
}

type DeleteKeyDoesNotExist struct {
	AccountID string `json:"accountId"`
	PublicKey string `json:"publicKey"`
}

type AddKeyAlreadyExists struct {
	AccountID string `json:"accountId"`
	PublicKey string `json:"publicKey"`
}

type DeleteAccountStaking struct {
	AccountID string `json:"accountId"`
}

type LackBalanceForState struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
}

type TriesToUnstake struct {
	AccountID string `json:"accountId"`
}

type TriesToStake struct {
	AccountID string `json:"accountId"`
	Stake     string `json:"stake"`
	Locked    string `json:"locked"`
	Balance   string `json:"balance"`
}

type InsufficientStake struct {
	AccountID    string `json:"accountId"`
	Stake        string `json:"stake"`
	MinimumStake string `json:"minimumStake"`
}

type FunctionCallError struct {
	Kind FunctionCallErrorKind `json:"kind"`
}

type NewReceiptValidationError struct {
	Details json.RawMessage `json:"details"`
}

type OnlyImplicitAccountCreationAllowed struct {
	AccountID string `json:"accountId"`
}

type DeleteAccountWithLargeState struct {
	AccountID string `json:"accountId"`
}

type UnknownActionError struct{}

func (AccountAlreadyExists) isActionErrorKind()               {}
func (AccountDoesNotExist) isActionErrorKind()                {}
func (CreateAccountOnlyByRegistrar) isActionErrorKind()       {}
func (CreateAccountNotAllowed) isActionErrorKind()            {}
func (ActorNoPermission) isActionErrorKind()                  {}
func (DeleteKeyDoesNotExist) isActionErrorKind()              {}
func (AddKeyAlreadyExists) isActionErrorKind()                {}
func (DeleteAccountStaking) isActionErrorKind()               {}
func (LackBalanceForState) isActionErrorKind()                {}
func (TriesToUnstake) isActionErrorKind()                     {}
func (TriesToStake) isActionErrorKind()                       {}
func (InsufficientStake) isActionErrorKind()                  {}
func (FunctionCallError) isActionErrorKind()                  {}
func (NewReceiptValidationError) isActionErrorKind()          {}
func (OnlyImplicitAccountCreationAllowed) isActionErrorKind() {}
func (DeleteAccountWithLargeState) isActionErrorKind()        {}
func (UnknownActionError) isActionErrorKind()                 {}

// Function call error kinds

type CompilationError struct {
	Kind CompilationErrorKind `json:"kind"`
}

type LinkError struct {
	Message string `json:"message"`
}

type MethodResolveError struct {
	Reason string `json:"reason"`
}

type WasmTrap struct {
	Reason string `json:"reason"`
}

type WasmUnknownError struct{}

type HostError struct {
	Reason  string          `json:"reason"`
	Details json.RawMessage `json:"details,omitempty"`
}

type FunctionCallExecutionError struct {
	Message string `json:"message"`
}

type UnknownFunctionCallError struct{}

func (CompilationError) isFunctionCallErrorKind()           {}
func (LinkError) isFunctionCallErrorKind()                  {}
func (MethodResolveError) isFunctionCallErrorKind()         {}
func (WasmTrap) isFunctionCallErrorKind()                   {}
func (WasmUnknownError) isFunctionCallErrorKind()           {}
func (HostError) isFunctionCallErrorKind()                  {}
func (FunctionCallExecutionError) isFunctionCallErrorKind() {}
func (UnknownFunctionCallError) isFunctionCallErrorKind()   {}

// Compilation error kinds

type CodeDoesNotExist struct {
	AccountID string `json:"accountId"`
}

type PrepareError struct {
	Reason string `json:"reason"`
}

type WasmerCompileError struct {
	Message string `json:"message"`
}

type UnsupportedCompiler struct {
	Message string `json:"message"`
}

type UnknownCompilationError struct{}

func (CodeDoesNotExist) isCompilationErrorKind()        {}
func (PrepareError) isCompilationErrorKind()            {}
func (WasmerCompileError) isCompilationErrorKind()      {}
func (UnsupportedCompiler) isCompilationErrorKind()     {}
func (UnknownCompilationError) isCompilationErrorKind() {}

// Transaction error kinds

type InvalidAccessKey struct {
	Details json.RawMessage `json:"details"`
}

type InvalidSignerID struct {
	SignerID string `json:"signerId"`
}

type SignerDoesNotExist struct {
	SignerID string `json:"signerId"`
}

type InvalidNonce struct {
	TransactionNonce uint64 `json:"transactionNonce"`
	AccessKeyNonce   uint64 `json:"accessKeyNonce"`
}

type NonceTooLarge struct {
	TransactionNonce uint64 `json:"transactionNonce"`
	UpperBound       uint64 `json:"upperBound"`
}

type InvalidReceiverID struct {
	ReceiverID string `json:"receiverId"`
}

type InvalidSignature struct{}

type NotEnoughBalance struct {
	SignerID string `json:"signerId"`
	Balance  string `json:"balance"`
	Cost     string `json:"cost"`
}

type SignerLackBalanceForState struct {
	SignerID string `json:"signerId"`
	Amount   string `json:"amount"`
}

type CostOverflow struct{}

type InvalidChain struct{}

type Expired struct{}

type ActionsValidation struct {
	Details json.RawMessage `json:"details"`
}

type TransactionSizeExceeded struct {
	Size  uint64 `json:"size"`
	Limit uint64 `json:"limit"`
}

type UnknownTransactionError struct{}

func (InvalidAccessKey) isTransactionErrorKind()          {}
func (InvalidSignerID) isTransactionErrorKind()           {}
func (SignerDoesNotExist) isTransactionErrorKind()        {}
func (InvalidNonce) isTransactionErrorKind()              {}
func (NonceTooLarge) isTransactionErrorKind()             {}
func (InvalidReceiverID) isTransactionErrorKind()         {}
func (InvalidSignature) isTransactionErrorKind()          {}
func (NotEnoughBalance) isTransactionErrorKind()          {}
func (SignerLackBalanceForState) isTransactionErrorKind() {}
func (CostOverflow) isTransactionErrorKind()              {}
func (InvalidChain) isTransactionErrorKind()              {}
func (Expired) isTransactionErrorKind()                   {}
func (ActionsValidation) isTransactionErrorKind()         {}
func (TransactionSizeExceeded) isTransactionErrorKind()   {}
func (UnknownTransactionError) isTransactionErrorKind()   {}

// ExecutionErrorFromRPC maps the payload of an RPC `Failure` status.
func ExecutionErrorFromRPC(raw []byte) ExecutionError {
	if !gjson.ValidBytes(raw) {
		return UnknownExecutionError{}
	}
	return executionErrorFromNode(gjson.ParseBytes(raw))
}

func executionErrorFromNode(node gjson.Result) ExecutionError {
	key, payload := discriminant(node)
	switch key {
	case "ActionError":
		out := ActionError{Kind: actionErrorKindFromNode(payload.Get("kind"))}
		if index := payload.Get("index"); index.Type == gjson.Number {
			value := index.Uint()
			out.Index = &value
		}
		return out

	case "InvalidTxError":
		return InvalidTxError{Kind: transactionErrorKindFromNode(payload)}
	}

	zlog.Debug("unmapped execution error", zap.String("raw", node.Raw))
	return UnknownExecutionError{}
}

func actionErrorKindFromNode(node gjson.Result) ActionErrorKind {
	key, p := discriminant(node)
	accountID := p.Get("account_id").String()

	switch key {
	case "AccountAlreadyExists":
		return AccountAlreadyExists{AccountID: accountID}
	case "AccountDoesNotExist":
		return AccountDoesNotExist{AccountID: accountID}
	case "CreateAccountOnlyByRegistrar":
		return CreateAccountOnlyByRegistrar{
			AccountID:          accountID,
			RegistrarAccountID: p.Get("registrar_account_id").String(),
			PredecessorID:      p.Get("predecessor_id").String(),
		}
	case "CreateAccountNotAllowed":
		return CreateAccountNotAllowed{AccountID: accountID, PredecessorID: p.Get("predecessor_id").String()}
	case "ActorNoPermission":
		return ActorNoPermission{AccountID: accountID, ActorID: p.Get("actor_id").String()}
	case "DeleteKeyDoesNotExist":
		return DeleteKeyDoesNotExist{AccountID: accountID, PublicKey: p.Get("public_key").String()}
	case "AddKeyAlreadyExists":
		return AddKeyAlreadyExists{AccountID: accountID, PublicKey: p.Get("public_key").String()}
	case "DeleteAccountStaking":
		return DeleteAccountStaking{AccountID: accountID}
	case "LackBalanceForState":
		return LackBalanceForState{AccountID: accountID, Amount: amount(p.Get("amount"))}
	case "TriesToUnstake":
		return TriesToUnstake{AccountID: accountID}
	case "TriesToStake":
		return TriesToStake{
			AccountID: accountID,
			Stake:     amount(p.Get("stake")),
			Locked:    amount(p.Get("locked")),
			Balance:   amount(p.Get("balance")),
		}
	case "InsufficientStake":
		return InsufficientStake{
			AccountID:    accountID,
			Stake:        amount(p.Get("stake")),
			MinimumStake: amount(p.Get("minimum_stake")),
		}
	case "FunctionCallError":
		return FunctionCallError{Kind: functionCallErrorKindFromNode(p)}
	case "NewReceiptValidationError":
		return NewReceiptValidationError{Details: rawDetails(p)}
	case "OnlyImplicitAccountCreationAllowed":
		return OnlyImplicitAccountCreationAllowed{AccountID: accountID}
	case "DeleteAccountWithLargeState":
		return DeleteAccountWithLargeState{AccountID: accountID}
	}

	zlog.Debug("unmapped action error kind", zap.String("raw", node.Raw))
	return UnknownActionError{}
}

func functionCallErrorKindFromNode(node gjson.Result) FunctionCallErrorKind {
	key, p := discriminant(node)
	switch key {
	case "CompilationError":
		return CompilationError{Kind: compilationErrorKindFromNode(p)}
	case "LinkError":
		return LinkError{Message: p.Get("msg").String()}
	case "MethodResolveError":
		return MethodResolveError{Reason: p.String()}
	case "WasmTrap":
		return WasmTrap{Reason: p.String()}
	case "WasmUnknownError":
		return WasmUnknownError{}
	case "HostError":
		reason, details := discriminant(p)
		out := HostError{Reason: reason}
		if details.Exists() {
			out.Details = json.RawMessage(details.Raw)
		}
		return out
	case "ExecutionError":
		return FunctionCallExecutionError{Message: p.String()}
	}

	zlog.Debug("unmapped function call error kind", zap.String("raw", node.Raw))
	return UnknownFunctionCallError{}
}

func compilationErrorKindFromNode(node gjson.Result) CompilationErrorKind {
	key, p := discriminant(node)
	switch key {
	case "CodeDoesNotExist":
		return CodeDoesNotExist{AccountID: p.Get("account_id").String()}
	case "PrepareError":
		return PrepareError{Reason: p.String()}
	case "WasmerCompileError":
		return WasmerCompileError{Message: p.Get("msg").String()}
	case "UnsupportedCompiler":
		return UnsupportedCompiler{Message: p.Get("msg").String()}
	}

	zlog.Debug("unmapped compilation error kind", zap.String("raw", node.Raw))
	return UnknownCompilationError{}
}

func transactionErrorKindFromNode(node gjson.Result) TransactionErrorKind {
	key, p := discriminant(node)
	signerID := p.Get("signer_id").String()

	switch key {
	case "InvalidAccessKeyError":
		return InvalidAccessKey{Details: rawDetails(p)}
	case "InvalidSignerId":
		return InvalidSignerID{SignerID: signerID}
	case "SignerDoesNotExist":
		return SignerDoesNotExist{SignerID: signerID}
	case "InvalidNonce":
		return InvalidNonce{TransactionNonce: p.Get("tx_nonce").Uint(), AccessKeyNonce: p.Get("ak_nonce").Uint()}
	case "NonceTooLarge":
		return NonceTooLarge{TransactionNonce: p.Get("tx_nonce").Uint(), UpperBound: p.Get("upper_bound").Uint()}
	case "InvalidReceiverId":
		return InvalidReceiverID{ReceiverID: p.Get("receiver_id").String()}
	case "InvalidSignature":
		return InvalidSignature{}
	case "NotEnoughBalance":
		return NotEnoughBalance{SignerID: signerID, Balance: amount(p.Get("balance")), Cost: amount(p.Get("cost"))}
	case "LackBalanceForState":
		return SignerLackBalanceForState{SignerID: signerID, Amount: amount(p.Get("amount"))}
	case "CostOverflow":
		return CostOverflow{}
	case "InvalidChain":
		return InvalidChain{}
	case "Expired":
		return Expired{}
	case "ActionsValidation":
		return ActionsValidation{Details: rawDetails(p)}
	case "TransactionSizeExceeded":
		return TransactionSizeExceeded{Size: p.Get("size").Uint(), Limit: p.Get("limit").Uint()}
	}

	zlog.Debug("unmapped transaction error kind", zap.String("raw", node.Raw))
	return UnknownTransactionError{}
}

func rawDetails(node gjson.Result) json.RawMessage {
	if !node.Exists() {
		return nil
	}
	return json.RawMessage(node.Raw)
}
