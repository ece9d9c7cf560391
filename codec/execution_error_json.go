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

func (e ActionError) MarshalJSON() ([]byte, error) {
	type payload ActionError
	return typed("actionError", payload(e))
}

func (e InvalidTxError) MarshalJSON() ([]byte, error) {
	type payload InvalidTxError
	return typed("invalidTxError", payload(e))
}

func (e UnknownExecutionError) MarshalJSON() ([]byte, error) {
	type payload UnknownExecutionError
	return typed("unknownExecutionError", payload(e))
}

func (e AccountAlreadyExists) MarshalJSON() ([]byte, error) {
	type payload AccountAlreadyExists
	return typed("accountAlreadyExists", payload(e))
}

func (e AccountDoesNotExist) MarshalJSON() ([]byte, error) {
	type payload AccountDoesNotExist
	return typed("accountDoesNotExist", payload(e))
}

func (e CreateAccountOnlyByRegistrar) MarshalJSON() ([]byte, error) {
	type payload CreateAccountOnlyByRegistrar
	return typed("createAccountOnlyByRegistrar", payload(e))
}

func (e CreateAccountNotAllowed) MarshalJSON() ([]byte, error) {
	type payload CreateAccountNotAllowed
	return typed("createAccountNotAllowed", payload(e))
}

func (e ActorNoPermission) MarshalJSON() ([]byte, error) {
	type payload ActorNoPermission
	return typed("actorNoPermission", payload(e))
}

func (e DeleteKeyDoesNotExist) MarshalJSON() ([]byte, error) {
	type payload DeleteKeyDoesNotExist
	return typed("deleteKeyDoesNotExist", payload(e))
}

func (e AddKeyAlreadyExists) MarshalJSON() ([]byte, error) {
	type payload AddKeyAlreadyExists
	return typed("addKeyAlreadyExists", payload(e))
}

func (e DeleteAccountStaking) MarshalJSON() ([]byte, error) {
	type payload DeleteAccountStaking
	return typed("deleteAccountStaking", payload(e))
}

func (e LackBalanceForState) MarshalJSON() ([]byte, error) {
	type payload LackBalanceForState
	return typed("lackBalanceForState", payload(e))
}

func (e TriesToUnstake) MarshalJSON() ([]byte, error) {
	type payload TriesToUnstake
	return typed("triesToUnstake", payload(e))
}

func (e TriesToStake) MarshalJSON() ([]byte, error) {
	type payload TriesToStake
	return typed("triesToStake", payload(e))
}

func (e InsufficientStake) MarshalJSON() ([]byte, error) {
	type payload InsufficientStake
	return typed("insufficientStake", payload(e))
}

func (e FunctionCallError) MarshalJSON() ([]byte, error) {
	type payload FunctionCallError
	return typed("functionCallError", payload(e))
}

func (e NewReceiptValidationError) MarshalJSON() ([]byte, error) {
	type payload NewReceiptValidationError
	return typed("newReceiptValidationError", payload(e))
}

func (e OnlyImplicitAccountCreationAllowed) MarshalJSON() ([]byte, error) {
	type payload OnlyImplicitAccountCreationAllowed
	return typed("onlyImplicitAccountCreationAllowed", payload(e))
}

func (e DeleteAccountWithLargeState) MarshalJSON() ([]byte, error) {
	type payload DeleteAccountWithLargeState
	return typed("deleteAccountWithLargeState", payload(e))
}

func (e UnknownActionError) MarshalJSON() ([]byte, error) {
	type payload UnknownActionError
	return typed("unknownActionError", payload(e))
}

func (e CompilationError) MarshalJSON() ([]byte, error) {
	type payload CompilationError
	return typed("compilationError", payload(e))
}

func (e LinkError) MarshalJSON() ([]byte, error) {
	type payload LinkError
	return typed("linkError", payload(e))
}

func (e MethodResolveError) MarshalJSON() ([]byte, error) {
	type payload MethodResolveError
	return typed("methodResolveError", payload(e))
}

func (e WasmTrap) MarshalJSON() ([]byte, error) {
	type payload WasmTrap
	return typed("wasmTrap", payload(e))
}

func (e WasmUnknownError) MarshalJSON() ([]byte, error) {
	type payload WasmUnknownError
	return typed("wasmUnknownError", payload(e))
}

func (e HostError) MarshalJSON() ([]byte, error) {
	type payload HostError
	return typed("hostError", payload(e))
}

func (e FunctionCallExecutionError) MarshalJSON() ([]byte, error) {
	type payload FunctionCallExecutionError
	return typed("functionCallExecutionError", payload(e))
}

func (e UnknownFunctionCallError) MarshalJSON() ([]byte, error) {
	type payload UnknownFunctionCallError
	return typed("unknownFunctionCallError", payload(e))
}

func (e CodeDoesNotExist) MarshalJSON() ([]byte, error) {
	type payload CodeDoesNotExist
	return typed("codeDoesNotExist", payload(e))
}

func (e PrepareError) MarshalJSON() ([]byte, error) {
	type payload PrepareError
	return typed("prepareError", payload(e))
}

func (e WasmerCompileError) MarshalJSON() ([]byte, error) {
	type payload WasmerCompileError
	return typed("wasmerCompileError", payload(e))
}

func (e UnsupportedCompiler) MarshalJSON() ([]byte, error) {
	type payload UnsupportedCompiler
	return typed("unsupportedCompiler", payload(e))
}

func (e UnknownCompilationError) MarshalJSON() ([]byte, error) {
	type payload UnknownCompilationError
	return typed("unknownCompilationError", payload(e))
}

func (e InvalidAccessKey) MarshalJSON() ([]byte, error) {
	type payload InvalidAccessKey
	return typed("invalidAccessKey", payload(e))
}

func (e InvalidSignerID) MarshalJSON() ([]byte, error) {
	type payload InvalidSignerID
	return typed("invalidSignerId", payload(e))
}

func (e SignerDoesNotExist) MarshalJSON() ([]byte, error) {
	type payload SignerDoesNotExist
	return typed("signerDoesNotExist", payload(e))
}

func (e InvalidNonce) MarshalJSON() ([]byte, error) {
	type payload InvalidNonce
	return typed("invalidNonce", payload(e))
}

func (e NonceTooLarge) MarshalJSON() ([]byte, error) {
	type payload NonceTooLarge
	return typed("nonceTooLarge", payload(e))
}

func (e InvalidReceiverID) MarshalJSON() ([]byte, error) {
	type payload InvalidReceiverID
	return typed("invalidReceiverId", payload(e))
}

func (e InvalidSignature) MarshalJSON() ([]byte, error) {
	type payload InvalidSignature
	return typed("invalidSignature", payload(e))
}

func (e NotEnoughBalance) MarshalJSON() ([]byte, error) {
	type payload NotEnoughBalance
	return typed("notEnoughBalance", payload(e))
}

func (e SignerLackBalanceForState) MarshalJSON() ([]byte, error) {
	type payload SignerLackBalanceForState
	return typed("signerLackBalanceForState", payload(e))
}

func (e CostOverflow) MarshalJSON() ([]byte, error) {
	type payload CostOverflow
	return typed("costOverflow", payload(e))
}

func (e InvalidChain) MarshalJSON() ([]byte, error) {
	type payload InvalidChain
	return typed("invalidChain", payload(e))
}

func (e Expired) MarshalJSON() ([]byte, error) {
	type payload Expired
	return typed("expired", payload(e))
}

func (e ActionsValidation) MarshalJSON() ([]byte, error) {
	type payload ActionsValidation
	return typed("actionsValidation", payload(e))
}

func (e TransactionSizeExceeded) MarshalJSON() ([]byte, error) {
	type payload TransactionSizeExceeded
	return typed("transactionSizeExceeded", payload(e))
}

func (e UnknownTransactionError) MarshalJSON() ([]byte, error) {
	type payload UnknownTransactionError
	return typed("unknownTransactionError", payload(e))
}
