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
	"context"
	"errors"

	"github.com/dfuse-io/dfuse-near/explorer"
	"github.com/streamingfast/derr"
)

func InvalidCursorError(ctx context.Context, cause error, cursor string) *derr.ErrorResponse {
	return derr.HTTPBadRequestError(ctx, cause, derr.C("invalid_cursor_error"),
		"The cursor is invalid.",
		"cursor", cursor,
		"reason", cause.Error(),
	)
}

func InvalidLimitError(ctx context.Context, cause error, limit string) *derr.ErrorResponse {
	return derr.HTTPBadRequestError(ctx, cause, derr.C("invalid_limit_error"),
		"The limit must be a positive integer.",
		"limit", limit,
	)
}

func UnknownNetworkError(ctx context.Context, cause error, network string) *derr.ErrorResponse {
	return derr.HTTPBadRequestError(ctx, cause, derr.C("unknown_network_error"),
		"The requested network is not served.",
		"network", network,
	)
}

func TransactionNotFoundError(ctx context.Context, network, hash string) *derr.ErrorResponse {
	return derr.HTTPNotFoundError(ctx, nil, derr.C("data_transaction_not_found_error"),
		"The requested transaction was not found.",
		"network", network,
		"hash", hash,
	)
}

func UpstreamUnavailableError(ctx context.Context, cause error) *derr.ErrorResponse {
	return derr.HTTPServiceUnavailableError(ctx, cause, derr.C("upstream_unavailable_error"),
		"A data source is currently unavailable, try again later.",
	)
}

func DataInconsistencyError(ctx context.Context, cause error) *derr.ErrorResponse {
	return derr.HTTPInternalServerError(ctx, cause, derr.C("data_inconsistency_error"),
		"Data sources disagree with each other, unable to build a response.",
	)
}

// toErrorResponse maps an explorer error to the response sent to the client,
// anything not known becomes an unexpected error.
func toErrorResponse(ctx context.Context, network string, err error) *derr.ErrorResponse {
	switch {
	case errors.Is(err, explorer.ErrUnknownNetwork):
		return UnknownNetworkError(ctx, err, network)
	case errors.Is(err, explorer.ErrUpstreamUnavailable):
		return UpstreamUnavailableError(ctx, err)
	case errors.Is(err, explorer.ErrDataInconsistency):
		return DataInconsistencyError(ctx, err)
	}

	return derr.UnexpectedError(ctx, err)
}
