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
	"net/http"
	"strconv"

	"github.com/dfuse-io/dfuse-near/explorer"
	"github.com/gorilla/mux"
)

type activityResponse struct {
	Items  []*explorer.ActivityItem `json:"items"`
	Cursor string                   `json:"cursor,omitempty"`
}

func (srv *Server) activityHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	network := vars["network"]

	rawLimit := r.FormValue("limit")
	limit, err := intInput(rawLimit, 0)
	if err != nil || limit < 0 {
		if err == nil {
			err = fmt.Errorf("negative limit %d", limit)
		}
		writeError(ctx, w, InvalidLimitError(ctx, err, rawLimit))
		return
	}

	rawCursor := r.FormValue("cursor")
	cursor, err := decodeCursor(rawCursor)
	if err != nil {
		writeError(ctx, w, InvalidCursorError(ctx, err, rawCursor))
		return
	}

	page, err := srv.explorer.FetchActivity(ctx, explorer.Network(network), vars["account"], limit, cursor)
	if err != nil {
		writeError(ctx, w, toErrorResponse(ctx, network, err))
		return
	}

	response := &activityResponse{Items: page.Items}
	if response.Cursor, err = encodeCursor(page.Cursor); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, response)
}

func (srv *Server) transactionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	network, hash := vars["network"], vars["hash"]

	detail, err := srv.explorer.FetchTransaction(ctx, explorer.Network(network), hash)
	if err != nil {
		writeError(ctx, w, toErrorResponse(ctx, network, err))
		return
	}

	if detail == nil {
		writeError(ctx, w, TransactionNotFoundError(ctx, network, hash))
		return
	}

	writeJSON(ctx, w, detail)
}

func intInput(in string, defaultValue int) (int, error) {
	if in == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(in)
}
