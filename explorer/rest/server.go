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
	"fmt"
	"net/http"
	"time"

	"github.com/dfuse-io/dfuse-near/explorer"
	"github.com/gorilla/mux"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/shutter"
	"go.uber.org/zap"
)

type Server struct {
	*shutter.Shutter

	httpServer *http.Server
	addr       string
	explorer   *explorer.Explorer
	router     *mux.Router
}

func New(addr string, explorer *explorer.Explorer) *Server {
	router := mux.NewRouter()
	srv := &Server{
		Shutter:  shutter.New(),
		addr:     addr,
		explorer: explorer,
		router:   router,
	}

	metricsRouter := router.PathPrefix("/").Subrouter()
	coreRouter := router.PathPrefix("/").Subrouter()

	metricsRouter.HandleFunc("/ping", srv.pingHandler)
	metricsRouter.HandleFunc("/healthz", srv.healthzHandler)

	coreRouter.Use(openCensusMiddleware)
	coreRouter.Use(loggingMiddleware)
	coreRouter.Use(trackingMiddleware)
	coreRouter.Use(compressionMiddleware)

	coreRouter.Methods("GET").Path("/v0/{network}/accounts/{account}/activity").HandlerFunc(srv.activityHandler)
	coreRouter.Methods("GET").Path("/v0/{network}/transactions/{hash}").HandlerFunc(srv.transactionHandler)

	srv.OnTerminating(func(_ error) {
		if srv.httpServer != nil {
			zlog.Info("gracefully shutting down http server, draining connections")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.httpServer.Shutdown(ctx)
		}
	})

	return srv
}

func (srv *Server) Handler() http.Handler {
	return srv.router
}

func (srv *Server) Serve() {
	zlog.Info("listening & serving HTTP content", zap.String("http_listen_addr", srv.addr))
	errorLogger, err := zap.NewStdLogAt(zlog, zap.ErrorLevel)
	if err != nil {
		srv.Shutdown(fmt.Errorf("unable to create error logger: %w", err))
		return
	}

	srv.httpServer = &http.Server{
		Addr:     srv.addr,
		Handler:  srv.Handler(),
		ErrorLog: errorLogger,
	}

	err = srv.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		srv.Shutdown(fmt.Errorf("failed listening http %q: %w", srv.addr, err))
	}
}

func (srv *Server) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong\n"))
}

func (srv *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if !derr.IsShuttingDown() && !srv.IsTerminating() {
		w.Write([]byte("ready\n"))
	} else {
		http.Error(w, "not ready\n", http.StatusServiceUnavailable)
	}
}
