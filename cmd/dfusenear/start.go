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

package main

import (
	"fmt"

	explorerApp "github.com/dfuse-io/dfuse-near/explorer/app/explorer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/derr"
	"github.com/streamingfast/dmetrics"
	"go.uber.org/zap"
)

func startRunE(cmd *cobra.Command, args []string) (err error) {
	setupLogger()

	if addr := viper.GetString("metrics-listen-addr"); addr != "" {
		go dmetrics.Serve(addr)
	}

	config := &explorerApp.Config{
		HTTPListenAddr: viper.GetString("http-listen-addr"),
		DefaultLimit:   viper.GetInt("default-limit"),
		MaxLimit:       viper.GetInt("max-limit"),
	}

	if config.IndexerDSNs, err = explorerApp.ParseNetworkValues(viper.GetStringSlice("indexer-dsn")); err != nil {
		return fmt.Errorf("invalid --indexer-dsn: %w", err)
	}
	if config.ActivityDSNs, err = explorerApp.ParseNetworkValues(viper.GetStringSlice("activity-dsn")); err != nil {
		return fmt.Errorf("invalid --activity-dsn: %w", err)
	}
	if config.ArchivalRPCAddrs, err = explorerApp.ParseNetworkValues(viper.GetStringSlice("archival-rpc-addr")); err != nil {
		return fmt.Errorf("invalid --archival-rpc-addr: %w", err)
	}

	app := explorerApp.New(config)
	derr.Check("running explorer", app.Run())

	select {
	case <-app.Terminated():
		if err = app.Err(); err != nil {
			zlog.Error("explorer shutdown with error", zap.Error(err))
		}
	case sig := <-derr.SetupSignalHandler(viper.GetDuration("graceful-shutdown-delay")):
		zlog.Info("terminating through system signal", zap.Reflect("sig", sig))
		app.Shutdown(nil)
		<-app.Terminated()
	}

	return
}
