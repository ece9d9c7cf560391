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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streamingfast/derr"
)

var rootCmd = &cobra.Command{Use: "dfusenear", Short: "NEAR explorer activity & transaction API"}
var startCmd = &cobra.Command{Use: "start", Short: "Serves the explorer REST API", RunE: startRunE, Args: cobra.NoArgs}

var version = "dev"
var commit = ""

func main() {
	cobra.OnInitialize(func() {
		autoBind(rootCmd, "DFUSENEAR")
	})

	rootCmd.Version = version + "-" + commit

	rootCmd.PersistentFlags().String("log-format", "text", "Format for logging to stdout. Either 'text' or 'json'")
	rootCmd.PersistentFlags().String("log-level", "info", "Level of the dfusenear loggers, one of 'debug', 'info', 'warn' or 'error'")
	rootCmd.PersistentFlags().String("metrics-listen-addr", ":9102", "If non-empty, the process will listen on this address to serve Prometheus metrics")

	startCmd.Flags().String("http-listen-addr", ":8080", "Address to listen for incoming HTTP requests")
	startCmd.Flags().StringSlice("indexer-dsn", nil, "Indexer database of a network as <network>=<dsn>, repeatable. DSN is postgres://... or sqlite3://...")
	startCmd.Flags().StringSlice("activity-dsn", nil, "Activity database of a network as <network>=<dsn>, repeatable. Optional, a network without one serves empty activity")
	startCmd.Flags().StringSlice("archival-rpc-addr", nil, "Archival RPC node of a network as <network>=<addr>, repeatable")
	startCmd.Flags().Int("default-limit", 20, "Activity page size used when the request does not specify one")
	startCmd.Flags().Int("max-limit", 100, "Largest activity page size a request can ask for")
	startCmd.Flags().Duration("graceful-shutdown-delay", 0, "Delay before shutting down, after the health endpoint returns unhealthy")

	rootCmd.AddCommand(startCmd)
	derr.Check("running dfusenear", rootCmd.Execute())
}

// autoBind makes every flag readable through viper under its own name, and
// overridable with an environment variable like `DFUSENEAR_LOG_LEVEL`. Lists
// given through the environment are whitespace separated.
func autoBind(root *cobra.Command, prefix string) {
	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	derr.Check("binding global flags", viper.BindPFlags(root.PersistentFlags()))
	for _, cmd := range root.Commands() {
		derr.Check("binding "+cmd.Name()+" flags", viper.BindPFlags(cmd.Flags()))
	}
}
