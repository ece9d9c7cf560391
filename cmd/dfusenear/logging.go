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
	"os"

	"github.com/spf13/viper"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zlog = zap.NewNop()

func init() {
	logging.Register("github.com/dfuse-io/dfuse-near/cmd/dfusenear", &zlog)
}

func setupLogger() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if value := viper.GetString("log-level"); value != "" {
		if err := level.UnmarshalText([]byte(value)); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level %q, using 'info' instead (error: %s)\n", value, err)
		}
	}

	var encoder zapcore.Encoder
	switch format := viper.GetString("log-format"); format {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logger := zap.New(zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level), zap.AddCaller())
	logging.Set(logger)

	// Hijack standard Golang `log` and redirect it to our common logger
	zap.RedirectStdLogAt(logger, zap.DebugLevel)
}
