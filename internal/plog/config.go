// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"k8s.io/klog/v2"

	"go.tabsync.dev/internal/constable"
)

type LogFormat string

func (l *LogFormat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `""`, `"json"`:
		*l = FormatJSON
	case `"cli"`:
		*l = FormatCLI
	default:
		return errInvalidLogFormat
	}
	return nil
}

const (
	FormatJSON LogFormat = "json"
	FormatCLI  LogFormat = "cli"

	errInvalidLogFormat = constable.Error("invalid log format, valid choices are the empty string, 'json' or 'cli'")
)

var _ json.Unmarshaler = func() *LogFormat {
	var f LogFormat
	return &f
}()

type LogSpec struct {
	Level  LogLevel  `json:"level,omitempty"`
	Format LogFormat `json:"format,omitempty"`
}

func ValidateAndSetLogLevelAndFormatGlobally(ctx context.Context, spec LogSpec) error {
	klogLevel := klogLevelForPlogLevel(spec.Level)
	if klogLevel < 0 {
		return errInvalidLogLevel
	}

	// set the global log levels used by our code and any library code that logs through klog
	setKlogVerbosity(klogLevel)
	//nolint:gosec // the range for klogLevel is [0,108]
	globalLevel.SetLevel(zapcore.Level(-klogLevel)) // klog levels are inverted when zap handles them

	var encoding string
	switch spec.Format {
	case "", FormatJSON:
		encoding = "json"
	case FormatCLI:
		encoding = "console"
	default:
		return errInvalidLogFormat
	}

	log, flush, err := newLogr(ctx, encoding)
	if err != nil {
		return err
	}

	setGlobalLoggers(log, flush)

	return nil
}

func setKlogVerbosity(level klog.Level) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	klog.InitFlags(fs)
	if err := fs.Set("v", strconv.Itoa(int(level))); err != nil {
		panic(err) // programmer error
	}
}
