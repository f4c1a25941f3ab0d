// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rfc3339Micro is human-readable and machine parsable with microsecond precision.
const rfc3339Micro = "2006-01-02T15:04:05.000000Z07:00"

func newLogr(ctx context.Context, encoding string) (logr.Logger, func(), error) {
	var w io.Writer = os.Stderr
	level := globalLevel
	f := func(config *zapcore.EncoderConfig) {
		if encoding == "console" {
			config.LevelKey = zapcore.OmitKey
			config.EncodeCaller = zapcore.ShortCallerEncoder
			config.EncodeTime = humanTimeEncoder
		}
	}
	var opts []zap.Option

	// allow tests to override zap config
	if overrides, ok := ctx.Value(testOverridesContextKey).(*testOverrides); ok {
		if overrides.w != nil {
			w = overrides.w
		}
		if overrides.f != nil {
			f = overrides.f
		}
		if overrides.level != nil {
			level = *overrides.level
		}
		if overrides.opts != nil {
			opts = overrides.opts
		}
	}

	// when using the trace or all log levels, an error log will contain the full stack.
	// this check is performed dynamically on the global log level.
	return newZapr(level, LevelTrace, encoding, w, f, opts...)
}

func newZapr(level zap.AtomicLevel, addStack zapcore.LevelEnabler, encoding string, w io.Writer, f func(config *zapcore.EncoderConfig), opts ...zap.Option) (logr.Logger, func(), error) {
	opts = append([]zap.Option{zap.AddStacktrace(addStack), zap.AddCaller()}, opts...)

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey, // included in caller
		StacktraceKey:  "stacktrace",
		SkipLineEnding: false,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(rfc3339Micro),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   callerEncoder,
		EncodeName:     zapcore.FullNameEncoder,

		ConsoleSeparator: "  ",
	}

	f(&encoderConfig)

	var encoder zapcore.Encoder
	switch encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	// the sink must be safe for concurrent use because the chromedp event listeners log from their own goroutines
	sink := zapcore.Lock(zapcore.AddSync(w))

	log := zap.New(zapcore.NewCore(encoder, sink, level), opts...)

	return zapr.NewLogger(log), func() { _ = log.Sync() }, nil
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	plogLevel := zapLevelToPlogLevel(l)

	if len(plogLevel) == 0 {
		return // this tells zap that it should handle encoding the level itself because we do not know the mapping
	}

	enc.AppendString(string(plogLevel))
}

func zapLevelToPlogLevel(l zapcore.Level) LogLevel {
	if l > 0 {
		// best effort mapping, the zap levels do not really translate to klog
		// but this is correct for "error" level which is all we need for logr
		return LogLevel(l.String())
	}

	// klog levels are inverted when zap handles them
	switch {
	case -l >= klogLevelAll:
		return LevelAll
	case -l >= KlogLevelTrace:
		return LevelTrace
	case -l >= KlogLevelDebug:
		return LevelDebug
	case -l >= KlogLevelInfo:
		return LevelInfo
	default:
		return "" // warning is handled via a custom key since klog level 0 is ambiguous
	}
}

func callerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(caller.String() + funcEncoder(caller))
}

func funcEncoder(caller zapcore.EntryCaller) string {
	funcName := caller.Function
	if idx := strings.LastIndexByte(funcName, '/'); idx != -1 {
		funcName = funcName[idx+1:] // keep everything after the last /
	}
	return "$" + funcName
}

func humanTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Local().Format(time.RFC1123))
}
