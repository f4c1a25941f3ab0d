// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// frozenTimestamp is what plog.TestLogger stamps on every entry.
const frozenTimestamp = "2099-08-08T13:57:36.123456Z"

type WantedLog struct {
	Level   string
	Logger  string
	Message string
	Params  map[string]any
}

// WantLog describes one expected JSON log entry. Numbers in params must be float64
// because that is what they decode to.
func WantLog(level, logger, message string, params map[string]any) WantedLog {
	return WantedLog{Level: level, Logger: logger, Message: message, Params: params}
}

// CompareLogs checks the output of a plog.TestLogger entry by entry, in order.
func CompareLogs(t *testing.T, wantLogs []WantedLog, actualLogsOneLiner string) {
	t.Helper()

	if len(wantLogs) == 0 {
		require.Empty(t, actualLogsOneLiner, "no logs were expected, but some were found")
		return
	}

	wantJSONLogs := make([]map[string]any, 0, len(wantLogs))
	wantMessages := make([]string, 0, len(wantLogs))
	for _, wantLog := range wantLogs {
		wantJSONLog := map[string]any{
			"level":     wantLog.Level,
			"message":   wantLog.Message,
			"timestamp": frozenTimestamp,
		}
		if wantLog.Logger != "" {
			wantJSONLog["logger"] = wantLog.Logger
		}
		for k, v := range wantLog.Params {
			wantJSONLog[k] = v
		}
		wantJSONLogs = append(wantJSONLogs, wantJSONLog)
		wantMessages = append(wantMessages, wantLog.Message)
	}

	actualLines := strings.Split(strings.TrimSuffix(actualLogsOneLiner, "\n"), "\n")
	actualJSONLogs := make([]map[string]any, 0, len(actualLines))
	actualMessages := make([]string, 0, len(actualLines))
	for _, line := range actualLines {
		actualJSONLog := make(map[string]any)
		require.NoError(t, json.Unmarshal([]byte(line), &actualJSONLog), "log line is not JSON: %s", line)
		actualJSONLogs = append(actualJSONLogs, actualJSONLog)

		actualMessage, ok := actualJSONLog["message"].(string)
		require.True(t, ok, "actual message is not a string, instead %+v", actualJSONLog["message"])
		actualMessages = append(actualMessages, actualMessage)
	}

	// compare the messages first so a missing or extra entry is easy to spot
	require.Equal(t, wantMessages, actualMessages)

	for i := range wantJSONLogs {
		require.Equal(t, wantJSONLogs[i], actualJSONLogs[i], "log entry for message %q does not match", wantJSONLogs[i]["message"])
	}
}
