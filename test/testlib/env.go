// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testlib reads the environment of the integration tests and skips them when it is missing.
package testlib

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/backends"
	"go.tabsync.dev/internal/config"
	"go.tabsync.dev/internal/credentials"
	"go.tabsync.dev/internal/plog"
)

// TestEnv captures the external parameters consumed by the integration tests.
type TestEnv struct {
	// Drivers are the backends to exercise, from TABSYNC_TEST_DRIVERS (default chromedp).
	Drivers            []config.Driver
	WebDriverURL       string
	RemoteDebuggingURL string
	Headless           bool
	// BaseURL is the live portal, only set for live tests.
	BaseURL string
}

// SkipUnlessIntegration skips the current test if `-short` has been passed to `go test`.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test because of '-short' flag")
	}
}

// BrowserEnv is the environment for tests that drive a real browser against local pages.
// They run when TABSYNC_TEST_BROWSER=1.
func BrowserEnv(t *testing.T) *TestEnv {
	t.Helper()
	SkipUnlessIntegration(t)

	if os.Getenv("TABSYNC_TEST_BROWSER") != "1" {
		t.Skip("set TABSYNC_TEST_BROWSER=1 to run tests against a real browser")
	}
	return loadEnv(t)
}

// LiveEnv is the environment for tests against the live portal. They run when
// TABSYNC_TEST_LIVE=1 and the portal credentials are in the environment.
func LiveEnv(t *testing.T) *TestEnv {
	t.Helper()
	SkipUnlessIntegration(t)

	if os.Getenv("TABSYNC_TEST_LIVE") != "1" {
		t.Skip("set TABSYNC_TEST_LIVE=1 to run tests against the live portal")
	}
	for _, key := range []string{credentials.DefaultUsernameEnvVarName, credentials.DefaultPasswordEnvVarName} {
		if os.Getenv(key) == "" {
			t.Skipf("live tests need %s", key)
		}
	}

	env := loadEnv(t)
	env.BaseURL = wantEnv("TABSYNC_TEST_BASE_URL", "")
	return env
}

func loadEnv(t *testing.T) *TestEnv {
	t.Helper()

	env := &TestEnv{
		WebDriverURL:       os.Getenv("TABSYNC_TEST_WEBDRIVER_URL"),
		RemoteDebuggingURL: os.Getenv("TABSYNC_TEST_REMOTE_DEBUGGING_URL"),
		Headless:           wantEnv("TABSYNC_TEST_HEADLESS", "true") == "true",
	}
	for _, d := range strings.Split(wantEnv("TABSYNC_TEST_DRIVERS", string(config.DriverChromedp)), ",") {
		if d = strings.TrimSpace(d); d != "" {
			env.Drivers = append(env.Drivers, config.Driver(d))
		}
	}
	require.NotEmpty(t, env.Drivers, "TABSYNC_TEST_DRIVERS must name at least one driver")
	return env
}

// Config is the tabsync configuration for driver in this environment.
func (e *TestEnv) Config(t *testing.T, driver config.Driver) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Driver:             driver,
		BaseURL:            e.BaseURL,
		WebDriverURL:       e.WebDriverURL,
		RemoteDebuggingURL: e.RemoteDebuggingURL,
		Headless:           ptr.To(e.Headless),
		ArtifactsDir:       t.TempDir(),
	}
	require.NoError(t, config.Complete(cfg))
	return cfg
}

// OpenDriver starts a browser with driver and closes it when the test ends.
func (e *TestEnv) OpenDriver(t *testing.T, ctx context.Context, driver config.Driver) browser.Driver { //nolint:revive // t first like the other helpers
	t.Helper()

	if driver == config.DriverWebDriver && e.WebDriverURL == "" {
		t.Skip("the webdriver backend needs TABSYNC_TEST_WEBDRIVER_URL")
	}

	log, _ := plog.TestLogger(t)
	d, err := backends.Open(ctx, e.Config(t, driver), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, d.Close())
	})
	return d
}

func wantEnv(key, dephault string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return dephault
	}
	return value
}
