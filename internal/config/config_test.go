// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/credentials"
	"go.tabsync.dev/internal/here"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
)

func duration(d time.Duration) *metav1.Duration {
	return &metav1.Duration{Duration: d}
}

func defaultConfig() *Config {
	return &Config{
		Driver:             DriverChromedp,
		BaseURL:            "https://www.fondsnet.com",
		Headless:           ptr.To(false),
		UserAgent:          "weathershopper-test",
		Incognito:          ptr.To(true),
		KeyDelay:           duration(20 * time.Millisecond),
		SessionPerScenario: ptr.To(true),
		ArtifactsDir:       "./target",
		Timeouts: TimeoutsSpec{
			ImplicitWait: duration(10 * time.Second),
			PageLoad:     duration(30 * time.Second),
			Title:        duration(15 * time.Second),
			NewWindow:    duration(10 * time.Second),
			Visible:      duration(30 * time.Second),
		},
		Polling: PollingSpec{
			Title:   duration(50 * time.Millisecond),
			Window:  duration(50 * time.Millisecond),
			Visible: duration(500 * time.Millisecond),
		},
		Credentials: CredentialsSpec{
			UsernameEnv: "FONDSNET_USERNAME",
			PasswordEnv: "FONDSNET_PASSWORD",
		},
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantConfig func() *Config
		wantError  string
	}{
		{
			name: "Happy",
			yaml: here.Doc(`
				---
				driver: webdriver
				baseURL: https://staging.fondsnet.example
				webDriverURL: http://localhost:4444/wd/hub
				headless: true
				incognito: false
				proxy: http://proxy.example:3128
				timeouts:
				  implicitWait: 5s
				  title: 1m
				polling:
				  title: 100ms
				keyDelay: 0s
				sessionPerScenario: false
				artifactsDir: /tmp/tabsync
				credentials:
				  usernameEnv: STAGING_USER
				  passwordEnv: STAGING_PASSWORD
				log:
				  level: debug
				  format: cli
			`),
			wantConfig: func() *Config {
				c := defaultConfig()
				c.Driver = DriverWebDriver
				c.BaseURL = "https://staging.fondsnet.example"
				c.WebDriverURL = "http://localhost:4444/wd/hub"
				c.Headless = ptr.To(true)
				c.Incognito = ptr.To(false)
				c.Proxy = "http://proxy.example:3128"
				c.Timeouts.ImplicitWait = duration(5 * time.Second)
				c.Timeouts.Title = duration(time.Minute)
				c.Polling.Title = duration(100 * time.Millisecond)
				c.KeyDelay = duration(0)
				c.SessionPerScenario = ptr.To(false)
				c.ArtifactsDir = "/tmp/tabsync"
				c.Credentials = CredentialsSpec{UsernameEnv: "STAGING_USER", PasswordEnv: "STAGING_PASSWORD"}
				c.Log = plog.LogSpec{Level: plog.LevelDebug, Format: plog.FormatCLI}
				return c
			},
		},
		{
			name: "When no fields are present, everything is defaulted",
			yaml: here.Doc(`
				---
			`),
			wantConfig: defaultConfig,
		},
		{
			name: "Unknown driver",
			yaml: here.Doc(`
				---
				driver: firefox
			`),
			wantError: `validate driver: unknown driver "firefox", valid choices are chromedp, webdriver and rod`,
		},
		{
			name: "webdriver without a server",
			yaml: here.Doc(`
				---
				driver: webdriver
			`),
			wantError: "validate driver: webDriverURL is required with the webdriver driver",
		},
		{
			name: "Relative base URL",
			yaml: here.Doc(`
				---
				baseURL: www.fondsnet.com
			`),
			wantError: `validate baseURL: "www.fondsnet.com" is not an absolute URL`,
		},
		{
			name: "Relative remote debugging URL",
			yaml: here.Doc(`
				---
				remoteDebuggingURL: localhost:9222
			`),
			wantError: `validate remoteDebuggingURL: "localhost:9222" is not an absolute URL`,
		},
		{
			name: "Bad durations",
			yaml: here.Doc(`
				---
				keyDelay: -1s
				timeouts:
				  pageLoad: 0s
				polling:
				  title: -50ms
				  window: 0s
			`),
			wantError: "validate durations: must not be negative: keyDelay, polling.title; must be positive: timeouts.pageLoad, polling.window",
		},
		{
			name: "Bad log level",
			yaml: here.Doc(`
				---
				log:
				  level: loud
			`),
			wantError: "validate log: invalid log level, valid choices are the empty string, info, debug, trace and all",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Cleanup(func() {
				require.NoError(t, plog.ValidateAndSetLogLevelAndFormatGlobally(context.Background(), plog.LogSpec{}))
			})

			path := filepath.Join(t.TempDir(), "tabsync.yaml")
			require.NoError(t, os.WriteFile(path, []byte(test.yaml), 0o600))

			config, err := FromPath(context.Background(), path)

			if test.wantError != "" {
				require.EqualError(t, err, test.wantError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.wantConfig(), config)
		})
	}
}

func TestFromPathAppliesLogLevel(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, plog.ValidateAndSetLogLevelAndFormatGlobally(context.Background(), plog.LogSpec{}))
	})

	path := filepath.Join(t.TempDir(), "tabsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: trace\n"), 0o600))

	_, err := FromPath(context.Background(), path)
	require.NoError(t, err)
	require.True(t, plog.Enabled(plog.LevelTrace))
	require.False(t, plog.Enabled(plog.LevelAll))
}

func TestFromPathBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600))

	_, err := FromPath(context.Background(), path)
	require.ErrorContains(t, err, "decode yaml: ")
	require.ErrorContains(t, err, "invalid log format, valid choices are the empty string, 'json' or 'cli'")
}

func TestFromPathMissingFile(t *testing.T) {
	_, err := FromPath(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "read file: ")
}

func TestDefault(t *testing.T) {
	require.Equal(t, defaultConfig(), Default())

	// the durations must match the core's own defaults
	require.Equal(t, pagesync.DefaultOptions(), Default().SessionOptions())
}

func TestCompleteAfterOverrides(t *testing.T) {
	c := Default()
	c.Driver = DriverWebDriver
	require.EqualError(t, Complete(c), "validate driver: webDriverURL is required with the webdriver driver")

	c.WebDriverURL = "http://selenium:4444"
	require.NoError(t, Complete(c))
}

func TestBrowserOptions(t *testing.T) {
	c := Default()
	c.RemoteDebuggingURL = "http://localhost:9222"
	c.WebDriverURL = "http://selenium:4444"

	require.Equal(t, browser.Options{
		UserAgent:       "weathershopper-test",
		Incognito:       true,
		PageLoadTimeout: 30 * time.Second,
		RemoteURL:       "http://localhost:9222",
	}, c.BrowserOptions())

	c.Driver = DriverWebDriver
	c.Headless = ptr.To(true)
	c.Proxy = "socks5://localhost:1080"
	require.Equal(t, browser.Options{
		Headless:        true,
		UserAgent:       "weathershopper-test",
		Incognito:       true,
		Proxy:           "socks5://localhost:1080",
		PageLoadTimeout: 30 * time.Second,
		RemoteURL:       "http://selenium:4444",
	}, c.BrowserOptions())
}

func TestFondsnetConfig(t *testing.T) {
	t.Setenv("STAGING_USER", "makler")
	t.Setenv("STAGING_PASSWORD", "s3cret")

	c := Default()
	c.BaseURL = "https://staging.fondsnet.example"
	c.Credentials = CredentialsSpec{UsernameEnv: "STAGING_USER", PasswordEnv: "STAGING_PASSWORD"}

	got := c.FondsnetConfig()
	require.Equal(t, "https://staging.fondsnet.example", got.BaseURL)
	require.Equal(t, "Maximiliane", got.Customer.FirstName)

	creds, err := got.Credentials.Credentials(context.Background())
	require.NoError(t, err)
	require.Equal(t, credentials.Credentials{Username: "makler", Password: "s3cret"}, creds)
}
