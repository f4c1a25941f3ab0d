// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the Config of a tabsync run from a YAML file.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/constable"
	"go.tabsync.dev/internal/credentials"
	"go.tabsync.dev/internal/pagesync"
	"go.tabsync.dev/internal/plog"
	"go.tabsync.dev/internal/scenario/fondsnet"
)

const (
	DefaultUserAgent    = "weathershopper-test"
	DefaultArtifactsDir = "./target"

	defaultPageLoadTimeout = 30 * time.Second
)

// FromPath loads a Config from a local file, inserts defaults, validates it and applies its log
// settings globally.
func FromPath(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if err := Complete(&config); err != nil {
		return nil, err
	}

	if err := plog.ValidateAndSetLogLevelAndFormatGlobally(ctx, config.Log); err != nil {
		return nil, fmt.Errorf("validate log: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var config Config
	if err := Complete(&config); err != nil {
		panic(err) // the defaults must always be valid
	}
	return &config
}

// Complete defaults every unset field of config and validates the result.
// Call it again after changing fields, for example from command line flags.
func Complete(config *Config) error {
	setDefaults(config)
	return validate(config)
}

func setDefaults(config *Config) {
	maybeSetDefault(&config.Driver, DriverChromedp)
	maybeSetDefault(&config.BaseURL, fondsnet.DefaultBaseURL)
	maybeSetDefault(&config.UserAgent, DefaultUserAgent)
	maybeSetDefault(&config.ArtifactsDir, DefaultArtifactsDir)
	maybeSetDefault(&config.Credentials.UsernameEnv, credentials.DefaultUsernameEnvVarName)
	maybeSetDefault(&config.Credentials.PasswordEnv, credentials.DefaultPasswordEnvVarName)

	maybeSetPtrDefault(&config.Headless, false)
	maybeSetPtrDefault(&config.Incognito, true)
	maybeSetPtrDefault(&config.SessionPerScenario, true)

	d := pagesync.DefaultOptions()
	maybeSetDurationDefault(&config.KeyDelay, d.KeyDelay)
	maybeSetDurationDefault(&config.Timeouts.ImplicitWait, d.ImplicitWait)
	maybeSetDurationDefault(&config.Timeouts.PageLoad, defaultPageLoadTimeout)
	maybeSetDurationDefault(&config.Timeouts.Title, d.TitleTimeout)
	maybeSetDurationDefault(&config.Timeouts.NewWindow, d.NewWindowTimeout)
	maybeSetDurationDefault(&config.Timeouts.Visible, d.VisibleTimeout)
	maybeSetDurationDefault(&config.Polling.Title, d.TitlePollInterval)
	maybeSetDurationDefault(&config.Polling.Window, d.WindowPollInterval)
	maybeSetDurationDefault(&config.Polling.Visible, d.VisiblePollInterval)
}

func maybeSetDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

func maybeSetPtrDefault[T any](field **T, value T) {
	if *field == nil {
		*field = ptr.To(value)
	}
}

func maybeSetDurationDefault(field **metav1.Duration, value time.Duration) {
	maybeSetPtrDefault(field, metav1.Duration{Duration: value})
}

func validate(config *Config) error {
	switch config.Driver {
	case DriverChromedp, DriverRod:
	case DriverWebDriver:
		if config.WebDriverURL == "" {
			return constable.Error("validate driver: webDriverURL is required with the webdriver driver")
		}
	default:
		return fmt.Errorf("validate driver: unknown driver %q, valid choices are %s, %s and %s",
			config.Driver, DriverChromedp, DriverWebDriver, DriverRod)
	}

	if err := validateURL(config.BaseURL); err != nil {
		return fmt.Errorf("validate baseURL: %w", err)
	}
	if config.WebDriverURL != "" {
		if err := validateURL(config.WebDriverURL); err != nil {
			return fmt.Errorf("validate webDriverURL: %w", err)
		}
	}
	if config.RemoteDebuggingURL != "" {
		if err := validateURL(config.RemoteDebuggingURL); err != nil {
			return fmt.Errorf("validate remoteDebuggingURL: %w", err)
		}
	}

	if err := validateDurations(config); err != nil {
		return fmt.Errorf("validate durations: %w", err)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", raw)
	}
	return nil
}

func validateDurations(config *Config) error {
	var negative, zero []string
	check := func(name string, d *metav1.Duration, mustBePositive bool) {
		switch {
		case d.Duration < 0:
			negative = append(negative, name)
		case d.Duration == 0 && mustBePositive:
			zero = append(zero, name)
		}
	}

	check("keyDelay", config.KeyDelay, false)
	check("timeouts.implicitWait", config.Timeouts.ImplicitWait, false)
	check("timeouts.pageLoad", config.Timeouts.PageLoad, true)
	check("timeouts.title", config.Timeouts.Title, false)
	check("timeouts.newWindow", config.Timeouts.NewWindow, false)
	check("timeouts.visible", config.Timeouts.Visible, true)
	check("polling.title", config.Polling.Title, true)
	check("polling.window", config.Polling.Window, true)
	check("polling.visible", config.Polling.Visible, true)

	var problems []string
	if len(negative) > 0 {
		problems = append(problems, "must not be negative: "+strings.Join(negative, ", "))
	}
	if len(zero) > 0 {
		problems = append(problems, "must be positive: "+strings.Join(zero, ", "))
	}
	if len(problems) > 0 {
		return constable.Error(strings.Join(problems, "; "))
	}
	return nil
}

// SessionOptions are the delays and bounds for pagesync.Session.
func (c *Config) SessionOptions() pagesync.Options {
	return pagesync.Options{
		KeyDelay:            c.KeyDelay.Duration,
		TitlePollInterval:   c.Polling.Title.Duration,
		TitleTimeout:        c.Timeouts.Title.Duration,
		WindowPollInterval:  c.Polling.Window.Duration,
		NewWindowTimeout:    c.Timeouts.NewWindow.Duration,
		ImplicitWait:        c.Timeouts.ImplicitWait.Duration,
		VisiblePollInterval: c.Polling.Visible.Duration,
		VisibleTimeout:      c.Timeouts.Visible.Duration,
	}
}

// BrowserOptions are the options for starting or connecting to the selected backend's browser.
func (c *Config) BrowserOptions() browser.Options {
	remote := c.RemoteDebuggingURL
	if c.Driver == DriverWebDriver {
		remote = c.WebDriverURL
	}
	return browser.Options{
		Headless:        ptr.Deref(c.Headless, false),
		UserAgent:       c.UserAgent,
		Incognito:       ptr.Deref(c.Incognito, true),
		Proxy:           c.Proxy,
		PageLoadTimeout: c.Timeouts.PageLoad.Duration,
		RemoteURL:       remote,
	}
}

// FondsnetConfig is the scenario configuration for the portal at BaseURL.
func (c *Config) FondsnetConfig() fondsnet.Config {
	cfg := fondsnet.DefaultConfig()
	cfg.BaseURL = c.BaseURL
	cfg.Credentials = credentials.FromEnv(c.Credentials.UsernameEnv, c.Credentials.PasswordEnv)
	return cfg
}
