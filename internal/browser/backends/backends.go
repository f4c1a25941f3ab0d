// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package backends maps the configured driver name onto a browser backend.
package backends

import (
	"context"
	"fmt"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/browser/cdpdriver"
	"go.tabsync.dev/internal/browser/roddriver"
	"go.tabsync.dev/internal/browser/webdriver"
	"go.tabsync.dev/internal/config"
	"go.tabsync.dev/internal/plog"
)

// Open starts or attaches to a browser with the backend cfg selects.
func Open(ctx context.Context, cfg *config.Config, log plog.Logger) (browser.Driver, error) {
	opts := cfg.BrowserOptions()
	switch cfg.Driver {
	case config.DriverChromedp:
		return cdpdriver.Launch(ctx, opts, log)
	case config.DriverWebDriver:
		return webdriver.Connect(ctx, opts, log)
	case config.DriverRod:
		return roddriver.Launch(ctx, opts, log)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
