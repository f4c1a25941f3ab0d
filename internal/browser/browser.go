// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package browser defines the automation capability that the synchronization core drives.
//
// Implementations live in the sub-packages cdpdriver (chromedp), webdriver (a W3C WebDriver
// server such as a Selenium container) and roddriver (go-rod). None of them wait for anything on
// their own: a lookup for a missing element fails immediately with ErrNoSuchElement, and the
// caller decides whether and how long to keep trying.
package browser

import (
	"context"
	"time"
)

// Driver is one browser with one or more top-level windows (tabs). Commands target the active
// window and, within it, the active frame.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	// FindElement resolves loc within the active frame. A missing element is ErrNoSuchElement.
	FindElement(ctx context.Context, loc Locator) (Element, error)

	// WindowHandles lists the open top-level windows in the order the browser enumerates them.
	WindowHandles(ctx context.Context) ([]string, error)
	CurrentWindowHandle(ctx context.Context) (string, error)
	// SwitchToWindow makes handle the active window and resets the active frame to its top-level document.
	SwitchToWindow(ctx context.Context, handle string) error

	SwitchToFrame(ctx context.Context, frame Element) error
	SwitchToDefaultContent(ctx context.Context) error

	// Title is the title of the document in the active frame.
	Title(ctx context.Context) (string, error)
	PageSource(ctx context.Context) (string, error)
	// Screenshot returns a PNG of the active window's viewport.
	Screenshot(ctx context.Context) ([]byte, error)

	Close() error
}

// Element is a reference to a DOM element. It goes stale when its document is replaced.
type Element interface {
	Click(ctx context.Context) error
	// SendKeys types keys into the element. Special keys use the WebDriver code points, see KeyReturn.
	SendKeys(ctx context.Context, keys string) error
	Text(ctx context.Context) (string, error)
	// Attribute returns the named property or attribute, or the empty string when there is neither.
	Attribute(ctx context.Context, name string) (string, error)
	IsDisplayed(ctx context.Context) (bool, error)
	// FindElement resolves loc relative to this element.
	FindElement(ctx context.Context, loc Locator) (Element, error)
}

// Options configures how a backend starts or connects to its browser.
type Options struct {
	Headless  bool
	UserAgent string
	Incognito bool
	// Proxy is passed to the browser as its proxy server when not empty.
	Proxy string
	// PageLoadTimeout bounds Navigate.
	PageLoadTimeout time.Duration
	// RemoteURL connects to an already running browser (DevTools websocket or WebDriver server)
	// instead of launching one.
	RemoteURL string
}
