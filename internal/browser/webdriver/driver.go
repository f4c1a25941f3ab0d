// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package webdriver drives a browser through a W3C WebDriver server, for example a Selenium
// standalone container or a local chromedriver.
package webdriver

import (
	"context"
	"fmt"
	"sync"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"go.tabsync.dev/internal/browser"
	"go.tabsync.dev/internal/plog"
)

var _ browser.Driver = &Driver{}

// Driver adapts one WebDriver session. The wire protocol is not safe for concurrent commands,
// so every call is serialized.
type Driver struct {
	mu     sync.Mutex
	remote Remote
	log    plog.Logger
}

// Connect opens a Chrome session on the WebDriver server at opts.RemoteURL.
func Connect(ctx context.Context, opts browser.Options, log plog.Logger) (*Driver, error) {
	if opts.RemoteURL == "" {
		return nil, errMissingServer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{Args: chromeArgs(opts), W3C: true})

	log.Debug("opening webdriver session", "url", opts.RemoteURL, "headless", opts.Headless)

	wd, err := selenium.NewRemote(caps, opts.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("opening webdriver session at %s: %w", opts.RemoteURL, err)
	}

	if opts.PageLoadTimeout > 0 {
		if err := wd.SetPageLoadTimeout(opts.PageLoadTimeout); err != nil {
			_ = wd.Quit()
			return nil, fmt.Errorf("setting page load timeout: %w", err)
		}
	}
	// lookups must fail fast, the caller polls
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		_ = wd.Quit()
		return nil, fmt.Errorf("disabling implicit wait: %w", err)
	}

	return New(&seleniumRemote{wd: wd}, log), nil
}

func chromeArgs(opts browser.Options) []string {
	args := []string{"--log-level=3", "--disable-extensions"}
	if opts.UserAgent != "" {
		args = append(args, "--user-agent="+opts.UserAgent)
	}
	if opts.Incognito {
		args = append(args, "--incognito")
	}
	if opts.Headless {
		args = append(args, "--headless=new")
	}
	if opts.Proxy != "" {
		args = append(args, "--proxy-server="+opts.Proxy)
	}
	return args
}

// New wraps an existing session.
func New(remote Remote, log plog.Logger) *Driver {
	return &Driver{remote: remote, log: log.WithName("webdriver")}
}

func (d *Driver) do(ctx context.Context, op string, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := f(); err != nil {
		d.log.TraceErr("webdriver command failed", err, "op", op)
		return classify(err)
	}
	return nil
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.do(ctx, "get", func() error { return d.remote.Get(url) })
}

func (d *Driver) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found RemoteElement
	err := d.do(ctx, "find element", func() error {
		var err error
		found, err = d.remote.FindElement(string(loc.By), loc.Value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &element{d: d, remote: found}, nil
}

func (d *Driver) WindowHandles(ctx context.Context) ([]string, error) {
	var handles []string
	err := d.do(ctx, "window handles", func() error {
		var err error
		handles, err = d.remote.WindowHandles()
		return err
	})
	return handles, err
}

func (d *Driver) CurrentWindowHandle(ctx context.Context) (string, error) {
	var handle string
	err := d.do(ctx, "current window handle", func() error {
		var err error
		handle, err = d.remote.CurrentWindowHandle()
		return err
	})
	return handle, err
}

func (d *Driver) SwitchToWindow(ctx context.Context, handle string) error {
	return d.do(ctx, "switch window", func() error { return d.remote.SwitchWindow(handle) })
}

func (d *Driver) SwitchToFrame(ctx context.Context, frame browser.Element) error {
	el, ok := frame.(*element)
	if !ok || el.d != d {
		return fmt.Errorf("%w: element does not belong to this session", browser.ErrNoSuchFrame)
	}
	return d.do(ctx, "switch frame", func() error { return d.remote.SwitchFrame(el.remote) })
}

func (d *Driver) SwitchToDefaultContent(ctx context.Context) error {
	return d.do(ctx, "switch to default content", func() error { return d.remote.SwitchFrame(nil) })
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.do(ctx, "title", func() error {
		var err error
		title, err = d.remote.Title()
		return err
	})
	return title, err
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	var source string
	err := d.do(ctx, "page source", func() error {
		var err error
		source, err = d.remote.PageSource()
		return err
	})
	return source, err
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	var png []byte
	err := d.do(ctx, "screenshot", func() error {
		var err error
		png, err = d.remote.Screenshot()
		return err
	})
	return png, err
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remote.Quit()
}

type element struct {
	d      *Driver
	remote RemoteElement
}

func (e *element) Click(ctx context.Context) error {
	return e.d.do(ctx, "click", e.remote.Click)
}

func (e *element) SendKeys(ctx context.Context, keys string) error {
	return e.d.do(ctx, "send keys", func() error { return e.remote.SendKeys(keys) })
}

func (e *element) Text(ctx context.Context) (string, error) {
	var text string
	err := e.d.do(ctx, "text", func() error {
		var err error
		text, err = e.remote.Text()
		return err
	})
	return text, err
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	err := e.d.do(ctx, "attribute", func() error {
		var err error
		value, err = e.remote.GetAttribute(name)
		return err
	})
	if isNoSuchAttribute(err) {
		return "", nil
	}
	return value, err
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	var displayed bool
	err := e.d.do(ctx, "is displayed", func() error {
		var err error
		displayed, err = e.remote.IsDisplayed()
		return err
	})
	return displayed, err
}

func (e *element) FindElement(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	var found RemoteElement
	err := e.d.do(ctx, "find element", func() error {
		var err error
		found, err = e.remote.FindElement(string(loc.By), loc.Value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &element{d: e.d, remote: found}, nil
}
